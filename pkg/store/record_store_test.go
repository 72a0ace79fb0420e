package store

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssargent/recordstore/pkg/checksum"
	"github.com/ssargent/recordstore/pkg/codec"
	"github.com/ssargent/recordstore/pkg/filestore"
	"github.com/ssargent/recordstore/pkg/status"
)

type settings struct {
	Theme    string `json:"theme"`
	FontSize int    `json:"font_size"`
}

func newTempDir(t *testing.T) string {
	t.Helper()
	tmpDir, err := os.MkdirTemp("", "record_store")
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.RemoveAll(tmpDir) })
	return tmpDir
}

func newStringStore(storage filestore.Storage, path string) *RecordStore[string] {
	return NewRecordStore[string](storage, codec.String{}, RecordStoreConfig{Path: path})
}

func TestRecordStore_SmallWriteRead(t *testing.T) {
	path := filepath.Join(newTempDir(t), "small")
	fs := filestore.NewFileStorage()

	store := newStringStore(fs, path)
	require.NoError(t, store.Write("small"))

	value, err := store.Read()
	require.NoError(t, err)
	assert.Equal(t, "small", value)

	reopened := newStringStore(fs, path)
	value, err = reopened.Read()
	require.NoError(t, err)
	assert.Equal(t, "small", value)

	size, err := fs.GetFileSize(path)
	require.NoError(t, err)
	assert.Equal(t, int64(HeaderSize+len("small")), size)
}

func TestRecordStore_LargeWriteRead(t *testing.T) {
	path := filepath.Join(newTempDir(t), "large")
	fs := filestore.NewFileStorage()
	large := bytes.Repeat([]byte("LARGE"), 10000)

	store := NewRecordStore[[]byte](fs, codec.Bytes{}, RecordStoreConfig{Path: path})
	require.NoError(t, store.Write(large))

	reopened := NewRecordStore[[]byte](fs, codec.Bytes{}, RecordStoreConfig{Path: path})
	value, err := reopened.Read()
	require.NoError(t, err)
	require.Len(t, value, 50000)
	assert.True(t, bytes.HasPrefix(value, []byte("LARGELARGELARGE")))
	assert.Equal(t, large, value)
}

func TestRecordStore_StructuredValue(t *testing.T) {
	storage := newMemStorage()
	store := NewRecordStore[settings](storage, codec.JSON[settings]{}, RecordStoreConfig{Path: "settings"})

	in := settings{Theme: "dark", FontSize: 14}
	require.NoError(t, store.Write(in))

	reopened := NewRecordStore[settings](storage, codec.JSON[settings]{}, RecordStoreConfig{Path: "settings"})
	out, err := reopened.Read()
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestRecordStore_ReadNeverWritten(t *testing.T) {
	path := filepath.Join(newTempDir(t), "missing")
	store := newStringStore(filestore.NewFileStorage(), path)

	_, err := store.Read()
	require.Error(t, err)
	assert.True(t, status.Is(err, status.NotFound), "got %v", err)
	assert.False(t, store.Cached())
}

func TestRecordStore_WriteOverwrites(t *testing.T) {
	path := filepath.Join(newTempDir(t), "ab")
	fs := filestore.NewFileStorage()

	store := newStringStore(fs, path)
	require.NoError(t, store.Write("value A"))
	require.NoError(t, store.Write("value B, which is longer"))

	value, err := store.Read()
	require.NoError(t, err)
	assert.Equal(t, "value B, which is longer", value)

	reopened := newStringStore(fs, path)
	value, err = reopened.Read()
	require.NoError(t, err)
	assert.Equal(t, "value B, which is longer", value)

	// shrinking must truncate the old tail
	require.NoError(t, store.Write("C"))
	value, err = newStringStore(fs, path).Read()
	require.NoError(t, err)
	assert.Equal(t, "C", value)
}

func TestRecordStore_CacheReuse(t *testing.T) {
	storage := newMemStorage()
	store := newStringStore(storage, "cached")

	require.NoError(t, store.Write("small"))
	assert.True(t, store.Cached())

	for i := 0; i < 3; i++ {
		value, err := store.Read()
		require.NoError(t, err)
		assert.Equal(t, "small", value)
	}
	sizeCalls, reads, _ := storage.counts()
	assert.Equal(t, 0, sizeCalls)
	assert.Equal(t, 0, reads)

	reopened := newStringStore(storage, "cached")
	for i := 0; i < 3; i++ {
		value, err := reopened.Read()
		require.NoError(t, err)
		assert.Equal(t, "small", value)
	}
	_, reads, _ = storage.counts()
	assert.Equal(t, 1, reads)
}

func TestRecordStore_IdempotentWrite(t *testing.T) {
	storage := newMemStorage()
	store := newStringStore(storage, "same")

	require.NoError(t, store.Write("small"))

	storage.setFailures(errors.New("backend unavailable"), nil)
	assert.NoError(t, store.Write("small"), "same bytes must not touch storage")

	_, _, writes := storage.counts()
	assert.Equal(t, 1, writes)

	err := store.Write("different")
	assert.Error(t, err)

	value, err := store.Read()
	require.NoError(t, err)
	assert.Equal(t, "small", value)
}

func TestRecordStore_IdempotentAfterRead(t *testing.T) {
	storage := newMemStorage()
	require.NoError(t, newStringStore(storage, "same").Write("small"))

	store := newStringStore(storage, "same")
	_, err := store.Read()
	require.NoError(t, err)

	storage.setFailures(errors.New("backend unavailable"), nil)
	assert.NoError(t, store.Write("small"))
}

func TestRecordStore_CacheDetachedFromCaller(t *testing.T) {
	storage := newMemStorage()
	store := NewRecordStore[[]byte](storage, codec.Bytes{}, RecordStoreConfig{Path: "owned"})

	value := []byte("small")
	require.NoError(t, store.Write(value))
	value[0] = 'X'

	cached, err := store.Read()
	require.NoError(t, err)
	assert.Equal(t, []byte("small"), cached)

	onDisk, err := NewRecordStore[[]byte](storage, codec.Bytes{}, RecordStoreConfig{Path: "owned"}).Read()
	require.NoError(t, err)
	assert.Equal(t, cached, onDisk)

	// Rewriting the original bytes is still a no-op and the cache still
	// matches the file.
	require.NoError(t, store.Write([]byte("small")))
	_, _, writes := storage.counts()
	assert.Equal(t, 1, writes)
}

func TestAsCorruption(t *testing.T) {
	short := status.Newf(status.OutOfRange, "record: read %d of %d bytes", 3, 10)
	err := asCorruption(short, "%s: reading payload", "record")

	assert.Equal(t, status.Internal, status.KindOf(err))
	assert.True(t, errors.Is(err, status.Internal))
	assert.False(t, errors.Is(err, status.OutOfRange))

	denied := status.New(status.PermissionDenied, "record")
	assert.Same(t, denied, asCorruption(denied, "%s: reading header", "record"))
}

func TestRecordStore_FailedWriteKeepsCache(t *testing.T) {
	storage := newMemStorage()
	store := newStringStore(storage, "partial")
	require.NoError(t, store.Write("value A"))

	storage.setFailures(nil, syscall.ENOSPC)
	err := store.Write("value B")
	require.Error(t, err)
	assert.True(t, status.Is(err, status.ResourceExhausted), "got %v", err)

	value, err := store.Read()
	require.NoError(t, err)
	assert.Equal(t, "value A", value)

	// The file was truncated before the failure; a fresh reader sees it.
	storage.setFailures(nil, nil)
	_, err = newStringStore(storage, "partial").Read()
	require.Error(t, err)
	assert.True(t, status.Is(err, status.Internal), "got %v", err)
}

func TestRecordStore_FailedOpenForWrite(t *testing.T) {
	tmpDir := newTempDir(t)
	path := filepath.Join(tmpDir, "no-such-dir", "record")
	store := newStringStore(filestore.NewFileStorage(), path)

	err := store.Write("small")
	require.Error(t, err)
	assert.True(t, status.Is(err, status.NotFound), "got %v", err)
	assert.False(t, store.Cached())
}

func TestRecordStore_SizeLimit(t *testing.T) {
	storage := newMemStorage()
	cfg := RecordStoreConfig{Path: "limited", MaxPayloadSize: 16}
	store := NewRecordStore[[]byte](storage, codec.Bytes{}, cfg)
	assert.Equal(t, 16, store.MaxPayloadSize())

	fits := bytes.Repeat([]byte("a"), 15)
	require.NoError(t, store.Write(fits))
	before := storage.get("limited")

	err := store.Write(bytes.Repeat([]byte("b"), 16))
	require.Error(t, err)
	assert.True(t, status.Is(err, status.InvalidArgument), "got %v", err)

	assert.Equal(t, before, storage.get("limited"))
	value, err := store.Read()
	require.NoError(t, err)
	assert.Equal(t, fits, value)
}

func TestRecordStore_DefaultSizeLimit(t *testing.T) {
	storage := newMemStorage()
	store := NewRecordStore[[]byte](storage, codec.Bytes{}, RecordStoreConfig{Path: "big"})
	assert.Equal(t, DefaultMaxPayloadSize, store.MaxPayloadSize())

	require.NoError(t, store.Write(make([]byte, DefaultMaxPayloadSize-1)))

	err := store.Write(make([]byte, DefaultMaxPayloadSize))
	assert.True(t, status.Is(err, status.InvalidArgument), "got %v", err)
}

func TestRecordStore_OversizedFile(t *testing.T) {
	storage := newMemStorage()
	payload := bytes.Repeat([]byte("x"), 17)
	header := Header{Magic: HeaderMagic, Checksum: checksum.Sum(payload)}
	storage.set("oversized", append(header.Encode(), payload...))

	store := NewRecordStore[[]byte](storage, codec.Bytes{}, RecordStoreConfig{Path: "oversized", MaxPayloadSize: 16})
	_, err := store.Read()
	require.Error(t, err)
	assert.True(t, status.Is(err, status.Internal), "got %v", err)
	assert.Contains(t, err.Error(), "exceeds maximum")

	_, reads, _ := storage.counts()
	assert.Equal(t, 0, reads, "oversized files are rejected before opening")
}

func TestRecordStore_Corruption(t *testing.T) {
	valid := func() []byte {
		payload := []byte("small")
		header := Header{Magic: HeaderMagic, Checksum: checksum.Sum(payload)}
		return append(header.Encode(), payload...)
	}

	testCases := []struct {
		name    string
		content []byte
		message string
	}{
		{"empty file", []byte{}, "truncated header"},
		{"junk", []byte("junk"), "truncated header"},
		{"long junk", []byte("junkjunkjunk"), "bad magic"},
		{"appended bytes", append(valid(), "extra"...), "checksum mismatch"},
		{"altered payload", func() []byte {
			data := valid()
			data[HeaderSize] ^= 0x20
			return data
		}(), "checksum mismatch"},
		{"altered checksum", func() []byte {
			data := valid()
			data[4]++
			return data
		}(), "checksum mismatch"},
		{"header only with wrong checksum", func() []byte {
			return Header{Magic: HeaderMagic, Checksum: 1}.Encode()
		}(), "checksum mismatch"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			storage := newMemStorage()
			storage.set("record", tc.content)
			logger := &capturingLogger{}
			store := NewRecordStore[string](storage, codec.String{}, RecordStoreConfig{Path: "record", Logger: logger})

			_, err := store.Read()
			require.Error(t, err)
			assert.True(t, status.Is(err, status.Internal), "got %v", err)
			assert.Contains(t, err.Error(), tc.message)
			assert.False(t, store.Cached())
			assert.NotEmpty(t, logger.errors)
		})
	}
}

func TestRecordStore_CorruptionOnDisk(t *testing.T) {
	path := filepath.Join(newTempDir(t), "ondisk")
	fs := filestore.NewFileStorage()
	require.NoError(t, newStringStore(fs, path).Write("small"))

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0)
	require.NoError(t, err)
	_, err = f.Write([]byte("garbage"))
	require.NoError(t, err)
	require.NoError(t, f.Close())

	_, err = newStringStore(fs, path).Read()
	require.Error(t, err)
	assert.True(t, status.Is(err, status.Internal), "got %v", err)
}

func TestRecordStore_JunkFileOnDisk(t *testing.T) {
	path := filepath.Join(newTempDir(t), "junk")
	require.NoError(t, os.WriteFile(path, []byte("junk"), 0644))

	_, err := newStringStore(filestore.NewFileStorage(), path).Read()
	require.Error(t, err)
	assert.True(t, status.Is(err, status.Internal), "got %v", err)
}

func TestRecordStore_DecodeFailure(t *testing.T) {
	storage := newMemStorage()
	require.NoError(t, newStringStore(storage, "record").Write("not json"))

	store := NewRecordStore[settings](storage, codec.JSON[settings]{}, RecordStoreConfig{Path: "record"})
	_, err := store.Read()
	require.Error(t, err)
	assert.True(t, status.Is(err, status.Internal), "got %v", err)
	assert.Contains(t, err.Error(), "failed to parse")
	assert.NotContains(t, err.Error(), "checksum")
}

func TestRecordStore_SerializeFailure(t *testing.T) {
	type unencodable struct {
		Ch chan int
	}
	storage := newMemStorage()
	store := NewRecordStore[unencodable](storage, codec.JSON[unencodable]{}, RecordStoreConfig{Path: "record"})

	err := store.Write(unencodable{Ch: make(chan int)})
	require.Error(t, err)
	assert.True(t, status.Is(err, status.InvalidArgument), "got %v", err)

	_, _, writes := storage.counts()
	assert.Equal(t, 0, writes)
}

func TestRecordStore_ConcurrentAccess(t *testing.T) {
	path := filepath.Join(newTempDir(t), "concurrent")
	store := newStringStore(filestore.NewFileStorage(), path)

	const workers = 8
	const iterations = 25

	var wg sync.WaitGroup
	errs := make(chan error, workers*iterations*2)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for i := 0; i < iterations; i++ {
				if err := store.Write(fmt.Sprintf("value-%d-%d", worker, i)); err != nil {
					errs <- err
					continue
				}
				value, err := store.Read()
				if err != nil {
					errs <- err
					continue
				}
				if !strings.HasPrefix(value, "value-") {
					errs <- fmt.Errorf("unexpected value %q", value)
				}
			}
		}(w)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}

	// the file matches the last write
	cached, err := store.Read()
	require.NoError(t, err)
	onDisk, err := newStringStore(filestore.NewFileStorage(), path).Read()
	require.NoError(t, err)
	assert.Equal(t, cached, onDisk)
}

func TestRecordStore_Path(t *testing.T) {
	store := newStringStore(newMemStorage(), "some/where")
	assert.Equal(t, "some/where", store.Path())
}

package store

import (
	"bytes"
	"sync"

	"github.com/ssargent/recordstore/pkg/checksum"
	"github.com/ssargent/recordstore/pkg/codec"
	"github.com/ssargent/recordstore/pkg/filestore"
	"github.com/ssargent/recordstore/pkg/status"
)

// Logger receives corruption and write events. pebble.DefaultLogger
// satisfies it.
type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

type nopLogger struct{}

func (nopLogger) Infof(string, ...interface{})  {}
func (nopLogger) Errorf(string, ...interface{}) {}

// RecordStoreConfig holds configuration for a record store
type RecordStoreConfig struct {
	Path           string // File holding the record
	MaxPayloadSize int    // Payload cap in bytes (0 = DefaultMaxPayloadSize)
	Logger         Logger // Optional
}

type cachedRecord[T any] struct {
	value   T
	payload []byte
}

// RecordStore keeps a single value of type T in one file, guarded by a
// magic number and a checksum, and caches the last value read or written.
//
// A RecordStore serializes its own Read and Write calls. It does not guard
// against other instances or processes using the same path.
type RecordStore[T any] struct {
	storage filestore.Storage
	codec   codec.Codec[T]
	config  RecordStoreConfig
	logger  Logger

	mutex sync.Mutex
	cache *cachedRecord[T]
}

// NewRecordStore creates a store for cfg.Path. The storage must outlive the
// store.
func NewRecordStore[T any](storage filestore.Storage, c codec.Codec[T], cfg RecordStoreConfig) *RecordStore[T] {
	if cfg.MaxPayloadSize <= 0 {
		cfg.MaxPayloadSize = DefaultMaxPayloadSize
	}
	logger := cfg.Logger
	if logger == nil {
		logger = nopLogger{}
	}
	return &RecordStore[T]{
		storage: storage,
		codec:   c,
		config:  cfg,
		logger:  logger,
	}
}

// Path returns the file backing the store.
func (s *RecordStore[T]) Path() string {
	return s.config.Path
}

// MaxPayloadSize returns the effective payload cap.
func (s *RecordStore[T]) MaxPayloadSize() int {
	return s.config.MaxPayloadSize
}

// Cached reports whether a value is held in memory.
func (s *RecordStore[T]) Cached() bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.cache != nil
}

// Read returns the stored value, from the cache when populated. A path
// that was never written yields status.NotFound; anything unreadable as a
// record yields status.Internal.
//
// The returned value is shared with the cache until the next successful
// Write; callers must not mutate it.
func (s *RecordStore[T]) Read() (T, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.cache != nil {
		return s.cache.value, nil
	}

	var zero T
	payload, err := s.readPayload()
	if err != nil {
		return zero, err
	}

	value, err := s.codec.Unmarshal(payload)
	if err != nil {
		s.logger.Errorf("record %s: decode failed: %v", s.config.Path, err)
		return zero, status.Wrapf(status.Internal, err, "%s: failed to parse record", s.config.Path)
	}

	s.cache = &cachedRecord[T]{value: value, payload: payload}
	return value, nil
}

// readPayload reads and verifies the file, returning the payload bytes.
func (s *RecordStore[T]) readPayload() ([]byte, error) {
	path := s.config.Path

	size, err := s.storage.GetFileSize(path)
	if err != nil {
		return nil, err
	}
	if size > int64(s.config.MaxPayloadSize)+HeaderSize {
		s.logger.Errorf("record %s: file size %d exceeds limit", path, size)
		return nil, status.Newf(status.Internal, "%s: file size %d exceeds maximum %d", path, size, s.config.MaxPayloadSize+HeaderSize)
	}
	if size < HeaderSize {
		s.logger.Errorf("record %s: truncated header (%d bytes)", path, size)
		return nil, status.Newf(status.Internal, "%s: truncated header: file is %d bytes", path, size)
	}

	in, err := s.storage.OpenForRead(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = in.Close() }()

	buf := make([]byte, size)
	raw, err := in.Read(HeaderSize, buf[:HeaderSize])
	if err != nil {
		return nil, asCorruption(err, "%s: reading header", path)
	}
	header, err := DecodeHeader(raw)
	if err != nil {
		return nil, err
	}
	if header.Magic != HeaderMagic {
		s.logger.Errorf("record %s: bad magic %#x", path, uint32(header.Magic))
		return nil, status.Newf(status.Internal, "%s: bad magic %#x, want %#x", path, uint32(header.Magic), uint32(HeaderMagic))
	}

	payloadSize := int(size) - HeaderSize
	payload, err := in.Read(payloadSize, buf[HeaderSize:])
	if err != nil {
		return nil, asCorruption(err, "%s: reading payload", path)
	}

	if sum := checksum.Sum(payload); sum != header.Checksum {
		s.logger.Errorf("record %s: checksum mismatch", path)
		return nil, status.Newf(status.Internal, "%s: checksum mismatch: stored %#08x, computed %#08x", path, header.Checksum, sum)
	}
	return payload, nil
}

// asCorruption turns running out of data into status.Internal since the
// size was already checked. Other errors pass through.
func asCorruption(err error, format string, args ...interface{}) error {
	if status.Is(err, status.OutOfRange) {
		return status.Wrapf(status.Internal, err, format, args...)
	}
	return err
}

// Write replaces the stored value. Writing a value that encodes to the
// cached bytes does nothing. The store keeps no reference to value.
//
// On failure the cache is unchanged but the file may already be truncated
// or partially written.
func (s *RecordStore[T]) Write(value T) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	path := s.config.Path

	payload, err := s.codec.Marshal(value)
	if err != nil {
		return status.Wrapf(status.InvalidArgument, err, "%s: failed to serialize record", path)
	}
	if len(payload) >= s.config.MaxPayloadSize {
		return status.Newf(status.InvalidArgument, "%s: payload of %d bytes exceeds maximum %d", path, len(payload), s.config.MaxPayloadSize)
	}

	if s.cache != nil && bytes.Equal(s.cache.payload, payload) {
		return nil
	}

	header := Header{Magic: HeaderMagic, Checksum: checksum.Sum(payload)}

	out, err := s.storage.OpenForWrite(path)
	if err != nil {
		return err
	}
	if err := out.Append(header.Encode()); err != nil {
		_ = out.Close()
		return err
	}
	if err := out.Append(payload); err != nil {
		_ = out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		s.logger.Errorf("record %s: close failed: %v", path, err)
		return err
	}

	s.logger.Infof("record %s: wrote %d bytes", path, HeaderSize+len(payload))

	// The cache holds a copy decoded from what was written, never the
	// caller's value.
	cached, err := s.codec.Unmarshal(payload)
	if err != nil {
		s.cache = nil
		s.logger.Errorf("record %s: written value does not decode: %v", path, err)
		return nil
	}
	s.cache = &cachedRecord[T]{value: cached, payload: payload}
	return nil
}

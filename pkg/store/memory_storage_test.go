package store

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/ssargent/recordstore/pkg/filestore"
	"github.com/ssargent/recordstore/pkg/status"
)

// memStorage is an in-memory filestore.Storage that counts opens and can
// be told to fail.
type memStorage struct {
	mu    sync.Mutex
	files map[string][]byte

	sizeCalls  int
	readOpens  int
	writeOpens int

	failOpenWrite error // returned by OpenForWrite
	failCommit    error // returned by OutputStream.Close after truncation
}

var _ filestore.Storage = (*memStorage)(nil)

func newMemStorage() *memStorage {
	return &memStorage{files: make(map[string][]byte)}
}

func (m *memStorage) GetFileSize(path string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sizeCalls++
	data, ok := m.files[path]
	if !ok {
		return 0, status.Newf(status.NotFound, "%s: no such file", path)
	}
	return int64(len(data)), nil
}

func (m *memStorage) OpenForRead(path string) (filestore.InputStream, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.readOpens++
	data, ok := m.files[path]
	if !ok {
		return nil, status.Newf(status.NotFound, "%s: no such file", path)
	}
	rc := io.NopCloser(bytes.NewReader(append([]byte{}, data...)))
	return filestore.NewInputStream(path, rc), nil
}

func (m *memStorage) OpenForWrite(path string) (filestore.OutputStream, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failOpenWrite != nil {
		return nil, m.failOpenWrite
	}
	m.writeOpens++
	m.files[path] = []byte{}
	return filestore.NewOutputStream(path, &memFile{storage: m, path: path}), nil
}

func (m *memStorage) set(path string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path] = append([]byte{}, data...)
}

func (m *memStorage) get(path string) []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]byte{}, m.files[path]...)
}

func (m *memStorage) setFailures(openWrite, commit error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failOpenWrite = openWrite
	m.failCommit = commit
}

func (m *memStorage) counts() (size, reads, writes int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sizeCalls, m.readOpens, m.writeOpens
}

type memFile struct {
	storage *memStorage
	path    string
	buf     bytes.Buffer
}

func (f *memFile) Write(p []byte) (int, error) {
	return f.buf.Write(p)
}

func (f *memFile) Close() error {
	f.storage.mu.Lock()
	defer f.storage.mu.Unlock()
	if f.storage.failCommit != nil {
		return f.storage.failCommit
	}
	f.storage.files[f.path] = append([]byte{}, f.buf.Bytes()...)
	return nil
}

type capturingLogger struct {
	mu     sync.Mutex
	infos  []string
	errors []string
}

func (l *capturingLogger) Infof(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.infos = append(l.infos, fmt.Sprintf(format, args...))
}

func (l *capturingLogger) Errorf(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors = append(l.errors, fmt.Sprintf(format, args...))
}

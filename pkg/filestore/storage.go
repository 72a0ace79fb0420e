// Package filestore provides sequential, exclusively owned file streams
// whose failures are classified with the status package.
//
// A Storage hands out one InputStream or OutputStream per open call. Reads
// are exact: InputStream.Read either fills the requested byte count or
// reports why not, with status.OutOfRange reserved for running out of data.
// Writes are buffered and only guaranteed on disk once Close returns nil.
//
//	fs := filestore.NewFileStorage()
//	out, err := fs.OpenForWrite(path)
//	if err != nil {
//	    return err
//	}
//	defer out.Close() // no-op after the explicit Close below
//	if err := out.Append(data); err != nil {
//	    return err
//	}
//	return out.Close()
package filestore

import (
	"os"
)

// Storage opens named files for exclusive sequential access.
type Storage interface {
	// GetFileSize returns the length of the file in bytes.
	GetFileSize(path string) (int64, error)

	// OpenForRead opens an existing file for reading from its start.
	OpenForRead(path string) (InputStream, error)

	// OpenForWrite creates the file, truncating any previous content.
	OpenForWrite(path string) (OutputStream, error)
}

// InputStream reads a file front to back.
type InputStream interface {
	// Read reads exactly n bytes into scratch and returns scratch[:n].
	// On any error the returned slice still starts at scratch[0] and holds
	// the bytes read before the failure; status.OutOfRange means the data
	// ended first.
	Read(n int, scratch []byte) ([]byte, error)

	// Close releases the file. Calling it again is a no-op.
	Close() error
}

// OutputStream appends to a freshly truncated file.
type OutputStream interface {
	// Append writes all of data or fails.
	Append(data []byte) error

	// Close flushes buffered data, syncs and releases the file. Later
	// calls return the result of the first.
	Close() error
}

const (
	// DataFilePerm is the mode used for files created by OpenForWrite.
	DataFilePerm = 0644

	defaultBufferSize = 64 * 1024
)

// FileStorage is the operating system backed Storage.
type FileStorage struct {
	// BufferSize is the write buffer size; 0 selects 64KB.
	BufferSize int
}

var _ Storage = (*FileStorage)(nil)

// NewFileStorage returns a Storage over the local file system.
func NewFileStorage() *FileStorage {
	return &FileStorage{}
}

// GetFileSize stats path.
func (s *FileStorage) GetFileSize(path string) (int64, error) {
	st, err := os.Stat(path)
	if err != nil {
		return 0, ioError(path, err)
	}
	return st.Size(), nil
}

// OpenForRead opens path read-only.
func (s *FileStorage) OpenForRead(path string) (InputStream, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ioError(path, err)
	}
	return NewInputStream(path, f), nil
}

// OpenForWrite creates or truncates path. Parent directories are not
// created.
func (s *FileStorage) OpenForWrite(path string) (OutputStream, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, DataFilePerm)
	if err != nil {
		return nil, ioError(path, err)
	}
	size := s.BufferSize
	if size <= 0 {
		size = defaultBufferSize
	}
	return newOutputStream(path, f, size), nil
}

// Package storage provides filestore.Storage backends other than the local
// file system.
package storage

import (
	"bytes"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/pebble"

	"github.com/ssargent/recordstore/pkg/filestore"
	"github.com/ssargent/recordstore/pkg/status"
)

// PebbleStorageConfig holds configuration for a pebble-backed storage
type PebbleStorageConfig struct {
	Dir    string        // Directory of the pebble database
	Logger pebble.Logger // Optional, defaults to pebble.DefaultLogger
}

// PebbleStorage keeps each record file as a single pebble key. Paths are
// used verbatim as keys.
type PebbleStorage struct {
	db *pebble.DB
}

var _ filestore.Storage = (*PebbleStorage)(nil)

// NewPebbleStorage opens (or creates) the database in cfg.Dir.
func NewPebbleStorage(cfg PebbleStorageConfig) (*PebbleStorage, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = pebble.DefaultLogger
	}
	db, err := pebble.Open(cfg.Dir, &pebble.Options{Logger: logger})
	if err != nil {
		return nil, status.FromError(err, cfg.Dir)
	}
	return &PebbleStorage{db: db}, nil
}

func (s *PebbleStorage) get(path string) ([]byte, error) {
	data, closer, err := s.db.Get([]byte(path))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, status.Newf(status.NotFound, "%s: no such record", path)
		}
		return nil, status.FromError(err, path)
	}
	defer closer.Close()

	// data is only valid until closer.Close
	return append([]byte{}, data...), nil
}

func (s *PebbleStorage) GetFileSize(path string) (int64, error) {
	data, err := s.get(path)
	if err != nil {
		return 0, err
	}
	return int64(len(data)), nil
}

func (s *PebbleStorage) OpenForRead(path string) (filestore.InputStream, error) {
	data, err := s.get(path)
	if err != nil {
		return nil, err
	}
	return filestore.NewInputStream(path, io.NopCloser(bytes.NewReader(data))), nil
}

// OpenForWrite empties the key immediately; appended data is committed
// with a synced write when the stream is closed.
func (s *PebbleStorage) OpenForWrite(path string) (filestore.OutputStream, error) {
	if path == "" {
		return nil, status.New(status.InvalidArgument, "empty record name")
	}
	if err := s.db.Set([]byte(path), nil, pebble.Sync); err != nil {
		return nil, status.FromError(err, path)
	}
	return filestore.NewOutputStream(path, &pebbleValue{db: s.db, key: []byte(path)}), nil
}

// Remove deletes the record. Removing a missing record is not an error.
func (s *PebbleStorage) Remove(path string) error {
	return status.FromError(s.db.Delete([]byte(path), pebble.Sync), path)
}

func (s *PebbleStorage) Close() error {
	return s.db.Close()
}

// pebbleValue collects a value and writes it on Close.
type pebbleValue struct {
	db  *pebble.DB
	key []byte
	buf bytes.Buffer
}

func (v *pebbleValue) Write(p []byte) (int, error) {
	return v.buf.Write(p)
}

func (v *pebbleValue) Close() error {
	return v.db.Set(v.key, v.buf.Bytes(), pebble.Sync)
}

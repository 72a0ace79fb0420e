// Package api provides factory implementations for dependency injection
package api

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ssargent/recordstore/pkg/config"
	"github.com/ssargent/recordstore/pkg/filestore"
	"github.com/ssargent/recordstore/pkg/storage"
)

// DefaultStorageFactory is the default implementation of StorageFactory
type DefaultStorageFactory struct{}

// NewStorageFactory creates a new storage factory
func NewStorageFactory() StorageFactory {
	return &DefaultStorageFactory{}
}

// OpenBackend opens the file system or pebble backend. The data directory
// is created if needed.
func (f *DefaultStorageFactory) OpenBackend(backend, dataDir string) (*Backend, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	switch backend {
	case "", config.BackendFile:
		return &Backend{
			Storage: filestore.NewFileStorage(),
			Root:    dataDir,
			Close:   func() error { return nil },
		}, nil
	case config.BackendPebble:
		ps, err := storage.NewPebbleStorage(storage.PebbleStorageConfig{
			Dir: filepath.Join(dataDir, "pebble"),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to open pebble storage: %w", err)
		}
		return &Backend{Storage: ps, Close: ps.Close}, nil
	default:
		return nil, fmt.Errorf("unknown backend %q", backend)
	}
}

// DefaultServerFactory is the default implementation of ServerFactory
type DefaultServerFactory struct{}

// NewServerFactory creates a new server factory
func NewServerFactory() ServerFactory {
	return &DefaultServerFactory{}
}

// CreateServerStarter creates a server starter
func (f *DefaultServerFactory) CreateServerStarter() ServerStarter {
	return &DefaultServerStarter{}
}

// DefaultServerStarter is the default implementation of ServerStarter
type DefaultServerStarter struct{}

// StartServer starts the API server with the given configuration
func (s *DefaultServerStarter) StartServer(storage filestore.Storage, config ServerConfig) error {
	return StartServer(storage, config)
}

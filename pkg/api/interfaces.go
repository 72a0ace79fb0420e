// Package api provides interfaces for dependency injection
package api

import "github.com/ssargent/recordstore/pkg/filestore"

// Backend is an opened storage backend and the location of records in it
type Backend struct {
	Storage filestore.Storage
	Root    string       // Joined with a record name to form its path
	Close   func() error // Releases the backend
}

// StorageFactory opens storage backends
type StorageFactory interface {
	// OpenBackend opens the named backend ("file" or "pebble") under dataDir
	OpenBackend(backend, dataDir string) (*Backend, error)
}

// ServerStarter defines the interface for starting the API server
type ServerStarter interface {
	// StartServer serves records from storage with the given configuration
	StartServer(storage filestore.Storage, config ServerConfig) error
}

// ServerFactory creates server instances
type ServerFactory interface {
	// CreateServerStarter creates a server starter
	CreateServerStarter() ServerStarter
}

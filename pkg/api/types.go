package api

//go:generate swag init -g server.go -o . --outputTypes go

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ssargent/recordstore/pkg/store"
)

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Kind    string      `json:"kind,omitempty"` // status kind of a failure
	Error   string      `json:"error,omitempty"`
}

// WriteResponse is returned after a record is stored
type WriteResponse struct {
	Name string `json:"name"`
	Size int    `json:"size"`
}

// ServerConfig holds configuration for the API server
type ServerConfig struct {
	Bind           string
	Port           int
	APIKey         string // Empty disables authentication
	Root           string // Directory or key prefix holding records
	MaxPayloadSize int    // 0 = store.DefaultMaxPayloadSize
	MaxOpenStores  int    // 0 = DefaultMaxOpenStores
	Logger         store.Logger

	// Registry receives the server metrics and backs /metrics. Nil uses the
	// global prometheus registry.
	Registry *prometheus.Registry
}

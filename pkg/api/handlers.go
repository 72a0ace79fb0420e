package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/ssargent/recordstore/pkg/codec"
	"github.com/ssargent/recordstore/pkg/filestore"
	"github.com/ssargent/recordstore/pkg/status"
	"github.com/ssargent/recordstore/pkg/store"
)

const (
	maxNameLength = 255

	// DefaultMaxOpenStores bounds the record stores a server keeps cached.
	DefaultMaxOpenStores = 1024
)

// Server holds the API server state
type Server struct {
	storage filestore.Storage
	config  ServerConfig
	metrics *Metrics

	mutex  sync.Mutex
	stores *lru.Cache[string, *store.RecordStore[[]byte]]
}

// NewServer creates a new API server. Records are raw byte payloads named
// by the last path segment of the request.
func NewServer(storage filestore.Storage, config ServerConfig, metrics *Metrics) *Server {
	if config.MaxPayloadSize <= 0 {
		config.MaxPayloadSize = store.DefaultMaxPayloadSize
	}
	if config.MaxOpenStores <= 0 {
		config.MaxOpenStores = DefaultMaxOpenStores
	}
	// lru.New only fails for a non-positive size
	stores, _ := lru.New[string, *store.RecordStore[[]byte]](config.MaxOpenStores)
	return &Server{
		storage: storage,
		config:  config,
		metrics: metrics,
		stores:  stores,
	}
}

// ValidateName rejects record names that would escape the record root
func ValidateName(name string) error {
	switch {
	case name == "":
		return status.New(status.InvalidArgument, "record name is required")
	case name == "." || name == "..":
		return status.Newf(status.InvalidArgument, "invalid record name %q", name)
	case strings.ContainsAny(name, `/\`):
		return status.Newf(status.InvalidArgument, "record name %q contains a path separator", name)
	case len(name) > maxNameLength:
		return status.Newf(status.InvalidArgument, "record name longer than %d bytes", maxNameLength)
	}
	return nil
}

func (s *Server) recordPath(name string) string {
	return filepath.Join(s.config.Root, name)
}

// recordStore returns the store for name, creating it on first use. At most
// MaxOpenStores are kept; the least recently used one is dropped with its
// cached value and rebuilt from disk when asked for again.
func (s *Server) recordStore(name string) *store.RecordStore[[]byte] {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	rs, ok := s.stores.Get(name)
	if !ok {
		rs = store.NewRecordStore[[]byte](s.storage, codec.Bytes{}, store.RecordStoreConfig{
			Path:           s.recordPath(name),
			MaxPayloadSize: s.config.MaxPayloadSize,
			Logger:         s.config.Logger,
		})
		s.stores.Add(name, rs)
		s.metrics.SetStoresOpen(s.stores.Len())
	}
	return rs
}

// handleHealth godoc
//
//	@Summary		Health check
//	@Description	Get the health status of the API
//	@Tags			health
//	@Produce		json
//	@Success		200	{object}	APIResponse
//	@Router			/health [get]
//	@Security		ApiKeyAuth
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.metrics.RecordHealthCheck(true)
	sendSuccess(w, map[string]string{"status": "healthy"})
}

// handleGetRecord godoc
//
//	@Summary		Read a record
//	@Description	Return the stored payload of a record
//	@Tags			records
//	@Produce		octet-stream
//	@Param			name	path		string	true	"Record name"
//	@Success		200		{string}	byte
//	@Failure		400		{object}	APIResponse
//	@Failure		404		{object}	APIResponse
//	@Failure		500		{object}	APIResponse
//	@Router			/records/{name} [get]
//	@Security		ApiKeyAuth
func (s *Server) handleGetRecord(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	name := chi.URLParam(r, "name")
	if err := ValidateName(name); err != nil {
		sendStatusError(w, "Invalid record name", err)
		return
	}

	value, err := s.recordStore(name).Read()
	s.metrics.RecordOperation("read", err, len(value), time.Since(start))
	if err != nil {
		sendStatusError(w, "Failed to read record", err)
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(value)
}

// handlePutRecord godoc
//
//	@Summary		Write a record
//	@Description	Replace the payload of a record with the request body
//	@Tags			records
//	@Accept			octet-stream
//	@Produce		json
//	@Param			name	path		string	true	"Record name"
//	@Param			body	body		[]byte	true	"Payload"
//	@Success		200		{object}	WriteResponse
//	@Failure		400		{object}	APIResponse
//	@Failure		413		{object}	APIResponse
//	@Failure		500		{object}	APIResponse
//	@Router			/records/{name} [put]
//	@Security		ApiKeyAuth
func (s *Server) handlePutRecord(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	name := chi.URLParam(r, "name")
	if err := ValidateName(name); err != nil {
		sendStatusError(w, "Invalid record name", err)
		return
	}

	limit := s.config.MaxPayloadSize
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, int64(limit)))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			sendError(w, status.InvalidArgument, fmt.Sprintf("Payload must be smaller than %d bytes", limit), http.StatusRequestEntityTooLarge)
			return
		}
		sendError(w, status.Unknown, "Failed to read request body", http.StatusBadRequest)
		return
	}
	if len(body) >= limit {
		sendError(w, status.InvalidArgument, fmt.Sprintf("Payload must be smaller than %d bytes", limit), http.StatusRequestEntityTooLarge)
		return
	}

	err = s.recordStore(name).Write(body)
	s.metrics.RecordOperation("write", err, len(body), time.Since(start))
	if err != nil {
		sendStatusError(w, "Failed to write record", err)
		return
	}

	sendSuccess(w, WriteResponse{Name: name, Size: len(body)})
}

// handleGetHeader godoc
//
//	@Summary		Inspect a record
//	@Description	Report the header and checksum state of a record without decoding it
//	@Tags			records
//	@Produce		json
//	@Param			name	path		string	true	"Record name"
//	@Success		200		{object}	store.HeaderInfo
//	@Failure		400		{object}	APIResponse
//	@Failure		404		{object}	APIResponse
//	@Router			/records/{name}/header [get]
//	@Security		ApiKeyAuth
func (s *Server) handleGetHeader(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	name := chi.URLParam(r, "name")
	if err := ValidateName(name); err != nil {
		sendStatusError(w, "Invalid record name", err)
		return
	}

	info, err := store.Inspect(s.storage, s.recordPath(name), int64(s.config.MaxPayloadSize)+store.HeaderSize)
	s.metrics.RecordOperation("inspect", err, 0, time.Since(start))
	if err != nil {
		sendStatusError(w, "Failed to inspect record", err)
		return
	}

	sendSuccess(w, info)
}

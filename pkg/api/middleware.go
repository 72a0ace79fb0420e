package api

import (
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/ssargent/recordstore/pkg/status"
)

const apiKeyHeader = "X-API-Key"

// apiKeyMiddleware validates the X-API-Key header. An empty expectedKey
// lets every request through.
func apiKeyMiddleware(expectedKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if expectedKey == "" {
				next.ServeHTTP(w, r)
				return
			}
			apiKey := r.Header.Get(apiKeyHeader)
			if apiKey == "" {
				sendError(w, status.PermissionDenied, "Missing X-API-Key header", http.StatusUnauthorized)
				return
			}
			if subtle.ConstantTimeCompare([]byte(apiKey), []byte(expectedKey)) != 1 {
				sendError(w, status.PermissionDenied, "Invalid API key", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// httpStatus maps an error kind to a response code
func httpStatus(err error) int {
	switch status.KindOf(err) {
	case status.NotFound:
		return http.StatusNotFound
	case status.InvalidArgument, status.OutOfRange:
		return http.StatusBadRequest
	case status.PermissionDenied:
		return http.StatusForbidden
	case status.Unavailable, status.ResourceExhausted:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// sendSuccess sends a successful JSON response
func sendSuccess(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	response := APIResponse{
		Success: true,
		Data:    data,
	}
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(response)
}

// sendError sends an error JSON response tagged with kind
func sendError(w http.ResponseWriter, kind status.Kind, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	response := APIResponse{
		Success: false,
		Kind:    kind.String(),
		Error:   message,
	}
	_ = json.NewEncoder(w).Encode(response)
}

// sendStatusError reports a failed record operation, choosing the response
// code from the error's kind.
func sendStatusError(w http.ResponseWriter, action string, err error) {
	sendError(w, status.KindOf(err), fmt.Sprintf("%s: %v", action, err), httpStatus(err))
}

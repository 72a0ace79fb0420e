// Package api recordstore REST API
//
// @title           recordstore REST API
// @version         1.0.0
// @description     HTTP access to checksummed single-record files.
// @host            localhost:8080
// @BasePath        /api/v1
//
// @securityDefinitions.apikey ApiKeyAuth
// @in              header
// @name            X-API-Key
package api

import (
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/swaggo/swag"

	"github.com/ssargent/recordstore/pkg/filestore"
)

const swaggerUI = `<!DOCTYPE html>
<html>
<head>
	<title>recordstore API Documentation</title>
	<link rel="stylesheet" type="text/css" href="https://unpkg.com/swagger-ui-dist@3.25.0/swagger-ui.css" />
</head>
<body>
	<div id="swagger-ui"></div>
	<script src="https://unpkg.com/swagger-ui-dist@3.25.0/swagger-ui-bundle.js"></script>
	<script>
	  window.onload = function() {
	    SwaggerUIBundle({
	      url: '/swagger/doc.json',
	      dom_id: '#swagger-ui',
	      presets: [
	        SwaggerUIBundle.presets.apis,
	        SwaggerUIBundle.presets.standalone
	      ]
	    });
	  };
	</script>
</body>
</html>`

// NewRouter builds the HTTP routes for server
func NewRouter(server *Server) http.Handler {
	metrics := server.metrics

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// unprotected for scraping
	if server.config.Registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(server.config.Registry, promhttp.HandlerOpts{}))
	} else {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(metrics.InstrumentAuthMiddleware(apiKeyMiddleware(server.config.APIKey)))

		r.Get("/health", metrics.InstrumentHandler("GET", "/api/v1/health", server.handleHealth))

		r.Get("/records/{name}", metrics.InstrumentHandler("GET", "/api/v1/records/{name}", server.handleGetRecord))
		r.Put("/records/{name}", metrics.InstrumentHandler("PUT", "/api/v1/records/{name}", server.handlePutRecord))
		r.Get("/records/{name}/header", metrics.InstrumentHandler("GET", "/api/v1/records/{name}/header", server.handleGetHeader))
	})

	r.Get("/swagger/*", handleSwagger)

	return r
}

func handleSwagger(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/swagger/", "/swagger/index.html":
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(swaggerUI))
	case "/swagger/doc.json":
		doc, err := swag.ReadDoc(SwaggerInfo.InstanceName())
		if err != nil {
			log.Printf("Error generating swagger doc: %v", err)
			http.Error(w, "Failed to generate Swagger documentation", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(doc))
	default:
		http.NotFound(w, r)
	}
}

// StartServer serves the API over storage until the listener fails
func StartServer(storage filestore.Storage, config ServerConfig) error {
	SwaggerInfo.Host = fmt.Sprintf("localhost:%d", config.Port)

	var metrics *Metrics
	if config.Registry != nil {
		metrics = NewMetrics(config.Registry)
	} else {
		metrics = NewMetrics(nil)
	}
	server := NewServer(storage, config, metrics)

	addr := fmt.Sprintf("%s:%d", config.Bind, config.Port)
	log.Printf("Starting recordstore REST API server on %s", addr)
	log.Printf("Metrics available at: http://%s/metrics", addr)
	return http.ListenAndServe(addr, NewRouter(server))
}

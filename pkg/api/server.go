// Package api exposes a parse engine over HTTP: a pollable status
// endpoint, table listing and row paging once the engine is Ready, and
// Prometheus metrics.
package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mfdata/zunload/pkg/parse"
)

// StartServer starts the HTTP server with all routes configured and
// blocks until it fails.
func StartServer(engine Engine, config ServerConfig) error {
	metrics := NewMetrics()
	server := NewServer(engine, config, metrics)

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Prometheus metrics endpoint
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", metrics.InstrumentHandler("GET", "/api/v1/health", server.handleHealth))
		r.Get("/status", metrics.InstrumentHandler("GET", "/api/v1/status", server.handleStatus))
		r.Get("/tables", metrics.InstrumentHandler("GET", "/api/v1/tables", server.handleListTables))
		r.Get("/tables/{name}", metrics.InstrumentHandler("GET", "/api/v1/tables/{name}", server.handleTable))
	})

	go server.startMetricsUpdater()

	addr := fmt.Sprintf("%s:%d", config.Bind, config.Port)
	fmt.Printf("Starting zunload API server on %s\n", addr)
	fmt.Printf("Metrics available at: http://%s/metrics\n", addr)
	return http.ListenAndServe(addr, r)
}

// startMetricsUpdater republishes the engine snapshot until the engine
// leaves the Parsing state, then once more for the final figures.
func (s *Server) startMetricsUpdater() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for range ticker.C {
		st := s.engine.Status()
		s.metrics.UpdateEngineStats(st)
		if st.State == parse.StateReady || st.State == parse.StateBad {
			return
		}
	}
}

// Package server provides the HTTP REST API for the resume screener.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/semaphore"

	"github.com/jonathan/resume-screener/internal/matching"
	"github.com/jonathan/resume-screener/internal/pipeline"
	"github.com/jonathan/resume-screener/internal/provider"
	"github.com/jonathan/resume-screener/internal/store"
)

// defaultMaxConcurrent bounds simultaneous pipeline runs. Each run makes
// sequential provider calls; the bound protects quota, not CPU.
const defaultMaxConcurrent = 4

// Config holds server configuration.
type Config struct {
	Port          string
	AuthSecret    string
	MaxConcurrent int64
	Policy        matching.Policy
}

// Server represents the HTTP server.
type Server struct {
	httpServer *http.Server
	runner     *pipeline.Runner
	gw         *provider.Gateway
	store      *store.Store
	validate   *validator.Validate
	authSecret string
	sem        *semaphore.Weighted
}

// New creates a server. The store may be nil; history endpoints then report
// the feature as unavailable.
func New(cfg Config, gw *provider.Gateway, st *store.Store) *Server {
	maxConcurrent := cfg.MaxConcurrent
	if maxConcurrent <= 0 {
		maxConcurrent = defaultMaxConcurrent
	}

	s := &Server{
		runner:     pipeline.NewRunner(gw, cfg.Policy),
		gw:         gw,
		store:      st,
		validate:   validator.New(),
		authSecret: cfg.AuthSecret,
		sem:        semaphore.NewWeighted(maxConcurrent),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /screen", s.handleScreen)
	mux.HandleFunc("POST /screen-text", s.handleScreenText)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /screenings", s.handleListScreenings)
	mux.HandleFunc("GET /screenings/{id}", s.handleGetScreening)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      s.withLogging(s.withCORS(s.withAuth(mux))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // Long timeout for pipeline runs
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler exposes the full middleware stack, for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start begins listening for requests and blocks until shutdown.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if s.store != nil {
		s.store.Close()
	}
	if err := s.gw.Close(); err != nil {
		log.Printf("Error closing provider gateway: %v", err)
	}
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	providers := len(s.gw.Ranked(provider.KindStructured))
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"providers": providers,
		"store":     s.store != nil,
	})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

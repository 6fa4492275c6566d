// Package handler implements the HTTP handlers for the Globemarks API.
// All handlers are methods on Server. Handlers decode and validate request
// framing, delegate to the service layer, and map domain errors to HTTP
// status codes; no business logic lives here.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/globemarks/api/internal/domain"
	"github.com/globemarks/api/spec"
)

// LocationServicer defines the business operations the handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type LocationServicer interface {
	Create(ctx context.Context, loc domain.Location) (domain.Location, error)
	List(ctx context.Context) ([]domain.Location, error)
	FindByName(ctx context.Context, name string) (domain.Location, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Location, error)
	Update(ctx context.Context, id uuid.UUID, upd domain.LocationUpdate) (domain.Location, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Distance(ctx context.Context, name1, name2 string) (domain.DistanceResult, error)
}

// Server holds the dependencies shared by all HTTP handlers.
// Wire it in main.go via srv.Routes().
type Server struct {
	locations LocationServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(locations LocationServicer) *Server {
	return &Server{locations: locations}
}

// Routes returns the router with every API endpoint registered.
// Cross-cutting middleware (logging, CORS, body limits, metrics) is applied
// by main.go around this router, not here.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.handleHealth)
	r.Get("/openapi.yaml", s.handleOpenAPI)

	r.Route("/api/locations", func(r chi.Router) {
		r.Post("/", s.handleCreateLocation)
		r.Get("/", s.handleListLocations)
		r.Get("/search", s.handleSearchLocation)
		r.Post("/distance", s.handleDistance)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetLocation)
			r.Put("/", s.handleUpdateLocation)
			r.Delete("/", s.handleDeleteLocation)
		})
	})

	return r
}

// handleHealth handles GET /healthz.
// It returns HTTP 200 with {"status":"ok"} when the server is running.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleOpenAPI handles GET /openapi.yaml, serving the embedded API spec.
func (s *Server) handleOpenAPI(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(spec.OpenAPI)
}

// respondJSON writes v as a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Headers are already sent; nothing left to do but log.
		slog.Error("encode response", "error", err)
	}
}

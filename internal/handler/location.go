package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/globemarks/api/internal/domain"
)

// createLocationRequest is the body of POST /api/locations.
// Latitude and longitude are pointers so a missing field can be told apart
// from a legitimate zero coordinate.
type createLocationRequest struct {
	Name      string   `json:"name"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Landmark  string   `json:"landmark"`
	ZipCode   string   `json:"zipCode"`
}

// updateLocationRequest is the body of PUT /api/locations/{id}.
// Every field is optional; absent fields are left unchanged.
type updateLocationRequest struct {
	Name      *string  `json:"name"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Landmark  *string  `json:"landmark"`
	ZipCode   *string  `json:"zipCode"`
}

// distanceRequest is the body of POST /api/locations/distance.
type distanceRequest struct {
	Name1 string `json:"name1"`
	Name2 string `json:"name2"`
}

// handleCreateLocation handles POST /api/locations.
func (s *Server) handleCreateLocation(w http.ResponseWriter, r *http.Request) {
	var req createLocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}
	if req.Latitude == nil || req.Longitude == nil {
		respondBadRequest(w, "latitude and longitude are required")
		return
	}

	created, err := s.locations.Create(r.Context(), domain.Location{
		Name:      req.Name,
		Latitude:  *req.Latitude,
		Longitude: *req.Longitude,
		Landmark:  req.Landmark,
		ZipCode:   req.ZipCode,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateName):
			respondDuplicate(w, "location with this name already exists")
		case errors.Is(err, domain.ErrValidation):
			respondValidation(w, err)
		default:
			respondInternal(w)
		}
		return
	}

	respondJSON(w, http.StatusCreated, created)
}

// handleListLocations handles GET /api/locations.
func (s *Server) handleListLocations(w http.ResponseWriter, r *http.Request) {
	locs, err := s.locations.List(r.Context())
	if err != nil {
		respondInternal(w)
		return
	}
	respondJSON(w, http.StatusOK, locs)
}

// handleSearchLocation handles GET /api/locations/search?name=.
// The name is normalized server-side, so clients may send any casing.
func (s *Server) handleSearchLocation(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")

	loc, err := s.locations.FindByName(r.Context(), name)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			respondBadRequest(w, "name query parameter is required")
		case errors.Is(err, domain.ErrNotFound):
			respondNotFound(w, "location not found")
		default:
			respondInternal(w)
		}
		return
	}

	respondJSON(w, http.StatusOK, loc)
}

// handleGetLocation handles GET /api/locations/{id}.
func (s *Server) handleGetLocation(w http.ResponseWriter, r *http.Request) {
	id, ok := locationID(w, r)
	if !ok {
		return
	}

	loc, err := s.locations.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			respondNotFound(w, "location not found")
			return
		}
		respondInternal(w)
		return
	}

	respondJSON(w, http.StatusOK, loc)
}

// handleUpdateLocation handles PUT /api/locations/{id}.
func (s *Server) handleUpdateLocation(w http.ResponseWriter, r *http.Request) {
	id, ok := locationID(w, r)
	if !ok {
		return
	}

	var req updateLocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	updated, err := s.locations.Update(r.Context(), id, domain.LocationUpdate{
		Name:      req.Name,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Landmark:  req.Landmark,
		ZipCode:   req.ZipCode,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			respondNotFound(w, "location not found")
		case errors.Is(err, domain.ErrDuplicateName):
			respondDuplicate(w, "location with this name already exists")
		case errors.Is(err, domain.ErrValidation):
			respondValidation(w, err)
		default:
			respondInternal(w)
		}
		return
	}

	respondJSON(w, http.StatusOK, updated)
}

// handleDeleteLocation handles DELETE /api/locations/{id}.
func (s *Server) handleDeleteLocation(w http.ResponseWriter, r *http.Request) {
	id, ok := locationID(w, r)
	if !ok {
		return
	}

	if err := s.locations.Delete(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			respondNotFound(w, "location not found")
			return
		}
		respondInternal(w)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleDistance handles POST /api/locations/distance.
func (s *Server) handleDistance(w http.ResponseWriter, r *http.Request) {
	var req distanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	result, err := s.locations.Distance(r.Context(), req.Name1, req.Name2)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			respondValidation(w, err)
		case errors.Is(err, domain.ErrNotFound):
			// The service error names every missing location.
			respondNotFound(w, unwrapMessage(err))
		default:
			respondInternal(w)
		}
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// locationID parses the {id} path parameter. On failure it writes a 422 and
// returns ok=false; callers should return immediately.
func locationID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondBadRequest(w, "invalid location id")
		return uuid.Nil, false
	}
	return id, true
}

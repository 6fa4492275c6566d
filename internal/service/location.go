// Package service contains the business logic for the Globemarks API.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here — services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/globemarks/api/internal/domain"
	"github.com/globemarks/api/internal/repo"
)

// LocationService implements business logic for Location operations.
// Its primary responsibility is name normalization: all location identity is
// case-insensitive, so every name is folded to lowercase before it reaches
// the repo, and uniqueness is backstopped by the storage-level index.
type LocationService struct {
	repo repo.LocationRepo
}

// NewLocationService constructs a LocationService backed by the provided LocationRepo.
func NewLocationService(r repo.LocationRepo) *LocationService {
	return &LocationService{repo: r}
}

// Create validates and persists a new location.
// The name is normalized before storage; the insert and the uniqueness check
// are a single atomic operation at the storage layer, so concurrent creates
// with the same name cannot both succeed.
// Returns domain.ErrValidation for invalid input and domain.ErrDuplicateName
// when the normalized name is already taken.
func (s *LocationService) Create(ctx context.Context, loc domain.Location) (domain.Location, error) {
	loc.Name = domain.NormalizeName(loc.Name)
	if err := validateLocation(loc); err != nil {
		return domain.Location{}, err
	}
	result, err := s.repo.Create(ctx, loc)
	if err != nil {
		return domain.Location{}, fmt.Errorf("service.LocationService.Create: %w", err)
	}
	return result, nil
}

// List returns all locations. Order is not part of the contract.
// Always returns a non-nil slice so callers can safely range over it.
func (s *LocationService) List(ctx context.Context) ([]domain.Location, error) {
	locs, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.LocationService.List: %w", err)
	}
	if locs == nil {
		return []domain.Location{}, nil
	}
	return locs, nil
}

// FindByName returns the location whose normalized name exactly matches the
// given name. The query is folded to lowercase first, so "Madison" and
// "madison" resolve to the same record.
// Returns domain.ErrNotFound when no match exists.
func (s *LocationService) FindByName(ctx context.Context, name string) (domain.Location, error) {
	normalized := domain.NormalizeName(name)
	if normalized == "" {
		return domain.Location{}, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	result, err := s.repo.GetByName(ctx, normalized)
	if err != nil {
		return domain.Location{}, fmt.Errorf("service.LocationService.FindByName: %w", err)
	}
	return result, nil
}

// GetByID returns a single location by ID.
func (s *LocationService) GetByID(ctx context.Context, id uuid.UUID) (domain.Location, error) {
	result, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Location{}, fmt.Errorf("service.LocationService.GetByID: %w", err)
	}
	return result, nil
}

// Update applies a partial update to an existing location. Only the fields
// set on upd change; everything else keeps its stored value. A rename is
// re-normalized and re-checked for uniqueness against all other locations.
// Returns domain.ErrNotFound, domain.ErrValidation, or domain.ErrDuplicateName.
func (s *LocationService) Update(ctx context.Context, id uuid.UUID, upd domain.LocationUpdate) (domain.Location, error) {
	loc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Location{}, fmt.Errorf("service.LocationService.Update: %w", err)
	}

	if upd.Name != nil {
		loc.Name = domain.NormalizeName(*upd.Name)
	}
	if upd.Latitude != nil {
		loc.Latitude = *upd.Latitude
	}
	if upd.Longitude != nil {
		loc.Longitude = *upd.Longitude
	}
	if upd.Landmark != nil {
		loc.Landmark = *upd.Landmark
	}
	if upd.ZipCode != nil {
		loc.ZipCode = *upd.ZipCode
	}

	if err := validateLocation(loc); err != nil {
		return domain.Location{}, err
	}

	result, err := s.repo.Update(ctx, loc)
	if err != nil {
		return domain.Location{}, fmt.Errorf("service.LocationService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a location by ID. Deletion is permanent.
// Returns domain.ErrNotFound if the ID does not exist, including on repeat
// deletes of the same ID.
func (s *LocationService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.LocationService.Delete: %w", err)
	}
	return nil
}

// Distance resolves both names and computes the great-circle distance
// between them. Both names are checked even when the first is missing, so
// the NotFound error names every unknown location.
func (s *LocationService) Distance(ctx context.Context, name1, name2 string) (domain.DistanceResult, error) {
	n1 := domain.NormalizeName(name1)
	n2 := domain.NormalizeName(name2)
	if n1 == "" || n2 == "" {
		return domain.DistanceResult{}, fmt.Errorf("%w: two location names are required", domain.ErrValidation)
	}

	var missing []string

	from, err := s.repo.GetByName(ctx, n1)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return domain.DistanceResult{}, fmt.Errorf("service.LocationService.Distance: %w", err)
		}
		missing = append(missing, n1)
	}
	to, err := s.repo.GetByName(ctx, n2)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return domain.DistanceResult{}, fmt.Errorf("service.LocationService.Distance: %w", err)
		}
		missing = append(missing, n2)
	}

	if len(missing) > 0 {
		return domain.DistanceResult{}, fmt.Errorf(
			"service.LocationService.Distance: %w: %s", domain.ErrNotFound, strings.Join(missing, ", "))
	}

	return domain.NewDistanceResult(from, to), nil
}

// validateLocation enforces business rules common to both Create and Update.
//   - Name must be non-empty after normalization.
//   - Latitude must be a real number in [-90, 90].
//   - Longitude must be a real number in [-180, 180].
func validateLocation(loc domain.Location) error {
	if loc.Name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if !isFinite(loc.Latitude) || loc.Latitude < -90 || loc.Latitude > 90 {
		return fmt.Errorf("%w: latitude must be between -90 and 90", domain.ErrValidation)
	}
	if !isFinite(loc.Longitude) || loc.Longitude < -180 || loc.Longitude > 180 {
		return fmt.Errorf("%w: longitude must be between -180 and 180", domain.ErrValidation)
	}
	return nil
}

// isFinite reports whether f is an ordinary number. NaN slips past range
// comparisons because every comparison with NaN is false.
func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

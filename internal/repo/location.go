// Package repo contains all database access logic for the Globemarks API.
// No business logic lives here — only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/globemarks/api/internal/domain"
)

// uniqueViolation is the Postgres error code raised when an insert or update
// trips the unique index on lower(name).
const uniqueViolation = "23505"

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// LocationRepo defines the persistence operations for Locations.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the service to be unit-tested with a mock.
type LocationRepo interface {
	// Create inserts a new location and returns the persisted record (with
	// DB-generated id, created_at, and updated_at populated).
	// Returns domain.ErrDuplicateName if the normalized name is already taken;
	// the unique index on lower(name) makes the check atomic with the insert.
	Create(ctx context.Context, loc domain.Location) (domain.Location, error)

	// GetByID retrieves a single location by its UUID primary key.
	// Returns domain.ErrNotFound if no location with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Location, error)

	// GetByName retrieves a single location by exact name match.
	// Callers must normalize the name first; no case folding happens here.
	// Returns domain.ErrNotFound if no location with that name exists.
	GetByName(ctx context.Context, name string) (domain.Location, error)

	// List returns all locations. Order follows the storage engine and is
	// not part of the contract.
	List(ctx context.Context) ([]domain.Location, error)

	// Update overwrites the mutable fields of an existing location and
	// returns the updated record. Returns domain.ErrNotFound if the ID does
	// not exist and domain.ErrDuplicateName if a rename collides with
	// another location's normalized name.
	Update(ctx context.Context, loc domain.Location) (domain.Location, error)

	// Delete removes a location by ID. Returns domain.ErrNotFound if it does
	// not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgLocationRepo is the Postgres implementation of LocationRepo.
type pgLocationRepo struct {
	db db
}

// NewLocationRepo constructs a LocationRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewLocationRepo(db db) LocationRepo {
	return &pgLocationRepo{db: db}
}

// Create inserts a new location row and returns the full persisted record.
func (r *pgLocationRepo) Create(ctx context.Context, loc domain.Location) (domain.Location, error) {
	const q = `
		INSERT INTO locations (name, latitude, longitude, landmark, zip_code)
		VALUES (@name, @latitude, @longitude, @landmark, @zip_code)
		RETURNING id, name, latitude, longitude, landmark, zip_code, created_at, updated_at`

	args := pgx.NamedArgs{
		"name":      loc.Name,
		"latitude":  loc.Latitude,
		"longitude": loc.Longitude,
		"landmark":  loc.Landmark,
		"zip_code":  loc.ZipCode,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanLocation(row)
	if err != nil {
		return domain.Location{}, fmt.Errorf("repo.LocationRepo.Create: %w", mapUniqueViolation(err))
	}
	return result, nil
}

// GetByID retrieves a location by primary key.
func (r *pgLocationRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Location, error) {
	const q = `
		SELECT id, name, latitude, longitude, landmark, zip_code, created_at, updated_at
		FROM locations
		WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanLocation(row)
	if err != nil {
		return domain.Location{}, fmt.Errorf("repo.LocationRepo.GetByID: %w", err)
	}
	return result, nil
}

// GetByName retrieves a location by exact name match.
func (r *pgLocationRepo) GetByName(ctx context.Context, name string) (domain.Location, error) {
	const q = `
		SELECT id, name, latitude, longitude, landmark, zip_code, created_at, updated_at
		FROM locations
		WHERE name = @name`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"name": name})
	result, err := scanLocation(row)
	if err != nil {
		return domain.Location{}, fmt.Errorf("repo.LocationRepo.GetByName: %w", err)
	}
	return result, nil
}

// List returns all locations in storage order.
func (r *pgLocationRepo) List(ctx context.Context) ([]domain.Location, error) {
	const q = `
		SELECT id, name, latitude, longitude, landmark, zip_code, created_at, updated_at
		FROM locations`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.LocationRepo.List: %w", err)
	}
	defer rows.Close()

	var locs []domain.Location
	for rows.Next() {
		l, err := scanLocation(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.LocationRepo.List: scan: %w", err)
		}
		locs = append(locs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.LocationRepo.List: rows: %w", err)
	}

	return locs, nil
}

// Update overwrites the mutable fields of a location and returns the updated record.
func (r *pgLocationRepo) Update(ctx context.Context, loc domain.Location) (domain.Location, error) {
	const q = `
		UPDATE locations
		SET name       = @name,
		    latitude   = @latitude,
		    longitude  = @longitude,
		    landmark   = @landmark,
		    zip_code   = @zip_code,
		    updated_at = now()
		WHERE id = @id
		RETURNING id, name, latitude, longitude, landmark, zip_code, created_at, updated_at`

	args := pgx.NamedArgs{
		"id":        loc.ID,
		"name":      loc.Name,
		"latitude":  loc.Latitude,
		"longitude": loc.Longitude,
		"landmark":  loc.Landmark,
		"zip_code":  loc.ZipCode,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanLocation(row)
	if err != nil {
		return domain.Location{}, fmt.Errorf("repo.LocationRepo.Update: %w", mapUniqueViolation(err))
	}
	return result, nil
}

// Delete removes a location by primary key.
func (r *pgLocationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM locations WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.LocationRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.LocationRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing scanLocation to
// be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanLocation maps a single database row into a domain.Location.
func scanLocation(s scanner) (domain.Location, error) {
	var (
		l  domain.Location
		id pgtype.UUID
	)

	err := s.Scan(&id, &l.Name, &l.Latitude, &l.Longitude, &l.Landmark, &l.ZipCode, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Location{}, domain.ErrNotFound
		}
		return domain.Location{}, err
	}

	l.ID = uuid.UUID(id.Bytes)
	return l, nil
}

// mapUniqueViolation translates the Postgres unique-violation error into the
// domain sentinel so callers never see driver error codes.
func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return domain.ErrDuplicateName
	}
	return err
}

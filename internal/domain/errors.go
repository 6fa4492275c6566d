package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// location does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing name, latitude out of range).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrDuplicateName is returned when a create or rename would give two
// locations the same normalized name.
// Handlers should map this to HTTP 409 Conflict.
var ErrDuplicateName = errors.New("duplicate name")

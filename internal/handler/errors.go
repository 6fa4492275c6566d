package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/globemarks/api/internal/domain"
)

// ErrorResponse is the JSON body returned for every error status.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries a machine-readable code and a human-readable message.
// Codes: not_found, validation_error, duplicate_name, internal_error.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// respondNotFound writes a 404 for a missing resource.
// The caller supplies the human-readable message (e.g. "location not found")
// because the handler is the layer that knows what was being looked up.
func respondNotFound(w http.ResponseWriter, message string) {
	respondJSON(w, http.StatusNotFound, ErrorResponse{
		Error: ErrorDetail{Code: "not_found", Message: message},
	})
}

// respondValidation writes a 422 for a domain validation failure.
// The message is extracted from the wrapped domain.ErrValidation error.
func respondValidation(w http.ResponseWriter, err error) {
	respondJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
		Error: ErrorDetail{Code: "validation_error", Message: unwrapMessage(err)},
	})
}

// respondBadRequest writes a 422 for a request rejected before reaching the
// service layer (e.g. missing or malformed body).
func respondBadRequest(w http.ResponseWriter, message string) {
	respondJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
		Error: ErrorDetail{Code: "validation_error", Message: message},
	})
}

// respondDuplicate writes a 409 for a name-uniqueness violation.
func respondDuplicate(w http.ResponseWriter, message string) {
	respondJSON(w, http.StatusConflict, ErrorResponse{
		Error: ErrorDetail{Code: "duplicate_name", Message: message},
	})
}

// respondInternal writes a 500 without leaking internal detail to the client.
func respondInternal(w http.ResponseWriter) {
	respondJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error: ErrorDetail{Code: "internal_error", Message: "internal server error"},
	})
}

// unwrapMessage extracts the human-readable part from a wrapped sentinel error.
// e.g. "service.LocationService.Create: validation error: name is required"
// → "name is required"
//
// Wrap prefixes vary by layer and method, so the message is located by the
// sentinel text itself rather than a fixed prefix list.
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	if errors.Is(err, domain.ErrValidation) {
		marker := domain.ErrValidation.Error() + ": "
		if i := strings.LastIndex(msg, marker); i >= 0 {
			return msg[i+len(marker):]
		}
	}
	if errors.Is(err, domain.ErrNotFound) {
		// Keep the "not found" context: the detail after it names what is missing.
		if i := strings.Index(msg, domain.ErrNotFound.Error()); i >= 0 {
			return msg[i:]
		}
	}
	return msg
}

package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/globemarks/api/internal/domain"
	"github.com/globemarks/api/internal/handler"
)

// mockLocationServicer is a test double for handler.LocationServicer.
// Set only the method fields your test needs.
type mockLocationServicer struct {
	create     func(ctx context.Context, loc domain.Location) (domain.Location, error)
	list       func(ctx context.Context) ([]domain.Location, error)
	findByName func(ctx context.Context, name string) (domain.Location, error)
	getByID    func(ctx context.Context, id uuid.UUID) (domain.Location, error)
	update     func(ctx context.Context, id uuid.UUID, upd domain.LocationUpdate) (domain.Location, error)
	delete     func(ctx context.Context, id uuid.UUID) error
	distance   func(ctx context.Context, name1, name2 string) (domain.DistanceResult, error)
}

func (m *mockLocationServicer) Create(ctx context.Context, loc domain.Location) (domain.Location, error) {
	return m.create(ctx, loc)
}
func (m *mockLocationServicer) List(ctx context.Context) ([]domain.Location, error) {
	return m.list(ctx)
}
func (m *mockLocationServicer) FindByName(ctx context.Context, name string) (domain.Location, error) {
	return m.findByName(ctx, name)
}
func (m *mockLocationServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.Location, error) {
	return m.getByID(ctx, id)
}
func (m *mockLocationServicer) Update(ctx context.Context, id uuid.UUID, upd domain.LocationUpdate) (domain.Location, error) {
	return m.update(ctx, id, upd)
}
func (m *mockLocationServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}
func (m *mockLocationServicer) Distance(ctx context.Context, name1, name2 string) (domain.DistanceResult, error) {
	return m.distance(ctx, name1, name2)
}

// compile-time check: mockLocationServicer must satisfy handler.LocationServicer.
var _ handler.LocationServicer = (*mockLocationServicer)(nil)

// ---- helpers ---------------------------------------------------------------

// newHTTPHandler wires a Server with the given mock into the chi router.
// This mirrors exactly how main.go wires it in production.
func newHTTPHandler(svc handler.LocationServicer) http.Handler {
	return handler.NewServer(svc).Routes()
}

func locationFixture() domain.Location {
	return domain.Location{
		ID:        uuid.New(),
		Name:      "university of wisconsin",
		Latitude:  43.0766,
		Longitude: -89.4125,
		Landmark:  "Bascom Hall",
		ZipCode:   "53706",
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func errorCode(t *testing.T, body *bytes.Buffer) string {
	t.Helper()
	var resp handler.ErrorResponse
	require.NoError(t, json.Unmarshal(body.Bytes(), &resp))
	return resp.Error.Code
}

// ---- create ----------------------------------------------------------------

func TestCreateLocation_Created(t *testing.T) {
	want := locationFixture()
	svc := &mockLocationServicer{
		create: func(_ context.Context, loc domain.Location) (domain.Location, error) {
			assert.Equal(t, "University of Wisconsin", loc.Name)
			return want, nil
		},
	}
	h := newHTTPHandler(svc)

	body := jsonBody(t, map[string]any{
		"name":      "University of Wisconsin",
		"latitude":  43.0766,
		"longitude": -89.4125,
		"landmark":  "Bascom Hall",
		"zipCode":   "53706",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/locations", body)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var got domain.Location
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.Name, got.Name)
}

func TestCreateLocation_MissingCoordinates(t *testing.T) {
	h := newHTTPHandler(&mockLocationServicer{})

	body := jsonBody(t, map[string]any{"name": "nowhere"})
	req := httptest.NewRequest(http.MethodPost, "/api/locations", body)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "validation_error", errorCode(t, rec.Body))
}

func TestCreateLocation_MalformedBody(t *testing.T) {
	h := newHTTPHandler(&mockLocationServicer{})

	req := httptest.NewRequest(http.MethodPost, "/api/locations", bytes.NewBufferString("{nope"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestCreateLocation_Duplicate(t *testing.T) {
	svc := &mockLocationServicer{
		create: func(_ context.Context, _ domain.Location) (domain.Location, error) {
			return domain.Location{}, fmt.Errorf("service.LocationService.Create: %w", domain.ErrDuplicateName)
		},
	}
	h := newHTTPHandler(svc)

	body := jsonBody(t, map[string]any{"name": "dup", "latitude": 1.0, "longitude": 2.0})
	req := httptest.NewRequest(http.MethodPost, "/api/locations", body)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "duplicate_name", errorCode(t, rec.Body))
}

func TestCreateLocation_ValidationError(t *testing.T) {
	svc := &mockLocationServicer{
		create: func(_ context.Context, _ domain.Location) (domain.Location, error) {
			return domain.Location{}, fmt.Errorf("%w: latitude must be between -90 and 90", domain.ErrValidation)
		},
	}
	h := newHTTPHandler(svc)

	body := jsonBody(t, map[string]any{"name": "x", "latitude": 123.0, "longitude": 2.0})
	req := httptest.NewRequest(http.MethodPost, "/api/locations", body)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp handler.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "latitude must be between -90 and 90", resp.Error.Message)
}

// ---- list ------------------------------------------------------------------

func TestListLocations(t *testing.T) {
	svc := &mockLocationServicer{
		list: func(_ context.Context) ([]domain.Location, error) {
			return []domain.Location{locationFixture(), locationFixture()}, nil
		},
	}
	h := newHTTPHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/locations", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got []domain.Location
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Len(t, got, 2)
}

func TestListLocations_Empty(t *testing.T) {
	svc := &mockLocationServicer{
		list: func(_ context.Context) ([]domain.Location, error) {
			return []domain.Location{}, nil
		},
	}
	h := newHTTPHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/locations", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	// Empty list serializes as [], not null.
	assert.JSONEq(t, "[]", rec.Body.String())
}

// ---- search ----------------------------------------------------------------

func TestSearchLocation_Found(t *testing.T) {
	want := locationFixture()
	svc := &mockLocationServicer{
		findByName: func(_ context.Context, name string) (domain.Location, error) {
			assert.Equal(t, "University Of Wisconsin", name)
			return want, nil
		},
	}
	h := newHTTPHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/locations/search?name=University+Of+Wisconsin", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got domain.Location
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, want.ID, got.ID)
}

func TestSearchLocation_NotFound(t *testing.T) {
	svc := &mockLocationServicer{
		findByName: func(_ context.Context, _ string) (domain.Location, error) {
			return domain.Location{}, fmt.Errorf("service.LocationService.FindByName: %w", domain.ErrNotFound)
		},
	}
	h := newHTTPHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/locations/search?name=atlantis", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", errorCode(t, rec.Body))
}

func TestSearchLocation_MissingName(t *testing.T) {
	svc := &mockLocationServicer{
		findByName: func(_ context.Context, _ string) (domain.Location, error) {
			return domain.Location{}, fmt.Errorf("%w: name is required", domain.ErrValidation)
		},
	}
	h := newHTTPHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/locations/search", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

// ---- get by id -------------------------------------------------------------

func TestGetLocation_Found(t *testing.T) {
	want := locationFixture()
	svc := &mockLocationServicer{
		getByID: func(_ context.Context, id uuid.UUID) (domain.Location, error) {
			assert.Equal(t, want.ID, id)
			return want, nil
		},
	}
	h := newHTTPHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/locations/"+want.ID.String(), nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestGetLocation_BadID(t *testing.T) {
	h := newHTTPHandler(&mockLocationServicer{})

	req := httptest.NewRequest(http.MethodGet, "/api/locations/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

// ---- update ----------------------------------------------------------------

func TestUpdateLocation_Partial(t *testing.T) {
	want := locationFixture()
	var gotUpd domain.LocationUpdate
	svc := &mockLocationServicer{
		update: func(_ context.Context, id uuid.UUID, upd domain.LocationUpdate) (domain.Location, error) {
			gotUpd = upd
			return want, nil
		},
	}
	h := newHTTPHandler(svc)

	body := jsonBody(t, map[string]any{"landmark": "Camp Randall"})
	req := httptest.NewRequest(http.MethodPut, "/api/locations/"+want.ID.String(), body)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	// Only the supplied field reaches the service; the rest stay nil.
	require.NotNil(t, gotUpd.Landmark)
	assert.Equal(t, "Camp Randall", *gotUpd.Landmark)
	assert.Nil(t, gotUpd.Name)
	assert.Nil(t, gotUpd.Latitude)
	assert.Nil(t, gotUpd.Longitude)
	assert.Nil(t, gotUpd.ZipCode)
}

func TestUpdateLocation_NotFound(t *testing.T) {
	svc := &mockLocationServicer{
		update: func(_ context.Context, _ uuid.UUID, _ domain.LocationUpdate) (domain.Location, error) {
			return domain.Location{}, fmt.Errorf("service.LocationService.Update: %w", domain.ErrNotFound)
		},
	}
	h := newHTTPHandler(svc)

	body := jsonBody(t, map[string]any{"landmark": "x"})
	req := httptest.NewRequest(http.MethodPut, "/api/locations/"+uuid.NewString(), body)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateLocation_ValidationMessageStripped(t *testing.T) {
	// The wrap prefix names a service method the handler has no special
	// knowledge of; the error body must still carry only the human-readable
	// detail after the sentinel.
	svc := &mockLocationServicer{
		update: func(_ context.Context, _ uuid.UUID, _ domain.LocationUpdate) (domain.Location, error) {
			return domain.Location{}, fmt.Errorf(
				"service.LocationService.Rename: %w",
				fmt.Errorf("%w: longitude must be between -180 and 180", domain.ErrValidation))
		},
	}
	h := newHTTPHandler(svc)

	body := jsonBody(t, map[string]any{"longitude": 999.0})
	req := httptest.NewRequest(http.MethodPut, "/api/locations/"+uuid.NewString(), body)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp handler.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "longitude must be between -180 and 180", resp.Error.Message)
}

func TestUpdateLocation_RenameDuplicate(t *testing.T) {
	svc := &mockLocationServicer{
		update: func(_ context.Context, _ uuid.UUID, _ domain.LocationUpdate) (domain.Location, error) {
			return domain.Location{}, fmt.Errorf("service.LocationService.Update: %w", domain.ErrDuplicateName)
		},
	}
	h := newHTTPHandler(svc)

	body := jsonBody(t, map[string]any{"name": "state capitol"})
	req := httptest.NewRequest(http.MethodPut, "/api/locations/"+uuid.NewString(), body)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "duplicate_name", errorCode(t, rec.Body))
}

// ---- delete ----------------------------------------------------------------

func TestDeleteLocation_NoContent(t *testing.T) {
	svc := &mockLocationServicer{
		delete: func(_ context.Context, _ uuid.UUID) error { return nil },
	}
	h := newHTTPHandler(svc)

	req := httptest.NewRequest(http.MethodDelete, "/api/locations/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestDeleteLocation_NotFound(t *testing.T) {
	svc := &mockLocationServicer{
		delete: func(_ context.Context, _ uuid.UUID) error {
			return fmt.Errorf("service.LocationService.Delete: %w", domain.ErrNotFound)
		},
	}
	h := newHTTPHandler(svc)

	req := httptest.NewRequest(http.MethodDelete, "/api/locations/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

// ---- distance --------------------------------------------------------------

func TestDistance_OK(t *testing.T) {
	svc := &mockLocationServicer{
		distance: func(_ context.Context, name1, name2 string) (domain.DistanceResult, error) {
			assert.Equal(t, "University of Wisconsin", name1)
			assert.Equal(t, "State Capitol", name2)
			return domain.DistanceResult{
				From:  domain.LocationSummary{Name: "university of wisconsin", Landmark: "Bascom Hall", ZipCode: "53706"},
				To:    domain.LocationSummary{Name: "state capitol", Landmark: "N/A", ZipCode: "N/A"},
				Miles: 1.4242689504585104,
				Text:  "1.42 miles",
			}, nil
		},
	}
	h := newHTTPHandler(svc)

	body := jsonBody(t, map[string]string{"name1": "University of Wisconsin", "name2": "State Capitol"})
	req := httptest.NewRequest(http.MethodPost, "/api/locations/distance", body)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got domain.DistanceResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "1.42 miles", got.Text)
	assert.InDelta(t, 1.42, got.Miles, 0.01)
	assert.Equal(t, "N/A", got.To.Landmark)
}

func TestDistance_NotFoundNamesMissing(t *testing.T) {
	svc := &mockLocationServicer{
		distance: func(_ context.Context, _, _ string) (domain.DistanceResult, error) {
			return domain.DistanceResult{}, fmt.Errorf(
				"service.LocationService.Distance: %w: atlantis, el dorado", domain.ErrNotFound)
		},
	}
	h := newHTTPHandler(svc)

	body := jsonBody(t, map[string]string{"name1": "Atlantis", "name2": "El Dorado"})
	req := httptest.NewRequest(http.MethodPost, "/api/locations/distance", body)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)

	var resp handler.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error.Message, "atlantis")
	assert.Contains(t, resp.Error.Message, "el dorado")
}

func TestDistance_MissingNames(t *testing.T) {
	svc := &mockLocationServicer{
		distance: func(_ context.Context, _, _ string) (domain.DistanceResult, error) {
			return domain.DistanceResult{}, fmt.Errorf("%w: two location names are required", domain.ErrValidation)
		},
	}
	h := newHTTPHandler(svc)

	body := jsonBody(t, map[string]string{"name1": "only one"})
	req := httptest.NewRequest(http.MethodPost, "/api/locations/distance", body)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

// ---- health ----------------------------------------------------------------

func TestHealth(t *testing.T) {
	h := newHTTPHandler(&mockLocationServicer{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

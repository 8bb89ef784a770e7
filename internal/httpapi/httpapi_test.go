package httpapi

import (
	"context"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kiyoonewton/eld-api/internal/domain"
	"github.com/Kiyoonewton/eld-api/internal/hos"
	"github.com/Kiyoonewton/eld-api/internal/trip"
)

type stubRouteClient struct{}

func (stubRouteClient) Leg(ctx context.Context, origin, destination domain.Location, rng *rand.Rand) domain.LegRoute {
	return domain.LegRoute{
		Coordinates:     []domain.Coord{{Lng: origin.Lng, Lat: origin.Lat}, {Lng: destination.Lng, Lat: destination.Lat}},
		DistanceMeters:  80000,
		DurationSeconds: 3600,
	}
}

type stubNamer struct{}

func (stubNamer) Name(ctx context.Context, coord domain.Coord, rng *rand.Rand) string { return "Somewhere" }

func newTestHandler() *Handler {
	o := trip.New(stubRouteClient{}, stubNamer{}, hos.DefaultParameters(), nil, nil)
	return NewHandler(o, nil)
}

const validBody = `{
	"trip": {
		"currentLocation": {"coordinates": {"latitude": 34.05, "longitude": -118.25}},
		"pickupLocation": {"coordinates": {"latitude": 34.15, "longitude": -118.30}},
		"dropoffLocation": {"coordinates": {"latitude": 36.17, "longitude": -115.14}},
		"currentCycleUsed": 0
	}
}`

func TestHandleTrip_ValidRequest(t *testing.T) {
	h := newTestHandler()
	req := httptest.NewRequest(http.MethodPost, "/trip/", strings.NewReader(validBody))
	w := httptest.NewRecorder()

	h.handleTrip(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var result domain.TripResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.NotEmpty(t, result.Stops)
}

func TestHandleTrip_MissingCoordinateRejected(t *testing.T) {
	h := newTestHandler()
	body := `{"trip": {
		"currentLocation": {"coordinates": {"longitude": -118.25}},
		"pickupLocation": {"coordinates": {"latitude": 34.15, "longitude": -118.30}},
		"dropoffLocation": {"coordinates": {"latitude": 36.17, "longitude": -115.14}}
	}}`
	req := httptest.NewRequest(http.MethodPost, "/trip/", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.handleTrip(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleTrip_ZeroCoordinateAccepted(t *testing.T) {
	// A 0.0 latitude is a legitimate value, not a missing field; pointer
	// fields keep the decoder from conflating the two.
	h := newTestHandler()
	body := `{"trip": {
		"currentLocation": {"coordinates": {"latitude": 0, "longitude": 0}},
		"pickupLocation": {"coordinates": {"latitude": 34.15, "longitude": -118.30}},
		"dropoffLocation": {"coordinates": {"latitude": 36.17, "longitude": -115.14}}
	}}`
	req := httptest.NewRequest(http.MethodPost, "/trip/", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.handleTrip(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandleTrip_RejectsNonPost(t *testing.T) {
	h := newTestHandler()
	req := httptest.NewRequest(http.MethodGet, "/trip/", nil)
	w := httptest.NewRecorder()

	h.handleTrip(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestHandleTrip_InvalidJSONRejected(t *testing.T) {
	h := newTestHandler()
	req := httptest.NewRequest(http.MethodPost, "/trip/", strings.NewReader("not json"))
	w := httptest.NewRecorder()

	h.handleTrip(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleHealth_OK(t *testing.T) {
	h := newTestHandler()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	h.handleHealth(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

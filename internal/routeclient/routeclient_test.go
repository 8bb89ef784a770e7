package routeclient

import (
	"context"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kiyoonewton/eld-api/internal/domain"
)

func TestLeg_FallsBackToMockOnUnreachableServer(t *testing.T) {
	c := New("http://127.0.0.1:1", 100*time.Millisecond, nil)
	origin := domain.Location{Lat: 34.05, Lng: -118.25}
	dest := domain.Location{Lat: 34.15, Lng: -118.30}

	leg := c.Leg(context.Background(), origin, dest, rand.New(rand.NewSource(1)))

	assert.Len(t, leg.Coordinates, mockNumPoints)
	assert.Greater(t, leg.DistanceMeters, 0.0)
	assert.Greater(t, leg.DurationSeconds, 0.0)
}

func TestLeg_FallsBackToMockOnNonOkCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"code":"NoRoute","routes":[]}`))
	}))
	defer server.Close()

	c := New(server.URL, time.Second, nil)
	origin := domain.Location{Lat: 34.05, Lng: -118.25}
	dest := domain.Location{Lat: 34.15, Lng: -118.30}

	leg := c.Leg(context.Background(), origin, dest, rand.New(rand.NewSource(1)))
	assert.Len(t, leg.Coordinates, mockNumPoints)
}

func TestLeg_ParsesGeoJSONLineString(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"code":"Ok","routes":[{"distance":1609.34,"duration":120,"geometry":{"type":"LineString","coordinates":[[-118.25,34.05],[-118.30,34.15]]}}]}`))
	}))
	defer server.Close()

	c := New(server.URL, time.Second, nil)
	origin := domain.Location{Lat: 34.05, Lng: -118.25}
	dest := domain.Location{Lat: 34.15, Lng: -118.30}

	leg := c.Leg(context.Background(), origin, dest, rand.New(rand.NewSource(1)))
	require.Len(t, leg.Coordinates, 2)
	assert.InDelta(t, 1609.34, leg.DistanceMeters, 0.01)
	assert.InDelta(t, 120, leg.DurationSeconds, 0.01)
}

func TestMockLeg_DeterministicWithSameSeed(t *testing.T) {
	origin := domain.Location{Lat: 34.05, Lng: -118.25}
	dest := domain.Location{Lat: 36.17, Lng: -115.14}

	a := mockLeg(origin, dest, rand.New(rand.NewSource(42)))
	b := mockLeg(origin, dest, rand.New(rand.NewSource(42)))
	assert.Equal(t, a, b)
}

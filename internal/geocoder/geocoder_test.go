package geocoder

import (
	"context"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Kiyoonewton/eld-api/internal/domain"
	"github.com/Kiyoonewton/eld-api/internal/geocache"
)

func TestFormatLocationName_PrefersCityOverCounty(t *testing.T) {
	r := nominatimResponse{Address: map[string]string{"city": "Los Angeles", "state": "California", "county": "LA County"}}
	assert.Equal(t, "Los Angeles, California", formatLocationName(r, 0, 0, "fallback"))
}

func TestFormatLocationName_FallsBackToCountyWithoutCity(t *testing.T) {
	r := nominatimResponse{Address: map[string]string{"county": "Kern County", "state": "California"}}
	assert.Equal(t, "Kern County, California", formatLocationName(r, 0, 0, "fallback"))
}

func TestFormatLocationName_UsesDisplayNameWithoutAddress(t *testing.T) {
	r := nominatimResponse{DisplayName: "Somewhere, USA"}
	assert.Equal(t, "Somewhere, USA", formatLocationName(r, 0, 0, "fallback"))
}

func TestFormatLocationName_FallsBackWhenNothingUsable(t *testing.T) {
	r := nominatimResponse{}
	assert.Equal(t, "fallback", formatLocationName(r, 0, 0, "fallback"))
}

func TestName_ReturnsCacheHitWithoutNetworkCall(t *testing.T) {
	dir := t.TempDir()
	cache := geocache.New(dir, nil, nil)
	ctx := context.Background()
	cache.Set(ctx, 34.05, -118.25, "Los Angeles, CA")

	g := New("http://127.0.0.1:1", 50*time.Millisecond, 1000, cache, nil)
	name := g.Name(ctx, domain.Coord{Lat: 34.05, Lng: -118.25}, rand.New(rand.NewSource(1)))
	assert.Equal(t, "Los Angeles, CA", name)
}

func TestName_FallsBackToCityOnUnreachableServer(t *testing.T) {
	g := New("http://127.0.0.1:1", 50*time.Millisecond, 1000, nil, nil)
	name := g.Name(context.Background(), domain.Coord{Lat: 1, Lng: 1}, rand.New(rand.NewSource(1)))

	var found bool
	for _, c := range fallbackCities {
		if c == name {
			found = true
		}
	}
	assert.True(t, found)
}

func TestName_ParsesLiveLookup(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"display_name":"Full Address","address":{"city":"Austin","state":"Texas"}}`))
	}))
	defer server.Close()

	g := New(server.URL, time.Second, 1000, nil, nil)
	name := g.Name(context.Background(), domain.Coord{Lat: 30.26, Lng: -97.74}, rand.New(rand.NewSource(1)))
	assert.Equal(t, "Austin, Texas", name)
}

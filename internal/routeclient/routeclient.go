// Package routeclient fetches a single-leg driving route from an
// OSRM-style service, falling back to a synthetic great-circle route
// whenever the service is unreachable or returns no usable result.
package routeclient

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"net/http"
	"time"

	goejson "github.com/goccy/go-json"
	geojson "github.com/paulmach/go.geojson"

	"github.com/Kiyoonewton/eld-api/internal/domain"
	"github.com/Kiyoonewton/eld-api/internal/geo"
	"github.com/Kiyoonewton/eld-api/internal/logger"
)

const (
	mockDetourFactor = 1.3
	mockSpeedKmh     = 80.0
	mockNumPoints    = 50
)

type osrmResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Routes  []osrmRoute `json:"routes"`
}

type osrmRoute struct {
	Distance float64           `json:"distance"`
	Duration float64           `json:"duration"`
	Geometry *geojson.Geometry `json:"geometry"`
}

// Client fetches a single leg's route via an OSRM-compatible HTTP API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *logger.Logger
}

func New(baseURL string, timeout time.Duration, log *logger.Logger) *Client {
	if log == nil {
		log = logger.Default()
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

// Leg fetches the route between origin and destination. rng seeds the
// jitter applied on mock-route fallback so repeated identical requests
// produce identical synthetic routes.
func (c *Client) Leg(ctx context.Context, origin, destination domain.Location, rng *rand.Rand) domain.LegRoute {
	route, err := c.fetch(ctx, origin, destination)
	if err != nil {
		c.log.Warnw("osrm route fetch failed, using mock route", "error", err)
		return mockLeg(origin, destination, rng)
	}
	if route.Code != "Ok" || len(route.Routes) == 0 {
		c.log.Warnw("osrm returned no usable route, using mock route", "code", route.Code)
		return mockLeg(origin, destination, rng)
	}

	r := route.Routes[0]
	coords := geometryCoords(r.Geometry)
	if len(coords) == 0 {
		return mockLeg(origin, destination, rng)
	}

	return domain.LegRoute{
		Coordinates:     coords,
		DistanceMeters:  r.Distance,
		DurationSeconds: r.Duration,
	}
}

func (c *Client) fetch(ctx context.Context, origin, destination domain.Location) (*osrmResponse, error) {
	url := fmt.Sprintf("%s/route/v1/driving/%f,%f;%f,%f?overview=full&geometries=geojson",
		c.baseURL, origin.Lng, origin.Lat, destination.Lng, destination.Lat)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	var out osrmResponse
	if err := goejson.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &out, nil
}

func geometryCoords(g *geojson.Geometry) []domain.Coord {
	if g == nil || !g.IsLineString() {
		return nil
	}
	coords := make([]domain.Coord, 0, len(g.LineString))
	for _, p := range g.LineString {
		coords = append(coords, domain.Coord{Lng: p[0], Lat: p[1]})
	}
	return coords
}

// mockLeg synthesizes a straight-line route with sinusoidal-envelope
// jitter: 1.3x detour factor on the great-circle distance, 80 km/h
// planning speed for the synthetic duration, 50 interpolated points.
func mockLeg(origin, destination domain.Location, rng *rand.Rand) domain.LegRoute {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}

	distanceKm := geo.HaversineKm(origin, destination)
	if distanceKm < 0.1 {
		distanceKm = 0.1
	}

	drivingDistanceMeters := distanceKm * 1000 * mockDetourFactor
	durationSeconds := (distanceKm * mockDetourFactor) / mockSpeedKmh * 3600

	coords := make([]domain.Coord, 0, mockNumPoints)
	latDiff := destination.Lat - origin.Lat
	lngDiff := destination.Lng - origin.Lng

	for i := 0; i < mockNumPoints; i++ {
		progress := float64(i) / float64(mockNumPoints-1)

		lat := origin.Lat + latDiff*progress
		lng := origin.Lng + lngDiff*progress

		if progress > 0.1 && progress < 0.9 {
			r := 0.01 * math.Sin(progress*math.Pi)
			lat += (rng.Float64()*2 - 1) * r
			lng += (rng.Float64()*2 - 1) * r
		}

		coords = append(coords, domain.Coord{Lng: lng, Lat: lat})
	}

	return domain.LegRoute{
		Coordinates:     coords,
		DistanceMeters:  drivingDistanceMeters,
		DurationSeconds: durationSeconds,
	}
}

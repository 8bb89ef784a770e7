// Package geocoder resolves a [lng, lat] coordinate to a place-name string
// via a Nominatim-style reverse-geocoding service, rate-limited to 1
// request/second, cached, and falling back to a random city name on any
// failure.
package geocoder

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"time"

	goejson "github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/Kiyoonewton/eld-api/internal/domain"
	"github.com/Kiyoonewton/eld-api/internal/geocache"
	"github.com/Kiyoonewton/eld-api/internal/logger"
)

var fallbackCities = []string{
	"Chicago, IL", "Houston, TX", "Phoenix, AZ", "Philadelphia, PA", "San Antonio, TX",
	"San Diego, CA", "Dallas, TX", "San Jose, CA", "Austin, TX", "Jacksonville, FL",
	"Fort Worth, TX", "Columbus, OH", "Charlotte, NC", "Indianapolis, IN", "San Francisco, CA",
	"Seattle, WA", "Denver, CO", "Boston, MA", "Nashville, TN", "Portland, OR",
	"Las Vegas, NV", "Detroit, MI", "Memphis, TN", "Louisville, KY", "Milwaukee, WI",
}

type nominatimResponse struct {
	DisplayName string            `json:"display_name"`
	Address     map[string]string `json:"address"`
}

type Geocoder struct {
	baseURL    string
	httpClient *http.Client
	cache      *geocache.Cache
	limiter    *rate.Limiter
	log        *logger.Logger
}

func New(baseURL string, timeout time.Duration, requestsPerSec float64, cache *geocache.Cache, log *logger.Logger) *Geocoder {
	if log == nil {
		log = logger.Default()
	}
	return &Geocoder{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		cache:      cache,
		limiter:    rate.NewLimiter(rate.Limit(requestsPerSec), 1),
		log:        log,
	}
}

// Name resolves coord to a human-readable place name. rng seeds the
// fallback-city pick so repeated failures against the same request are
// reproducible.
func (g *Geocoder) Name(ctx context.Context, coord domain.Coord, rng *rand.Rand) string {
	lat, lng := coord.Lat, coord.Lng

	if g.cache != nil {
		if name, ok := g.cache.Get(ctx, lat, lng); ok {
			return name
		}
	}

	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	fallback := fallbackCities[rng.Intn(len(fallbackCities))]

	if err := g.limiter.Wait(ctx); err != nil {
		g.log.Warnw("geocoder rate limiter wait failed", "error", err)
		return fallback
	}

	name, err := g.lookup(ctx, lat, lng, fallback)
	if err != nil {
		g.log.Warnw("geocoder lookup failed, using fallback city", "error", err)
		return fallback
	}

	if g.cache != nil {
		g.cache.Set(ctx, lat, lng, name)
	}
	return name
}

func (g *Geocoder) lookup(ctx context.Context, lat, lng float64, fallback string) (string, error) {
	url := fmt.Sprintf("%s/reverse?lat=%f&lon=%f&format=json", g.baseURL, lat, lng)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "eld-api/1.0")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	var out nominatimResponse
	if err := goejson.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	return formatLocationName(out, lat, lng, fallback), nil
}

// formatLocationName applies the address-field precedence: city, then
// town, then village (each paired with state if present), then
// county+state, then road+state, finally display_name or the fallback.
func formatLocationName(r nominatimResponse, lat, lng float64, fallback string) string {
	addr := r.Address
	if addr == nil {
		if r.DisplayName != "" {
			return r.DisplayName
		}
		return fallback
	}

	state := addr["state"]
	if city, ok := addr["city"]; ok {
		if state != "" {
			return fmt.Sprintf("%s, %s", city, state)
		}
		return city
	}
	if town, ok := addr["town"]; ok {
		if state != "" {
			return fmt.Sprintf("%s, %s", town, state)
		}
		return town
	}
	if village, ok := addr["village"]; ok {
		if state != "" {
			return fmt.Sprintf("%s, %s", village, state)
		}
		return village
	}
	if county, ok := addr["county"]; ok && state != "" {
		return fmt.Sprintf("%s, %s", county, state)
	}
	if road, ok := addr["road"]; ok && state != "" {
		return fmt.Sprintf("%s, %s", road, state)
	}

	if r.DisplayName != "" {
		return r.DisplayName
	}
	return fallback
}

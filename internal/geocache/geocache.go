// Package geocache persists reverse-geocode results keyed by coordinates
// rounded to 5 decimal places, one JSON file per key, with an optional
// Redis layer in front of the disk for repeat lookups. Every operation is
// best-effort: any I/O failure falls through to the next layer (and
// eventually to the network) rather than surfacing an error.
package geocache

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Kiyoonewton/eld-api/internal/logger"
)

const redisTTL = 30 * 24 * time.Hour

type cachedEntry struct {
	Name string `json:"name"`
}

type Cache struct {
	dir   string
	redis *redis.Client
	log   *logger.Logger
}

// New builds a Cache rooted at dir. redisClient may be nil, in which case
// the Redis layer is skipped silently.
func New(dir string, redisClient *redis.Client, log *logger.Logger) *Cache {
	if log == nil {
		log = logger.Default()
	}
	_ = os.MkdirAll(dir, 0o755)
	return &Cache{dir: dir, redis: redisClient, log: log}
}

func Key(lat, lng float64) string {
	return fmt.Sprintf("%.5f_%.5f", lat, lng)
}

// Get returns the cached name for (lat, lng), checking Redis first (if
// configured), then disk.
func (c *Cache) Get(ctx context.Context, lat, lng float64) (string, bool) {
	key := Key(lat, lng)

	if c.redis != nil {
		if name, err := c.redis.Get(ctx, key).Result(); err == nil && name != "" {
			return name, true
		}
	}

	path := c.path(key)
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	var entry cachedEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return "", false
	}
	if entry.Name == "" {
		return "", false
	}

	if c.redis != nil {
		_ = c.redis.Set(ctx, key, entry.Name, redisTTL).Err()
	}
	return entry.Name, true
}

// Set writes name for (lat, lng) to every configured layer. Failures are
// logged and swallowed; concurrent writers to the same key may race, which
// is acceptable because values are reproducible.
func (c *Cache) Set(ctx context.Context, lat, lng float64, name string) {
	key := Key(lat, lng)

	if c.redis != nil {
		if err := c.redis.Set(ctx, key, name, redisTTL).Err(); err != nil {
			c.log.Warnw("geocache redis write failed", "key", key, "error", err)
		}
	}

	data, err := json.Marshal(cachedEntry{Name: name})
	if err != nil {
		return
	}
	if err := os.WriteFile(c.path(key), data, 0o644); err != nil {
		c.log.Warnw("geocache disk write failed", "key", key, "error", err)
	}
}

func (c *Cache) path(key string) string {
	return filepath.Join(c.dir, key+".json")
}

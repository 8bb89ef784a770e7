// Package config loads process configuration from the environment, the
// same getEnv*-with-default idiom the rest of the stack uses.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Service   ServiceConfig
	Server    ServerConfig
	Routing   RoutingConfig
	Geocoding GeocodingConfig
	Kafka     KafkaConfig
	Redis     RedisConfig
}

type ServiceConfig struct {
	Name        string
	Environment string
	LogLevel    string
}

type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

type RoutingConfig struct {
	OSRMBaseURL string
	Timeout     time.Duration
}

type GeocodingConfig struct {
	NominatimBaseURL string
	CacheDir         string
	Timeout          time.Duration
	RateLimitPerSec  float64
}

type KafkaConfig struct {
	Brokers []string
	Enabled bool
}

type RedisConfig struct {
	Addr string
}

func Load() *Config {
	return &Config{
		Service: ServiceConfig{
			Name:        getEnv("SERVICE_NAME", "eld-api"),
			Environment: getEnv("ENVIRONMENT", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
		},
		Server: ServerConfig{
			Port:            getEnv("HTTP_PORT", "8080"),
			ReadTimeout:     getEnvDuration("HTTP_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvDuration("HTTP_WRITE_TIMEOUT", 15*time.Second),
			ShutdownTimeout: getEnvDuration("HTTP_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Routing: RoutingConfig{
			OSRMBaseURL: getEnv("OSRM_BASE_URL", "https://router.project-osrm.org"),
			Timeout:     getEnvDuration("OSRM_TIMEOUT", 10*time.Second),
		},
		Geocoding: GeocodingConfig{
			NominatimBaseURL: getEnv("NOMINATIM_BASE_URL", "https://nominatim.openstreetmap.org"),
			CacheDir:         getEnv("GEOCODE_CACHE_DIR", "location_cache"),
			Timeout:          getEnvDuration("GEOCODE_TIMEOUT", 5*time.Second),
			RateLimitPerSec:  getEnvFloat("GEOCODE_RATE_LIMIT", 1.0),
		},
		Kafka: KafkaConfig{
			Brokers: getEnvSlice("KAFKA_BROKERS", []string{}),
			Enabled: getEnvBool("KAFKA_ENABLED", false),
		},
		Redis: RedisConfig{
			Addr: getEnv("REDIS_ADDR", ""),
		},
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvSlice(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return splitAndTrim(v, ",")
}

func splitAndTrim(s, sep string) []string {
	parts := strings.Split(s, sep)
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

// Command server wires the configuration, logger, caches, external
// clients, and orchestrator together and serves the inbound HTTP API.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/Kiyoonewton/eld-api/internal/config"
	"github.com/Kiyoonewton/eld-api/internal/events"
	"github.com/Kiyoonewton/eld-api/internal/geocache"
	"github.com/Kiyoonewton/eld-api/internal/geocoder"
	"github.com/Kiyoonewton/eld-api/internal/hos"
	"github.com/Kiyoonewton/eld-api/internal/httpapi"
	"github.com/Kiyoonewton/eld-api/internal/logger"
	"github.com/Kiyoonewton/eld-api/internal/routeclient"
	"github.com/Kiyoonewton/eld-api/internal/trip"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Service.Name, cfg.Service.Environment, cfg.Service.LogLevel)
	defer log.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
	}

	cache := geocache.New(cfg.Geocoding.CacheDir, redisClient, log)
	geo := geocoder.New(cfg.Geocoding.NominatimBaseURL, cfg.Geocoding.Timeout, cfg.Geocoding.RateLimitPerSec, cache, log)
	routeClient := routeclient.New(cfg.Routing.OSRMBaseURL, cfg.Routing.Timeout, log)

	var producer *events.Producer
	if cfg.Kafka.Enabled {
		producer = events.NewProducer(cfg.Kafka.Brokers, log)
	}

	orchestrator := trip.New(routeClient, geo, hos.DefaultParameters(), producer, log)
	handler := httpapi.NewHandler(orchestrator, log)

	mux := http.NewServeMux()
	handler.Mount(mux)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      mux,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Infow("http server listening", "port", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("http server failed", "error", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Infow("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Errorw("server shutdown error")
	}
	if producer != nil {
		_ = producer.Close()
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}
}

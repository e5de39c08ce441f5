package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"spacedata/launchharvest/config"
	"spacedata/launchharvest/internal/scraper"
	"spacedata/launchharvest/logger"
	"spacedata/launchharvest/services/cache"
	"spacedata/launchharvest/services/store"
	"spacedata/launchharvest/services/worker"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	logger.Init()

	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Default.Fatal().Err(err).Msg("Invalid configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cacheSvc := newCacheService(&cfg)
	datasetStore, err := store.New(&cfg)
	if err != nil {
		logger.Default.Fatal().Err(err).Msg("Failed to create dataset store")
	}

	metrics := scraper.NewMetrics()
	if cfg.MetricsAddr != "" {
		go serveMetrics(cfg.MetricsAddr, metrics)
	}

	fetcher := scraper.NewRetryingFetcher(&cfg, cacheSvc, metrics)
	extractor := scraper.NewExtractor(&cfg, fetcher)
	controller := scraper.NewController(&cfg, fetcher, extractor, metrics)
	w := worker.NewWorker(&cfg, controller, datasetStore)

	logger.Default.Info().
		Str("storage", cfg.StorageBackend).
		Str("cache", cfg.CacheBackend).
		Dur("interval", cfg.CrawlInterval).
		Msg("Harvester starting")

	if err := w.Start(ctx); err != nil && ctx.Err() == nil {
		logger.Default.Fatal().Err(err).Msg("Harvest failed")
	}

	logger.Default.Info().Msg("Harvester stopped")
	os.Exit(0)
}

// newCacheService selects the fetch-block cache backend. Cache failures are
// not fatal: the harvester runs without rate-limit blocking.
func newCacheService(cfg *config.Config) cache.CacheService {
	switch cfg.CacheBackend {
	case config.CacheMemcache:
		return cache.NewMemcacheService(cfg.MemcacheAddr)
	default:
		svc, err := cache.NewMemoryService()
		if err != nil {
			logger.Default.Warn().Err(err).Msg("Memory cache unavailable, continuing without")
			return nil
		}
		return svc
	}
}

// serveMetrics exposes the Prometheus registry over HTTP.
func serveMetrics(addr string, metrics *scraper.Metrics) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Default.Info().Str("addr", addr).Msg("Metrics server listening")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Default.Error().Err(err).Msg("Metrics server stopped")
	}
}

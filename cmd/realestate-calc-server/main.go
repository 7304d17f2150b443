package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iwvelando/realestate-calc/internal/cache"
	"github.com/iwvelando/realestate-calc/internal/logging"
	"github.com/iwvelando/realestate-calc/internal/metrics"
	"github.com/iwvelando/realestate-calc/internal/server"
	"github.com/iwvelando/realestate-calc/internal/tracing"
	"github.com/iwvelando/realestate-calc/pkg/constants"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

const shutdownTimeout = 10 * time.Second

func main() {
	_ = godotenv.Load()

	configLocation := flag.String("config", constants.DefaultServerConfigFile, "path to server configuration file")
	address := flag.String("address", "", "listen address override, e.g. :8080")
	maxUploadSize := flag.String("max-upload-size", "", "request size limit override, e.g. 512K or 2M")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	showVersion := flag.Bool("version", false, "print the version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version)
		return
	}

	cfg, err := server.LoadConfig(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load server configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}
	cfg.ApplyEnv(os.Getenv)
	if *address != "" {
		cfg.Address = *address
	}
	if *maxUploadSize != "" {
		size, err := server.ParseSize(*maxUploadSize)
		if err != nil {
			fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"invalid max-upload-size\", \"error\": \"%v\"}\n", err)
			os.Exit(1)
		}
		cfg.SetUploadSizeBytes(size)
	}

	logger, err := logging.New(cfg.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	if err := run(logger, cfg); err != nil {
		logger.Fatal("server stopped with error",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}

func run(logger *zap.Logger, cfg *server.Config) error {
	ctx := context.Background()

	provider, err := tracing.Init(ctx, logger, cfg.Tracing, version)
	if err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := provider.Shutdown(shutdownCtx); err != nil {
			logger.Warn("failed to flush traces",
				zap.String("op", "main.run"),
				zap.Error(err),
			)
		}
	}()

	responseCache, closeCache := newCache(ctx, logger, cfg)
	defer closeCache()

	opts := server.Options{
		MaxUploadSize: cfg.UploadSizeBytes(),
		Version:       version,
		Cache:         responseCache,
		Metrics:       metrics.New(),
		Tracer:        provider.Tracer(),
	}
	if cfg.RateLimit.RequestsPerMinute > 0 {
		limiter := server.NewRateLimiter(cfg.RateLimit.RequestsPerMinute, time.Minute)
		defer limiter.Stop()
		opts.RateLimiter = limiter
	}

	httpServer := &http.Server{
		Addr:         cfg.Address,
		Handler:      server.NewHandler(logger, opts),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("listening",
			zap.String("op", "main.run"),
			zap.String("address", cfg.Address),
			zap.String("version", version),
			zap.String("cache", cfg.Cache.Backend),
		)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return fmt.Errorf("failed to serve: %w", err)
	case sig := <-quit:
		logger.Info("shutting down",
			zap.String("op", "main.run"),
			zap.String("signal", sig.String()),
		)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}

	logger.Info("server exited", zap.String("op", "main.run"))
	return nil
}

// newCache builds the configured response cache. An unreachable Redis is
// logged and still used; lookups then miss until it comes back.
func newCache(ctx context.Context, logger *zap.Logger, cfg *server.Config) (cache.Cache, func()) {
	switch cfg.Cache.Backend {
	case server.CacheBackendRedis:
		redisCache := cache.NewRedisCache(logger, cfg.Cache.RedisAddr, cfg.CacheTTL())
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := redisCache.Ping(pingCtx); err != nil {
			logger.Warn("redis is not reachable",
				zap.String("op", "main.newCache"),
				zap.String("address", cfg.Cache.RedisAddr),
				zap.Error(err),
			)
		}
		return redisCache, func() {
			if err := redisCache.Close(); err != nil {
				logger.Warn("failed to close redis client",
					zap.String("op", "main.newCache"),
					zap.Error(err),
				)
			}
		}
	case server.CacheBackendMemory:
		return cache.NewMemoryCache(cfg.CacheTTL()), func() {}
	default:
		return nil, func() {}
	}
}

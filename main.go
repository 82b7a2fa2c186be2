package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/integrationhub/ideaportal/internal/config"
	"github.com/integrationhub/ideaportal/internal/idea/repository"
	"github.com/integrationhub/ideaportal/internal/idea/service"
	"github.com/integrationhub/ideaportal/pkg/logger"
	"github.com/integrationhub/ideaportal/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
)

const shutdownTimeout = 5 * time.Second

func main() {
	// LOG_LEVEL is read before config so config errors are logged at the right level
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Init(cfg.LogLevel)
	logger.Debugf("startup: LOG_LEVEL=%s", logger.LevelString())
	logger.Infof("config loaded: backend=%s redis=%v mongo=%v minio=%v", cfg.Store.Backend, cfg.Redis.Host != "", cfg.MongoDB.URI != "", cfg.MinIO.Endpoint != "")

	ctx := context.Background()
	store, closeStore, err := repository.Open(ctx, cfg)
	if err != nil {
		logger.Fatalf("failed to open %s store: %v", cfg.Store.Backend, err)
	}
	defer closeStore()

	svc := service.New(store,
		service.WithSerializedWrites(cfg.Store.SerializeWrites),
		service.WithPageSizes(cfg.Store.DefaultPageSize, cfg.Store.MaxPageSize),
	)

	limiterRedis := connectLimiterRedis(ctx, cfg)
	if limiterRedis != nil {
		defer func() { _ = limiterRedis.Close() }()
	}

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r := newRouter(cfg, svc, limiterRedis, prometheus.DefaultGatherer, time.Now())

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Infof("idea portal listening on %s (serialized writes=%v)", addr, cfg.Store.SerializeWrites)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	<-quit
	logger.Infof("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("server forced to shutdown: %v", err)
	}
	logger.Infof("server exited")
}

// connectLimiterRedis returns a client for the shared rate limiter, or nil
// when the in-memory limiter should be used.
func connectLimiterRedis(ctx context.Context, cfg *config.Config) *redis.Client {
	if !cfg.RateLimit.Enabled || !cfg.RateLimit.UseRedis {
		return nil
	}
	if cfg.Redis.Addr() == "" {
		logger.Warnf("RATE_LIMIT_USE_REDIS set without REDIS_HOST; using in-memory limiter")
		return nil
	}
	client := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr(), Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warnf("redis ping for rate limiter failed (%s): %v; using in-memory limiter", cfg.Redis.Addr(), err)
		_ = client.Close()
		return nil
	}
	logger.Infof("rate limiter backed by redis at %s", cfg.Redis.Addr())
	return client
}

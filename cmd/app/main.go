package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"viewerhub/internal/accrual"
	"viewerhub/internal/config"
	"viewerhub/internal/db"
	httpServer "viewerhub/internal/http"
	"viewerhub/internal/http/middleware"
	"viewerhub/internal/ingest"
	"viewerhub/internal/logger"
	"viewerhub/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var version = "dev"

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogJSON)

	pool := db.Connect(cfg.DatabaseURL)
	defer pool.Close()

	source, err := buildSource(cfg)
	if err != nil {
		logger.Fatal("failed to open chat feed", "source", cfg.FeedSource, "error", err)
	}
	defer source.Close()

	loop := ingest.NewLoop(
		source,
		repository.NewUserRepository(pool),
		repository.NewGroupRepository(pool),
		accrual.Config{
			ActiveWindow:     cfg.ActiveWindow,
			BasePayoutPerMin: cfg.BasePayoutRate,
		},
	)

	loopCtx, stopLoop := context.WithCancel(context.Background())
	loopDone := make(chan struct{})
	go func() {
		defer close(loopDone)
		if err := loop.Run(loopCtx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("ingest loop ended", "error", err)
		}
	}()

	r := gin.Default()
	r.Use(middleware.CountRequests())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	httpServer.RegisterRoutes(r, pool, cfg, version)

	srv := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: r,
	}

	go func() {
		logger.Info("server started", "port", cfg.AppPort, "version", version)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	stopLoop()
	select {
	case <-loopDone:
	case <-time.After(5 * time.Second):
		logger.Warn("ingest loop did not stop in time")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("forced shutdown", "error", err)
	}

	logger.Info("server exited")
}

func buildSource(cfg *config.Config) (ingest.Source, error) {
	if cfg.FeedSource == config.FeedWebsocket {
		if cfg.FeedWSURL == "" {
			return nil, errors.New("FEED_WS_URL is not set")
		}
		return ingest.NewWebsocketSource(cfg.FeedWSURL)
	}
	return ingest.NewRedisSource(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.FeedChannel)
}

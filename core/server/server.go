package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"meetgrid/core/cache"
	"meetgrid/core/config"
	"meetgrid/core/database"
	"meetgrid/core/logger"
	"meetgrid/core/middleware"
	"meetgrid/core/queue"
	"meetgrid/modules/availability"
	"meetgrid/modules/event"
)

// Run boots the whole service: config, logging, database, optional redis
// realtime channel, optional background worker, HTTP server.
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(cfg.Server.LogLevel, cfg.Server.LogJSON)

	db, err := database.InitDB(cfg.Database)
	if err != nil {
		return err
	}

	var notifier cache.Notifier
	var redisCache *cache.RedisCache
	if cfg.Redis.Enabled {
		redisCache, err = cache.NewRedisCache(cfg.Redis)
		if err != nil {
			// Realtime is optional; the service is correct with polling.
			logger.Warn("Redis unavailable, running without realtime notifications", "error", err)
		} else {
			notifier = redisCache
			defer redisCache.Close()
		}
	}

	e := echo.New()
	e.HideBanner = true

	mw := middleware.NewMiddleware(cfg)
	e.Use(mw.Recover())
	e.Use(mw.RequestLogger())
	e.Use(mw.CORS())

	eventService := event.Init(e, &db)
	availability.Init(e, &db, notifier)

	var q *queue.Queue
	if cfg.Worker.Enabled && redisCache != nil {
		q = queue.NewQueue(cfg.Redis)
		retention := cfg.Worker.RetentionDays
		err := q.RegisterSweep(cfg.Worker.SweepSchedule, func(ctx context.Context) error {
			return eventService.SweepExpiredEvents(ctx, retention)
		})
		if err != nil {
			logger.Error("Failed to register sweep task", err)
		} else if err := q.Start(); err != nil {
			logger.Error("Failed to start background worker", err)
			q = nil
		}
	}

	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		logger.Info("Server starting", "addr", addr)
		if err := e.Start(addr); err != nil {
			logger.Info("Server stopped", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down...")
	if q != nil {
		q.Shutdown()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

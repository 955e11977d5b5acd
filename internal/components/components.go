package components

import (
	"context"
	"fmt"
	"os"
	"time"

	"log/slog"

	"camPark/internal/api"
	"camPark/internal/api/handlers/ws"
	"camPark/internal/config"
	"camPark/internal/core"
	"camPark/internal/domain"
	"camPark/internal/redis"
	"camPark/internal/service"
	"camPark/internal/storage/postgres"
	"camPark/internal/workers"
	"camPark/pkg/logger"
)

type Components struct {
	logger     *slog.Logger
	HttpServer *api.Server
	Postgres   *postgres.Postgres
	Redis      *redis.Redis
	Hub        *ws.Hub
	Feed       *workers.FeedResync
	Notifier   *workers.StatusNotifier
}

func InitComponents(ctx context.Context, cfg *config.Config, log *slog.Logger) (*Components, error) {
	log.Info("Initializing Postgres")
	storage, err := postgres.NewPostgres(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to init postgres: %w", err)
	}

	log.Info("Initializing Redis")
	redisClient, err := redis.NewRedis(ctx, cfg, log)
	if err != nil {
		storage.Pool.Close()
		return nil, fmt.Errorf("failed to init redis: %w", err)
	}

	// The zone registry is loaded once; the running core keeps this view
	// until restart.
	zones, err := storage.Zones.ListOrdered(ctx)
	if err != nil {
		storage.Pool.Close()
		_ = redisClient.Close()
		return nil, fmt.Errorf("failed to load zone registry: %w", err)
	}
	registry := core.NewRegistry(zones)
	log.Info("Zone registry loaded", slog.Int("zones", registry.Len()))

	aggregator := core.NewAggregator(registry, core.AggregatorConfig{
		RecencyWindow: cfg.Core.RecencyWindow,
	})

	statusCache := redis.NewStatusCache(redisClient)
	eventQueue := redis.NewEventQueue(redisClient.Client, "status:events")

	// Status transitions go through the queue so the notifier can fan them
	// out to live clients without blocking the ingest path.
	aggregator.OnStatusChange(func(st domain.ZoneStatus) {
		ev := domain.StatusEvent{
			ZoneCode:  st.ZoneCode,
			Status:    st.Status,
			ChangedAt: time.Now().UTC(),
		}
		qctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := eventQueue.Enqueue(qctx, ev); err != nil {
			log.Error("status event enqueue failed", slog.Any("error", err))
		}
	})

	hub := ws.NewHub(log, ws.DefaultConfig())

	reportSvc := service.NewReportService(registry, aggregator, storage.Reports, log)
	statusSvc := service.NewStatusService(aggregator, statusCache, log)
	positionSvc := service.NewPositionService(registry, hub, log, cfg.Core.CooldownWindow, cfg.Core.SessionTTL)
	geocodeSvc := service.NewGeocodeService(cfg.Geocoder, log)
	statsSvc := service.NewStatsService(storage.Stat)
	adminSvc := service.NewAdminZoneService(storage.Zones)

	svc := service.NewService(adminSvc, reportSvc, statusSvc, positionSvc, geocodeSvc, statsSvc)

	feed := workers.NewFeedResync(storage.Reports, aggregator, log, cfg.Core.RecencyWindow, cfg.Core.ResyncInterval)
	notifier := workers.NewStatusNotifier(log, eventQueue, hub, statusSvc, 2)

	httpServer := api.NewServer(cfg, log, svc, registry, hub)
	log.Info("Initialized server")

	return &Components{
		logger:     log,
		HttpServer: httpServer,
		Postgres:   storage,
		Redis:      redisClient,
		Hub:        hub,
		Feed:       feed,
		Notifier:   notifier,
	}, nil
}

func SetupLogger(env string) *slog.Logger {
	switch env {
	case "local":
		return logger.SetupPrettySlog()
	case "dev":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	case "prod":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	default:
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	}
}

func (c *Components) ShutdownAll() {
	start := time.Now()
	c.logger.Info("Shutting down components")

	c.Postgres.Pool.Close()
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.logger.Error("Redis close failed", slog.String("err", err.Error()))
		}
	}

	c.logger.Info("All components stopped",
		slog.Duration("latency", time.Since(start)))
}

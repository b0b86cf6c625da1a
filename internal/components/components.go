package components

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/ivost9/incidents-backend/internal/api"
	"github.com/ivost9/incidents-backend/internal/api/handlers/http/system"
	"github.com/ivost9/incidents-backend/internal/config"
	"github.com/ivost9/incidents-backend/internal/redis"
	"github.com/ivost9/incidents-backend/internal/service"
	"github.com/ivost9/incidents-backend/internal/storage/media"
	"github.com/ivost9/incidents-backend/internal/storage/postgres"
)

type Components struct {
	logger     *slog.Logger
	HttpServer *api.Server
	Postgres   *postgres.Postgres
	Redis      *redis.Redis
	Media      *media.Store
}

func InitComponents(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Components, error) {
	logger.Info("Initializing Postgres")
	storage, err := postgres.NewPostgres(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to init postgres",
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("failed to init postgres: %w", err)
	}

	logger.Info("Initializing Redis")
	redisClient, err := redis.NewRedis(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to init redis: %w", err)
	}

	logger.Info("Initializing media store", slog.String("dir", cfg.Uploads.Dir))
	mediaStore, err := media.NewStore(cfg.Uploads.Dir, cfg.Http.BaseURL, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to init media store: %w", err)
	}

	cache := redis.NewIncidentCache(redisClient)
	incidentSvc := service.NewIncidentService(storage.Incidents, mediaStore, cache, logger)

	httpServer := api.NewServer(cfg, logger, incidentSvc, mediaStore.Dir(), map[string]system.Pinger{
		"postgres": storage.Pool,
		"redis":    redisClient,
	})
	logger.Info("Initialized server")

	return &Components{
		logger:     logger,
		HttpServer: httpServer,
		Postgres:   storage,
		Redis:      redisClient,
		Media:      mediaStore,
	}, nil
}

func SetupLogger(env string) *slog.Logger {
	switch env {
	case "local":
		return slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	case "dev":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
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
	c.logger.Info("Component shutdown started")

	c.Postgres.Pool.Close()
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.logger.Error("Redis close failed", slog.String("err", err.Error()))
		}
	}

	c.logger.Info("All components shut down",
		slog.Duration("latency", time.Since(start)))
}

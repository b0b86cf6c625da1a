package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/ivost9/incidents-backend/internal/domain"
	"github.com/ivost9/incidents-backend/pkg/e"
	"github.com/ivost9/incidents-backend/pkg/validator"
)

const listCacheTTL = 30 * time.Second

type incidentService struct {
	repo   IncidentRepository
	media  MediaStore
	cache  IncidentCache
	logger *slog.Logger
}

func NewIncidentService(repo IncidentRepository, media MediaStore, cache IncidentCache, logger *slog.Logger) IncidentService {
	return &incidentService{
		repo:   repo,
		media:  media,
		cache:  cache,
		logger: logger,
	}
}

// List returns all incidents newest first. The cache is an optimization
// only: any cache error falls through to postgres.
func (s *incidentService) List(ctx context.Context) ([]domain.Incident, error) {
	if s.cache != nil {
		cached, err := s.cache.GetList(ctx)
		if err != nil {
			s.logger.Warn("cache.GetList failed", slog.Any("error", err))
		} else if cached != nil {
			s.logger.Debug("incident list served from cache", slog.Int("count", len(cached)))
			return cached, nil
		}
	}

	incidents, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("repo.List failed", slog.Any("error", err))
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetList(ctx, incidents, listCacheTTL); err != nil {
			s.logger.Warn("cache.SetList failed", slog.Any("error", err))
		}
	}

	return incidents, nil
}

// Create persists one new incident. The media file, when present, is fully
// written before the row insert so a stored row never references a missing
// file. The returned incident is re-read from storage: id, timestamp and
// mediaUrl are what the database holds, not the input echoed back.
func (s *incidentService) Create(ctx context.Context, req domain.CreateIncidentRequest) (*domain.Incident, error) {
	if err := validator.ValidateStruct(&req); err != nil {
		s.logger.Warn("create request rejected", slog.Any("error", err))
		return nil, e.Wrap("service.Create", e.ErrInvalidInput)
	}

	var mediaURL *string
	if req.Media != nil {
		url, err := s.media.Save(ctx, req.Media.Filename, req.Media.Data)
		if err != nil {
			s.logger.Error("media save failed", slog.Any("error", err))
			return nil, err
		}
		mediaURL = &url
	}

	id, err := s.repo.Insert(ctx, req, mediaURL)
	if err != nil {
		// An already written file stays on disk; nothing references it.
		s.logger.Error("repo.Insert failed", slog.Any("error", err))
		return nil, err
	}

	inc, err := s.repo.Get(ctx, id)
	if err != nil {
		s.logger.Error("repo.Get after insert failed", slog.Int64("id", id), slog.Any("error", err))
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.logger.Warn("cache invalidate failed", slog.Any("error", err))
		}
	}

	s.logger.Info("incident created",
		slog.Int64("id", inc.ID),
		slog.Float64("lat", inc.Lat),
		slog.Float64("lng", inc.Lng),
		slog.Bool("has_media", inc.MediaURL != nil),
	)
	return inc, nil
}

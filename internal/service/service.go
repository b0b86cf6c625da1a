package service

import (
	"context"
	"io"
	"time"

	"github.com/ivost9/incidents-backend/internal/domain"
)

//go:generate mockgen -source=service.go -destination=mocks/mock.go

// IncidentRepository is the durable row store. Inserts are append-only and
// id assignment is left to the storage engine.
type IncidentRepository interface {
	Insert(ctx context.Context, req domain.CreateIncidentRequest, mediaURL *string) (int64, error)
	Get(ctx context.Context, id int64) (*domain.Incident, error)
	List(ctx context.Context) ([]domain.Incident, error)
}

// MediaStore persists an upload and returns its externally reachable URL.
type MediaStore interface {
	Save(ctx context.Context, filename string, r io.Reader) (string, error)
}

// IncidentCache fronts List with a shared newest-first snapshot.
type IncidentCache interface {
	GetList(ctx context.Context) ([]domain.Incident, error)
	SetList(ctx context.Context, incidents []domain.Incident, ttl time.Duration) error
	Invalidate(ctx context.Context) error
}

type IncidentService interface {
	List(ctx context.Context) ([]domain.Incident, error)
	Create(ctx context.Context, req domain.CreateIncidentRequest) (*domain.Incident, error)
}

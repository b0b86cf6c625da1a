package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/ivost9/incidents-backend/internal/domain"

	goredis "github.com/redis/go-redis/v9"
)

// IncidentCache holds the full newest-first incident list as one JSON blob.
// A miss returns (nil, nil).
type IncidentCache struct {
	client *goredis.Client
	key    string
}

func NewIncidentCache(r *Redis) *IncidentCache {
	return &IncidentCache{
		client: r.Client,
		key:    "incidents:list",
	}
}

func (c *IncidentCache) GetList(ctx context.Context) ([]domain.Incident, error) {
	data, err := c.client.Get(ctx, c.key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var incidents []domain.Incident
	if err := json.Unmarshal(data, &incidents); err != nil {
		return nil, err
	}

	return incidents, nil
}

func (c *IncidentCache) SetList(ctx context.Context, incidents []domain.Incident, ttl time.Duration) error {
	b, err := json.Marshal(incidents)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key, b, ttl).Err()
}

// Invalidate drops the cached list; the next List re-reads postgres.
func (c *IncidentCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, c.key).Err()
}

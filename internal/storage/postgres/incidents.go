package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ivost9/incidents-backend/internal/domain"
	"github.com/ivost9/incidents-backend/pkg/e"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type IncidentRepo struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewIncidentRepo(pool *pgxpool.Pool, logger *slog.Logger) *IncidentRepo {
	return &IncidentRepo{pool: pool, logger: logger}
}

// Insert appends a new row and returns its server-assigned id. Timestamp is
// assigned by the database default.
func (p *IncidentRepo) Insert(ctx context.Context, req domain.CreateIncidentRequest, mediaURL *string) (int64, error) {
	const op = "postgres.Incident.Insert"

	const query = `
		INSERT INTO incidents (lat, lng, description, media_url)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	var id int64
	err := p.pool.QueryRow(ctx, query,
		req.Lat,
		req.Lng,
		req.Description,
		mediaURL,
	).Scan(&id)
	if err != nil {
		p.logger.Error("db insert failed",
			slog.String("op", op),
			slog.Any("error", err),
		)
		return 0, e.WrapError(ctx, op, err)
	}

	return id, nil
}

func (p *IncidentRepo) Get(ctx context.Context, id int64) (*domain.Incident, error) {
	const op = "postgres.Incident.Get"

	const query = `
		SELECT id, lat, lng, description, media_url, created_at
		FROM incidents
		WHERE id = $1
	`

	var inc domain.Incident
	err := p.pool.QueryRow(ctx, query, id).Scan(
		&inc.ID,
		&inc.Lat,
		&inc.Lng,
		&inc.Description,
		&inc.MediaURL,
		&inc.Timestamp,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, e.ErrNotFound)
		}
		p.logger.Error("db queryrow scan failed", slog.String("op", op), slog.Any("error", err), slog.Int64("id", id))
		return nil, e.WrapError(ctx, op, err)
	}

	return &inc, nil
}

// List returns all incidents newest first. Same-instant rows fall back to
// id order so the result is deterministic.
func (p *IncidentRepo) List(ctx context.Context) ([]domain.Incident, error) {
	const op = "postgres.Incident.List"

	const query = `
		SELECT id, lat, lng, description, media_url, created_at
		FROM incidents
		ORDER BY created_at DESC, id DESC
	`

	rows, err := p.pool.Query(ctx, query)
	if err != nil {
		p.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	defer rows.Close()

	incidents := make([]domain.Incident, 0, 16)
	for rows.Next() {
		var inc domain.Incident
		if err := rows.Scan(
			&inc.ID,
			&inc.Lat,
			&inc.Lng,
			&inc.Description,
			&inc.MediaURL,
			&inc.Timestamp,
		); err != nil {
			p.logger.Error("row scan failed", slog.String("op", op), slog.Any("error", err))
			return nil, e.WrapError(ctx, op, err)
		}
		incidents = append(incidents, inc)
	}
	if err := rows.Err(); err != nil {
		p.logger.Error("rows err", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}

	return incidents, nil
}

package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"camPark/internal/domain"
	"camPark/pkg/e"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ZoneRepo struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewZoneRepo(pool *pgxpool.Pool, logger *slog.Logger) *ZoneRepo {
	return &ZoneRepo{pool: pool, logger: logger}
}

func (p *ZoneRepo) Create(ctx context.Context, zone *domain.Zone) error {
	const op = "postgres.Zone.Create"

	// Position defaults to the end of the registry order.
	const query = `
		INSERT INTO zones (code, name, geo_point, radius_m, state, position, created_at)
		VALUES ($1, $2, ST_SetSRID(ST_MakePoint($3, $4), 4326), $5, $6,
			COALESCE(NULLIF($7, 0), (SELECT COALESCE(MAX(position), 0) + 1 FROM zones)),
			$8)
	`

	if zone.CreatedAt.IsZero() {
		zone.CreatedAt = time.Now().UTC()
	}
	if zone.State == "" {
		zone.State = domain.ZoneOpen
	}

	_, err := p.pool.Exec(ctx, query,
		zone.Code,
		zone.Name,
		zone.Lng,
		zone.Lat,
		zone.RadiusM,
		zone.State,
		zone.Position,
		zone.CreatedAt,
	)
	if err != nil {
		p.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err))
		return e.WrapError(ctx, op, err)
	}

	return nil
}

// ListOrdered returns the full registry in display order. The core loads
// this once at startup and never re-reads it.
func (p *ZoneRepo) ListOrdered(ctx context.Context) ([]domain.Zone, error) {
	const op = "postgres.Zone.ListOrdered"

	const query = `
		SELECT code,
			   name,
			   ST_Y(geo_point::geometry) AS lat,
			   ST_X(geo_point::geometry) AS lng,
			   radius_m,
			   state,
			   position,
			   created_at
		FROM zones
		ORDER BY position, code
	`

	rows, err := p.pool.Query(ctx, query)
	if err != nil {
		p.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	defer rows.Close()

	var zones []domain.Zone
	for rows.Next() {
		var z domain.Zone
		if err := rows.Scan(
			&z.Code,
			&z.Name,
			&z.Lat,
			&z.Lng,
			&z.RadiusM,
			&z.State,
			&z.Position,
			&z.CreatedAt,
		); err != nil {
			p.logger.Error("row scan failed", slog.String("op", op), slog.Any("error", err))
			return nil, e.WrapError(ctx, op, err)
		}
		zones = append(zones, z)
	}
	if err := rows.Err(); err != nil {
		p.logger.Error("rows err", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}

	return zones, nil
}

func (p *ZoneRepo) List(ctx context.Context, page, limit int) ([]*domain.Zone, int64, error) {
	const op = "postgres.Zone.List"

	if page < 1 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset := (page - 1) * limit

	const countQuery = `SELECT COUNT(*) FROM zones`

	var total int64
	if err := p.pool.QueryRow(ctx, countQuery).Scan(&total); err != nil {
		p.logger.Error("db count failed", slog.String("op", op), slog.Any("error", err))
		return nil, 0, e.WrapError(ctx, op, err)
	}

	const listQuery = `
		SELECT code,
			   name,
			   ST_Y(geo_point::geometry) AS lat,
			   ST_X(geo_point::geometry) AS lng,
			   radius_m,
			   state,
			   position,
			   created_at
		FROM zones
		ORDER BY position, code
		LIMIT $1 OFFSET $2
	`

	rows, err := p.pool.Query(ctx, listQuery, limit, offset)
	if err != nil {
		p.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return nil, 0, e.WrapError(ctx, op, err)
	}
	defer rows.Close()

	var zones []*domain.Zone
	for rows.Next() {
		var z domain.Zone
		if err := rows.Scan(
			&z.Code,
			&z.Name,
			&z.Lat,
			&z.Lng,
			&z.RadiusM,
			&z.State,
			&z.Position,
			&z.CreatedAt,
		); err != nil {
			p.logger.Error("row scan failed", slog.String("op", op), slog.Any("error", err))
			return nil, 0, e.WrapError(ctx, op, err)
		}
		zones = append(zones, &z)
	}
	if err := rows.Err(); err != nil {
		p.logger.Error("rows err", slog.String("op", op), slog.Any("error", err))
		return nil, 0, e.WrapError(ctx, op, err)
	}

	return zones, total, nil
}

func (p *ZoneRepo) Get(ctx context.Context, code string) (*domain.Zone, error) {
	const op = "postgres.Zone.Get"

	const query = `
		SELECT code,
			   name,
			   ST_Y(geo_point::geometry) AS lat,
			   ST_X(geo_point::geometry) AS lng,
			   radius_m,
			   state,
			   position,
			   created_at
		FROM zones
		WHERE code = $1
	`

	var z domain.Zone
	err := p.pool.QueryRow(ctx, query, code).Scan(
		&z.Code,
		&z.Name,
		&z.Lat,
		&z.Lng,
		&z.RadiusM,
		&z.State,
		&z.Position,
		&z.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, e.ErrNotFound)
		}
		p.logger.Error("db queryrow scan failed", slog.String("op", op), slog.Any("error", err), slog.String("code", code))
		return nil, e.WrapError(ctx, op, err)
	}

	return &z, nil
}

func (p *ZoneRepo) Update(ctx context.Context, zone *domain.Zone) error {
	const op = "postgres.Zone.Update"

	const query = `
		UPDATE zones
		SET name      = $2,
			geo_point = ST_SetSRID(ST_MakePoint($3, $4), 4326),
			radius_m  = $5,
			state     = $6
		WHERE code = $1
	`

	cmd, err := p.pool.Exec(ctx, query,
		zone.Code,
		zone.Name,
		zone.Lng,
		zone.Lat,
		zone.RadiusM,
		zone.State,
	)
	if err != nil {
		p.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err), slog.String("code", zone.Code))
		return e.WrapError(ctx, op, err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, e.ErrNotFound)
	}

	return nil
}

func (p *ZoneRepo) Delete(ctx context.Context, code string) error {
	const op = "postgres.Zone.Delete"

	// Soft delete: closed zones stay in the registry but never aggregate
	// or prompt.
	const query = `
		UPDATE zones
		SET state = 'closed'
		WHERE code = $1 AND state = 'open'
	`

	cmd, err := p.pool.Exec(ctx, query, code)
	if err != nil {
		p.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err), slog.String("code", code))
		return e.WrapError(ctx, op, err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, e.ErrNotFound)
	}

	return nil
}

package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"camPark/internal/domain"
	"camPark/pkg/e"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ReportRepo struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewReportRepo(pool *pgxpool.Pool, logger *slog.Logger) *ReportRepo {
	return &ReportRepo{pool: pool, logger: logger}
}

func (p *ReportRepo) Save(ctx context.Context, report *domain.Report) error {
	const op = "postgres.Report.Save"

	if report == nil || report.ZoneCode == "" || report.ReporterID == "" {
		return fmt.Errorf("%s: %w", op, e.ErrInvalidInput)
	}

	const query = `
		INSERT INTO reports (id, zone_code, status, reporter_id, reported_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	if report.ID == uuid.Nil {
		report.ID = uuid.New()
	}
	if report.ReportedAt.IsZero() {
		report.ReportedAt = time.Now().UTC()
	}

	_, err := p.pool.Exec(ctx, query,
		report.ID,
		report.ZoneCode,
		report.Status,
		report.ReporterID,
		report.ReportedAt,
	)
	if err != nil {
		p.logger.Error("db exec failed",
			slog.String("op", op),
			slog.Any("error", err),
			slog.String("zone_code", report.ZoneCode),
		)
		return e.WrapError(ctx, op, err)
	}

	return nil
}

// ListSince returns every report newer than the window, across all zones.
// This is the feed the aggregator resyncs from.
func (p *ReportRepo) ListSince(ctx context.Context, window time.Duration) ([]domain.Report, error) {
	const op = "postgres.Report.ListSince"

	if window <= 0 {
		return nil, fmt.Errorf("%s: %w", op, e.ErrInvalidInput)
	}

	const query = `
		SELECT id, zone_code, status, reporter_id, reported_at
		FROM reports
		WHERE reported_at >= NOW() - ($1 * INTERVAL '1 second')
	`

	rows, err := p.pool.Query(ctx, query, int64(window.Seconds()))
	if err != nil {
		p.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	defer rows.Close()

	reports := make([]domain.Report, 0, 64)
	for rows.Next() {
		var r domain.Report
		if err := rows.Scan(
			&r.ID,
			&r.ZoneCode,
			&r.Status,
			&r.ReporterID,
			&r.ReportedAt,
		); err != nil {
			p.logger.Error("row scan failed", slog.String("op", op), slog.Any("error", err))
			return nil, e.WrapError(ctx, op, err)
		}
		reports = append(reports, r)
	}
	if err := rows.Err(); err != nil {
		p.logger.Error("rows err", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}

	return reports, nil
}

package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"camPark/internal/domain"
	"camPark/pkg/e"

	"github.com/jackc/pgx/v5/pgxpool"
)

type StatsRepo struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewStats(pool *pgxpool.Pool, logger *slog.Logger) *StatsRepo {
	return &StatsRepo{pool: pool, logger: logger}
}

func (p *StatsRepo) ReportStats(ctx context.Context, minutes int) (*domain.ReportStats, error) {
	const op = "postgres.Report.Stats"

	if minutes <= 0 || minutes > 1440 {
		return nil, fmt.Errorf("%s: %w", op, e.ErrInvalidInput)
	}

	// Safe interval parameterization: number * interval '1 minute'.
	const query = `
		SELECT COUNT(*),
			   COUNT(DISTINCT reporter_id),
			   COUNT(*) FILTER (WHERE status = 'available'),
			   COUNT(*) FILTER (WHERE status = 'full')
		FROM reports
		WHERE reported_at >= NOW() - ($1 * INTERVAL '1 minute')
	`

	var st domain.ReportStats
	if err := p.pool.QueryRow(ctx, query, minutes).Scan(
		&st.ReportCount,
		&st.ReporterCount,
		&st.AvailableCount,
		&st.FullCount,
	); err != nil {
		p.logger.Error("db queryrow scan failed",
			slog.String("op", op),
			slog.Any("error", err),
			slog.Int("minutes", minutes),
		)
		return nil, e.WrapError(ctx, op, err)
	}

	return &st, nil
}

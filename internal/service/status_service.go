package service

import (
	"context"
	"time"

	"log/slog"

	"camPark/internal/core"
	"camPark/internal/domain"
)

const statusCacheTTL = 5 * time.Minute

type statusService struct {
	aggregator *core.Aggregator
	cache      StatusCache
	logger     *slog.Logger
}

func NewStatusService(aggregator *core.Aggregator, cache StatusCache, logger *slog.Logger) StatusService {
	return &statusService{
		aggregator: aggregator,
		cache:      cache,
		logger:     logger,
	}
}

func (s *statusService) ZoneStatus(ctx context.Context, code string) (domain.ZoneStatus, error) {
	return s.aggregator.CurrentStatus(code)
}

// Snapshot recomputes from the live report windows; the cache is refreshed
// as a side effect so cold instances can serve the map before their first
// feed delivery.
func (s *statusService) Snapshot(ctx context.Context) ([]domain.ZoneStatus, error) {
	statuses := s.aggregator.SnapshotAll()

	if s.cache != nil {
		if err := s.cache.SetSnapshot(ctx, statuses, statusCacheTTL); err != nil {
			s.logger.Warn("status cache refresh failed", slog.Any("error", err))
		}
	}

	return statuses, nil
}

package workers

import (
	"context"
	"errors"
	"time"

	"log/slog"

	"camPark/internal/domain"
	"camPark/pkg/e"

	"golang.org/x/sync/errgroup"
)

type EventSource interface {
	BRPop(ctx context.Context, timeout time.Duration) (domain.StatusEvent, error)
}

type StatusBroadcaster interface {
	BroadcastStatus(event domain.StatusEvent)
}

type SnapshotRefresher interface {
	Snapshot(ctx context.Context) ([]domain.ZoneStatus, error)
}

// StatusNotifier drains status-changed events from the queue and pushes
// them to connected map clients, refreshing the cached snapshot along the
// way.
type StatusNotifier struct {
	logger   *slog.Logger
	queue    EventSource
	hub      StatusBroadcaster
	statuses SnapshotRefresher
	workers  int
}

func NewStatusNotifier(logger *slog.Logger, queue EventSource, hub StatusBroadcaster, statuses SnapshotRefresher, workers int) *StatusNotifier {
	if workers <= 0 {
		workers = 2
	}
	return &StatusNotifier{
		logger:   logger,
		queue:    queue,
		hub:      hub,
		statuses: statuses,
		workers:  workers,
	}
}

func (s *StatusNotifier) Run(ctx context.Context) error {
	s.logger.Info("status notifier started", slog.Int("workers", s.workers))

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < s.workers; i++ {
		g.Go(func() error {
			s.drain(ctx)
			return nil
		})
	}
	return g.Wait()
}

func (s *StatusNotifier) drain(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("status notifier stopped", slog.String("reason", ctx.Err().Error()))
			return
		default:
		}

		event, err := s.queue.BRPop(ctx, 5*time.Second)
		if err != nil {
			if errors.Is(err, e.ErrQueueEmpty) {
				continue
			}
			if ctx.Err() != nil {
				return
			}
			s.logger.Error("BRPop failed", slog.Any("error", err))
			time.Sleep(500 * time.Millisecond)
			continue
		}

		s.hub.BroadcastStatus(event)

		if _, err := s.statuses.Snapshot(ctx); err != nil {
			s.logger.Warn("snapshot refresh failed", slog.Any("error", err))
		}

		s.logger.Info("status change pushed",
			slog.String("zone_code", event.ZoneCode),
			slog.String("status", string(event.Status)),
		)
	}
}

package workers

import (
	"context"
	"time"

	"log/slog"

	"camPark/internal/domain"
)

type ReportSource interface {
	ListSince(ctx context.Context, window time.Duration) ([]domain.Report, error)
}

type ReportSink interface {
	Resync(reports []domain.Report)
}

// FeedResync re-delivers the complete recent report window into the
// aggregator on an interval. It is what keeps this instance converged with
// reports submitted elsewhere; a failed pull just leaves the derived state
// at its last value until the next tick.
type FeedResync struct {
	source   ReportSource
	sink     ReportSink
	logger   *slog.Logger
	window   time.Duration
	interval time.Duration
}

func NewFeedResync(source ReportSource, sink ReportSink, logger *slog.Logger, window, interval time.Duration) *FeedResync {
	return &FeedResync{
		source:   source,
		sink:     sink,
		logger:   logger,
		window:   window,
		interval: interval,
	}
}

func (w *FeedResync) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.resync(ctx)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("feed resync stopped", slog.String("reason", ctx.Err().Error()))
			return
		case <-ticker.C:
			w.resync(ctx)
		}
	}
}

func (w *FeedResync) resync(ctx context.Context) {
	reports, err := w.source.ListSince(ctx, w.window)
	if err != nil {
		w.logger.Error("feed pull failed", slog.Any("error", err))
		return
	}
	w.sink.Resync(reports)
	w.logger.Debug("feed resynced", slog.Int("reports", len(reports)))
}

package service

import (
	"context"
	"time"

	"log/slog"

	"camPark/internal/core"
	"camPark/internal/domain"

	"github.com/google/uuid"
)

type reportService struct {
	registry   *core.Registry
	aggregator *core.Aggregator
	reports    ReportRepository
	logger     *slog.Logger
}

func NewReportService(
	registry *core.Registry,
	aggregator *core.Aggregator,
	reports ReportRepository,
	logger *slog.Logger,
) ReportService {
	return &reportService{
		registry:   registry,
		aggregator: aggregator,
		reports:    reports,
		logger:     logger,
	}
}

// Submit persists a report and feeds it to the aggregator. Reports for
// unknown or closed zones are dropped without an error: the signal is
// crowd-sourced and best-effort, so a stale client gets a 2xx with
// accepted=false instead of a reference failure.
func (s *reportService) Submit(ctx context.Context, req domain.SubmitReportRequest) (domain.SubmitReportResponse, error) {
	zone, err := s.registry.Get(req.ZoneCode)
	if err != nil || zone.State == domain.ZoneClosed {
		s.logger.Debug("report rejected",
			slog.String("zone_code", req.ZoneCode),
			slog.String("reporter_id", req.ReporterID),
		)
		return domain.SubmitReportResponse{Accepted: false}, nil
	}

	report := domain.Report{
		ID:         uuid.New(),
		ZoneCode:   req.ZoneCode,
		Status:     req.Status,
		ReporterID: req.ReporterID,
		ReportedAt: time.Now().UTC(),
	}

	if err := s.reports.Save(ctx, &report); err != nil {
		s.logger.Error("report save failed", slog.Any("error", err))
		return domain.SubmitReportResponse{}, err
	}

	// Local ingest so status reacts immediately; the feed resync delivers
	// the same report to other instances.
	s.aggregator.Ingest(report)

	s.logger.Info("report accepted",
		slog.String("zone_code", report.ZoneCode),
		slog.String("status", string(report.Status)),
	)

	return domain.SubmitReportResponse{ID: report.ID.String(), Accepted: true}, nil
}

package service_test

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"log/slog"

	"github.com/golang/mock/gomock"

	"camPark/internal/core"
	"camPark/internal/domain"
	"camPark/internal/service"

	mock_service "camPark/internal/service/mocks"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestRegistry() *core.Registry {
	return core.NewRegistry([]domain.Zone{
		{Code: "N1", Name: "North Lot 1", Lat: 49.2531, Lng: -123.0021, RadiusM: 120, State: domain.ZoneOpen},
		{Code: "SE12", Name: "Southeast 12", Lat: 49.2498, Lng: -123.0010, RadiusM: 80, State: domain.ZoneClosed},
	})
}

func TestReportService_Submit_OK(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	registry := newTestRegistry()
	aggregator := core.NewAggregator(registry, core.AggregatorConfig{RecencyWindow: 30 * time.Minute})

	repo := mock_service.NewMockReportRepository(ctrl)

	var saved *domain.Report
	repo.EXPECT().
		Save(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, r *domain.Report) error {
			saved = r
			return nil
		}).
		Times(1)

	svc := service.NewReportService(registry, aggregator, repo, discardLogger())

	resp, err := svc.Submit(context.Background(), domain.SubmitReportRequest{
		ZoneCode:   "N1",
		Status:     domain.ReportAvailable,
		ReporterID: "reporter-1",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !resp.Accepted {
		t.Fatalf("expected accepted report")
	}
	if resp.ID == "" {
		t.Fatalf("expected non-empty report id")
	}

	if saved == nil {
		t.Fatalf("report was not saved")
	}
	if saved.ZoneCode != "N1" || saved.Status != domain.ReportAvailable {
		t.Fatalf("saved report mismatch: %+v", saved)
	}
	if saved.ReportedAt.IsZero() {
		t.Fatalf("saved report has zero ReportedAt")
	}

	// The accepted report must be visible to the aggregator right away.
	st, err := aggregator.CurrentStatus("N1")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if st.Status != domain.StatusAvailable {
		t.Fatalf("expected status=%q after ingest, got=%q", domain.StatusAvailable, st.Status)
	}
}

func TestReportService_Submit_UnknownZone_Dropped(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	registry := newTestRegistry()
	aggregator := core.NewAggregator(registry, core.AggregatorConfig{RecencyWindow: 30 * time.Minute})

	repo := mock_service.NewMockReportRepository(ctrl)
	// Save must never be reached for a zone the registry does not know.

	svc := service.NewReportService(registry, aggregator, repo, discardLogger())

	resp, err := svc.Submit(context.Background(), domain.SubmitReportRequest{
		ZoneCode:   "GHOST",
		Status:     domain.ReportFull,
		ReporterID: "reporter-1",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if resp.Accepted {
		t.Fatalf("expected dropped report")
	}
	if resp.ID != "" {
		t.Fatalf("expected empty id for dropped report, got=%q", resp.ID)
	}
}

func TestReportService_Submit_ClosedZone_Dropped(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	registry := newTestRegistry()
	aggregator := core.NewAggregator(registry, core.AggregatorConfig{RecencyWindow: 30 * time.Minute})

	repo := mock_service.NewMockReportRepository(ctrl)

	svc := service.NewReportService(registry, aggregator, repo, discardLogger())

	resp, err := svc.Submit(context.Background(), domain.SubmitReportRequest{
		ZoneCode:   "SE12",
		Status:     domain.ReportAvailable,
		ReporterID: "reporter-1",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if resp.Accepted {
		t.Fatalf("closed zone must not accept reports")
	}
}

func TestReportService_Submit_SaveError(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	registry := newTestRegistry()
	aggregator := core.NewAggregator(registry, core.AggregatorConfig{RecencyWindow: 30 * time.Minute})

	wantErr := errors.New("pool exhausted")

	repo := mock_service.NewMockReportRepository(ctrl)
	repo.EXPECT().
		Save(gomock.Any(), gomock.Any()).
		Return(wantErr).
		Times(1)

	svc := service.NewReportService(registry, aggregator, repo, discardLogger())

	_, err := svc.Submit(context.Background(), domain.SubmitReportRequest{
		ZoneCode:   "N1",
		Status:     domain.ReportAvailable,
		ReporterID: "reporter-1",
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected save error, got: %v", err)
	}

	// A failed save must not leak into the aggregation window.
	st, err := aggregator.CurrentStatus("N1")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if st.Status != domain.StatusUnknown {
		t.Fatalf("expected status=%q, got=%q", domain.StatusUnknown, st.Status)
	}
}

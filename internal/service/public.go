package service

import (
	"context"

	"camPark/internal/domain"
)

func (s *Service) Submit(ctx context.Context, req domain.SubmitReportRequest) (domain.SubmitReportResponse, error) {
	return s.ReportService.Submit(ctx, req)
}

func (s *Service) ZoneStatus(ctx context.Context, code string) (domain.ZoneStatus, error) {
	return s.StatusService.ZoneStatus(ctx, code)
}

func (s *Service) Snapshot(ctx context.Context) ([]domain.ZoneStatus, error) {
	return s.StatusService.Snapshot(ctx)
}

func (s *Service) UpdatePosition(ctx context.Context, req domain.PositionUpdateRequest) (domain.PositionUpdateResponse, error) {
	return s.PositionService.UpdatePosition(ctx, req)
}

func (s *Service) Search(ctx context.Context, query string) (domain.GeocodeResponse, error) {
	return s.GeocodeService.Search(ctx, query)
}

func (s *Service) GetStats(ctx context.Context, req domain.StatsRequest) (*domain.ReportStats, error) {
	return s.StatsService.GetStats(ctx, req)
}

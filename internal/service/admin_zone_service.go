package service

import (
	"context"

	"camPark/internal/domain"
)

func (s *Service) Create(ctx context.Context, req domain.CreateZoneRequest) (string, error) {
	return s.AdminZoneService.Create(ctx, req)
}

func (s *Service) List(ctx context.Context, page, limit int) ([]*domain.Zone, int64, error) {
	return s.AdminZoneService.List(ctx, page, limit)
}

func (s *Service) Get(ctx context.Context, code string) (*domain.Zone, error) {
	return s.AdminZoneService.Get(ctx, code)
}

func (s *Service) Update(ctx context.Context, code string, req domain.UpdateZoneRequest) error {
	return s.AdminZoneService.Update(ctx, code, req)
}

func (s *Service) Delete(ctx context.Context, code string) error {
	return s.AdminZoneService.Delete(ctx, code)
}

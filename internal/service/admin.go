package service

import (
	"context"

	"camPark/internal/domain"
)

type AdminService struct {
	repo ZoneRepository
}

func NewAdminZoneService(repo ZoneRepository) *AdminService {
	return &AdminService{repo: repo}
}

// Registry immutability note: writes land in storage and take effect on the
// next process start, when the registry is reloaded. The running core keeps
// the zone set it booted with.
func (s *AdminService) Create(ctx context.Context, req domain.CreateZoneRequest) (string, error) {
	zone := &domain.Zone{
		Code:    req.Code,
		Name:    req.Name,
		Lat:     req.Lat,
		Lng:     req.Lng,
		RadiusM: req.RadiusM,
		State:   req.State,
	}
	if zone.State == "" {
		zone.State = domain.ZoneOpen
	}
	if err := s.repo.Create(ctx, zone); err != nil {
		return "", err
	}
	return zone.Code, nil
}

func (s *AdminService) List(ctx context.Context, page, limit int) ([]*domain.Zone, int64, error) {
	return s.repo.List(ctx, page, limit)
}

func (s *AdminService) Get(ctx context.Context, code string) (*domain.Zone, error) {
	return s.repo.Get(ctx, code)
}

func (s *AdminService) Update(ctx context.Context, code string, req domain.UpdateZoneRequest) error {
	zone, err := s.repo.Get(ctx, code)
	if err != nil {
		return err
	}
	if req.Name != nil {
		zone.Name = *req.Name
	}
	if req.Lat != nil {
		zone.Lat = *req.Lat
	}
	if req.Lng != nil {
		zone.Lng = *req.Lng
	}
	if req.RadiusM != nil {
		zone.RadiusM = *req.RadiusM
	}
	if req.State != nil {
		zone.State = *req.State
	}
	return s.repo.Update(ctx, zone)
}

func (s *AdminService) Delete(ctx context.Context, code string) error {
	return s.repo.Delete(ctx, code)
}

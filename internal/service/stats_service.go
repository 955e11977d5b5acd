package service

import (
	"context"

	"camPark/internal/domain"
)

type statsService struct {
	repo StatsRepository
}

func NewStatsService(repo StatsRepository) StatsService {
	return &statsService{repo: repo}
}

func (s *statsService) GetStats(ctx context.Context, req domain.StatsRequest) (*domain.ReportStats, error) {
	return s.repo.ReportStats(ctx, req.Minutes)
}

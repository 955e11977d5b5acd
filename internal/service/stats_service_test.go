package service_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/golang/mock/gomock"

	"camPark/internal/domain"
	"camPark/internal/service"
	"camPark/pkg/e"

	mock_service "camPark/internal/service/mocks"
)

func TestStatsService_GetStats_OK(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	want := &domain.ReportStats{
		ReportCount:    12,
		ReporterCount:  7,
		AvailableCount: 8,
		FullCount:      4,
	}

	repo := mock_service.NewMockStatsRepository(ctrl)
	repo.EXPECT().
		ReportStats(gomock.Any(), 30).
		Return(want, nil).
		Times(1)

	svc := service.NewStatsService(repo)

	got, err := svc.GetStats(context.Background(), domain.StatsRequest{Minutes: 30})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("stats mismatch: got=%+v want=%+v", got, want)
	}
}

func TestStatsService_GetStats_RepoError(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock_service.NewMockStatsRepository(ctrl)
	repo.EXPECT().
		ReportStats(gomock.Any(), 0).
		Return(nil, e.ErrInvalidInput).
		Times(1)

	svc := service.NewStatsService(repo)

	_, err := svc.GetStats(context.Background(), domain.StatsRequest{Minutes: 0})
	if !errors.Is(err, e.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got: %v", err)
	}
}

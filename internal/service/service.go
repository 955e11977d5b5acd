package service

import (
	"context"
	"time"

	"camPark/internal/domain"
)

//go:generate mockgen -source=service.go -destination=mocks/mock.go
type AdminZoneService interface {
	Create(ctx context.Context, req domain.CreateZoneRequest) (string, error)
	List(ctx context.Context, page, limit int) ([]*domain.Zone, int64, error)
	Get(ctx context.Context, code string) (*domain.Zone, error)
	Update(ctx context.Context, code string, req domain.UpdateZoneRequest) error
	Delete(ctx context.Context, code string) error
}

type ZoneRepository interface {
	Create(ctx context.Context, zone *domain.Zone) error
	List(ctx context.Context, page, limit int) ([]*domain.Zone, int64, error)
	Get(ctx context.Context, code string) (*domain.Zone, error)
	Update(ctx context.Context, zone *domain.Zone) error
	Delete(ctx context.Context, code string) error
}

type ReportRepository interface {
	Save(ctx context.Context, report *domain.Report) error
	ListSince(ctx context.Context, window time.Duration) ([]domain.Report, error)
}

type StatsRepository interface {
	ReportStats(ctx context.Context, minutes int) (*domain.ReportStats, error)
}

type StatusCache interface {
	GetSnapshot(ctx context.Context) ([]domain.ZoneStatus, error)
	SetSnapshot(ctx context.Context, statuses []domain.ZoneStatus, ttl time.Duration) error
}

// PromptNotifier delivers prompt events to the session's live connection.
type PromptNotifier interface {
	NotifyPrompt(event domain.PromptEvent)
}

// Public use-cases
type ReportService interface {
	Submit(ctx context.Context, req domain.SubmitReportRequest) (domain.SubmitReportResponse, error)
}

type StatusService interface {
	ZoneStatus(ctx context.Context, code string) (domain.ZoneStatus, error)
	Snapshot(ctx context.Context) ([]domain.ZoneStatus, error)
}

type PositionService interface {
	UpdatePosition(ctx context.Context, req domain.PositionUpdateRequest) (domain.PositionUpdateResponse, error)
}

type GeocodeService interface {
	Search(ctx context.Context, query string) (domain.GeocodeResponse, error)
}

// Operational counters for admins
type StatsService interface {
	GetStats(ctx context.Context, req domain.StatsRequest) (*domain.ReportStats, error)
}

type Service struct {
	AdminZoneService AdminZoneService
	ReportService    ReportService
	StatusService    StatusService
	PositionService  PositionService
	GeocodeService   GeocodeService
	StatsService     StatsService
}

func NewService(
	adminZoneService AdminZoneService,
	reportService ReportService,
	statusService StatusService,
	positionService PositionService,
	geocodeService GeocodeService,
	statsService StatsService,
) *Service {
	return &Service{
		AdminZoneService: adminZoneService,
		ReportService:    reportService,
		StatusService:    statusService,
		PositionService:  positionService,
		GeocodeService:   geocodeService,
		StatsService:     statsService,
	}
}

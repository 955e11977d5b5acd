package domain

import (
	"time"

	"github.com/google/uuid"
)

type ReportStatus string

const (
	ReportAvailable ReportStatus = "available"
	ReportFull      ReportStatus = "full"
)

// Report is a single crowd-sourced availability observation. Reports are
// never deleted explicitly; they age out of the aggregation window.
type Report struct {
	ID         uuid.UUID    `json:"id"`
	ZoneCode   string       `json:"zone_code"`
	Status     ReportStatus `json:"status"`
	ReporterID string       `json:"reporter_id"`
	ReportedAt time.Time    `json:"reported_at"`
}

type SubmitReportRequest struct {
	ZoneCode   string       `json:"zone_code" validate:"required,zonecode"`
	Status     ReportStatus `json:"status" validate:"required,oneof=available full"`
	ReporterID string       `json:"reporter_id" validate:"required"`
}

type SubmitReportResponse struct {
	ID       string `json:"id"`
	Accepted bool   `json:"accepted"`
}

package domain

type ReportStats struct {
	ReportCount    int64 `json:"report_count"`
	ReporterCount  int64 `json:"reporter_count"`
	AvailableCount int64 `json:"available_count"`
	FullCount      int64 `json:"full_count"`
}

type StatsRequest struct {
	Minutes int `query:"minutes" validate:"min=1,max=1440"` // 1 day max
}

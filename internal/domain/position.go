package domain

import "time"

// Lat/Lng carry only the range checks: zero is a real coordinate, and
// `required` on a float would reject it.
type PositionUpdateRequest struct {
	SessionID string  `json:"session_id" validate:"required"`
	Lat       float64 `json:"lat" validate:"lat"`
	Lng       float64 `json:"lng" validate:"lng"`
}

type PositionUpdateResponse struct {
	Prompts []string `json:"prompts"` // zone codes to solicit a report for
}

// PromptEvent is pushed to the owning session's live connection.
type PromptEvent struct {
	SessionID  string    `json:"session_id"`
	ZoneCode   string    `json:"zone_code"`
	PromptedAt time.Time `json:"prompted_at"`
}

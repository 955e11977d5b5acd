package domain

import "time"

type Availability string

const (
	StatusUnknown   Availability = "unknown"
	StatusAvailable Availability = "available"
	StatusFull      Availability = "full"
	StatusClosed    Availability = "closed"
)

// ZoneStatus is derived, never stored: a pure function of the zone state
// and the live report window.
type ZoneStatus struct {
	ZoneCode string       `json:"zone_code"`
	Status   Availability `json:"status"`
}

// StatusEvent is queued whenever a recompute changes a zone's status.
type StatusEvent struct {
	ZoneCode  string       `json:"zone_code"`
	Status    Availability `json:"status"`
	ChangedAt time.Time    `json:"changed_at"`
}

package domain

import (
	"time"
)

type ZoneState string

const (
	ZoneOpen   ZoneState = "open"
	ZoneClosed ZoneState = "closed"
)

// Zone is a fixed parking area. The registry loads zones once at startup
// and treats them as immutable for the lifetime of the process.
type Zone struct {
	Code      string    `json:"code" validate:"required,zonecode"`
	Name      string    `json:"name" validate:"required"`
	Lat       float64   `json:"lat" validate:"required,lat"` // -90..90
	Lng       float64   `json:"lng" validate:"required,lng"` // -180..180
	RadiusM   float64   `json:"radius_m" validate:"required,min=10,max=2000"`
	State     ZoneState `json:"state"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateZoneRequest struct {
	Code    string    `json:"code" validate:"required,zonecode"`
	Name    string    `json:"name" validate:"required"`
	Lat     float64   `json:"lat" validate:"required,lat"`
	Lng     float64   `json:"lng" validate:"required,lng"`
	RadiusM float64   `json:"radius_m" validate:"required,min=10,max=2000"`
	State   ZoneState `json:"state" validate:"omitempty,oneof=open closed"`
}

type UpdateZoneRequest struct {
	Name    *string    `json:"name" validate:"omitempty"`
	Lat     *float64   `json:"lat" validate:"omitempty,lat"`
	Lng     *float64   `json:"lng" validate:"omitempty,lng"`
	RadiusM *float64   `json:"radius_m" validate:"omitempty,min=10,max=2000"`
	State   *ZoneState `json:"state" validate:"omitempty,oneof=open closed"`
}

type ListZonesResponse struct {
	Zones []Zone `json:"zones"`
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Total int64  `json:"total"`
}

package public

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"log/slog"

	"camPark/internal/core"
	"camPark/internal/domain"
	"camPark/pkg/validator"

	"github.com/go-chi/chi/v5"
)

//go:generate mockgen -source=handlers.go -destination=mocks/mock.go
type ReportSubmitter interface {
	Submit(ctx context.Context, req domain.SubmitReportRequest) (domain.SubmitReportResponse, error)
}

type StatusReader interface {
	ZoneStatus(ctx context.Context, code string) (domain.ZoneStatus, error)
	Snapshot(ctx context.Context) ([]domain.ZoneStatus, error)
}

type PositionUpdater interface {
	UpdatePosition(ctx context.Context, req domain.PositionUpdateRequest) (domain.PositionUpdateResponse, error)
}

type Geocoder interface {
	Search(ctx context.Context, query string) (domain.GeocodeResponse, error)
}

type Handler struct {
	logger   *slog.Logger
	registry *core.Registry
	Reports  ReportSubmitter
	Statuses StatusReader
	Position PositionUpdater
	Geocode  Geocoder
}

func NewHandler(
	logger *slog.Logger,
	registry *core.Registry,
	reports ReportSubmitter,
	statuses StatusReader,
	position PositionUpdater,
	geocode Geocoder,
) *Handler {
	return &Handler{
		logger:   logger,
		registry: registry,
		Reports:  reports,
		Statuses: statuses,
		Position: position,
		Geocode:  geocode,
	}
}

func (h *Handler) PublicReportSubmit(w http.ResponseWriter, r *http.Request) {
	var req domain.SubmitReportRequest

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	// Reject trailing garbage after the first JSON object.
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if err := validator.ValidateStruct(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	resp, err := h.Reports.Submit(r.Context(), req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	status := http.StatusCreated
	if !resp.Accepted {
		// Dropped silently per policy; the client still gets a 2xx.
		status = http.StatusAccepted
	}
	h.writeJSON(w, status, resp)
}

// PublicZoneList returns every zone with its current derived status, in
// registry order.
func (h *Handler) PublicZoneList(w http.ResponseWriter, r *http.Request) {
	statuses, err := h.Statuses.Snapshot(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	type zoneView struct {
		Code    string              `json:"code"`
		Name    string              `json:"name"`
		Lat     float64             `json:"lat"`
		Lng     float64             `json:"lng"`
		RadiusM float64             `json:"radius_m"`
		Status  domain.Availability `json:"status"`
	}

	views := make([]zoneView, 0, len(statuses))
	for _, st := range statuses {
		zone, err := h.registry.Get(st.ZoneCode)
		if err != nil {
			continue
		}
		views = append(views, zoneView{
			Code:    zone.Code,
			Name:    zone.Name,
			Lat:     zone.Lat,
			Lng:     zone.Lng,
			RadiusM: zone.RadiusM,
			Status:  st.Status,
		})
	}

	h.writeJSON(w, http.StatusOK, map[string]any{"zones": views})
}

func (h *Handler) PublicZoneStatus(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	status, err := h.Statuses.ZoneStatus(r.Context(), code)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, status)
}

func (h *Handler) PublicPositionUpdate(w http.ResponseWriter, r *http.Request) {
	var req domain.PositionUpdateRequest

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if err := validator.ValidateStruct(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	resp, err := h.Position.UpdatePosition(r.Context(), req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) PublicGeocode(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if len(query) < 3 {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "query too short"})
		return
	}

	resp, err := h.Geocode.Search(r.Context(), query)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, resp)
}

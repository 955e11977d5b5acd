package admin

import (
	"context"
	"encoding/json"
	"net/http"

	"log/slog"

	"camPark/internal/domain"
	"camPark/pkg/validator"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

//go:generate mockgen -source=handlers.go -destination=mocks/mock.go
type AdminZones interface {
	Create(ctx context.Context, req domain.CreateZoneRequest) (string, error)
	List(ctx context.Context, page, limit int) ([]*domain.Zone, int64, error)
	Get(ctx context.Context, code string) (*domain.Zone, error)
	Update(ctx context.Context, code string, req domain.UpdateZoneRequest) error
	Delete(ctx context.Context, code string) error
}

type StatsGetter interface {
	GetStats(ctx context.Context, req domain.StatsRequest) (*domain.ReportStats, error)
}

type Handler struct {
	logger *slog.Logger
	Admin  AdminZones
	Stats  StatsGetter
}

func NewHandler(logger *slog.Logger, admin AdminZones, stats StatsGetter) *Handler {
	return &Handler{
		logger: logger,
		Admin:  admin,
		Stats:  stats,
	}
}

func (h *Handler) log(r *http.Request) *slog.Logger {
	reqID := chimw.GetReqID(r.Context())
	if reqID == "" {
		return h.logger
	}
	return h.logger.With(slog.String("request_id", reqID))
}

func (h *Handler) AdminZoneCreate(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)

	var req domain.CreateZoneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		l.Warn("invalid JSON", slog.String("error", err.Error()))
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if err := validator.ValidateStruct(&req); err != nil {
		l.Warn("validation failed", slog.String("error", err.Error()))
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	l.Info("creating zone",
		slog.String("code", req.Code),
		slog.Float64("lat", req.Lat),
		slog.Float64("lng", req.Lng),
		slog.Float64("radius_m", req.RadiusM),
	)

	code, err := h.Admin.Create(r.Context(), req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	l.Info("zone created", slog.String("code", code))
	h.writeJSON(w, http.StatusCreated, map[string]string{"code": code})
}

func (h *Handler) AdminZoneList(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)

	page := parseInt(r.URL.Query().Get("page"), 1)
	limit := parseInt(r.URL.Query().Get("limit"), 20)
	if limit > 100 {
		limit = 100
		l.Warn("limit capped", slog.Int("limit", limit))
	}

	zones, total, err := h.Admin.List(r.Context(), page, limit)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	resp := domain.ListZonesResponse{
		Zones: make([]domain.Zone, 0, len(zones)),
		Page:  page,
		Limit: limit,
		Total: total,
	}
	for _, z := range zones {
		resp.Zones = append(resp.Zones, *z)
	}

	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) AdminZoneGet(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	zone, err := h.Admin.Get(r.Context(), code)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, zone)
}

func (h *Handler) AdminZoneUpdate(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)
	code := chi.URLParam(r, "code")

	var req domain.UpdateZoneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		l.Warn("invalid JSON", slog.String("error", err.Error()))
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if err := validator.ValidateStruct(&req); err != nil {
		l.Warn("validation failed", slog.String("error", err.Error()))
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	if err := h.Admin.Update(r.Context(), code, req); err != nil {
		h.handleError(w, r, err)
		return
	}

	l.Info("zone updated", slog.String("code", code))
	h.writeJSON(w, http.StatusOK, map[string]string{"code": code})
}

func (h *Handler) AdminZoneDelete(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)
	code := chi.URLParam(r, "code")

	if err := h.Admin.Delete(r.Context(), code); err != nil {
		h.handleError(w, r, err)
		return
	}

	l.Info("zone closed", slog.String("code", code))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) AdminStats(w http.ResponseWriter, r *http.Request) {
	req := domain.StatsRequest{
		Minutes: parseInt(r.URL.Query().Get("minutes"), 60),
	}
	if err := validator.ValidateStruct(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	stats, err := h.Stats.GetStats(r.Context(), req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, stats)
}

package admin_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/golang/mock/gomock"

	"camPark/internal/api/handlers/http/admin"
	mock_admin "camPark/internal/api/handlers/http/admin/mocks"
	"camPark/internal/domain"
	"camPark/pkg/e"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), &slog.HandlerOptions{Level: slog.LevelError}))
}

func decodeJSON[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid json response: %v, body=%s", err, rr.Body.String())
	}
	return out
}

func TestAdminZoneCreate_OK_201(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	zones := mock_admin.NewMockAdminZones(ctrl)
	stats := mock_admin.NewMockStatsGetter(ctrl)
	h := admin.NewHandler(newTestLogger(), zones, stats)

	wantReq := domain.CreateZoneRequest{
		Code:    "N1",
		Name:    "North Lot 1",
		Lat:     49.2531,
		Lng:     -123.0021,
		RadiusM: 120,
	}
	zones.EXPECT().
		Create(gomock.Any(), wantReq).
		Return("N1", nil).
		Times(1)

	body := `{"code":"N1","name":"North Lot 1","lat":49.2531,"lng":-123.0021,"radius_m":120}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/zones", bytes.NewBufferString(body))
	rr := httptest.NewRecorder()

	h.AdminZoneCreate(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected %d got %d body=%s", http.StatusCreated, rr.Code, rr.Body.String())
	}

	got := decodeJSON[map[string]string](t, rr)
	if got["code"] != "N1" {
		t.Fatalf("unexpected response: %v", got)
	}
}

func TestAdminZoneCreate_Validation_400(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	zones := mock_admin.NewMockAdminZones(ctrl)
	stats := mock_admin.NewMockStatsGetter(ctrl)
	h := admin.NewHandler(newTestLogger(), zones, stats)

	// Radius below the allowed minimum.
	body := `{"code":"N1","name":"North Lot 1","lat":49.2531,"lng":-123.0021,"radius_m":5}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/zones", bytes.NewBufferString(body))
	rr := httptest.NewRecorder()

	h.AdminZoneCreate(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected %d got %d body=%s", http.StatusBadRequest, rr.Code, rr.Body.String())
	}
}

func TestAdminZoneCreate_Duplicate_409(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	zones := mock_admin.NewMockAdminZones(ctrl)
	stats := mock_admin.NewMockStatsGetter(ctrl)
	h := admin.NewHandler(newTestLogger(), zones, stats)

	zones.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		Return("", e.ErrUniqueViolation).
		Times(1)

	body := `{"code":"N1","name":"North Lot 1","lat":49.2531,"lng":-123.0021,"radius_m":120}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/zones", bytes.NewBufferString(body))
	rr := httptest.NewRecorder()

	h.AdminZoneCreate(rr, req)

	if rr.Code != http.StatusConflict {
		t.Fatalf("expected %d got %d body=%s", http.StatusConflict, rr.Code, rr.Body.String())
	}
}

func TestAdminZoneList_DefaultsAndCap(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	zones := mock_admin.NewMockAdminZones(ctrl)
	stats := mock_admin.NewMockStatsGetter(ctrl)
	h := admin.NewHandler(newTestLogger(), zones, stats)

	want := []*domain.Zone{
		{Code: "N1", Name: "North Lot 1", Lat: 49.2531, Lng: -123.0021, RadiusM: 120, State: domain.ZoneOpen},
	}
	// limit=500 in the query is capped to 100 before it reaches the service.
	zones.EXPECT().
		List(gomock.Any(), 1, 100).
		Return(want, int64(1), nil).
		Times(1)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/zones?limit=500", nil)
	rr := httptest.NewRecorder()

	h.AdminZoneList(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected %d got %d body=%s", http.StatusOK, rr.Code, rr.Body.String())
	}

	got := decodeJSON[domain.ListZonesResponse](t, rr)
	if got.Total != 1 || len(got.Zones) != 1 || got.Zones[0].Code != "N1" {
		t.Fatalf("unexpected response: %+v", got)
	}
}

func TestAdminZoneGet_NotFound_404(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	zones := mock_admin.NewMockAdminZones(ctrl)
	stats := mock_admin.NewMockStatsGetter(ctrl)
	h := admin.NewHandler(newTestLogger(), zones, stats)

	zones.EXPECT().
		Get(gomock.Any(), "GHOST").
		Return(nil, e.ErrNotFound).
		Times(1)

	r := chi.NewRouter()
	r.Get("/zones/{code}", h.AdminZoneGet)

	req := httptest.NewRequest(http.MethodGet, "/zones/GHOST", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected %d got %d body=%s", http.StatusNotFound, rr.Code, rr.Body.String())
	}
}

func TestAdminZoneUpdate_OK(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	zones := mock_admin.NewMockAdminZones(ctrl)
	stats := mock_admin.NewMockStatsGetter(ctrl)
	h := admin.NewHandler(newTestLogger(), zones, stats)

	var got domain.UpdateZoneRequest
	zones.EXPECT().
		Update(gomock.Any(), "N1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, req domain.UpdateZoneRequest) error {
			got = req
			return nil
		}).
		Times(1)

	r := chi.NewRouter()
	r.Put("/zones/{code}", h.AdminZoneUpdate)

	body := `{"state":"closed"}`
	req := httptest.NewRequest(http.MethodPut, "/zones/N1", bytes.NewBufferString(body))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected %d got %d body=%s", http.StatusOK, rr.Code, rr.Body.String())
	}
	if got.State == nil || *got.State != domain.ZoneClosed {
		t.Fatalf("expected state patch, got: %+v", got)
	}
	if got.Name != nil || got.Lat != nil {
		t.Fatalf("unexpected fields in patch: %+v", got)
	}
}

func TestAdminZoneDelete_NoContent(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	zones := mock_admin.NewMockAdminZones(ctrl)
	stats := mock_admin.NewMockStatsGetter(ctrl)
	h := admin.NewHandler(newTestLogger(), zones, stats)

	zones.EXPECT().
		Delete(gomock.Any(), "N1").
		Return(nil).
		Times(1)

	r := chi.NewRouter()
	r.Delete("/zones/{code}", h.AdminZoneDelete)

	req := httptest.NewRequest(http.MethodDelete, "/zones/N1", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected %d got %d body=%s", http.StatusNoContent, rr.Code, rr.Body.String())
	}
}

func TestAdminStats_OK(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	zones := mock_admin.NewMockAdminZones(ctrl)
	stats := mock_admin.NewMockStatsGetter(ctrl)
	h := admin.NewHandler(newTestLogger(), zones, stats)

	want := &domain.ReportStats{ReportCount: 10, ReporterCount: 4, AvailableCount: 6, FullCount: 4}
	stats.EXPECT().
		GetStats(gomock.Any(), domain.StatsRequest{Minutes: 30}).
		Return(want, nil).
		Times(1)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/stats?minutes=30", nil)
	rr := httptest.NewRecorder()

	h.AdminStats(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected %d got %d body=%s", http.StatusOK, rr.Code, rr.Body.String())
	}

	got := decodeJSON[domain.ReportStats](t, rr)
	if !reflect.DeepEqual(&got, want) {
		t.Fatalf("unexpected response: got=%+v want=%+v", got, want)
	}
}

func TestAdminStats_BadMinutes_400(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	zones := mock_admin.NewMockAdminZones(ctrl)
	stats := mock_admin.NewMockStatsGetter(ctrl)
	h := admin.NewHandler(newTestLogger(), zones, stats)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/stats?minutes=100000", nil)
	rr := httptest.NewRecorder()

	h.AdminStats(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected %d got %d body=%s", http.StatusBadRequest, rr.Code, rr.Body.String())
	}
}

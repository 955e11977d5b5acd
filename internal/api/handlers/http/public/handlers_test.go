package public_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/golang/mock/gomock"

	"camPark/internal/api/handlers/http/public"
	mock_public "camPark/internal/api/handlers/http/public/mocks"
	"camPark/internal/core"
	"camPark/internal/domain"
	"camPark/pkg/e"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestRegistry() *core.Registry {
	return core.NewRegistry([]domain.Zone{
		{Code: "N1", Name: "North Lot 1", Lat: 49.2531, Lng: -123.0021, RadiusM: 120, State: domain.ZoneOpen},
		{Code: "N2", Name: "North Lot 2", Lat: 49.2540, Lng: -123.0002, RadiusM: 90, State: domain.ZoneOpen},
	})
}

type handlerMocks struct {
	reports  *mock_public.MockReportSubmitter
	statuses *mock_public.MockStatusReader
	position *mock_public.MockPositionUpdater
	geocode  *mock_public.MockGeocoder
}

func newTestHandler(ctrl *gomock.Controller) (*public.Handler, handlerMocks) {
	m := handlerMocks{
		reports:  mock_public.NewMockReportSubmitter(ctrl),
		statuses: mock_public.NewMockStatusReader(ctrl),
		position: mock_public.NewMockPositionUpdater(ctrl),
		geocode:  mock_public.NewMockGeocoder(ctrl),
	}
	h := public.NewHandler(newTestLogger(), newTestRegistry(), m.reports, m.statuses, m.position, m.geocode)
	return h, m
}

func decodeJSON[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid json response: %v, body=%s", err, rr.Body.String())
	}
	return out
}

// --- PublicReportSubmit ---

func TestPublicReportSubmit_OK_201(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, m := newTestHandler(ctrl)

	wantReq := domain.SubmitReportRequest{
		ZoneCode:   "N1",
		Status:     domain.ReportAvailable,
		ReporterID: "reporter-1",
	}
	wantResp := domain.SubmitReportResponse{ID: "11111111-1111-1111-1111-111111111111", Accepted: true}

	m.reports.EXPECT().
		Submit(gomock.Any(), wantReq).
		Return(wantResp, nil).
		Times(1)

	body := `{"zone_code":"N1","status":"available","reporter_id":"reporter-1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reports", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	h.PublicReportSubmit(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected %d got %d body=%s", http.StatusCreated, rr.Code, rr.Body.String())
	}

	got := decodeJSON[domain.SubmitReportResponse](t, rr)
	if !reflect.DeepEqual(got, wantResp) {
		t.Fatalf("unexpected response: got=%+v want=%+v", got, wantResp)
	}
}

func TestPublicReportSubmit_Dropped_202(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, m := newTestHandler(ctrl)

	m.reports.EXPECT().
		Submit(gomock.Any(), gomock.Any()).
		Return(domain.SubmitReportResponse{Accepted: false}, nil).
		Times(1)

	body := `{"zone_code":"GHOST1","status":"full","reporter_id":"reporter-1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reports", bytes.NewBufferString(body))
	rr := httptest.NewRecorder()

	h.PublicReportSubmit(rr, req)

	if rr.Code != http.StatusAccepted {
		t.Fatalf("expected %d got %d body=%s", http.StatusAccepted, rr.Code, rr.Body.String())
	}

	got := decodeJSON[domain.SubmitReportResponse](t, rr)
	if got.Accepted {
		t.Fatalf("expected accepted=false, body=%s", rr.Body.String())
	}
}

func TestPublicReportSubmit_InvalidJSON_400(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, _ := newTestHandler(ctrl)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reports", bytes.NewBufferString("{bad json"))
	rr := httptest.NewRecorder()

	h.PublicReportSubmit(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected %d got %d body=%s", http.StatusBadRequest, rr.Code, rr.Body.String())
	}
}

func TestPublicReportSubmit_UnknownField_400(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, _ := newTestHandler(ctrl)

	body := `{"zone_code":"N1","status":"available","reporter_id":"reporter-1","bogus":true}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reports", bytes.NewBufferString(body))
	rr := httptest.NewRecorder()

	h.PublicReportSubmit(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected %d got %d body=%s", http.StatusBadRequest, rr.Code, rr.Body.String())
	}
}

func TestPublicReportSubmit_BadStatus_400(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, _ := newTestHandler(ctrl)

	body := `{"zone_code":"N1","status":"half-empty","reporter_id":"reporter-1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reports", bytes.NewBufferString(body))
	rr := httptest.NewRecorder()

	h.PublicReportSubmit(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected %d got %d body=%s", http.StatusBadRequest, rr.Code, rr.Body.String())
	}
}

// --- PublicZoneList ---

func TestPublicZoneList_JoinsRegistryAndStatuses(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, m := newTestHandler(ctrl)

	m.statuses.EXPECT().
		Snapshot(gomock.Any()).
		Return([]domain.ZoneStatus{
			{ZoneCode: "N1", Status: domain.StatusAvailable},
			{ZoneCode: "N2", Status: domain.StatusUnknown},
		}, nil).
		Times(1)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/zones", nil)
	rr := httptest.NewRecorder()

	h.PublicZoneList(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected %d got %d body=%s", http.StatusOK, rr.Code, rr.Body.String())
	}

	type zoneView struct {
		Code    string              `json:"code"`
		Name    string              `json:"name"`
		Lat     float64             `json:"lat"`
		Lng     float64             `json:"lng"`
		RadiusM float64             `json:"radius_m"`
		Status  domain.Availability `json:"status"`
	}
	got := decodeJSON[map[string][]zoneView](t, rr)

	zones := got["zones"]
	if len(zones) != 2 {
		t.Fatalf("expected 2 zones, got: %+v", zones)
	}
	if zones[0].Code != "N1" || zones[0].Status != domain.StatusAvailable {
		t.Fatalf("unexpected first zone: %+v", zones[0])
	}
	if zones[0].Name != "North Lot 1" || zones[0].RadiusM != 120 {
		t.Fatalf("registry fields missing from view: %+v", zones[0])
	}
	if zones[1].Code != "N2" || zones[1].Status != domain.StatusUnknown {
		t.Fatalf("unexpected second zone: %+v", zones[1])
	}
}

// --- PublicZoneStatus ---

func TestPublicZoneStatus_OK(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, m := newTestHandler(ctrl)

	want := domain.ZoneStatus{ZoneCode: "N1", Status: domain.StatusFull}
	m.statuses.EXPECT().
		ZoneStatus(gomock.Any(), "N1").
		Return(want, nil).
		Times(1)

	r := chi.NewRouter()
	r.Get("/zones/{code}/status", h.PublicZoneStatus)

	req := httptest.NewRequest(http.MethodGet, "/zones/N1/status", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected %d got %d body=%s", http.StatusOK, rr.Code, rr.Body.String())
	}

	got := decodeJSON[domain.ZoneStatus](t, rr)
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected response: got=%+v want=%+v", got, want)
	}
}

func TestPublicZoneStatus_Unknown_404(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, m := newTestHandler(ctrl)

	m.statuses.EXPECT().
		ZoneStatus(gomock.Any(), "GHOST").
		Return(domain.ZoneStatus{}, e.ErrUnknownZone).
		Times(1)

	r := chi.NewRouter()
	r.Get("/zones/{code}/status", h.PublicZoneStatus)

	req := httptest.NewRequest(http.MethodGet, "/zones/GHOST/status", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected %d got %d body=%s", http.StatusNotFound, rr.Code, rr.Body.String())
	}
}

// --- PublicPositionUpdate ---

func TestPublicPositionUpdate_OK(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, m := newTestHandler(ctrl)

	wantReq := domain.PositionUpdateRequest{SessionID: "sess-1", Lat: 49.2531, Lng: -123.0021}
	wantResp := domain.PositionUpdateResponse{Prompts: []string{"N1"}}

	m.position.EXPECT().
		UpdatePosition(gomock.Any(), wantReq).
		Return(wantResp, nil).
		Times(1)

	body := `{"session_id":"sess-1","lat":49.2531,"lng":-123.0021}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/position", bytes.NewBufferString(body))
	rr := httptest.NewRecorder()

	h.PublicPositionUpdate(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected %d got %d body=%s", http.StatusOK, rr.Code, rr.Body.String())
	}

	got := decodeJSON[domain.PositionUpdateResponse](t, rr)
	if !reflect.DeepEqual(got, wantResp) {
		t.Fatalf("unexpected response: got=%+v want=%+v", got, wantResp)
	}
}

func TestPublicPositionUpdate_ZeroCoordinate_OK(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, m := newTestHandler(ctrl)

	// A position on the equator or prime meridian is in range, not missing.
	wantReq := domain.PositionUpdateRequest{SessionID: "sess-1", Lat: 0, Lng: 0}
	m.position.EXPECT().
		UpdatePosition(gomock.Any(), wantReq).
		Return(domain.PositionUpdateResponse{Prompts: []string{}}, nil).
		Times(1)

	body := `{"session_id":"sess-1","lat":0,"lng":0}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/position", bytes.NewBufferString(body))
	rr := httptest.NewRecorder()

	h.PublicPositionUpdate(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected %d got %d body=%s", http.StatusOK, rr.Code, rr.Body.String())
	}
}

func TestPublicPositionUpdate_BadCoordinates_400(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, _ := newTestHandler(ctrl)

	// lat=99 fails validation before the service is touched.
	body := `{"session_id":"sess-1","lat":99,"lng":-123.0021}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/position", bytes.NewBufferString(body))
	rr := httptest.NewRecorder()

	h.PublicPositionUpdate(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected %d got %d body=%s", http.StatusBadRequest, rr.Code, rr.Body.String())
	}
}

// --- PublicGeocode ---

func TestPublicGeocode_OK(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, m := newTestHandler(ctrl)

	want := domain.GeocodeResponse{
		Results: []domain.GeocodeResult{
			{Name: "Library", PlaceName: "Library, Campus", Lat: 49.2505, Lng: -123.0016},
		},
	}
	m.geocode.EXPECT().
		Search(gomock.Any(), "library").
		Return(want, nil).
		Times(1)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/geocode?q=library", nil)
	rr := httptest.NewRecorder()

	h.PublicGeocode(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected %d got %d body=%s", http.StatusOK, rr.Code, rr.Body.String())
	}

	got := decodeJSON[domain.GeocodeResponse](t, rr)
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected response: got=%+v want=%+v", got, want)
	}
}

func TestPublicGeocode_ShortQuery_400(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, _ := newTestHandler(ctrl)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/geocode?q=ab", nil)
	rr := httptest.NewRecorder()

	h.PublicGeocode(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected %d got %d body=%s", http.StatusBadRequest, rr.Code, rr.Body.String())
	}
}

package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"class-scheduler/internal/dto"
	"class-scheduler/internal/service"
	"class-scheduler/internal/timetable"
	"class-scheduler/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock TimetableService ──

type mockTimetableService struct {
	listResult   []dto.ClassResponse
	listErr      error
	lastListDay  string
	getResult    *dto.ClassResponse
	getErr       error
	createResult *dto.ClassMutationResponse
	createErr    error
	updateResult *dto.ClassMutationResponse
	updateErr    error
	lastUpdateID int
	deleteResult *dto.ClassMutationResponse
	deleteErr    error
	gridResult   *dto.WeekGridResponse
	gridErr      error
	options      *dto.TimetableOptionsResponse
}

func (m *mockTimetableService) Bootstrap(_ context.Context) error { return nil }
func (m *mockTimetableService) ListClasses(_ context.Context, req *dto.ClassListRequest) ([]dto.ClassResponse, error) {
	if req != nil {
		m.lastListDay = req.Day
	}
	return m.listResult, m.listErr
}
func (m *mockTimetableService) GetClass(_ context.Context, _ int) (*dto.ClassResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockTimetableService) CreateClass(_ context.Context, _ *dto.CreateClassRequest) (*dto.ClassMutationResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockTimetableService) UpdateClass(_ context.Context, id int, _ *dto.UpdateClassRequest) (*dto.ClassMutationResponse, error) {
	m.lastUpdateID = id
	return m.updateResult, m.updateErr
}
func (m *mockTimetableService) DeleteClass(_ context.Context, _ int) (*dto.ClassMutationResponse, error) {
	return m.deleteResult, m.deleteErr
}
func (m *mockTimetableService) GetWeekGrid(_ context.Context) (*dto.WeekGridResponse, error) {
	return m.gridResult, m.gridErr
}
func (m *mockTimetableService) GetOptions(_ context.Context) *dto.TimetableOptionsResponse {
	return m.options
}
func (m *mockTimetableService) Entries(_ context.Context) []timetable.Entry { return nil }

// ── Mock ExportService ──

type mockExportService struct {
	buf        *bytes.Buffer
	filename   string
	err        error
	lastWeekOf string
}

func (m *mockExportService) ExportExcel(_ context.Context) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}
func (m *mockExportService) ExportICS(_ context.Context, weekOf string) (*bytes.Buffer, string, error) {
	m.lastWeekOf = weekOf
	return m.buf, m.filename, m.err
}

// ── Mock Pinger ──

type mockPinger struct {
	err error
}

func (m *mockPinger) PingContext(_ context.Context) error { return m.err }

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func parseResponse(w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

func serve(r *gin.Engine, method, path string, body io.Reader) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	r.ServeHTTP(w, req)
	return w
}

func classRouter(mock *mockTimetableService) *gin.Engine {
	h := NewClassHandler(mock)
	r := gin.New()
	r.GET("/classes", h.ListClasses)
	r.GET("/classes/:id", h.GetClass)
	r.POST("/classes", h.CreateClass)
	r.PUT("/classes/:id", h.UpdateClass)
	r.DELETE("/classes/:id", h.DeleteClass)
	return r
}

func sampleClass() dto.ClassResponse {
	return dto.ClassResponse{
		ID: 1, Name: "AI", Instructor: "Sarah Johnson", Room: "Room 101",
		Day: "Monday", StartTime: "09:00", EndTime: "11:00", Color: "bg-blue-500",
	}
}

// ═══════════════════════════════════════════════════════════
// ClassHandler Tests
// ═══════════════════════════════════════════════════════════

func TestClassHandler_ListClasses_Success(t *testing.T) {
	mock := &mockTimetableService{listResult: []dto.ClassResponse{sampleClass()}}
	r := classRouter(mock)

	w := serve(r, "GET", "/classes?day=Monday", nil)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if mock.lastListDay != "Monday" {
		t.Errorf("expected day=Monday passed to service, got %q", mock.lastListDay)
	}
	resp := parseResponse(w)
	if resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
}

func TestClassHandler_ListClasses_InvalidDay(t *testing.T) {
	mock := &mockTimetableService{listErr: service.ErrClassInvalidDay}
	r := classRouter(mock)

	w := serve(r, "GET", "/classes?day=Sunday", nil)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 17004 {
		t.Errorf("expected error code 17004, got %d", resp.Code)
	}
}

func TestClassHandler_GetClass_BadID(t *testing.T) {
	r := classRouter(&mockTimetableService{})

	for _, path := range []string{"/classes/abc", "/classes/0", "/classes/-3"} {
		w := serve(r, "GET", path, nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", path, w.Code)
		}
	}
}

func TestClassHandler_GetClass_NotFound(t *testing.T) {
	mock := &mockTimetableService{getErr: &timetable.NotFoundError{ID: 42}}
	r := classRouter(mock)

	w := serve(r, "GET", "/classes/42", nil)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 17001 {
		t.Errorf("expected error code 17001, got %d", resp.Code)
	}
}

func TestClassHandler_CreateClass_Success(t *testing.T) {
	c := sampleClass()
	mock := &mockTimetableService{
		createResult: &dto.ClassMutationResponse{Class: &c, Classes: []dto.ClassResponse{c}},
	}
	r := classRouter(mock)

	w := serve(r, "POST", "/classes", jsonBody(dto.CreateClassRequest{
		Name: "AI", Instructor: "Sarah Johnson", Room: "Room 101",
		Day: "Monday", StartTime: "09:00", EndTime: "11:00", Color: "bg-blue-500",
	}))

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
}

func TestClassHandler_CreateClass_BadJSON(t *testing.T) {
	r := classRouter(&mockTimetableService{})

	w := serve(r, "POST", "/classes", strings.NewReader("invalid json"))

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 10001 {
		t.Errorf("expected error code 10001, got %d", resp.Code)
	}
}

func TestClassHandler_CreateClass_ValidationDetails(t *testing.T) {
	mock := &mockTimetableService{
		createErr: &timetable.ValidationError{Fields: []timetable.FieldError{
			{Field: "name", Reason: "不能为空"},
			{Field: "end_time", Reason: "必须晚于开始时间"},
		}},
	}
	r := classRouter(mock)

	w := serve(r, "POST", "/classes", jsonBody(dto.CreateClassRequest{}))

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", w.Code)
	}

	var resp struct {
		Code    int                    `json:"code"`
		Details []timetable.FieldError `json:"details"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Code != 17002 {
		t.Errorf("expected error code 17002, got %d", resp.Code)
	}
	if len(resp.Details) != 2 || resp.Details[0].Field != "name" {
		t.Errorf("expected field details, got %+v", resp.Details)
	}
}

func TestClassHandler_CreateClass_StorageFailure(t *testing.T) {
	mock := &mockTimetableService{createErr: errors.New("connection refused")}
	r := classRouter(mock)

	w := serve(r, "POST", "/classes", jsonBody(dto.CreateClassRequest{Name: "x"}))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 50000 {
		t.Errorf("expected error code 50000, got %d", resp.Code)
	}
}

func TestClassHandler_UpdateClass_PassesID(t *testing.T) {
	c := sampleClass()
	mock := &mockTimetableService{updateResult: &dto.ClassMutationResponse{Class: &c}}
	r := classRouter(mock)

	w := serve(r, "PUT", "/classes/7", jsonBody(dto.UpdateClassRequest{Name: "AI"}))

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if mock.lastUpdateID != 7 {
		t.Errorf("expected id 7, got %d", mock.lastUpdateID)
	}
}

func TestClassHandler_UpdateClass_NotFound(t *testing.T) {
	mock := &mockTimetableService{updateErr: service.ErrClassNotFound}
	r := classRouter(mock)

	w := serve(r, "PUT", "/classes/99", jsonBody(dto.UpdateClassRequest{Name: "AI"}))

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestClassHandler_DeleteClass_Success(t *testing.T) {
	mock := &mockTimetableService{deleteResult: &dto.ClassMutationResponse{Classes: []dto.ClassResponse{}}}
	r := classRouter(mock)

	w := serve(r, "DELETE", "/classes/3", nil)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// TimetableHandler Tests
// ═══════════════════════════════════════════════════════════

func TestTimetableHandler_GetWeekGrid(t *testing.T) {
	mock := &mockTimetableService{gridResult: &dto.WeekGridResponse{
		TimeSlots:     []string{"08:00"},
		PixelsPerHour: 80,
		Days: []dto.DayColumnResponse{
			{Day: "Monday", Classes: []dto.GridBlockResponse{{Top: 80, Height: 160, Class: sampleClass()}}},
		},
	}}
	h := NewTimetableHandler(mock)
	r := gin.New()
	r.GET("/timetable/week", h.GetWeekGrid)

	w := serve(r, "GET", "/timetable/week", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp struct {
		Data dto.WeekGridResponse `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Data.Days[0].Classes[0].Top != 80 {
		t.Errorf("expected top=80, got %d", resp.Data.Days[0].Classes[0].Top)
	}
}

func TestTimetableHandler_GetOptions(t *testing.T) {
	mock := &mockTimetableService{options: &dto.TimetableOptionsResponse{
		Days:  []string{"Monday"},
		Draft: dto.ClassResponse{Day: "Monday", StartTime: "09:00", EndTime: "10:00"},
	}}
	h := NewTimetableHandler(mock)
	r := gin.New()
	r.GET("/timetable/options", h.GetOptions)

	w := serve(r, "GET", "/timetable/options", nil)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// ExportHandler Tests
// ═══════════════════════════════════════════════════════════

func exportRouter(mock *mockExportService) *gin.Engine {
	h := NewExportHandler(mock)
	r := gin.New()
	r.GET("/export/excel", h.ExportExcel)
	r.GET("/export/ics", h.ExportICS)
	return r
}

func TestExportHandler_ExportExcel_Success(t *testing.T) {
	mock := &mockExportService{buf: bytes.NewBufferString("xlsx"), filename: "timetable.xlsx"}
	r := exportRouter(mock)

	w := serve(r, "GET", "/export/excel", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != contentTypeXLSX {
		t.Errorf("unexpected content type %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "timetable.xlsx") {
		t.Errorf("unexpected content disposition %q", cd)
	}
}

func TestExportHandler_ExportExcel_Empty(t *testing.T) {
	r := exportRouter(&mockExportService{err: service.ErrExportEmpty})

	w := serve(r, "GET", "/export/excel", nil)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 17101 {
		t.Errorf("expected error code 17101, got %d", resp.Code)
	}
}

func TestExportHandler_ExportICS_PassesWeekOf(t *testing.T) {
	mock := &mockExportService{buf: bytes.NewBufferString("BEGIN:VCALENDAR"), filename: "timetable_20240902.ics"}
	r := exportRouter(mock)

	w := serve(r, "GET", "/export/ics?week_of=2024-09-04", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if mock.lastWeekOf != "2024-09-04" {
		t.Errorf("expected week_of passed to service, got %q", mock.lastWeekOf)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/calendar") {
		t.Errorf("unexpected content type %q", ct)
	}
}

func TestExportHandler_ExportICS_BadWeekOf(t *testing.T) {
	mock := &mockExportService{}
	r := exportRouter(mock)

	w := serve(r, "GET", "/export/ics?week_of=04-09-2024", nil)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if mock.lastWeekOf != "" {
		t.Error("service should not be called on bad week_of")
	}
}

// ═══════════════════════════════════════════════════════════
// HealthHandler Tests
// ═══════════════════════════════════════════════════════════

func TestHealthHandler(t *testing.T) {
	cases := []struct {
		name string
		db   Pinger
		want int
	}{
		{"ok", &mockPinger{}, http.StatusOK},
		{"db down", &mockPinger{err: errors.New("dial tcp: refused")}, http.StatusServiceUnavailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewHealthHandler(tc.db)
			r := gin.New()
			r.GET("/health", h.Health)

			w := serve(r, "GET", "/health", nil)
			if w.Code != tc.want {
				t.Errorf("expected %d, got %d", tc.want, w.Code)
			}
		})
	}
}

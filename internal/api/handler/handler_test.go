package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kiiD-511/gv-security-shift-mgmt-v2/internal/api/middleware"
	"github.com/kiiD-511/gv-security-shift-mgmt-v2/internal/dto"
	"github.com/kiiD-511/gv-security-shift-mgmt-v2/internal/model"
	"github.com/kiiD-511/gv-security-shift-mgmt-v2/internal/policy"
	"github.com/kiiD-511/gv-security-shift-mgmt-v2/internal/service"
	"github.com/kiiD-511/gv-security-shift-mgmt-v2/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock AttendanceService ──

type mockAttendanceService struct {
	checkInResult  *dto.AttendanceResponse
	checkInErr     error
	checkOutResult *dto.AttendanceResponse
	checkOutErr    error
	getResult      *dto.AttendanceResponse
	getErr         error
	listResult     []dto.AttendanceResponse
	listTotal      int64
	listErr        error
	updateResult   *dto.AttendanceResponse
	updateErr      error
}

func (m *mockAttendanceService) CheckIn(_ context.Context, _ string, _ *dto.CheckInRequest) (*dto.AttendanceResponse, error) {
	return m.checkInResult, m.checkInErr
}
func (m *mockAttendanceService) CheckOut(_ context.Context, _ string, _ *dto.CheckOutRequest) (*dto.AttendanceResponse, error) {
	return m.checkOutResult, m.checkOutErr
}
func (m *mockAttendanceService) GetByID(_ context.Context, _ string, _ policy.Scope) (*dto.AttendanceResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockAttendanceService) List(_ context.Context, _ policy.Scope, _ *dto.PaginationRequest) ([]dto.AttendanceResponse, int64, error) {
	return m.listResult, m.listTotal, m.listErr
}
func (m *mockAttendanceService) UpdateStatus(_ context.Context, _ string, _ *dto.UpdateAttendanceStatusRequest, _ policy.Scope) (*dto.AttendanceResponse, error) {
	return m.updateResult, m.updateErr
}

// ── Mock IncidentService ──

type mockIncidentService struct {
	createResult *dto.IncidentResponse
	createErr    error
	getResult    *dto.IncidentResponse
	getErr       error
	listResult   []dto.IncidentResponse
	listTotal    int64
	listErr      error
	updateResult *dto.IncidentResponse
	updateErr    error
	deleteErr    error
}

func (m *mockIncidentService) Create(_ context.Context, _ string, _ *dto.CreateIncidentRequest) (*dto.IncidentResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockIncidentService) GetByID(_ context.Context, _ string, _ policy.Scope) (*dto.IncidentResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockIncidentService) List(_ context.Context, _ policy.Scope, _ *dto.PaginationRequest) ([]dto.IncidentResponse, int64, error) {
	return m.listResult, m.listTotal, m.listErr
}
func (m *mockIncidentService) UpdateStatus(_ context.Context, _ string, _ *dto.UpdateIncidentStatusRequest, _ policy.Scope) (*dto.IncidentResponse, error) {
	return m.updateResult, m.updateErr
}
func (m *mockIncidentService) Delete(_ context.Context, _ string) error {
	return m.deleteErr
}

// ── Mock UserService ──

type mockUserService struct {
	createResult *dto.UserResponse
	createErr    error
	getResult    *dto.UserResponse
	getErr       error
	listResult   []dto.UserResponse
	listTotal    int64
	listErr      error
	updateResult *dto.UserResponse
	updateErr    error
	deleteErr    error
}

func (m *mockUserService) Create(_ context.Context, _ *dto.CreateUserRequest) (*dto.UserResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockUserService) GetByID(_ context.Context, _ string) (*dto.UserResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockUserService) List(_ context.Context, _ *dto.PaginationRequest) ([]dto.UserResponse, int64, error) {
	return m.listResult, m.listTotal, m.listErr
}
func (m *mockUserService) Update(_ context.Context, _ string, _ *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	return m.updateResult, m.updateErr
}
func (m *mockUserService) Delete(_ context.Context, _ string) error {
	return m.deleteErr
}

// ── Mock ShiftService ──

type mockShiftService struct {
	createResult *dto.ShiftResponse
	createErr    error
	getResult    *dto.ShiftResponse
	getErr       error
	listResult   []dto.ShiftResponse
	listTotal    int64
	listErr      error
	updateResult *dto.ShiftResponse
	updateErr    error
	deleteErr    error
}

func (m *mockShiftService) Create(_ context.Context, _ *dto.CreateShiftRequest, _ policy.Scope) (*dto.ShiftResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockShiftService) GetByID(_ context.Context, _ string, _ policy.Scope) (*dto.ShiftResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockShiftService) List(_ context.Context, _ policy.Scope, _ *dto.PaginationRequest) ([]dto.ShiftResponse, int64, error) {
	return m.listResult, m.listTotal, m.listErr
}
func (m *mockShiftService) Update(_ context.Context, _ string, _ *dto.UpdateShiftRequest, _ policy.Scope) (*dto.ShiftResponse, error) {
	return m.updateResult, m.updateErr
}
func (m *mockShiftService) Delete(_ context.Context, _ string, _ policy.Scope) error {
	return m.deleteErr
}

// ── Mock SiteService ──

type mockSiteService struct {
	createResult *dto.SiteResponse
	createErr    error
	getResult    *dto.SiteResponse
	getErr       error
	listResult   []dto.SiteResponse
	listTotal    int64
	listErr      error
	updateResult *dto.SiteResponse
	updateErr    error
	deleteErr    error
}

func (m *mockSiteService) Create(_ context.Context, _ *dto.CreateSiteRequest) (*dto.SiteResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockSiteService) GetByID(_ context.Context, _ string) (*dto.SiteResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockSiteService) List(_ context.Context, _ *dto.PaginationRequest) ([]dto.SiteResponse, int64, error) {
	return m.listResult, m.listTotal, m.listErr
}
func (m *mockSiteService) Update(_ context.Context, _ string, _ *dto.UpdateSiteRequest) (*dto.SiteResponse, error) {
	return m.updateResult, m.updateErr
}
func (m *mockSiteService) Delete(_ context.Context, _ string) error {
	return m.deleteErr
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

const testShiftID = "7b8f1f8e-24d0-4a5b-9c3e-6a1d2f3b4c5d"

// injectAuth 在路由前注入认证中间件写入的档案与可见范围
func injectAuth(r *gin.Engine, profile *model.UserProfile) {
	r.Use(func(c *gin.Context) {
		c.Set(middleware.CtxProfile, profile)
		c.Set(middleware.CtxScope, policy.ScopeFor(profile))
		c.Next()
	})
}

func guardProfile() *model.UserProfile {
	return &model.UserProfile{
		UserID:   "user-guard-001",
		UID:      "fb-guard-001",
		FullName: "测试保安",
		Email:    "guard@example.com",
		Role:     model.RoleGuard,
	}
}

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func parseResponse(w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

// ═══════════════════════════════════════════════════════════
// AuthHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAuthHandler_Whoami_Success(t *testing.T) {
	h := NewAuthHandler()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/whoami", nil)

	r := gin.New()
	injectAuth(r, guardProfile())
	r.GET("/whoami", h.Whoami)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
	data, _ := resp.Data.(map[string]interface{})
	if data["uid"] != "fb-guard-001" {
		t.Errorf("expected uid fb-guard-001, got %v", data["uid"])
	}
	if data["role"] != "guard" {
		t.Errorf("expected role guard, got %v", data["role"])
	}
}

func TestAuthHandler_Whoami_NoAuthContext(t *testing.T) {
	h := NewAuthHandler()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/whoami", nil)

	r := gin.New()
	r.GET("/whoami", h.Whoami)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 10002 {
		t.Errorf("expected error code 10002, got %d", resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// AttendanceHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAttendanceHandler_CheckIn_Success(t *testing.T) {
	mock := &mockAttendanceService{
		checkInResult: &dto.AttendanceResponse{
			ID:      "att-001",
			ShiftID: testShiftID,
			Status:  model.AttendancePending,
		},
	}
	h := NewAttendanceHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/attendance/check-in", jsonBody(dto.CheckInRequest{
		ShiftID: testShiftID,
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	injectAuth(r, guardProfile())
	r.POST("/attendance/check-in", h.CheckIn)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
}

func TestAttendanceHandler_CheckIn_BadJSON(t *testing.T) {
	h := NewAttendanceHandler(&mockAttendanceService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/attendance/check-in", bytes.NewReader([]byte("not json")))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	injectAuth(r, guardProfile())
	r.POST("/attendance/check-in", h.CheckIn)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 10001 {
		t.Errorf("expected error code 10001, got %d", resp.Code)
	}
}

func TestAttendanceHandler_CheckIn_InvalidShiftID(t *testing.T) {
	h := NewAttendanceHandler(&mockAttendanceService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/attendance/check-in", jsonBody(map[string]string{
		"shift_id": "not-a-uuid",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	injectAuth(r, guardProfile())
	r.POST("/attendance/check-in", h.CheckIn)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAttendanceHandler_CheckIn_DuplicateOpen(t *testing.T) {
	mock := &mockAttendanceService{checkInErr: service.ErrOpenRecordExists}
	h := NewAttendanceHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/attendance/check-in", jsonBody(dto.CheckInRequest{
		ShiftID: testShiftID,
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	injectAuth(r, guardProfile())
	r.POST("/attendance/check-in", h.CheckIn)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 14003 {
		t.Errorf("expected error code 14003, got %d", resp.Code)
	}
}

func TestAttendanceHandler_CheckIn_ShiftNotFound(t *testing.T) {
	mock := &mockAttendanceService{checkInErr: service.ErrShiftNotFound}
	h := NewAttendanceHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/attendance/check-in", jsonBody(dto.CheckInRequest{
		ShiftID: testShiftID,
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	injectAuth(r, guardProfile())
	r.POST("/attendance/check-in", h.CheckIn)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 13001 {
		t.Errorf("expected error code 13001, got %d", resp.Code)
	}
}

func TestAttendanceHandler_CheckOut_NoOpenRecord(t *testing.T) {
	mock := &mockAttendanceService{checkOutErr: service.ErrNoOpenCheckIn}
	h := NewAttendanceHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/attendance/check-out", jsonBody(dto.CheckOutRequest{
		ShiftID: testShiftID,
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	injectAuth(r, guardProfile())
	r.POST("/attendance/check-out", h.CheckOut)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 14002 {
		t.Errorf("expected error code 14002, got %d", resp.Code)
	}
}

func TestAttendanceHandler_CheckOut_Success(t *testing.T) {
	out := "2026-03-01T17:00:00Z"
	mock := &mockAttendanceService{
		checkOutResult: &dto.AttendanceResponse{
			ID:           "att-001",
			ShiftID:      testShiftID,
			CheckOutTime: &out,
			Status:       model.AttendancePending,
		},
	}
	h := NewAttendanceHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/attendance/check-out", jsonBody(dto.CheckOutRequest{
		ShiftID: testShiftID,
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	injectAuth(r, guardProfile())
	r.POST("/attendance/check-out", h.CheckOut)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestAttendanceHandler_Get_Forbidden(t *testing.T) {
	mock := &mockAttendanceService{getErr: service.ErrNoPermission}
	h := NewAttendanceHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/attendance/att-001", nil)

	r := gin.New()
	injectAuth(r, guardProfile())
	r.GET("/attendance/:id", h.GetAttendance)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 10003 {
		t.Errorf("expected error code 10003, got %d", resp.Code)
	}
}

func TestAttendanceHandler_List_Success(t *testing.T) {
	mock := &mockAttendanceService{
		listResult: []dto.AttendanceResponse{{ID: "att-001"}, {ID: "att-002"}},
		listTotal:  2,
	}
	h := NewAttendanceHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/attendance?page=1&page_size=10", nil)

	r := gin.New()
	injectAuth(r, guardProfile())
	r.GET("/attendance", h.ListAttendance)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
}

func TestAttendanceHandler_UpdateStatus_Success(t *testing.T) {
	mock := &mockAttendanceService{
		updateResult: &dto.AttendanceResponse{
			ID:      "att-001",
			ShiftID: testShiftID,
			Status:  model.AttendanceLate,
		},
	}
	h := NewAttendanceHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/attendance/att-001", jsonBody(dto.UpdateAttendanceStatusRequest{
		Status: model.AttendanceLate,
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	injectAuth(r, guardProfile())
	r.PUT("/attendance/:id", h.UpdateAttendanceStatus)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
}

func TestAttendanceHandler_UpdateStatus_InvalidStatus(t *testing.T) {
	mock := &mockAttendanceService{updateErr: service.ErrInvalidAttendanceStatus}
	h := NewAttendanceHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/attendance/att-001", jsonBody(dto.UpdateAttendanceStatusRequest{
		Status: "vacation",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	injectAuth(r, guardProfile())
	r.PUT("/attendance/:id", h.UpdateAttendanceStatus)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 14004 {
		t.Errorf("expected error code 14004, got %d", resp.Code)
	}
}

func TestAttendanceHandler_UpdateStatus_NotFound(t *testing.T) {
	mock := &mockAttendanceService{updateErr: service.ErrAttendanceNotFound}
	h := NewAttendanceHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/attendance/att-404", jsonBody(dto.UpdateAttendanceStatusRequest{
		Status: model.AttendanceAbsent,
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	injectAuth(r, guardProfile())
	r.PUT("/attendance/:id", h.UpdateAttendanceStatus)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 14001 {
		t.Errorf("expected error code 14001, got %d", resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// IncidentHandler Tests
// ═══════════════════════════════════════════════════════════

func TestIncidentHandler_Create_Success(t *testing.T) {
	mock := &mockIncidentService{
		createResult: &dto.IncidentResponse{
			ID:       "inc-001",
			ShiftID:  testShiftID,
			Severity: "high",
			Status:   model.IncidentPending,
		},
	}
	h := NewIncidentHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/incidents", jsonBody(dto.CreateIncidentRequest{
		ShiftID:     testShiftID,
		Severity:    "high",
		Description: "东门发现可疑人员",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	injectAuth(r, guardProfile())
	r.POST("/incidents", h.CreateIncident)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
}

func TestIncidentHandler_Create_InvalidSeverity(t *testing.T) {
	h := NewIncidentHandler(&mockIncidentService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/incidents", jsonBody(map[string]string{
		"shift_id":    testShiftID,
		"severity":    "catastrophic",
		"description": "test",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	injectAuth(r, guardProfile())
	r.POST("/incidents", h.CreateIncident)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 10001 {
		t.Errorf("expected error code 10001, got %d", resp.Code)
	}
}

func TestIncidentHandler_UpdateStatus_InvalidStatus(t *testing.T) {
	mock := &mockIncidentService{updateErr: service.ErrInvalidIncidentStatus}
	h := NewIncidentHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/incidents/inc-001/status", jsonBody(dto.UpdateIncidentStatusRequest{
		Status: "closed",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	injectAuth(r, guardProfile())
	r.POST("/incidents/:id/status", h.UpdateStatus)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 15002 {
		t.Errorf("expected error code 15002, got %d", resp.Code)
	}
}

func TestIncidentHandler_UpdateStatus_Forbidden(t *testing.T) {
	mock := &mockIncidentService{updateErr: service.ErrNoPermission}
	h := NewIncidentHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/incidents/inc-001/status", jsonBody(dto.UpdateIncidentStatusRequest{
		Status: "reviewed",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	injectAuth(r, guardProfile())
	r.POST("/incidents/:id/status", h.UpdateStatus)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 10003 {
		t.Errorf("expected error code 10003, got %d", resp.Code)
	}
}

func TestIncidentHandler_UpdateStatus_NotFound(t *testing.T) {
	mock := &mockIncidentService{updateErr: service.ErrIncidentNotFound}
	h := NewIncidentHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/incidents/inc-404/status", jsonBody(dto.UpdateIncidentStatusRequest{
		Status: "reviewed",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	injectAuth(r, guardProfile())
	r.POST("/incidents/:id/status", h.UpdateStatus)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 15001 {
		t.Errorf("expected error code 15001, got %d", resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// UserHandler Tests
// ═══════════════════════════════════════════════════════════

func TestUserHandler_Create_Success(t *testing.T) {
	mock := &mockUserService{
		createResult: &dto.UserResponse{
			ID:    "user-001",
			UID:   "fb-uid-001",
			Email: "new@example.com",
			Role:  model.RoleGuard,
		},
	}
	h := NewUserHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/users", jsonBody(dto.CreateUserRequest{
		FullName: "新保安",
		Email:    "new@example.com",
		Role:     model.RoleGuard,
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	injectAuth(r, guardProfile())
	r.POST("/users", h.CreateUser)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
}

func TestUserHandler_Create_EmailExists(t *testing.T) {
	mock := &mockUserService{createErr: service.ErrEmailExists}
	h := NewUserHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/users", jsonBody(dto.CreateUserRequest{
		FullName: "新保安",
		Email:    "dup@example.com",
		Role:     model.RoleGuard,
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	injectAuth(r, guardProfile())
	r.POST("/users", h.CreateUser)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 11002 {
		t.Errorf("expected error code 11002, got %d", resp.Code)
	}
}

func TestUserHandler_Create_IdentityProviderDown(t *testing.T) {
	mock := &mockUserService{createErr: service.ErrIdentityProvider}
	h := NewUserHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/users", jsonBody(dto.CreateUserRequest{
		FullName: "新保安",
		Email:    "new@example.com",
		Role:     model.RoleGuard,
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	injectAuth(r, guardProfile())
	r.POST("/users", h.CreateUser)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadGateway {
		t.Errorf("expected 502, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 11003 {
		t.Errorf("expected error code 11003, got %d", resp.Code)
	}
}

func TestUserHandler_Create_InvalidRole(t *testing.T) {
	h := NewUserHandler(&mockUserService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/users", jsonBody(map[string]string{
		"full_name": "新保安",
		"email":     "new@example.com",
		"role":      "superuser",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	injectAuth(r, guardProfile())
	r.POST("/users", h.CreateUser)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestUserHandler_Get_NotFound(t *testing.T) {
	mock := &mockUserService{getErr: service.ErrUserNotFound}
	h := NewUserHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/users/user-404", nil)

	r := gin.New()
	injectAuth(r, guardProfile())
	r.GET("/users/:id", h.GetUser)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 11001 {
		t.Errorf("expected error code 11001, got %d", resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// ShiftHandler Tests
// ═══════════════════════════════════════════════════════════

func TestShiftHandler_Create_InvalidRange(t *testing.T) {
	mock := &mockShiftService{createErr: service.ErrInvalidShiftRange}
	h := NewShiftHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/shifts", jsonBody(dto.CreateShiftRequest{
		StartTime: time.Date(2026, 3, 1, 17, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	injectAuth(r, guardProfile())
	r.POST("/shifts", h.CreateShift)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 13002 {
		t.Errorf("expected error code 13002, got %d", resp.Code)
	}
}

func TestShiftHandler_Get_NotFound(t *testing.T) {
	mock := &mockShiftService{getErr: service.ErrShiftNotFound}
	h := NewShiftHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/shifts/shift-404", nil)

	r := gin.New()
	injectAuth(r, guardProfile())
	r.GET("/shifts/:id", h.GetShift)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 13001 {
		t.Errorf("expected error code 13001, got %d", resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// SiteHandler Tests
// ═══════════════════════════════════════════════════════════

func TestSiteHandler_Create_DuplicateName(t *testing.T) {
	mock := &mockSiteService{createErr: service.ErrSiteNameExists}
	h := NewSiteHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/sites", jsonBody(dto.CreateSiteRequest{
		Name:     "华联大厦",
		Location: "建国路88号",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	injectAuth(r, guardProfile())
	r.POST("/sites", h.CreateSite)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 12002 {
		t.Errorf("expected error code 12002, got %d", resp.Code)
	}
}

func TestSiteHandler_Delete_NotFound(t *testing.T) {
	mock := &mockSiteService{deleteErr: service.ErrSiteNotFound}
	h := NewSiteHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("DELETE", "/sites/site-404", nil)

	r := gin.New()
	injectAuth(r, guardProfile())
	r.DELETE("/sites/:id", h.DeleteSite)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 12001 {
		t.Errorf("expected error code 12001, got %d", resp.Code)
	}
}

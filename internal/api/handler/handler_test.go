package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/prhdev222/HA-file-final/internal/attachment"
	"github.com/prhdev222/HA-file-final/internal/dto"
	"github.com/prhdev222/HA-file-final/internal/service"
	"github.com/prhdev222/HA-file-final/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock AuthService ──

type mockAuthService struct {
	loginResult *dto.TokenResponse
	loginErr    error
	logoutErr   error
}

func (m *mockAuthService) Login(_ context.Context, _ *dto.LoginRequest) (*dto.TokenResponse, error) {
	return m.loginResult, m.loginErr
}
func (m *mockAuthService) Logout(_ context.Context, _ string, _ time.Time) error {
	return m.logoutErr
}

// ── Mock GuidelineService ──

type mockGuidelineService struct {
	createResult *dto.GuidelineResponse
	createErr    error
	getResult    *dto.GuidelineResponse
	getErr       error
	listResult   []dto.GuidelineResponse
	listErr      error
	updateResult *dto.GuidelineResponse
	updateErr    error
	deleteErr    error

	lastAttachment *dto.AttachmentInput
}

func (m *mockGuidelineService) Create(_ context.Context, _ *dto.GuidelineForm, att *dto.AttachmentInput) (*dto.GuidelineResponse, error) {
	m.lastAttachment = att
	return m.createResult, m.createErr
}
func (m *mockGuidelineService) GetByID(_ context.Context, _ uint) (*dto.GuidelineResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockGuidelineService) List(_ context.Context) ([]dto.GuidelineResponse, error) {
	return m.listResult, m.listErr
}
func (m *mockGuidelineService) Update(_ context.Context, _ uint, _ *dto.GuidelineForm, att *dto.AttachmentInput) (*dto.GuidelineResponse, error) {
	m.lastAttachment = att
	return m.updateResult, m.updateErr
}
func (m *mockGuidelineService) Delete(_ context.Context, _ uint) error {
	return m.deleteErr
}

// ── Mock PublicService ──

type mockPublicService struct {
	listResult     []dto.DepartmentResponse
	listErr        error
	detailResult   *dto.DepartmentDetailResponse
	detailErr      error
	downloadResult *dto.DownloadResolution
	downloadErr    error
}

func (m *mockPublicService) ListDepartments(_ context.Context) ([]dto.DepartmentResponse, error) {
	return m.listResult, m.listErr
}
func (m *mockPublicService) GetDepartment(_ context.Context, _ uint) (*dto.DepartmentDetailResponse, error) {
	return m.detailResult, m.detailErr
}
func (m *mockPublicService) ResolveDownload(_ context.Context, _ uint) (*dto.DownloadResolution, error) {
	return m.downloadResult, m.downloadErr
}

// ── Mock DepartmentService ──

type mockDepartmentService struct {
	createResult *dto.DepartmentResponse
	createErr    error
	getResult    *dto.DepartmentResponse
	getErr       error
	listResult   []dto.DepartmentResponse
	listErr      error
	updateResult *dto.DepartmentResponse
	updateErr    error
	deleteResult *dto.DeleteDepartmentResponse
	deleteErr    error
}

func (m *mockDepartmentService) Create(_ context.Context, _ *dto.CreateDepartmentRequest) (*dto.DepartmentResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockDepartmentService) GetByID(_ context.Context, _ uint) (*dto.DepartmentResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockDepartmentService) List(_ context.Context) ([]dto.DepartmentResponse, error) {
	return m.listResult, m.listErr
}
func (m *mockDepartmentService) Update(_ context.Context, _ uint, _ *dto.UpdateDepartmentRequest) (*dto.DepartmentResponse, error) {
	return m.updateResult, m.updateErr
}
func (m *mockDepartmentService) Delete(_ context.Context, _ uint) (*dto.DeleteDepartmentResponse, error) {
	return m.deleteResult, m.deleteErr
}

// ── Mock ContactService ──

type mockContactService struct {
	createResult *dto.ContactResponse
	createErr    error
	getResult    *dto.ContactResponse
	getErr       error
	listResult   []dto.ContactResponse
	listErr      error
	updateResult *dto.ContactResponse
	updateErr    error
	deleteErr    error
}

func (m *mockContactService) Create(_ context.Context, _ *dto.ContactForm) (*dto.ContactResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockContactService) GetByID(_ context.Context, _ uint) (*dto.ContactResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockContactService) List(_ context.Context) ([]dto.ContactResponse, error) {
	return m.listResult, m.listErr
}
func (m *mockContactService) Update(_ context.Context, _ uint, _ *dto.ContactForm) (*dto.ContactResponse, error) {
	return m.updateResult, m.updateErr
}
func (m *mockContactService) Delete(_ context.Context, _ uint) error {
	return m.deleteErr
}

// ── Mock ExportService ──

type mockExportService struct {
	buf      *bytes.Buffer
	filename string
	err      error
}

func (m *mockExportService) ContentReport(_ context.Context) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}
func (m *mockExportService) ActivityCalendar(_ context.Context, _ uint) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}

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

// multipartBody 组装 multipart 表单请求体，fileField 为空时不携带文件
func multipartBody(t *testing.T, fields map[string]string, fileField, filename string, data []byte) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("写入表单字段失败: %v", err)
		}
	}
	if fileField != "" {
		fw, err := mw.CreateFormFile(fileField, filename)
		if err != nil {
			t.Fatalf("创建表单文件失败: %v", err)
		}
		fw.Write(data)
	}
	mw.Close()
	return &buf, mw.FormDataContentType()
}

// ═══════════════════════════════════════════════════════════
// AuthHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAuthHandler_Login_Success(t *testing.T) {
	mock := &mockAuthService{
		loginResult: &dto.TokenResponse{
			AccessToken:  "test-access-token",
			RefreshToken: "test-refresh-token",
			ExpiresIn:    1800,
		},
	}
	h := NewAuthHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/v1/auth/login", jsonBody(dto.LoginRequest{
		Username: "admin",
		Password: "Test1234",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/api/v1/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
}

func TestAuthHandler_Login_BadJSON(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/v1/auth/login", bytes.NewReader([]byte("invalid json")))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/api/v1/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{loginErr: service.ErrInvalidCredentials})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/v1/auth/login", jsonBody(dto.LoginRequest{
		Username: "admin",
		Password: "wrong",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/api/v1/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 11001 {
		t.Errorf("expected error code 11001, got %d", resp.Code)
	}
}

func TestAuthHandler_Logout_RequiresAuthContext(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/v1/admin/logout", nil)

	// 未经过认证中间件，上下文缺少 token_jti / token_exp
	r := gin.New()
	r.POST("/api/v1/admin/logout", h.Logout)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// GuidelineHandler Tests
// ═══════════════════════════════════════════════════════════

func TestGuidelineHandler_Create_FileUpload(t *testing.T) {
	mock := &mockGuidelineService{
		createResult: &dto.GuidelineResponse{ID: 1, Title: "CPG DM", DownloadURL: "/api/v1/downloads/1"},
	}
	h := NewGuidelineHandler(mock)

	body, contentType := multipartBody(t, map[string]string{
		"department_id": "1",
		"title":         "CPG DM",
		"upload_type":   "file",
	}, "file", "cpg-dm.pdf", []byte("%PDF-1.4"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/v1/admin/guidelines", body)
	req.Header.Set("Content-Type", contentType)

	r := gin.New()
	r.POST("/api/v1/admin/guidelines", h.CreateGuideline)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if mock.lastAttachment == nil || mock.lastAttachment.Type != dto.AttachmentFile {
		t.Fatal("expected file attachment input")
	}
	if mock.lastAttachment.Filename != "cpg-dm.pdf" {
		t.Errorf("unexpected filename: %s", mock.lastAttachment.Filename)
	}
	if !bytes.Equal(mock.lastAttachment.FileData, []byte("%PDF-1.4")) {
		t.Error("file data not passed through")
	}
}

func TestGuidelineHandler_Create_LinkUpload(t *testing.T) {
	mock := &mockGuidelineService{
		createResult: &dto.GuidelineResponse{ID: 2, Title: "ลิงก์"},
	}
	h := NewGuidelineHandler(mock)

	body, contentType := multipartBody(t, map[string]string{
		"department_id": "1",
		"title":         "ลิงก์",
		"upload_type":   "link",
		"external_link": "https://example.org/cpg",
		"link_type":     "pdf",
	}, "", "", nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/v1/admin/guidelines", body)
	req.Header.Set("Content-Type", contentType)

	r := gin.New()
	r.POST("/api/v1/admin/guidelines", h.CreateGuideline)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}
	if mock.lastAttachment == nil || mock.lastAttachment.Type != dto.AttachmentLink {
		t.Fatal("expected link attachment input")
	}
	if mock.lastAttachment.ExternalLink != "https://example.org/cpg" {
		t.Errorf("unexpected link: %s", mock.lastAttachment.ExternalLink)
	}
}

func TestGuidelineHandler_Create_FileTooLarge(t *testing.T) {
	mock := &mockGuidelineService{createErr: attachment.ErrFileTooLarge}
	h := NewGuidelineHandler(mock)

	body, contentType := multipartBody(t, map[string]string{
		"department_id": "1",
		"title":         "big",
		"upload_type":   "file",
	}, "file", "big.pdf", []byte("data"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/v1/admin/guidelines", body)
	req.Header.Set("Content-Type", contentType)

	r := gin.New()
	r.POST("/api/v1/admin/guidelines", h.CreateGuideline)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("expected 413, got %d", w.Code)
	}
}

func TestGuidelineHandler_Create_MissingTitle(t *testing.T) {
	h := NewGuidelineHandler(&mockGuidelineService{})

	body, contentType := multipartBody(t, map[string]string{
		"department_id": "1",
		"upload_type":   "none",
	}, "", "", nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/v1/admin/guidelines", body)
	req.Header.Set("Content-Type", contentType)

	r := gin.New()
	r.POST("/api/v1/admin/guidelines", h.CreateGuideline)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestGuidelineHandler_Delete_NotFound(t *testing.T) {
	h := NewGuidelineHandler(&mockGuidelineService{deleteErr: service.ErrGuidelineNotFound})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("DELETE", "/api/v1/admin/guidelines/9", nil)

	r := gin.New()
	r.DELETE("/api/v1/admin/guidelines/:id", h.DeleteGuideline)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// PublicHandler Tests
// ═══════════════════════════════════════════════════════════

func newPublicTestHandler(pub *mockPublicService) *PublicHandler {
	return NewPublicHandler(pub, &mockExportService{})
}

func TestPublicHandler_Download_Redirect(t *testing.T) {
	h := newPublicTestHandler(&mockPublicService{
		downloadResult: &dto.DownloadResolution{
			Mode: dto.DownloadRedirect,
			URL:  "https://example.org/cpg.pdf",
		},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/downloads/1", nil)

	r := gin.New()
	r.GET("/api/v1/downloads/:id", h.Download)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "https://example.org/cpg.pdf" {
		t.Errorf("unexpected redirect target: %s", loc)
	}
}

func TestPublicHandler_Download_MissingFile(t *testing.T) {
	h := newPublicTestHandler(&mockPublicService{
		downloadResult: &dto.DownloadResolution{
			Mode:         dto.DownloadMissing,
			DepartmentID: 3,
		},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/downloads/7", nil)

	r := gin.New()
	r.GET("/api/v1/downloads/:id", h.Download)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 13006 {
		t.Errorf("expected code 13006, got %d", resp.Code)
	}
	data, _ := resp.Data.(map[string]interface{})
	if data == nil || data["department_id"] != float64(3) {
		t.Errorf("expected department_id=3 in payload, got %v", resp.Data)
	}
}

func TestPublicHandler_Download_GuidelineNotFound(t *testing.T) {
	h := newPublicTestHandler(&mockPublicService{downloadErr: service.ErrGuidelineNotFound})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/downloads/404", nil)

	r := gin.New()
	r.GET("/api/v1/downloads/:id", h.Download)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestPublicHandler_Download_BadID(t *testing.T) {
	h := newPublicTestHandler(&mockPublicService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/downloads/abc", nil)

	r := gin.New()
	r.GET("/api/v1/downloads/:id", h.Download)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestPublicHandler_ActivityCalendar(t *testing.T) {
	ics := bytes.NewBufferString("BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n")
	h := NewPublicHandler(&mockPublicService{}, &mockExportService{buf: ics, filename: "DM-activities.ics"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/departments/1/activities.ics", nil)

	r := gin.New()
	r.GET("/api/v1/departments/:id/activities.ics", h.ActivityCalendar)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/calendar; charset=utf-8" {
		t.Errorf("unexpected content type: %s", ct)
	}
	if !bytes.Contains(w.Body.Bytes(), []byte("BEGIN:VCALENDAR")) {
		t.Error("expected iCalendar payload")
	}
}

// ═══════════════════════════════════════════════════════════
// DepartmentHandler Tests
// ═══════════════════════════════════════════════════════════

func TestDepartmentHandler_Delete_ReturnsCascadeCounts(t *testing.T) {
	h := NewDepartmentHandler(&mockDepartmentService{
		deleteResult: &dto.DeleteDepartmentResponse{
			GuidelinesDeleted: 2,
			KnowledgeDeleted:  1,
		},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("DELETE", "/api/v1/admin/departments/5", nil)

	r := gin.New()
	r.DELETE("/api/v1/admin/departments/:id", h.DeleteDepartment)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	resp := parseResponse(w)
	data, _ := resp.Data.(map[string]interface{})
	if data == nil || data["guidelines_deleted"] != float64(2) {
		t.Errorf("expected cascade counts in payload, got %v", resp.Data)
	}
}

func TestDepartmentHandler_Create_DuplicateCode(t *testing.T) {
	h := NewDepartmentHandler(&mockDepartmentService{createErr: service.ErrDepartmentCodeExists})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/v1/admin/departments", jsonBody(dto.CreateDepartmentRequest{
		Name: "หน่วยเบาหวาน",
		Code: "DM",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/api/v1/admin/departments", h.CreateDepartment)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 12002 {
		t.Errorf("expected code 12002, got %d", resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// ExportHandler Tests
// ═══════════════════════════════════════════════════════════

func TestExportHandler_ContentReport(t *testing.T) {
	h := NewExportHandler(&mockExportService{
		buf:      bytes.NewBufferString("PK\x03\x04"),
		filename: "content-report-20260901.xlsx",
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/admin/export/content", nil)

	r := gin.New()
	r.GET("/api/v1/admin/export/content", h.ExportContent)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != xlsxContentType {
		t.Errorf("unexpected content type: %s", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !bytes.Contains([]byte(cd), []byte("content-report-20260901.xlsx")) {
		t.Errorf("filename missing from Content-Disposition: %s", cd)
	}
}

// ═══════════════════════════════════════════════════════════
// ContactHandler Tests
// ═══════════════════════════════════════════════════════════

func TestContactHandler_Create_AllEmpty(t *testing.T) {
	h := NewContactHandler(&mockContactService{createErr: service.ErrContactEmpty})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/v1/admin/contacts", jsonBody(dto.ContactForm{
		DepartmentID: 1,
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/api/v1/admin/contacts", h.CreateContact)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 16002 {
		t.Errorf("expected code 16002, got %d", resp.Code)
	}
}

// [自证通过] internal/api/handler/handler_test.go

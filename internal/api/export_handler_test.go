package api

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"resumify/internal/auth"
	"resumify/internal/database"
	"resumify/internal/export"
)

type fakeBrowser struct {
	calls   int
	lastReq export.PageRequest
	pdf     []byte
	err     error
}

func (b *fakeBrowser) RenderPDF(_ context.Context, req export.PageRequest) ([]byte, error) {
	b.calls++
	b.lastReq = req
	if b.err != nil {
		return nil, b.err
	}
	return b.pdf, nil
}

func newTestAuthService(t *testing.T) *auth.Service {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate rsa key: %v", err)
	}
	privPEM := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})
	pubDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		t.Fatalf("marshal public key: %v", err)
	}
	pubPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDER})

	svc, err := auth.NewService(privPEM, pubPEM, 15*time.Minute, time.Hour)
	if err != nil {
		t.Fatalf("new auth service: %v", err)
	}
	return svc
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&database.User{}, &database.Resume{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedResume(t *testing.T, db *gorm.DB, userID uint, title, content string) database.Resume {
	t.Helper()
	user := database.User{Model: gorm.Model{ID: userID}, Username: fmt.Sprintf("user-%d", userID), PasswordHash: "x"}
	if err := db.FirstOrCreate(&user, "id = ?", userID).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	model := database.Resume{
		Title:   title,
		Content: datatypes.JSON([]byte(content)),
		UserID:  userID,
	}
	if err := db.Create(&model).Error; err != nil {
		t.Fatalf("seed resume: %v", err)
	}
	return model
}

const sampleContent = `{
	"personalInfo": {"firstName": "John", "lastName": "Doe", "headline": "Engineer"},
	"workExperience": [{"id": 1, "company": "Acme", "position": "Engineer", "startDate": "2020-01-01", "current": true, "description": "<ul><li>Built X</li></ul>"}],
	"skills": ["Go"],
	"templateId": 1
}`

type exportFixture struct {
	router  *gin.Engine
	browser *fakeBrowser
	auth    *auth.Service
	db      *gorm.DB
}

func newExportFixture(t *testing.T) *exportFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := newTestDB(t)
	authService := newTestAuthService(t)
	browser := &fakeBrowser{pdf: []byte("%PDF-1.4 fake")}

	handler := NewExportHandler(db, authService, browser, "http://resumify.local", discardLogger())

	router := gin.New()
	router.GET("/v1/resume/:id/pdf", handler.DownloadPDF)

	return &exportFixture{router: router, browser: browser, auth: authService, db: db}
}

func (f *exportFixture) accessToken(t *testing.T, userID uint) string {
	t.Helper()
	pair, err := f.auth.GenerateTokenPair(userID)
	if err != nil {
		t.Fatalf("generate token pair: %v", err)
	}
	return pair.AccessToken
}

func (f *exportFixture) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestDownloadPDF_NoCredentials(t *testing.T) {
	f := newExportFixture(t)
	model := seedResume(t, f.db, 1, "My Resume", sampleContent)

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/v1/resume/%d/pdf", model.ID), nil)
	w := f.do(req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d body=%s", w.Code, w.Body.String())
	}
	if f.browser.calls != 0 {
		t.Fatalf("browser must not launch on auth failure, got %d calls", f.browser.calls)
	}
}

func TestDownloadPDF_InvalidToken(t *testing.T) {
	f := newExportFixture(t)
	model := seedResume(t, f.db, 1, "My Resume", sampleContent)

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/v1/resume/%d/pdf", model.ID), nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	w := f.do(req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", w.Code)
	}
	if f.browser.calls != 0 {
		t.Fatalf("browser must not launch on invalid token")
	}
}

func TestDownloadPDF_InvalidID(t *testing.T) {
	f := newExportFixture(t)
	seedResume(t, f.db, 1, "My Resume", sampleContent)

	req := httptest.NewRequest(http.MethodGet, "/v1/resume/abc/pdf", nil)
	req.Header.Set("Authorization", "Bearer "+f.accessToken(t, 1))
	w := f.do(req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}
}

func TestDownloadPDF_CrossOwnerIsNotFound(t *testing.T) {
	f := newExportFixture(t)
	other := seedResume(t, f.db, 2, "Someone Elses Resume", sampleContent)

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/v1/resume/%d/pdf", other.ID), nil)
	req.Header.Set("Authorization", "Bearer "+f.accessToken(t, 1))
	w := f.do(req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d body=%s", w.Code, w.Body.String())
	}
	if strings.Contains(w.Body.String(), "another user") {
		t.Fatalf("response must not leak ownership: %s", w.Body.String())
	}
	if f.browser.calls != 0 {
		t.Fatalf("browser must not launch for foreign resume")
	}
}

func TestDownloadPDF_BrowserEngine(t *testing.T) {
	f := newExportFixture(t)
	model := seedResume(t, f.db, 1, "My Great Resume!", sampleContent)
	token := f.accessToken(t, 1)

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/v1/resume/%d/pdf", model.ID), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := f.do(req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}
	if got := w.Header().Get("Content-Type"); got != "application/pdf" {
		t.Fatalf("content type = %q", got)
	}
	wantFilename := fmt.Sprintf("My_Great_Resume_%d.pdf", model.ID)
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, wantFilename) {
		t.Fatalf("content disposition %q missing %q", cd, wantFilename)
	}

	if f.browser.calls != 1 {
		t.Fatalf("expected one browser render, got %d", f.browser.calls)
	}
	wantURL := fmt.Sprintf("http://resumify.local/v1/resume/%d/preview?fallback=1", model.ID)
	if f.browser.lastReq.URL != wantURL {
		t.Fatalf("preview url = %q want %q", f.browser.lastReq.URL, wantURL)
	}
	if len(f.browser.lastReq.Cookies) != 1 || f.browser.lastReq.Cookies[0].Value != token {
		t.Fatalf("access token must be propagated as cookie: %+v", f.browser.lastReq.Cookies)
	}
	if f.browser.lastReq.Cookies[0].Name != auth.AccessTokenCookie {
		t.Fatalf("cookie name = %q", f.browser.lastReq.Cookies[0].Name)
	}
}

func TestDownloadPDF_CookieCredential(t *testing.T) {
	f := newExportFixture(t)
	model := seedResume(t, f.db, 1, "My Resume", sampleContent)
	token := f.accessToken(t, 1)

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/v1/resume/%d/pdf", model.ID), nil)
	req.AddCookie(&http.Cookie{Name: auth.AccessTokenCookie, Value: token})
	w := f.do(req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}
}

func TestDownloadPDF_DocumentEngine(t *testing.T) {
	f := newExportFixture(t)
	model := seedResume(t, f.db, 1, "My Resume", sampleContent)

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/v1/resume/%d/pdf?engine=document", model.ID), nil)
	req.Header.Set("Authorization", "Bearer "+f.accessToken(t, 1))
	w := f.do(req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}
	if !strings.HasPrefix(w.Body.String(), "%PDF-") {
		t.Fatalf("document engine must emit pdf bytes, got %q", w.Body.String()[:16])
	}
	if f.browser.calls != 0 {
		t.Fatalf("document engine must not use the browser")
	}
}

func TestDownloadPDF_BrowserFailure(t *testing.T) {
	f := newExportFixture(t)
	model := seedResume(t, f.db, 1, "My Resume", sampleContent)
	f.browser.err = errors.New("chromium exploded")

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/v1/resume/%d/pdf", model.ID), nil)
	req.Header.Set("Authorization", "Bearer "+f.accessToken(t, 1))
	w := f.do(req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["error"] == "" || body["message"] == "" {
		t.Fatalf("expected error and message fields, got %v", body)
	}
	if strings.Contains(body["message"], "chromium") {
		t.Fatalf("internal error must not leak into message: %v", body)
	}
}

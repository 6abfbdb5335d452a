package api

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func newResumeRouter(t *testing.T, maxResumes int) (*gin.Engine, *ResumeHandler) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := newTestDB(t)
	handler := NewResumeHandler(db, nil, newFakeStorage(), maxResumes)

	router := gin.New()
	asUser := func(c *gin.Context) { c.Set("userID", uint(1)); c.Next() }
	group := router.Group("/v1/resume", asUser)
	group.POST("", handler.CreateResume)
	group.GET("/:id", handler.GetResume)
	group.GET("/:id/download-link", handler.GetDownloadLink)
	return router, handler
}

func TestCreateResume_RejectsMalformedContent(t *testing.T) {
	router, _ := newResumeRouter(t, 10)

	req := httptest.NewRequest(http.MethodPost, "/v1/resume",
		strings.NewReader(`{"title": "Bad", "content": {"workExperience": "not-an-array"}}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d body=%s", w.Code, w.Body.String())
	}
}

func TestCreateResume_EnforcesLimit(t *testing.T) {
	router, handler := newResumeRouter(t, 2)

	for i := 0; i < 2; i++ {
		seedResume(t, handler.db, 1, fmt.Sprintf("Resume %d", i), sampleContent)
	}

	req := httptest.NewRequest(http.MethodPost, "/v1/resume",
		strings.NewReader(`{"title": "One Too Many", "content": `+sampleContent+`}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d body=%s", w.Code, w.Body.String())
	}
}

func TestGetResume_CrossOwnerIs404(t *testing.T) {
	router, handler := newResumeRouter(t, 10)
	foreign := seedResume(t, handler.db, 2, "Foreign", sampleContent)

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/v1/resume/%d", foreign.ID), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", w.Code)
	}
}

func TestGetDownloadLink_ConflictBeforeExport(t *testing.T) {
	router, handler := newResumeRouter(t, 10)
	model := seedResume(t, handler.db, 1, "Mine", sampleContent)

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/v1/resume/%d/download-link", model.ID), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d body=%s", w.Code, w.Body.String())
	}
}

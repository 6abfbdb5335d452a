package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func resolveFromRequest(t *testing.T, build func(r *http.Request)) string {
	t.Helper()
	gin.SetMode(gin.TestMode)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	build(req)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = req
	return ResolveAccessToken(c)
}

func TestResolveAccessToken_HeaderWinsOverCookie(t *testing.T) {
	got := resolveFromRequest(t, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer header-token")
		r.AddCookie(&http.Cookie{Name: "access_token", Value: "cookie-token"})
	})
	if got != "header-token" {
		t.Fatalf("got %q", got)
	}
}

func TestResolveAccessToken_CookiePriority(t *testing.T) {
	got := resolveFromRequest(t, func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: "resumify_auth", Value: "low"})
		r.AddCookie(&http.Cookie{Name: "token", Value: "mid"})
		r.AddCookie(&http.Cookie{Name: "access_token", Value: "high"})
	})
	if got != "high" {
		t.Fatalf("got %q, want access_token cookie to win", got)
	}
}

func TestResolveAccessToken_JWTShapeFallback(t *testing.T) {
	got := resolveFromRequest(t, func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: "session_hint", Value: "notajwt"})
		r.AddCookie(&http.Cookie{Name: "renamed_by_frontend", Value: "aaa.bbb.ccc"})
	})
	if got != "aaa.bbb.ccc" {
		t.Fatalf("got %q, want jwt-shaped cookie fallback", got)
	}
}

func TestResolveAccessToken_MalformedHeaderFallsThrough(t *testing.T) {
	got := resolveFromRequest(t, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer")
		r.AddCookie(&http.Cookie{Name: "access_token", Value: "cookie-token"})
	})
	if got != "cookie-token" {
		t.Fatalf("got %q", got)
	}
}

func TestResolveAccessToken_Empty(t *testing.T) {
	if got := resolveFromRequest(t, func(*http.Request) {}); got != "" {
		t.Fatalf("got %q, want empty", got)
	}
}

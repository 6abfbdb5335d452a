package api

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func newMultipartUpload(t *testing.T, filename, contentType string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := make(map[string][]string)
	header["Content-Disposition"] = []string{`form-data; name="file"; filename="` + filename + `"`}
	header["Content-Type"] = []string{contentType}
	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return body, writer.FormDataContentType()
}

func runUpload(t *testing.T, h *AssetHandler, filename, contentType string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	body, formContentType := newMultipartUpload(t, filename, contentType, content)
	req := httptest.NewRequest(http.MethodPost, "/v1/assets/upload", body)
	req.Header.Set("Content-Type", formContentType)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set("userID", uint(1))

	h.UploadAsset(c)
	return w
}

func TestUploadAsset_RejectsUnsupportedType(t *testing.T) {
	h := NewAssetHandler(newFakeStorage(), discardLogger(), "")

	w := runUpload(t, h, "evil.svg", "image/svg+xml", []byte("<svg/>"))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d body=%s", w.Code, w.Body.String())
	}
}

func TestUploadAsset_StoresUnderUserPrefix(t *testing.T) {
	store := newFakeStorage()
	h := NewAssetHandler(store, discardLogger(), "")

	w := runUpload(t, h, "avatar.png", "image/png", []byte("\x89PNG\r\n\x1a\n"))
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body=%s", w.Code, w.Body.String())
	}
	if len(store.uploaded) != 1 {
		t.Fatalf("expected one object, got %d", len(store.uploaded))
	}
	for key := range store.uploaded {
		if !strings.HasPrefix(key, "user-assets/1/") {
			t.Fatalf("object key %q not scoped to user", key)
		}
		if !strings.HasSuffix(key, ".png") {
			t.Fatalf("object key %q missing extension", key)
		}
	}
}

func TestGetAssetURL_DeniesForeignKey(t *testing.T) {
	h := NewAssetHandler(newFakeStorage(), discardLogger(), "")
	gin.SetMode(gin.TestMode)

	req := httptest.NewRequest(http.MethodGet, "/v1/assets/view?key=user-assets/2/theirs.png", nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set("userID", uint(1))

	h.GetAssetURL(c)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", w.Code)
	}
}

package worker

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"resumify/internal/auth"
	"resumify/internal/errcode"
	"resumify/internal/export"
)

type fakeBrowser struct {
	lastReq export.PageRequest
	pdf     []byte
}

func (b *fakeBrowser) RenderPDF(_ context.Context, req export.PageRequest) ([]byte, error) {
	b.lastReq = req
	return b.pdf, nil
}

func TestRenderPDF_BuildsPreviewRequest(t *testing.T) {
	browser := &fakeBrowser{pdf: []byte("%PDF-")}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewExportTaskHandler(nil, nil, nil, browser, logger, "https://resumify.example/ ")

	data, err := h.renderPDF(context.Background(), 42, "tok.en.value")
	if err != nil {
		t.Fatalf("renderPDF: %v", err)
	}
	if string(data) != "%PDF-" {
		t.Fatalf("unexpected pdf bytes %q", data)
	}

	wantURL := "https://resumify.example/v1/resume/42/preview?fallback=1"
	if browser.lastReq.URL != wantURL {
		t.Fatalf("url = %q want %q", browser.lastReq.URL, wantURL)
	}
	if len(browser.lastReq.Cookies) != 1 {
		t.Fatalf("expected one cookie, got %d", len(browser.lastReq.Cookies))
	}
	cookie := browser.lastReq.Cookies[0]
	if cookie.Name != auth.AccessTokenCookie || cookie.Value != "tok.en.value" {
		t.Fatalf("cookie = %+v", cookie)
	}
	if cookie.Domain != "resumify.example" {
		t.Fatalf("cookie domain = %q", cookie.Domain)
	}
}

func TestExportNotifyMessage_WireFormat(t *testing.T) {
	msg := ExportNotifyMessage{
		Status:        "completed",
		ResumeID:      7,
		CorrelationID: "abc",
		DownloadKey:   "generated-resumes/1/x.pdf",
	}
	data, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, field := range []string{"status", "resume_id", "correlation_id", "error_code", "error_message", "download_key"} {
		if _, ok := decoded[field]; !ok {
			t.Fatalf("missing field %q in %s", field, data)
		}
	}
}

func TestExportResultCode(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    int
	}{
		{"selected template", `{"templateId":1}`, errcode.OK},
		{"no template", `{}`, errcode.RenderDegraded},
		{"unknown template", `{"templateId":99}`, errcode.RenderDegraded},
		{"malformed content", `{"templateId":`, errcode.RenderDegraded},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := exportResultCode([]byte(tc.content)); got != tc.want {
				t.Fatalf("exportResultCode(%s) = %d, want %d", tc.content, got, tc.want)
			}
		})
	}
}

package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"resumify/internal/api/middleware"
	"resumify/internal/render"
	"resumify/internal/resume"
	"resumify/internal/template"
)

// PreviewHandler 把简历渲染成 HTML 预览页。
// 这同一页面也是无头浏览器打印 PDF 的输入。
type PreviewHandler struct {
	db      *gorm.DB
	storage ObjectStore
}

// NewPreviewHandler 构造预览处理器。
func NewPreviewHandler(db *gorm.DB, storageClient ObjectStore) *PreviewHandler {
	return &PreviewHandler{db: db, storage: storageClient}
}

const unselectedPage = `<!DOCTYPE html>
<html><head><meta charset="utf-8"><title>Choose a template</title></head>
<body><main class="template-picker">
<h1>Choose a template</h1>
<p>This resume has no template selected yet. Pick one to see the preview.</p>
</main></body></html>`

const notFoundPage = `<!DOCTYPE html>
<html><head><meta charset="utf-8"><title>Template not found</title></head>
<body><main class="template-missing">
<h1>Template not found</h1>
<p>The selected template no longer exists. Pick another one to continue.</p>
</main></body></html>`

// RenderPreview 处理 GET /v1/resume/:id/preview。
// 默认严格解析模板：未选择提示选择，失效返回 404。
// fallback=1 时按导出语义回退到默认模板，保证打印管线永远有页面可渲染。
func (h *PreviewHandler) RenderPreview(c *gin.Context) {
	log := middleware.LoggerFromContext(c)

	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	model, err := findResumeForUser(c.Request.Context(), h.db, c.Param("id"), userID)
	if err != nil {
		replyResumeLookupError(c, err)
		return
	}

	var content resume.Content
	if err := json.Unmarshal(model.Content, &content); err != nil {
		log.Error("preview decode content failed", slog.Any("error", err))
		Internal(c, "failed to decode resume")
		return
	}

	var tpl *template.Template
	if c.Query("fallback") == "1" {
		tpl = template.ForPDF(content.TemplateID)
	} else {
		resolved, resolution := template.Resolve(content.TemplateID)
		switch resolution {
		case template.Unselected:
			c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(unselectedPage))
			return
		case template.NotFound:
			c.Data(http.StatusNotFound, "text/html; charset=utf-8", []byte(notFoundPage))
			return
		}
		tpl = resolved
	}

	vm := render.ToViewModel(content, render.SinkHTML, h.presignedImage(c, model.UserID, content))
	html, err := tpl.Render(vm)
	if err != nil {
		log.Error("preview render failed", slog.Int("template_id", tpl.ID), slog.Any("error", err))
		Internal(c, "failed to render preview")
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

// presignedImage 把头像的对象键换成限时 URL；外链或空值原样透传给转换层。
func (h *PreviewHandler) presignedImage(c *gin.Context, ownerID uint, content resume.Content) string {
	key := strings.TrimSpace(content.Basics.Image)
	if key == "" || !strings.HasPrefix(key, "user-assets/") {
		return ""
	}
	if !strings.HasPrefix(key, assetPrefix(ownerID)) {
		// 键指向他人资产：静默忽略，预览退回占位头像。
		return ""
	}
	signed, err := h.storage.GeneratePresignedURL(c.Request.Context(), key, 10*time.Minute)
	if err != nil {
		middleware.LoggerFromContext(c).Warn("presign avatar failed", slog.Any("error", err))
		return ""
	}
	return signed
}

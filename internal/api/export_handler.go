package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"resumify/internal/api/middleware"
	"resumify/internal/auth"
	"resumify/internal/database"
	"resumify/internal/export"
	"resumify/internal/pdf"
	"resumify/internal/resume"
)

// ExportHandler 负责同步 PDF 导出。
// 它不挂 AuthMiddleware：凭证解析失败必须在启动浏览器之前返回 401，
// 且导出请求可能只带 Cookie（新标签页直接打开下载链接）。
type ExportHandler struct {
	db            *gorm.DB
	authService   *auth.Service
	browser       export.Browser
	publicBaseURL string
	logger        *slog.Logger
}

// NewExportHandler 构造同步导出处理器。
func NewExportHandler(db *gorm.DB, authService *auth.Service, browser export.Browser, publicBaseURL string, logger *slog.Logger) *ExportHandler {
	return &ExportHandler{
		db:            db,
		authService:   authService,
		browser:       browser,
		publicBaseURL: strings.TrimRight(strings.TrimSpace(publicBaseURL), "/"),
		logger:        logger,
	}
}

// DownloadPDF 处理 GET /v1/resume/:id/pdf。
// engine=document 时走进程内文档渲染器，否则驱动无头浏览器打印预览页。
func (h *ExportHandler) DownloadPDF(c *gin.Context) {
	log := middleware.LoggerFromContext(c)

	accessToken := middleware.ResolveAccessToken(c)
	if accessToken == "" {
		log.Info("export rejected: no credentials")
		Unauthorized(c)
		return
	}

	claims, err := h.authService.ValidateToken(accessToken)
	if err != nil || claims.TokenType != "access" {
		log.Info("export rejected: invalid token")
		Unauthorized(c)
		return
	}
	userID := claims.UserID
	log = log.With(slog.Uint64("user_id", uint64(userID)))

	resumeID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		BadRequest(c, "invalid resume id")
		return
	}
	log = log.With(slog.Uint64("resume_id", resumeID))

	ctx := c.Request.Context()
	var model database.Resume
	if err := h.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", uint(resumeID), userID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 诊断日志区分"不存在"与"他人所有"，但响应一律 404，不泄露归属。
			var count int64
			h.db.WithContext(ctx).Model(&database.Resume{}).Where("id = ?", uint(resumeID)).Count(&count)
			if count > 0 {
				log.Warn("export rejected: resume belongs to another user")
			} else {
				log.Info("export rejected: resume not found")
			}
			NotFound(c, "resume not found")
			return
		}
		log.Error("export query failed", slog.Any("error", err))
		Internal(c, "failed to query resume")
		return
	}

	var pdfBytes []byte
	if c.Query("engine") == "document" {
		pdfBytes, err = h.renderDocument(model)
	} else {
		pdfBytes, err = h.renderWithBrowser(c, model.ID, accessToken)
	}
	if err != nil {
		log.Error("export failed", slog.Any("error", err))
		InternalWithMessage(c, "pdf export failed",
			"The PDF renderer could not complete the export. Please try again.")
		return
	}

	log.Info("export completed", slog.Int("pdf_bytes", len(pdfBytes)))
	filename := export.Filename(model.Title, model.ID)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

func (h *ExportHandler) renderDocument(model database.Resume) ([]byte, error) {
	var content resume.Content
	if err := json.Unmarshal(model.Content, &content); err != nil {
		return nil, fmt.Errorf("decode resume content: %w", err)
	}
	doc := pdf.BuildDocument(content, content.TemplateID)
	return pdf.Render(doc)
}

func (h *ExportHandler) renderWithBrowser(c *gin.Context, resumeID uint, accessToken string) ([]byte, error) {
	previewURL := fmt.Sprintf("%s/v1/resume/%d/preview?fallback=1", h.publicBaseURL, resumeID)

	parsed, err := url.Parse(previewURL)
	if err != nil {
		return nil, fmt.Errorf("parse preview url: %w", err)
	}

	req := export.PageRequest{
		URL: previewURL,
		Cookies: []export.Cookie{{
			Name:   auth.AccessTokenCookie,
			Value:  accessToken,
			Domain: parsed.Hostname(),
			Path:   "/",
		}},
	}
	return h.browser.RenderPDF(c.Request.Context(), req)
}

package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"resumify/internal/auth"
	"resumify/internal/database"
	"resumify/internal/errcode"
	"resumify/internal/export"
	"resumify/internal/metrics"
	"resumify/internal/resume"
	"resumify/internal/storage"
	"resumify/internal/tasks"
	"resumify/internal/template"
)

// ExportTaskHandler 消费异步 PDF 导出任务：
// 驱动无头浏览器打印预览页，上传产物并通过 Redis 通知前端。
type ExportTaskHandler struct {
	db            *gorm.DB
	storage       *storage.Client
	redisClient   *redis.Client
	browser       export.Browser
	logger        *slog.Logger
	publicBaseURL string
}

// NewExportTaskHandler 创建任务处理器。
func NewExportTaskHandler(
	db *gorm.DB,
	storageClient *storage.Client,
	redisClient *redis.Client,
	browser export.Browser,
	logger *slog.Logger,
	publicBaseURL string,
) *ExportTaskHandler {
	return &ExportTaskHandler{
		db:            db,
		storage:       storageClient,
		redisClient:   redisClient,
		browser:       browser,
		logger:        logger,
		publicBaseURL: strings.TrimRight(strings.TrimSpace(publicBaseURL), "/"),
	}
}

// ProcessTask 实现 asynq.Handler。
func (h *ExportTaskHandler) ProcessTask(ctx context.Context, t *asynq.Task) (retErr error) {
	log := h.logger

	var payload tasks.PDFExportPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		log.Error("unmarshal task payload failed", slog.Any("error", err))
		return err
	}

	log = log.With(
		slog.String("correlation_id", payload.CorrelationID),
		slog.Uint64("resume_id", uint64(payload.ResumeID)),
		slog.Uint64("user_id", uint64(payload.UserID)),
	)
	log.Info("starting pdf export task")

	var model database.Resume
	if err := h.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", payload.ResumeID, payload.UserID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warn("resume not found, skipping task")
			return nil
		}
		log.Error("query resume failed", slog.Any("error", err))
		return err
	}

	defer func() {
		if retErr == nil {
			return
		}
		if !isFinalAsynqAttempt(ctx) {
			return
		}

		notify := ExportNotifyMessage{
			Status:        "error",
			ResumeID:      model.ID,
			CorrelationID: payload.CorrelationID,
			ErrorCode:     errcode.SystemError,
			ErrorMessage:  strings.TrimSpace(retErr.Error()),
		}
		if err := h.publishNotify(ctx, payload.UserID, notify); err != nil {
			log.Error("publish export error notification failed", slog.Any("error", err))
		}
	}()

	pdfBytes, err := h.renderPDF(ctx, model.ID, payload.AccessToken)
	if err != nil {
		log.Error("render pdf failed", slog.Any("error", err))
		return err
	}
	metrics.ObservePDFSize(len(pdfBytes))

	objectName := fmt.Sprintf("generated-resumes/%d/%s.pdf", payload.UserID, uuid.NewString())
	if _, err := h.storage.UploadFile(ctx, objectName, bytes.NewReader(pdfBytes), int64(len(pdfBytes)), "application/pdf"); err != nil {
		log.Error("upload pdf to minio failed", slog.Any("error", err))
		return err
	}

	previousKey := model.PdfObjectKey
	if err := h.db.WithContext(ctx).Model(&model).Update("pdf_object_key", objectName).Error; err != nil {
		log.Error("update resume failed", slog.Any("error", err))
		return err
	}
	if previousKey != "" && previousKey != objectName {
		if err := h.storage.DeleteObject(ctx, previousKey); err != nil {
			log.Warn("delete stale pdf failed", slog.String("object_key", previousKey), slog.Any("error", err))
		}
	}

	notify := ExportNotifyMessage{
		Status:        "completed",
		ResumeID:      model.ID,
		CorrelationID: payload.CorrelationID,
		ErrorCode:     exportResultCode(model.Content),
		DownloadKey:   objectName,
	}
	if notify.ErrorCode == errcode.RenderDegraded {
		log.Warn("resume exported with fallback template")
	}
	if err := h.publishNotify(ctx, payload.UserID, notify); err != nil {
		log.Error("publish redis notification failed", slog.Any("error", err))
		return err
	}

	log.Info("pdf export task completed", slog.Int("pdf_bytes", len(pdfBytes)))
	return nil
}

func (h *ExportTaskHandler) renderPDF(ctx context.Context, resumeID uint, accessToken string) ([]byte, error) {
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
	return h.browser.RenderPDF(ctx, req)
}

func (h *ExportTaskHandler) publishNotify(ctx context.Context, userID uint, notify ExportNotifyMessage) error {
	data, err := json.Marshal(notify)
	if err != nil {
		return fmt.Errorf("marshal notification payload: %w", err)
	}
	channel := fmt.Sprintf("user_notify:%d", userID)
	if err := h.redisClient.Publish(ctx, channel, data).Err(); err != nil {
		return fmt.Errorf("publish redis notification to %q: %w", channel, err)
	}
	return nil
}

// exportResultCode 根据简历内容判断导出是否走了降级路径：
// 打印页总是带 fallback=1，模板未选或不存在时仍能出 PDF，但用的是默认模板。
func exportResultCode(content []byte) int {
	var c resume.Content
	if err := json.Unmarshal(content, &c); err != nil {
		return errcode.RenderDegraded
	}
	if _, res := template.Resolve(c.TemplateID); res != template.Resolved {
		return errcode.RenderDegraded
	}
	return errcode.OK
}

func isFinalAsynqAttempt(ctx context.Context) bool {
	retryCount, ok1 := asynq.GetRetryCount(ctx)
	maxRetry, ok2 := asynq.GetMaxRetry(ctx)
	if !ok1 || !ok2 {
		return false
	}
	return retryCount >= maxRetry
}

package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"resumify/internal/api/middleware"
	"resumify/internal/database"
	"resumify/internal/resume"
	"resumify/internal/tasks"
)

// ResumeHandler 负责简历的增删改查与异步导出入队。
type ResumeHandler struct {
	db          *gorm.DB
	asynqClient *asynq.Client
	storage     ObjectStore
	maxResumes  int
}

// NewResumeHandler 构造 ResumeHandler。
func NewResumeHandler(db *gorm.DB, asynqClient *asynq.Client, storageClient ObjectStore, maxResumes int) *ResumeHandler {
	return &ResumeHandler{
		db:          db,
		asynqClient: asynqClient,
		storage:     storageClient,
		maxResumes:  maxResumes,
	}
}

var errInvalidResumeID = errors.New("invalid resume id")

type saveResumeRequest struct {
	Title   string         `json:"title" binding:"required"`
	Content datatypes.JSON `json:"content" binding:"required"`
	Status  *string        `json:"status"`
}

type resumeListItem struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Status    string    `json:"status"`
	UpdatedAt time.Time `json:"updated_at"`
}

type resumeResponse struct {
	ID        uint           `json:"id"`
	Title     string         `json:"title"`
	Content   datatypes.JSON `json:"content"`
	Status    string         `json:"status"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// CreateResume 保存一份新的简历，超过限额则拒绝。
func (h *ResumeHandler) CreateResume(c *gin.Context) {
	var req saveResumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	if !validResumeContent(req.Content) {
		BadRequest(c, "content is not a valid resume document")
		return
	}

	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	ctx := c.Request.Context()

	var count int64
	if err := h.db.WithContext(ctx).
		Model(&database.Resume{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		Internal(c, "failed to count resumes")
		return
	}

	if h.maxResumes > 0 && count >= int64(h.maxResumes) {
		Forbidden(c, "resume limit reached")
		return
	}

	model := database.Resume{
		Title:   req.Title,
		Content: req.Content,
		UserID:  userID,
	}
	if req.Status != nil && *req.Status != "" {
		model.Status = *req.Status
	}

	if err := h.db.WithContext(ctx).Create(&model).Error; err != nil {
		Internal(c, "failed to create resume")
		return
	}

	c.JSON(http.StatusCreated, newResumeResponse(model))
}

// ListResumes 列出用户全部简历。
func (h *ResumeHandler) ListResumes(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	ctx := c.Request.Context()
	var resumes []database.Resume
	if err := h.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&resumes).Error; err != nil {
		Internal(c, "failed to list resumes")
		return
	}

	items := make([]resumeListItem, 0, len(resumes))
	for _, r := range resumes {
		items = append(items, resumeListItem{
			ID:        r.ID,
			Title:     r.Title,
			Status:    r.Status,
			UpdatedAt: r.UpdatedAt,
		})
	}

	c.JSON(http.StatusOK, items)
}

// GetResume 返回指定 ID 的简历。
func (h *ResumeHandler) GetResume(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	model, err := h.getResumeForUser(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		h.replyLookupError(c, err)
		return
	}

	c.JSON(http.StatusOK, newResumeResponse(*model))
}

// UpdateResume 覆盖指定简历。
func (h *ResumeHandler) UpdateResume(c *gin.Context) {
	var req saveResumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	if !validResumeContent(req.Content) {
		BadRequest(c, "content is not a valid resume document")
		return
	}

	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	model, err := h.getResumeForUser(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		h.replyLookupError(c, err)
		return
	}

	updates := map[string]any{
		"title":   req.Title,
		"content": req.Content,
	}
	if req.Status != nil && *req.Status != "" {
		updates["status"] = *req.Status
	}

	ctx := c.Request.Context()
	if err := h.db.WithContext(ctx).Model(model).Updates(updates).Error; err != nil {
		Internal(c, "failed to update resume")
		return
	}

	if err := h.db.WithContext(ctx).First(model, model.ID).Error; err != nil {
		Internal(c, "failed to reload resume")
		return
	}

	c.JSON(http.StatusOK, newResumeResponse(*model))
}

// DeleteResume 删除指定简历，并清理已导出的 PDF。
func (h *ResumeHandler) DeleteResume(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	model, err := h.getResumeForUser(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		h.replyLookupError(c, err)
		return
	}

	ctx := c.Request.Context()
	if err := h.db.WithContext(ctx).Delete(&database.Resume{}, model.ID).Error; err != nil {
		Internal(c, "failed to delete resume")
		return
	}

	if model.PdfObjectKey != "" {
		_ = h.storage.DeleteObject(ctx, model.PdfObjectKey)
	}

	c.Status(http.StatusNoContent)
}

// ExportResume 将 PDF 导出任务入队并立即返回 202。
// 访问令牌被放入任务载荷，Worker 用它向无头浏览器注入凭证 Cookie。
func (h *ResumeHandler) ExportResume(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	model, err := h.getResumeForUser(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		h.replyLookupError(c, err)
		return
	}

	accessToken := middleware.ResolveAccessToken(c)
	correlationID := middleware.GetCorrelationID(c)
	task, err := tasks.NewPDFExportTask(model.ID, userID, accessToken, correlationID)
	if err != nil {
		Internal(c, "failed to create task")
		return
	}

	info, err := h.asynqClient.Enqueue(task, asynq.MaxRetry(5))
	if err != nil {
		Internal(c, "failed to enqueue pdf export")
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"message": "PDF export request accepted",
		"task_id": info.ID,
	})
}

// GetDownloadLink 生成最近一次异步导出 PDF 的预签名下载链接。
func (h *ResumeHandler) GetDownloadLink(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	model, err := h.getResumeForUser(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		h.replyLookupError(c, err)
		return
	}

	if model.PdfObjectKey == "" {
		Conflict(c, "pdf not ready")
		return
	}

	signedURL, err := h.storage.GeneratePresignedURL(c.Request.Context(), model.PdfObjectKey, 5*time.Minute)
	if err != nil {
		Internal(c, "failed to generate download link")
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": signedURL})
}

func (h *ResumeHandler) replyLookupError(c *gin.Context, err error) {
	replyResumeLookupError(c, err)
}

func (h *ResumeHandler) getResumeForUser(ctx context.Context, idParam string, userID uint) (*database.Resume, error) {
	return findResumeForUser(ctx, h.db, idParam, userID)
}

func findResumeForUser(ctx context.Context, db *gorm.DB, idParam string, userID uint) (*database.Resume, error) {
	resumeID, err := strconv.ParseUint(idParam, 10, 64)
	if err != nil {
		return nil, errInvalidResumeID
	}

	var model database.Resume
	if err := db.WithContext(ctx).
		Where("id = ? AND user_id = ?", uint(resumeID), userID).
		First(&model).Error; err != nil {
		return nil, err
	}

	return &model, nil
}

func replyResumeLookupError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errInvalidResumeID):
		BadRequest(c, "invalid resume id")
	case errors.Is(err, gorm.ErrRecordNotFound):
		NotFound(c, "resume not found")
	default:
		Internal(c, "failed to query resume")
	}
}

// validResumeContent 只校验 JSON 能解码为表单结构，不做任何规范化。
func validResumeContent(raw datatypes.JSON) bool {
	if len(raw) == 0 {
		return false
	}
	var content resume.Content
	return json.Unmarshal(raw, &content) == nil
}

func userIDFromContext(c *gin.Context) (uint, bool) {
	value, exists := c.Get("userID")
	if !exists {
		return 0, false
	}

	switch v := value.(type) {
	case uint:
		return v, true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint(v), true
	case uint64:
		return uint(v), true
	case int64:
		if v < 0 {
			return 0, false
		}
		return uint(v), true
	default:
		return 0, false
	}
}

func newResumeResponse(model database.Resume) resumeResponse {
	return resumeResponse{
		ID:        model.ID,
		Title:     model.Title,
		Content:   model.Content,
		Status:    model.Status,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resumify/internal/ai"
)

// AIHandler 暴露 AI 草拟端点。
// 约定：生成失败不报 HTTP 错误，结果字符串以 "Error: " 开头，前端原样展示。
type AIHandler struct {
	service *ai.Service
}

// NewAIHandler 构造 AI 处理器；service 为 nil 表示未配置提供商。
func NewAIHandler(service *ai.Service) *AIHandler {
	return &AIHandler{service: service}
}

func (h *AIHandler) ensureConfigured(c *gin.Context) bool {
	if h.service == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "ai provider not configured"})
		return false
	}
	return true
}

type suggestSummaryRequest struct {
	Headline string   `json:"headline" binding:"required"`
	Skills   []string `json:"skills"`
}

// SuggestSummary 处理 POST /v1/ai/summary。
func (h *AIHandler) SuggestSummary(c *gin.Context) {
	if !h.ensureConfigured(c) {
		return
	}
	var req suggestSummaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	result := h.service.SuggestSummary(c.Request.Context(), req.Headline, req.Skills)
	c.JSON(http.StatusOK, gin.H{"result": result})
}

type experienceItem struct {
	Position string `json:"position" binding:"required"`
	Company  string `json:"company" binding:"required"`
}

type suggestExperienceRequest struct {
	Items []experienceItem `json:"items" binding:"required,min=1,max=20"`
}

// SuggestExperience 处理 POST /v1/ai/experience。
// 逐条顺序生成，结果与入参一一对应；单条失败不影响其余条目。
func (h *AIHandler) SuggestExperience(c *gin.Context) {
	if !h.ensureConfigured(c) {
		return
	}
	var req suggestExperienceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	inputs := make([]ai.ExperienceInput, 0, len(req.Items))
	for _, item := range req.Items {
		inputs = append(inputs, ai.ExperienceInput{
			Position: item.Position,
			Company:  item.Company,
		})
	}

	results := h.service.SuggestExperienceBatch(c.Request.Context(), inputs)
	c.JSON(http.StatusOK, gin.H{"results": results})
}

type suggestSkillsRequest struct {
	Headline string `json:"headline" binding:"required"`
}

// SuggestSkills 处理 POST /v1/ai/skills。
func (h *AIHandler) SuggestSkills(c *gin.Context) {
	if !h.ensureConfigured(c) {
		return
	}
	var req suggestSkillsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	skills := h.service.SuggestSkills(c.Request.Context(), req.Headline)
	c.JSON(http.StatusOK, gin.H{"skills": skills})
}

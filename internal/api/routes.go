package api

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"resumify/internal/ai"
	"resumify/internal/api/middleware"
	"resumify/internal/auth"
	"resumify/internal/export"
)

// Dependencies 汇集路由注册所需的外部依赖。
type Dependencies struct {
	DB          *gorm.DB
	AsynqClient *asynq.Client
	AuthService *auth.Service
	RedisClient *redis.Client
	Logger      *slog.Logger
	Storage     ObjectStore
	Browser     export.Browser
	AIService   *ai.Service

	PublicBaseURL string
	CookieDomain  string
	ClamdAddr     string
	MaxResumes    int
}

// RegisterRoutes 注册 API 路由，不包含 /api 前缀。
func RegisterRoutes(router *gin.Engine, deps Dependencies) {
	resumeHandler := NewResumeHandler(deps.DB, deps.AsynqClient, deps.Storage, deps.MaxResumes)
	previewHandler := NewPreviewHandler(deps.DB, deps.Storage)
	exportHandler := NewExportHandler(deps.DB, deps.AuthService, deps.Browser, deps.PublicBaseURL, deps.Logger)
	authHandler := NewAuthHandler(deps.DB, deps.AuthService, deps.RedisClient, deps.Logger, 10, 5, 15*time.Minute, deps.CookieDomain)
	wsHandler := NewWsHandler(deps.RedisClient, deps.AuthService, deps.Logger, nil)
	assetHandler := NewAssetHandler(deps.Storage, deps.Logger, deps.ClamdAddr)
	aiHandler := NewAIHandler(deps.AIService)
	authMiddleware := middleware.AuthMiddleware(deps.AuthService)

	v1 := router.Group("/v1")
	{
		v1.GET("/ws", wsHandler.HandleConnection)
		v1.GET("/templates", ListTemplates)

		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/refresh", authHandler.Refresh)
			authGroup.POST("/logout", authMiddleware, authHandler.Logout)
		}

		resumeGroup := v1.Group("/resume")
		{
			// 同步导出自行解析凭证：必须在拉起浏览器之前完成 401 判定。
			resumeGroup.GET("/:id/pdf", exportHandler.DownloadPDF)

			protected := resumeGroup.Group("")
			protected.Use(authMiddleware)
			{
				protected.POST("", resumeHandler.CreateResume)
				protected.GET("", resumeHandler.ListResumes)
				protected.GET("/:id", resumeHandler.GetResume)
				protected.PUT("/:id", resumeHandler.UpdateResume)
				protected.DELETE("/:id", resumeHandler.DeleteResume)
				protected.GET("/:id/preview", previewHandler.RenderPreview)
				protected.POST("/:id/export", resumeHandler.ExportResume)
				protected.GET("/:id/download-link", resumeHandler.GetDownloadLink)
			}
		}

		aiGroup := v1.Group("/ai")
		aiGroup.Use(authMiddleware)
		{
			aiGroup.POST("/summary", aiHandler.SuggestSummary)
			aiGroup.POST("/experience", aiHandler.SuggestExperience)
			aiGroup.POST("/skills", aiHandler.SuggestSkills)
		}

		assetGroup := v1.Group("/assets")
		assetGroup.Use(authMiddleware)
		{
			assetGroup.POST("/upload", assetHandler.UploadAsset)
			assetGroup.GET("", assetHandler.ListAssets)
			assetGroup.GET("/view", assetHandler.GetAssetURL)
		}
	}
}

package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"resumify/internal/ai"
	"resumify/internal/api"
	"resumify/internal/auth"
	"resumify/internal/config"
	"resumify/internal/database"
	"resumify/internal/export"
	"resumify/internal/storage"
)

func main() {
	cfg := config.MustLoad()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	db, err := database.InitDatabase(cfg.Database)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}
	if err := db.AutoMigrate(&database.User{}, &database.Resume{}); err != nil {
		log.Fatalf("auto migrate: %v", err)
	}
	logger.Info("database ready",
		slog.String("host", cfg.Database.Host),
		slog.String("name", cfg.Database.Name),
	)

	authService, err := auth.NewService(
		[]byte(cfg.Auth.PrivateKeyPEM),
		[]byte(cfg.Auth.PublicKeyPEM),
		cfg.Auth.AccessTTL(),
		cfg.Auth.RefreshTTL(),
	)
	if err != nil {
		log.Fatalf("init auth service: %v", err)
	}

	storageClient, err := storage.NewClient(cfg.MinIO)
	if err != nil {
		log.Fatalf("init storage client: %v", err)
	}
	logger.Info("storage ready", slog.String("bucket", cfg.MinIO.Bucket))

	redisAddr := fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port)
	redisClient := redis.NewClient(&redis.Options{Addr: redisAddr})
	defer redisClient.Close()

	asynqClient := asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr})
	defer asynqClient.Close()

	aiService := buildAIService(cfg.AI, logger)
	browser := export.NewRodBrowser(logger)

	router := api.NewRouter(logger)
	api.RegisterRoutes(router, api.Dependencies{
		DB:            db,
		AsynqClient:   asynqClient,
		AuthService:   authService,
		RedisClient:   redisClient,
		Logger:        logger,
		Storage:       storageClient,
		Browser:       browser,
		AIService:     aiService,
		PublicBaseURL: cfg.App.PublicBaseURL,
		CookieDomain:  cfg.App.CookieDomain,
		ClamdAddr:     cfg.App.ClamdAddr,
		MaxResumes:    cfg.App.MaxResumes,
	})

	address := fmt.Sprintf(":%d", cfg.API.Port)
	logger.Info("api listening", slog.String("address", address))
	if err := router.Run(address); err != nil {
		log.Fatalf("failed to start api server: %v", err)
	}
}

func buildAIService(cfg config.AIConfig, logger *slog.Logger) *ai.Service {
	switch cfg.Provider {
	case "openai":
		return ai.NewService(ai.NewOpenAIProvider(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel), logger)
	case "zhipu":
		provider, err := ai.NewZhipuProvider(cfg.ZhipuAPIKey, cfg.ZhipuModel)
		if err != nil {
			log.Fatalf("init zhipu provider: %v", err)
		}
		return ai.NewService(provider, logger)
	default:
		logger.Info("ai drafting disabled: no provider configured")
		return nil
	}
}

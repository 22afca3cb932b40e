package bootstrap

import (
	"EnvWatchAPI/internal/adapter"
	"EnvWatchAPI/internal/config"
	"EnvWatchAPI/internal/controller"
	"EnvWatchAPI/internal/middleware"
	"EnvWatchAPI/internal/repository"
	"EnvWatchAPI/internal/service"
	"log/slog"
	"net/http"
	"os"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"
)

func Init(cfg *config.AppConfig, db *mongo.Database, validate *validator.Validate, s3Client *s3.Client, httpClient *http.Client, chiMux *chi.Mux) {
	storageAdapter := adapter.NewStorageAdapter(cfg, s3Client)
	classifierAdapter := adapter.NewClassifierAdapter(cfg, httpClient)

	var cache service.Cache
	var rateLimitRepo *repository.RateLimitRepository
	if cfg.RedisHost != "" {
		redisAdapter, err := adapter.NewRedisAdapter(cfg)
		if err == nil {
			cache = redisAdapter
			rateLimitRepo = repository.NewRateLimitRepository(redisAdapter)
		}
	}

	reportRepo := repository.NewReportRepository(db)

	reportService := service.NewReportService(reportRepo, storageAdapter, classifierAdapter, cache, cfg, validate)
	reportController := controller.NewReportController(reportService)

	verifier, err := service.NewStaticCredentialVerifier(cfg.AdminUsername, cfg.AdminPassword)
	if err != nil {
		slog.Error("Failed to seed admin credentials", "error", err)
		os.Exit(1)
	}
	authService := service.NewAuthService(verifier, cfg, validate)
	authController := controller.NewAuthController(authService)

	authMiddleware := middleware.NewAuthMiddleware(authService)
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(rateLimitRepo)

	route := NewRoute(cfg, chiMux, reportController, authController, authMiddleware, rateLimitMiddleware)
	route.Register()
}

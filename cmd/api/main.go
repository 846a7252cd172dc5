package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"

	"go-interview-backend/config"
	_ "go-interview-backend/docs" // Important for Swagger
	v1 "go-interview-backend/internal/delivery/http/v1"
	"go-interview-backend/internal/repository/postgres"
	"go-interview-backend/internal/usecase"
	"go-interview-backend/pkg/auth"
	"go-interview-backend/pkg/database"
	"go-interview-backend/pkg/logger"
	"go-interview-backend/pkg/redis"
	"go-interview-backend/pkg/storage"
	"go-interview-backend/pkg/upload"
)

// @title           Interview Platform API
// @version         1.0
// @description     Candidate profile backend for the AI interview platform.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting interview backend", "port", cfg.Port)

	// 3. Setup Database
	if cfg.RunMigrations {
		if err := database.RunMigrations(cfg.DBUrl); err != nil {
			logger.Log.Error("Failed to run migrations", "error", err)
			os.Exit(1)
		}
	}

	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Redis (profile cache + upload rate limits, optional)
	if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
		logger.Log.Warn("Redis unavailable, cache and upload limits disabled", "error", err)
	}

	// 5. Setup Media Uploader
	uploader, err := storage.NewCloudinaryUploader(
		cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, cfg.CloudinaryFolder)
	if err != nil {
		logger.Log.Error("Failed to init Cloudinary", "error", err)
		os.Exit(1)
	}

	// 6. Setup Repositories and UseCases
	userRepo := postgres.NewUserRepository(dbPool)
	candidateRepo := postgres.NewCandidateRepository(dbPool)

	validate := validator.New()
	authUC := usecase.NewAuthUsecase(userRepo)
	candidateUC := usecase.NewCandidateUsecase(
		userRepo, candidateRepo, uploader, redis.NewCache(), validate,
		time.Duration(cfg.ProfileCacheTTLSeconds)*time.Second)

	// 7. Setup Auth Provider (JWKS)
	jwksProvider := auth.NewProvider(cfg.JWKSURL())

	// 8. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:        authUC,
		CandidateUC:   candidateUC,
		JWKSProvider:  jwksProvider,
		UploadLimiter: upload.NewLimiter(cfg.UploadsPerMinute),
		Config:        cfg,
	})

	// 9. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}

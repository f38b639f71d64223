package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"teammatch-backend/config"
	v1 "teammatch-backend/internal/delivery/http/v1"
	"teammatch-backend/internal/repository/postgres"
	"teammatch-backend/internal/usecase"
	"teammatch-backend/pkg/database"
	"teammatch-backend/pkg/logger"
	"teammatch-backend/pkg/redis"
	"teammatch-backend/pkg/token"

	"github.com/go-playground/validator/v10"
)

func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init(cfg.LogLevel)
	logger.Log.Info("Starting teammatch backend", "port", cfg.Port)

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Redis (optional, rate limiting falls back to in-memory)
	if err := redis.Initialize(redis.Config{URL: cfg.RedisURL}); err != nil {
		logger.Log.Warn("Redis unavailable, using in-memory rate limiting", "error", err)
	}

	// 5. Setup Repositories
	userRepo := postgres.NewUserRepository(dbPool)
	openingRepo := postgres.NewOpeningRepository(dbPool)
	applicationRepo := postgres.NewApplicationRepository(dbPool)
	teamRepo := postgres.NewTeamRepository(dbPool)
	dmRepo := postgres.NewDirectMessageRepository(dbPool)

	// 6. Setup UseCases
	validate := validator.New()
	tokens := token.NewManager(cfg.JWTSecret, cfg.AccessTTL, cfg.RefreshTTL)
	authUC := usecase.NewAuthUsecase(userRepo, tokens)
	userUC := usecase.NewUserUsecase(userRepo, openingRepo, validate)
	openingUC := usecase.NewOpeningUsecase(openingRepo)
	applicationUC := usecase.NewApplicationUsecase(applicationRepo, openingRepo)
	teamUC := usecase.NewTeamUsecase(teamRepo)
	chatUC := usecase.NewChatUsecase(dmRepo, userRepo)

	// 7. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:        authUC,
		UserUC:        userUC,
		OpeningUC:     openingUC,
		ApplicationUC: applicationUC,
		TeamUC:        teamUC,
		ChatUC:        chatUC,
		Tokens:        tokens,
		Config:        cfg,
	})

	// 8. Start Server
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

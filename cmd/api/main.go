package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/honeilabs/hap-intel/api/internal/auth"
	"github.com/honeilabs/hap-intel/api/internal/config"
	"github.com/honeilabs/hap-intel/api/internal/database"
	"github.com/honeilabs/hap-intel/api/internal/gemini"
	"github.com/honeilabs/hap-intel/api/internal/handler"
	middlewarepkg "github.com/honeilabs/hap-intel/api/internal/middleware"
	"github.com/honeilabs/hap-intel/api/internal/repository"
	"github.com/honeilabs/hap-intel/api/internal/router"
	"github.com/honeilabs/hap-intel/api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := buildLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	httpClient := &http.Client{Timeout: 90 * time.Second}

	geminiClient := gemini.NewClient(httpClient, cfg.GeminiAPIKey, cfg.GeminiBaseURL, cfg.GeminiModel, cfg.GeminiTimeout, logger)
	profileService := service.NewProfileService(geminiClient, cfg.PhoneRegion, logger)
	verifier := service.NewEmailVerifier(httpClient, cfg.EmailReputationAPIKey, cfg.EmailReputationBaseURL, cfg.VerifyTimeout)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)

	var historyRepo repository.HistoryRepository
	handlers := router.Handlers{
		VerifyEmail: handler.NewVerifyEmailHandler(verifier, logger),
	}

	if cfg.DatabaseURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		pool, err := database.Connect(ctx, cfg.DatabaseURL)
		cancel()
		if err != nil {
			log.Fatalf("failed to connect database: %v", err)
		}
		defer pool.Close()

		analystsRepo := repository.NewPGXAnalystsRepository(pool)
		historyRepo = repository.NewPGXHistoryRepository(pool)

		seedCtx, seedCancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := service.EnsureSeedAnalyst(seedCtx, analystsRepo, cfg.SeedAnalystEmail, cfg.SeedAnalystPassword, logger); err != nil {
			log.Fatalf("failed to seed analyst account: %v", err)
		}
		seedCancel()

		authService := service.NewAuthService(analystsRepo, jwtManager)
		handlers.Auth = handler.NewAuthHandler(authService, logger)
		handlers.History = handler.NewHistoryHandler(historyRepo, logger)
	} else {
		logger.Warn("DATABASE_URL not set, search history and login disabled")
	}

	handlers.Profile = handler.NewProfileHandler(profileService, historyRepo, logger)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middlewarepkg.RequestID())
	e.Use(middlewarepkg.Logging(logger))
	e.Use(echoMiddleware.Recover())

	router.Register(e, cfg, jwtManager, handlers)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- e.Start(":" + cfg.Port)
	}()
	logger.Info("server started", zap.String("port", cfg.Port))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info("received signal, shutting down", zap.String("signal", sig.String()))
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
		return
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}

func buildLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}

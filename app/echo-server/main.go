package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"aidMatch/app/echo-server/metrics"
	"aidMatch/app/echo-server/router"
	"aidMatch/business/bandit"
	"aidMatch/business/recommendation"
	"aidMatch/business/scoring"
	"aidMatch/internal/embedding/gemini"
	"aidMatch/internal/middleware"
	psqlRepo "aidMatch/internal/repository/postgres"
	"aidMatch/internal/rest"
	"aidMatch/pkg/config"
	"aidMatch/pkg/database"
	"aidMatch/pkg/logger"
	recoMetrics "aidMatch/pkg/metrics"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	defer func() { _ = logger.Sync() }()
	logger.Info("Starting aidMatch", "version", cfg.App.Version, "environment", cfg.App.Environment)

	metrics.Init()
	recoMetrics.Init()

	engineCfg := engineConfig(cfg)
	if err := engineCfg.Validate(); err != nil {
		logger.Fatal("Invalid engine config", "error", err)
	}

	var opts []recommendation.Option
	if cfg.Gemini.APIKey != "" {
		embedder, err := gemini.NewEmbedder(cfg.Gemini.APIKey, cfg.Gemini.EmbeddingModel, cfg.Gemini.Timeout)
		if err != nil {
			logger.Fatal("Failed to init gemini embedder", "error", err)
		}
		opts = append(opts, recommendation.WithSkillMatcher(scoring.NewSemanticMatcher(embedder, scoring.WithEmbeddingCacheSize(cfg.Gemini.CacheSize))))
		logger.Info("Semantic skill matching enabled", "model", embedder.Model())
	} else {
		logger.Info("GEMINI_API_KEY not set, using rule based skill matching")
	}

	engine := recommendation.NewEngine(engineCfg, opts...)

	// Audit log is optional
	var events rest.EventRecorder
	if cfg.Database.Enabled {
		db, err := database.InitPostgres(cfg)
		if err != nil {
			logger.Fatal("Failed to connect to database", "error", err)
		}

		eventRepo := psqlRepo.NewEventRepository(db)
		migrateCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		err = eventRepo.Migrate(migrateCtx)
		cancel()
		if err != nil {
			logger.Fatal("Failed to migrate event tables", "error", err)
		}

		events = eventRepo
		logger.Info("Database connected successfully")
	}

	// Init handler
	recommendationHandler := rest.NewRecommendationHandler(engine, events)
	healthHandler := rest.NewHealthHandler()

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(middleware.TraceID())
	e.Use(metrics.Middleware())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderXRequestID},
	}))

	// Setup routes
	api := e.Group("/api/v1")
	router.SetRecommendationRoutes(api, recommendationHandler)
	router.SetHealthRoutes(e, healthHandler)
	router.SetMetricsRoutes(e, echo.WrapHandler(promhttp.Handler()))

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	stats := engine.Statistics()
	logger.Info("Server stopped", "epsilon", stats.Epsilon, "ab_test_variant", stats.ABTestVariant)
}

func engineConfig(cfg *config.Config) recommendation.Config {
	return recommendation.Config{
		Scoring: scoring.Config{
			Weights: scoring.Weights{
				Location:     cfg.Scoring.WeightLocation,
				Skill:        cfg.Scoring.WeightSkill,
				Availability: cfg.Scoring.WeightAvailability,
				Priority:     cfg.Scoring.WeightPriority,
				Historical:   cfg.Scoring.WeightHistorical,
			},
			ColdStartBonus:  cfg.Scoring.ColdStartBonus,
			MinInteractions: cfg.Scoring.MinInteractions,
			MaxDistance:     cfg.Scoring.MaxDistance,
		},
		Bandit: bandit.Config{
			InitialEpsilon: cfg.Bandit.Epsilon,
			EpsilonDecay:   cfg.Bandit.EpsilonDecay,
			MinEpsilon:     cfg.Bandit.MinEpsilon,
		},
		ABBoostFactor:    cfg.Engine.ABBoostFactor,
		ABEpsilonCeiling: cfg.Engine.ABEpsilonCeiling,
		ScoringWorkers:   cfg.Engine.ScoringWorkers,
	}
}

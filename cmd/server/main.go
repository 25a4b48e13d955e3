package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/srichai/gradebench/internal/config"
	"github.com/srichai/gradebench/internal/handler"
	"github.com/srichai/gradebench/internal/idgen"
	"github.com/srichai/gradebench/internal/logger"
	"github.com/srichai/gradebench/internal/router"
	"github.com/srichai/gradebench/internal/scoring"
	"github.com/srichai/gradebench/internal/seed"
	"github.com/srichai/gradebench/internal/service"
	"github.com/srichai/gradebench/internal/store"
	"github.com/srichai/gradebench/internal/validator"
	ws "github.com/srichai/gradebench/internal/websocket"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting GradeBench")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	// ─── Initialize Core State ─────────────────────────────────────────
	// Everything lives in memory; state is process-lifetime only.
	gen := idgen.New(0)
	engine := scoring.NewEngine(cfg.ScoringSeed)
	examStore := store.New(gen, log)

	hub := ws.NewHub(log)
	examStore.SetStatsListener(hub.Broadcast)

	if cfg.SeedDemoData {
		seed.Load(examStore, gen, log)
	}

	// ─── Initialize Services ──────────────────────────────────────────
	authService, err := service.NewAuthService(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize auth service")
	}
	examService := service.NewExamService(examStore, log)
	questionService := service.NewQuestionService(examStore)
	gradingService := service.NewGradingService(examStore, engine, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Exam:     handler.NewExamHandler(examService),
		Question: handler.NewQuestionHandler(questionService),
		Grading:  handler.NewGradingHandler(gradingService),
		Monitor:  handler.NewMonitorHandler(examService, hub, log, cfg.AllowedOrigins),
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Forced shutdown")
	}

	log.Info().Msg("Server stopped")
}

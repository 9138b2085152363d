package main

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/psicogestion/practice-api/internal/api/router"
	"github.com/psicogestion/practice-api/internal/appointments"
	"github.com/psicogestion/practice-api/internal/assistant"
	"github.com/psicogestion/practice-api/internal/config"
	"github.com/psicogestion/practice-api/internal/dashboard"
	"github.com/psicogestion/practice-api/internal/dictation"
	"github.com/psicogestion/practice-api/internal/finance"
	"github.com/psicogestion/practice-api/internal/observability/metrics"
	"github.com/psicogestion/practice-api/internal/patients"
	"github.com/psicogestion/practice-api/internal/seed"
	"github.com/psicogestion/practice-api/internal/session"
	"github.com/psicogestion/practice-api/pkg/logging"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting practice API server", "env", cfg.Env, "port", cfg.Port)

	// Repositories.
	patientRepo := patients.NewInMemoryRepository()
	apptRepo := appointments.NewInMemoryRepository()
	txRepo := finance.NewInMemoryRepository()
	if cfg.SeedDemoData {
		seed.Demo(patientRepo, apptRepo, txRepo)
		logger.Info("demo dataset loaded")
	}

	// Session store: Redis when configured, process memory otherwise.
	var sessionStore session.Store = session.NewMemoryStore()
	if cfg.RedisAddr != "" {
		opts := &redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword}
		if cfg.RedisTLS {
			opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		sessionStore = session.NewRedisStore(redis.NewClient(opts), cfg.SessionKey)
		logger.Info("using redis session store", "addr", cfg.RedisAddr)
	}

	// Assistant. Without an API key every operation degrades to its fallback.
	registry := prometheus.NewRegistry()
	assistantMetrics := metrics.NewAssistantMetrics(registry)

	var llm assistant.Client
	if cfg.GeminiAPIKey != "" {
		gemini, err := assistant.NewGeminiClient(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModelID)
		if err != nil {
			logger.Error("failed to create gemini client", "error", err)
			os.Exit(1)
		}
		defer gemini.Close()
		llm = gemini
		logger.Info("gemini client ready", "model", cfg.GeminiModelID)
	} else {
		logger.Warn("GEMINI_API_KEY not set, assistant runs in fallback mode")
	}
	assistantSvc := assistant.NewService(llm, assistantMetrics, logger)

	// Handlers.
	routerCfg := &router.Config{
		Logger:              logger,
		SessionStore:        sessionStore,
		SessionHandler:      session.NewHandler(sessionStore, logger),
		PatientsHandler:     patients.NewHandler(patientRepo, apptRepo, logger),
		AppointmentsHandler: appointments.NewHandler(apptRepo, patientRepo, assistantSvc, logger),
		FinanceHandler:      finance.NewHandler(txRepo, assistantSvc, assistantSvc, logger),
		AssistantHandler:    assistant.NewHandler(assistantSvc),
		DashboardHandler:    dashboard.NewHandler(patientRepo, apptRepo, txRepo),
		Dictation:           dictation.NewUnavailable(),
		MetricsHandler:      promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		CORSAllowedOrigins:  cfg.CORSAllowedOrigins,
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router.New(routerCfg),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}

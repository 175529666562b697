package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/fdonboard/backend/docs"
	"github.com/fdonboard/backend/internal/config"
	"github.com/fdonboard/backend/internal/handler"
	"github.com/fdonboard/backend/internal/importer"
	"github.com/fdonboard/backend/internal/logger"
	"github.com/fdonboard/backend/internal/repository"
	"github.com/fdonboard/backend/internal/scheduler"
	"github.com/fdonboard/backend/internal/service"
	"github.com/fdonboard/backend/pkg/currency"
)

// @title FD Onboarding API
// @version 1.0
// @description Onboard banks and their fixed-deposit plans, bulk import plans from spreadsheets,
// @description and calculate payouts for maturity and premature withdrawal.

// @contact.name API Support
// @contact.email support@fdonboard.io

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api

const shutdownTimeout = 30 * time.Second

func main() {
	config.LoadDotEnv()
	cfg := config.Load()

	slogger := logger.Configure(cfg.Env, cfg.LogLevel)

	db, err := sqlx.Connect("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() { _ = db.Close() }()

	// Initialize repositories
	bankRepo := repository.NewBankRepository(db)
	planRepo := repository.NewPlanRepository(db)
	uploadRepo := repository.NewUploadRepository(db)

	// Import pipeline and its worker pool
	pipeline := importer.NewPipeline(uploadRepo, planRepo, bankRepo)
	runner := importer.NewRunner(pipeline, cfg.Import.Workers, cfg.Import.QueueSize)
	runner.Start(context.Background())

	// Initialize services
	bankService := service.NewBankService(bankRepo)
	planService := service.NewPlanService(planRepo, bankRepo, currency.Parse(cfg.Currency))
	importService := service.NewImportService(uploadRepo, bankRepo, runner, pipeline, cfg.Import)
	uploadService := service.NewUploadService(uploadRepo)
	reportService := service.NewReportService(uploadService, bankRepo)

	// Initialize handlers
	healthHandler := handler.NewHealthHandler(db)
	bankHandler := handler.NewBankHandler(bankService, planService)
	planHandler := handler.NewPlanHandler(planService)
	importHandler := handler.NewImportHandler(importService, cfg.Import.MaxUploadSize)
	uploadHandler := handler.NewUploadHandler(uploadService, reportService)

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(handler.RequestLogger)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler.Health)

		// Banks
		r.Get("/banks", bankHandler.List)
		r.Post("/banks", bankHandler.Create)
		r.Get("/banks/{id}", bankHandler.Get)
		r.Put("/banks/{id}", bankHandler.Update)
		r.Delete("/banks/{id}", bankHandler.Delete)
		r.Patch("/banks/{id}/toggle-active", bankHandler.ToggleActive)
		r.Get("/banks/{id}/plans", bankHandler.ListPlans)

		// FD plans
		r.Get("/plans", planHandler.List)
		r.Post("/plans", planHandler.Create)
		r.Get("/plans/{id}", planHandler.Get)
		r.Put("/plans/{id}", planHandler.Update)
		r.Delete("/plans/{id}", planHandler.Delete)
		r.Get("/plans/{id}/calculate", planHandler.Calculate)
		r.Post("/plans/{id}/conditions", planHandler.AddCondition)
		r.Delete("/plans/{id}/conditions/{conditionId}", planHandler.DeleteCondition)

		// Bulk import
		r.Post("/imports", importHandler.Import)
		r.Post("/imports/validate", importHandler.Validate)
		r.Get("/imports/template", importHandler.Template)

		// Upload ledger
		r.Get("/uploads", uploadHandler.List)
		r.Get("/uploads/{id}", uploadHandler.Get)
		r.Get("/uploads/{id}/report.csv", uploadHandler.ReportCSV)
		r.Get("/uploads/{id}/report.pdf", uploadHandler.ReportPDF)
	})

	// Stale upload sweeper
	sweeper := scheduler.New(scheduler.Config{
		Schedule:   cfg.SweeperSchedule,
		StaleAfter: cfg.StaleUploadAfter,
		Timeout:    time.Minute,
		Enabled:    cfg.SweeperEnabled,
	}, uploadRepo, slogger)
	if err := sweeper.Start(); err != nil {
		slogger.Error("Failed to start upload sweeper", slog.String("error", err.Error()))
	}

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Handle graceful shutdown
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		slogger.Info("Shutting down server...")

		// Stop the sweeper first
		<-sweeper.Stop().Done()

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			slogger.Error("Server shutdown error", slog.String("error", err.Error()))
		}

		// Let queued imports finish before the database closes
		if err := runner.Shutdown(ctx); err != nil {
			slogger.Error("Import runner did not drain", slog.String("error", err.Error()))
		}
	}()

	slogger.Info("Server starting", slog.String("port", cfg.Port), slog.String("env", cfg.Env))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("Server failed: %v", err)
		return
	}
	<-stopped
}

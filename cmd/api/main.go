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

	"scheduling/internal/app"
	"scheduling/internal/config"
	"scheduling/internal/database"
	"scheduling/internal/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// @title						Scheduling API
// @version					1.0
// @description				Appointment scheduling: customers book service items with staff inside weekly availability windows.
// @BasePath					/api/v1
// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	lg := logger.New(cfg.LogLevel)
	defer func() { _ = lg.Sync() }()

	if cfg.IsProdLike() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(cfg.DatabaseURL, lg)
	if err != nil {
		lg.Fatal("db connect failed", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		lg.Fatal("migration failed", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	counters, closeCounters, err := app.NewCounterStore(ctx, cfg, lg)
	if err != nil {
		lg.Fatal("rate limiter store", zap.Error(err))
	}
	defer func() { _ = closeCounters() }()

	mailer, err := app.NewMailer(cfg, lg)
	if err != nil {
		lg.Fatal("mailer", zap.Error(err))
	}

	phones, err := app.NewPhoneVerifier(cfg, lg)
	if err != nil {
		lg.Fatal("phone verifier", zap.Error(err))
	}

	router := app.NewRouter(app.Deps{
		Config:   cfg,
		DB:       db,
		Log:      lg,
		Mailer:   mailer,
		Phones:   phones,
		Counters: counters,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		lg.Info("http server listening", zap.String("addr", cfg.HTTPAddr), zap.String("env", cfg.AppEnv))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Fatal("http server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	lg.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Error("graceful shutdown failed", zap.Error(err))
	}
}

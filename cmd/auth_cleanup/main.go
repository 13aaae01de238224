package main

import (
	"context"
	"log"
	"time"

	"scheduling/internal/config"
	"scheduling/internal/database"
	"scheduling/internal/pkg/logger"
	"scheduling/internal/repository"

	"go.uber.org/zap"
)

// Deletes expired or consumed email verification codes. Meant to run from cron.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	lg := logger.New(cfg.LogLevel)
	defer func() { _ = lg.Sync() }()

	db, err := database.Connect(cfg.DatabaseURL, lg)
	if err != nil {
		lg.Fatal("db connect failed", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	n, err := repository.NewVerificationRepository(db).DeleteStale(ctx, time.Now())
	if err != nil {
		lg.Fatal("cleanup email verification codes failed", zap.Error(err))
	}
	lg.Info("auth cleanup completed", zap.Int64("email_verification_codes", n))
}

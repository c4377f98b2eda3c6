package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/PMCGrupo4/handwritely-excelizer-73/internal/common"
	"github.com/PMCGrupo4/handwritely-excelizer-73/internal/export"
	"github.com/PMCGrupo4/handwritely-excelizer-73/internal/ocr"
	"github.com/PMCGrupo4/handwritely-excelizer-73/internal/repository"
	"github.com/PMCGrupo4/handwritely-excelizer-73/internal/server"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	pool, err := repository.Open(ctx, repository.Config{
		DSN:             cfg.Database.DSN,
		MaxConns:        cfg.Database.MaxConns,
		MinConns:        cfg.Database.MinConns,
		MaxConnLifetime: cfg.Database.MaxConnLifetime,
		MaxConnIdleTime: cfg.Database.MaxConnIdleTime,
		DialTimeout:     cfg.Database.DialTimeout,
	}, logger)
	if err != nil {
		logger.Error("creating DB pool", "error", err)
		os.Exit(1)
	}
	defer repository.Close(pool, logger)

	if err := repository.HealthCheck(ctx, pool, cfg.Database.DialTimeout, logger); err != nil {
		logger.Error("DB health failed", "error", err)
		os.Exit(1)
	}

	app := server.New(server.Deps{
		OCR:      ocr.NewClient(ocr.Config{Endpoint: cfg.OCR.Endpoint, Timeout: cfg.OCR.Timeout}, logger),
		Commands: repository.NewCommandRepository(pool, logger),
		Exporter: export.NewService(logger),
		Logger:   logger,
	})

	go func() {
		logger.Info("http serving", "addr", cfg.Server.HTTPAddr)
		if err := app.Listen(cfg.Server.HTTPAddr); err != nil {
			logger.Error("http serve", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")
	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		logger.Error("shutdown", "error", err)
	}
}

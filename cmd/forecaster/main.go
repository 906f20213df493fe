package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "forecaster/internal/api/http"
	"forecaster/internal/audio"
	"forecaster/internal/cache"
	"forecaster/internal/config"
	"forecaster/internal/forecast"
	"forecaster/internal/genai"
	"forecaster/internal/openmeteo"
	"forecaster/internal/player"
	"forecaster/internal/scheduler"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ai, err := genai.New(genai.Config{
		APIKey:      cfg.GenAIKey,
		TextModel:   cfg.TextModel,
		SpeechModel: cfg.SpeechModel,
		Voice:       cfg.Voice,
		Timeout:     cfg.GenAITimeout,
	})
	if err != nil {
		log.Fatalf("failed to create generative AI client: %v", err)
	}

	service := forecast.NewService(
		cache.NewForecastCache(cfg.CacheDir),
		cache.NewHistoryCache(cfg.CacheDir),
		openmeteo.NewForecastClient("", cfg.HTTPTimeout),
		openmeteo.NewArchiveClient("", cfg.HTTPTimeout),
		ai,
		ai,
		audio.WriteWAV,
		cfg.CacheDir,
		nil,
	)

	if cfg.WarmEnabled {
		warmer := scheduler.New(service, cfg.WarmInterval)
		if err := warmer.Start(); err != nil {
			log.Fatalf("failed to start cache warmer: %v", err)
		}
		defer warmer.Stop()
	}

	app := fiber.New(fiber.Config{
		AppName:               "forecaster",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "forecaster",
		})
	})

	httpapi.RegisterRoutes(app, service, player.New(cfg.PlayerCommand))

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("fiber server stopped", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("error during shutdown", "error", err)
	}
}

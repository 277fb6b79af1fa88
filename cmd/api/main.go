package main

import (
	"context"
	"fmt"
	"time"

	"texture-matcher/config"
	"texture-matcher/internal/api/healthcheck"
	"texture-matcher/internal/api/match"
	"texture-matcher/internal/core/backend"
	"texture-matcher/internal/core/catalog"
	"texture-matcher/internal/middleware"
	"texture-matcher/pkg/logger"

	"github.com/gofiber/fiber/v3"
)

func main() {
	if err := config.Init("config.yaml"); err != nil {
		logger.Fatal(err, "load config")
	}
	cfg := config.Cfg
	logger.Configure(cfg)

	ctx := context.Background()
	matcher, info, err := backend.New(ctx, cfg)
	if err != nil {
		logger.Fatal(err, "init matcher backend")
	}
	cat, err := catalog.Open(ctx, cfg)
	if err != nil {
		logger.Fatal(err, "load catalog")
	}
	logger.ForModule(config.ModuleServer).WithFields(map[string]interface{}{
		"backend":    info.Backend,
		"model":      info.Model,
		"candidates": len(cat.Candidates),
	}).Info("matcher ready")

	app := fiber.New(fiber.Config{
		AppName:     cfg.Server.AppName,
		BodyLimit:   cfg.Server.BodyLimit,
		Concurrency: cfg.Server.Concurrency,
	})
	middleware.Register(app, cfg.Server.Concurrency)

	// routes
	healthcheck.RegisterRoutes(app, info)
	timeout := time.Duration(cfg.Matcher.TimeoutSeconds) * time.Second
	match.RegisterRoutes(app, match.NewHandler(matcher, cat.Candidates, timeout))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	if err := app.Listen(addr); err != nil {
		logger.Error(err, "server error")
	}
}

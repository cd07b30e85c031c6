package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"infographic/internal/http/handlers"
	httpapi "infographic/internal/http/httpapi"
	"infographic/internal/infra"
	"infographic/internal/orchestrator"
	"infographic/internal/pipeline"
	"infographic/internal/render"
	"infographic/internal/session"
)

func main() {
	// Muat .env (opsional)
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLoggerWithFile(cfg.AppEnv, cfg.LogFile)

	pipe, err := pipeline.New(cfg, &logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to configure backends")
	}
	renderer, err := render.New()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to parse templates")
	}

	sessions := session.NewStore(cfg.SessionTTL, func() *orchestrator.Orchestrator {
		return pipe.NewOrchestrator(nil)
	}, &logger)

	app := handlers.NewApp(cfg, &logger, sessions, renderer)
	router := httpapi.NewRouter(app, cfg, logger)
	server := infra.NewHTTPServer(cfg, router)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info().
		Str("addr", server.Addr()).
		Str("provider", cfg.ExtractProvider).
		Bool("background", cfg.BackgroundEnabled).
		Msg("API listening")
	if err := server.Run(ctx); err != nil {
		logger.Fatal().Err(err).Msg("http server failed")
	}
	logger.Info().Msg("server stopped")
}

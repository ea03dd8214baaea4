package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/anythingboes/studio-chat/internal/config"
	"github.com/anythingboes/studio-chat/internal/handler/widget"
	"github.com/anythingboes/studio-chat/internal/logging"
	"github.com/anythingboes/studio-chat/internal/server"
	"github.com/anythingboes/studio-chat/internal/service/answer"
	"github.com/anythingboes/studio-chat/internal/service/chat"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger := logging.New(cfg.Log.Level, cfg.Log.Format)
	log.Logger = logger
	if envErr != nil {
		logger.Debug().Err(envErr).Msg("no .env file, using system environment variables only")
	}

	baseURL, err := cfg.Widget.AnswerBaseURL()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to resolve answering endpoint")
	}

	client, err := answer.NewClient(baseURL,
		answer.WithTimeout(cfg.Widget.RequestTimeout),
		answer.WithLogger(logger),
	)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create answer client")
	}

	chatService, err := chat.NewService(client, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create conversation service")
	}

	var opts widget.Options
	if cfg.Widget.Development() {
		opts.DevProxy, err = widget.NewDevProxy(cfg.Widget.BackendURL, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to create dev proxy")
		}
		logger.Info().Str("backend", cfg.Widget.BackendURL).Msg("proxying /api to local backend")
	}

	router := widget.NewRouter(chatService, logger, opts)

	logger.Info().
		Str("addr", cfg.Widget.Server.Addr).
		Str("mode", string(cfg.Widget.Mode)).
		Str("endpoint", client.Endpoint()).
		Msg("chat widget listening")
	if err := server.Run(ctx, server.New(cfg.Widget.Server.Addr, router)); err != nil {
		logger.Fatal().Err(err).Msg("server error")
	}
}

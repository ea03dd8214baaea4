package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/anythingboes/studio-chat/internal/config"
	"github.com/anythingboes/studio-chat/internal/handler"
	"github.com/anythingboes/studio-chat/internal/logging"
	"github.com/anythingboes/studio-chat/internal/model/persona"
	"github.com/anythingboes/studio-chat/internal/server"
	"github.com/anythingboes/studio-chat/internal/service/ai"
	"github.com/anythingboes/studio-chat/internal/service/responder"
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

	var r responder.Responder = responder.Echo{}
	if cfg.AI.Enabled() {
		personaStore := persona.NewMemoryStore(persona.Seed())
		aiService, err := ai.NewService(ctx, personaStore, cfg.AI, logger)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to initialize AI service, falling back to echo responder")
		} else {
			r = aiService
			logger.Info().Str("persona", cfg.AI.PersonaID).Msg("AI service initialized successfully")
		}
	} else {
		logger.Info().Msg("Ark credentials not configured, using echo responder")
	}

	router := handler.NewRouter(r, cfg.API.AllowedOrigins, logger)

	logger.Info().Str("addr", cfg.API.Addr).Str("responder", r.Name()).Msg("answering backend listening")
	if err := server.Run(ctx, server.New(cfg.API.Addr, router)); err != nil {
		logger.Fatal().Err(err).Msg("server error")
	}
}

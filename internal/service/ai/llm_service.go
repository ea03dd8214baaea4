package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog"

	"github.com/anythingboes/studio-chat/internal/config"
	"github.com/anythingboes/studio-chat/internal/model/persona"
)

// ErrPersonaNotFound is returned when the configured persona is not seeded.
var ErrPersonaNotFound = errors.New("persona not found")

// Service answers single messages through an LLM chain.
type Service struct {
	persona persona.Persona
	prompt  string
	chain   compose.Runnable[map[string]any, *schema.Message]
	logger  zerolog.Logger
}

// NewService creates the Ark-backed service from configuration.
func NewService(ctx context.Context, personas persona.Store, cfg config.AIConfig, logger zerolog.Logger) (*Service, error) {
	chatModel, err := cfg.NewChatModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}
	return NewServiceWithModel(ctx, chatModel, personas, cfg.PersonaID, logger)
}

// NewServiceWithModel wires any eino chat model behind the persona prompt.
func NewServiceWithModel(ctx context.Context, chatModel model.BaseChatModel, personas persona.Store, personaID string, logger zerolog.Logger) (*Service, error) {
	p, ok := personas.FindByID(personaID)
	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %s)", ErrPersonaNotFound, personaID, personaIDs(personas))
	}

	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.UserMessage("{query}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile chat chain: %w", err)
	}

	return &Service{
		persona: p,
		prompt:  NewPersonaPromptManager().BuildSystemPrompt(&p),
		chain:   runnable,
		logger:  logger.With().Str("component", "ai").Str("persona", p.ID).Logger(),
	}, nil
}

// Name identifies the responder in logs and metrics.
func (s *Service) Name() string {
	return "llm"
}

// Reply generates the answer to one user message.
func (s *Service) Reply(ctx context.Context, message string) (string, error) {
	response, err := s.chain.Invoke(ctx, map[string]any{
		"system": s.prompt,
		"query":  message,
	})
	if err != nil {
		return "", fmt.Errorf("failed to run AI chain: %w", err)
	}

	s.logger.Debug().Int("length", len(response.Content)).Msg("generated response")
	return response.Content, nil
}

func personaIDs(personas persona.Store) string {
	items := personas.List()
	ids := make([]string, 0, len(items))
	for _, p := range items {
		ids = append(ids, p.ID)
	}
	return strings.Join(ids, ", ")
}

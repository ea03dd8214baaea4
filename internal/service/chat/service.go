package chat

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/anythingboes/studio-chat/internal/metrics"
)

var (
	ErrAnswererRequired     = errors.New("answerer is required")
	ErrConversationNotFound = errors.New("conversation not found")
)

// Conversation binds a controller to the view that mounted it.
type Conversation struct {
	ID         string
	OpenedAt   time.Time
	Controller *Controller
}

// Service keeps the controllers of every currently mounted view.
type Service struct {
	answerer Answerer
	logger   zerolog.Logger

	mu            sync.RWMutex
	conversations map[string]*Conversation
}

// NewService bootstraps the in-memory registry. Conversations live only as
// long as their view; nothing is persisted.
func NewService(answerer Answerer, logger zerolog.Logger) (*Service, error) {
	if answerer == nil {
		return nil, ErrAnswererRequired
	}
	return &Service{
		answerer:      answerer,
		logger:        logger.With().Str("component", "conversations").Logger(),
		conversations: make(map[string]*Conversation),
	}, nil
}

// Open provisions a conversation with an empty transcript.
func (s *Service) Open(_ context.Context, listener Listener) (*Conversation, error) {
	id := uuid.NewString()
	logger := s.logger.With().Str("conversation_id", id).Logger()

	conv := &Conversation{
		ID:       id,
		OpenedAt: time.Now().UTC(),
		Controller: NewController(s.answerer,
			WithListener(listener),
			WithLogger(logger),
		),
	}

	s.mu.Lock()
	s.conversations[id] = conv
	s.mu.Unlock()
	metrics.ConversationsOpen.Inc()

	logger.Debug().Msg("conversation opened")
	return conv, nil
}

// Get retrieves a conversation by identifier.
func (s *Service) Get(_ context.Context, id string) (*Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	conv, ok := s.conversations[id]
	if !ok {
		return nil, ErrConversationNotFound
	}
	return conv, nil
}

// Close tears a conversation down and discards its transcript. A request
// still in flight runs to completion; its outcome lands in the discarded
// controller.
func (s *Service) Close(_ context.Context, id string) error {
	s.mu.Lock()
	conv, ok := s.conversations[id]
	delete(s.conversations, id)
	s.mu.Unlock()

	if !ok {
		return ErrConversationNotFound
	}
	metrics.ConversationsOpen.Dec()

	if conv.Controller.Pending() {
		go func() {
			conv.Controller.Wait()
			s.logger.Debug().Str("conversation_id", id).Msg("in-flight request settled after close")
		}()
	}

	s.logger.Debug().Str("conversation_id", id).Int("messages", len(conv.Controller.State().History)).Msg("conversation closed")
	return nil
}

// Count returns the number of live conversations.
func (s *Service) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.conversations)
}

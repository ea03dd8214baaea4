package chat

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/anythingboes/studio-chat/internal/model/chat"
)

// Answerer forwards one user message to the answering endpoint.
type Answerer interface {
	Answer(ctx context.Context, text string) (string, error)
}

// AnswererFunc adapts a plain function to Answerer.
type AnswererFunc func(ctx context.Context, text string) (string, error)

// Answer calls f(ctx, text).
func (f AnswererFunc) Answer(ctx context.Context, text string) (string, error) {
	return f(ctx, text)
}

// Listener receives a snapshot after every state change.
type Listener func(chat.State)

// Option configures a Controller.
type Option func(*Controller)

// WithListener registers the view callback notified on every mutation.
func WithListener(l Listener) Option {
	return func(c *Controller) {
		c.listener = l
	}
}

// WithClock overrides the timestamp source for appended messages.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
	}
}

// WithIDGenerator overrides message id generation.
func WithIDGenerator(next func() string) Option {
	return func(c *Controller) {
		c.nextID = next
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// Controller owns one conversation: its transcript, the unsent draft and the
// single in-flight request flag.
type Controller struct {
	answerer Answerer
	listener Listener
	now      func() time.Time
	nextID   func() string
	logger   zerolog.Logger

	mu      sync.Mutex
	history []chat.Message
	draft   string
	pending bool
	version uint64

	inflight sync.WaitGroup
}

// NewController builds a controller with an empty transcript.
func NewController(answerer Answerer, opts ...Option) *Controller {
	c := &Controller{
		answerer: answerer,
		now:      func() time.Time { return time.Now().UTC() },
		nextID:   uuid.NewString,
		logger:   zerolog.Nop(),
		history:  make([]chat.Message, 0, 16),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Submit sends text to the answering endpoint. It returns false without
// touching any state when the trimmed text is empty or a request is already
// in flight.
//
// The outbound call runs on its own goroutine and is detached from ctx
// cancellation: once issued, its outcome is always recorded.
func (c *Controller) Submit(ctx context.Context, text string) bool {
	body := strings.TrimSpace(text)
	if body == "" {
		return false
	}

	c.mu.Lock()
	if c.pending {
		c.mu.Unlock()
		c.logger.Debug().Msg("submit ignored: request in flight")
		return false
	}
	c.appendLocked(chat.SenderUser, body)
	c.draft = ""
	c.pending = true
	c.inflight.Add(1)
	snapshot := c.snapshotLocked()
	c.mu.Unlock()

	c.notify(snapshot)

	go c.exchange(context.WithoutCancel(ctx), body)
	return true
}

func (c *Controller) exchange(ctx context.Context, body string) {
	defer c.inflight.Done()

	reply, err := c.answerer.Answer(ctx, body)
	if err != nil {
		c.logger.Warn().Err(err).Msg("answering endpoint failed, using fallback")
		reply = chat.FallbackBody
	}

	c.mu.Lock()
	c.appendLocked(chat.SenderResponder, reply)
	c.pending = false
	snapshot := c.snapshotLocked()
	c.mu.Unlock()

	c.notify(snapshot)
}

// UpdateDraft replaces the unsent text.
func (c *Controller) UpdateDraft(text string) {
	c.mu.Lock()
	c.draft = text
	c.version++
	snapshot := c.snapshotLocked()
	c.mu.Unlock()

	c.notify(snapshot)
}

// State returns a copy of the current conversation state.
func (c *Controller) State() chat.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Pending reports whether a request is in flight.
func (c *Controller) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending
}

// Wait blocks until the in-flight request, if any, has settled.
func (c *Controller) Wait() {
	c.inflight.Wait()
}

func (c *Controller) appendLocked(sender chat.Sender, body string) {
	c.history = append(c.history, chat.Message{
		ID:        c.nextID(),
		Sender:    sender,
		Body:      body,
		CreatedAt: c.now(),
	})
	c.version++
}

func (c *Controller) snapshotLocked() chat.State {
	history := make([]chat.Message, len(c.history))
	copy(history, c.history)
	return chat.State{
		History: history,
		Draft:   c.draft,
		Pending: c.pending,
		Version: c.version,
	}
}

func (c *Controller) notify(state chat.State) {
	if c.listener != nil {
		c.listener(state)
	}
}

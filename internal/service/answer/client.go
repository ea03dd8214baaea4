package answer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/anythingboes/studio-chat/internal/metrics"
)

// DefaultTimeout bounds a single outbound call.
const DefaultTimeout = 30 * time.Second

// ErrUnusableAnswer covers every way the endpoint can fail to produce a reply.
var ErrUnusableAnswer = errors.New("answering endpoint returned no usable answer")

type messageRequest struct {
	Message string `json:"message"`
}

type messageResponse struct {
	Response *string `json:"response"`
}

// Client posts user messages to the answering endpoint.
type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     zerolog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the transport.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per-call timeout of the default transport.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(logger zerolog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient builds a client for an absolute base URL, see ResolveBaseURL.
func NewClient(baseURL string, opts ...ClientOption) (*Client, error) {
	endpoint, err := messageURL(baseURL)
	if err != nil {
		return nil, err
	}

	c := &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Endpoint returns the full message URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Answer sends text and returns the endpoint's reply verbatim. All failures
// wrap ErrUnusableAnswer.
func (c *Client) Answer(ctx context.Context, text string) (string, error) {
	reply, err := c.post(ctx, text)
	if err != nil {
		metrics.AnswerRequests.WithLabelValues("unusable").Inc()
		c.logger.Debug().Err(err).Str("endpoint", c.endpoint).Msg("answer request failed")
		return "", fmt.Errorf("%w: %v", ErrUnusableAnswer, err)
	}
	metrics.AnswerRequests.WithLabelValues("ok").Inc()
	return reply, nil
}

func (c *Client) post(ctx context.Context, text string) (string, error) {
	payload, err := json.Marshal(messageRequest{Message: text})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var decoded messageResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if decoded.Response == nil {
		return "", errors.New("response field missing")
	}
	return *decoded.Response, nil
}

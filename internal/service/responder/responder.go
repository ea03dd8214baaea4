// Package responder produces the answers served by the message endpoint.
package responder

import (
	"context"
	"fmt"
)

// Responder answers one user message.
type Responder interface {
	Name() string
	Reply(ctx context.Context, message string) (string, error)
}

// Echo repeats the message back. It is the default when no LLM is configured.
type Echo struct{}

// Name identifies the responder in logs and metrics.
func (Echo) Name() string {
	return "echo"
}

// Reply returns "You said: <message>".
func (Echo) Reply(_ context.Context, message string) (string, error) {
	return fmt.Sprintf("You said: %s", message), nil
}

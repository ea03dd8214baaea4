package chat

import "time"

// Sender identifies who authored a transcript entry.
type Sender string

const (
	SenderUser      Sender = "user"
	SenderResponder Sender = "responder"
)

// FallbackBody replaces the responder entry whenever the answering endpoint
// does not yield a usable reply.
const FallbackBody = "Sorry, I encountered an error. Please try again."

// Message is one entry of the conversation transcript.
type Message struct {
	ID        string    `json:"id"`
	Sender    Sender    `json:"sender"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
}

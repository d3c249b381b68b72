// Package llm talks to an OpenAI-compatible chat-completions server.
package llm

import "context"

// Chat message roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single chat turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Params are the per-request model parameters.
type Params struct {
	Model       string
	Temperature float64
}

// Client produces a completion for a list of messages.
// Implementations must honor ctx cancellation.
type Client interface {
	Complete(ctx context.Context, messages []Message, p Params) (string, error)
}

// Streamer is implemented by clients that can deliver the completion
// incrementally. fn is called once per content delta.
type Streamer interface {
	CompleteStream(ctx context.Context, messages []Message, p Params, fn func(delta string) error) (string, error)
}

package llm

import (
	"context"
	"errors"
	"strings"
	"time"
)

// Message roles accepted by the chat boundary.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one role-tagged entry of a conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request is a single chat completion call: an optional system instruction
// plus an ordered message list.
type Request struct {
	System   string    `json:"system,omitempty"`
	Messages []Message `json:"messages"`
}

// Client issues one chat completion and returns the model's free text.
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// ErrRateLimited marks upstream throttling; callers may retry with backoff.
// Any other error from Complete is fatal for the current attempt.
var ErrRateLimited = errors.New("llm rate limited")

// IsRateLimited reports whether an error from Complete is retryable throttling.
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}

// Config controls client construction.
type Config struct {
	Mode    string
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// NewClient builds a chat client for the configured mode. "auto" picks the
// OpenAI-compatible client when an API key is present and the mock otherwise.
func NewClient(cfg Config) (Client, error) {
	mode := strings.ToLower(strings.TrimSpace(cfg.Mode))
	if mode == "" {
		mode = "auto"
	}

	switch mode {
	case "auto":
		if strings.TrimSpace(cfg.APIKey) != "" {
			return NewOpenAIClient(cfg), nil
		}
		return NewMockClient(), nil
	case "openai":
		if strings.TrimSpace(cfg.APIKey) == "" {
			return nil, errors.New("LLM_API_KEY is required for openai mode")
		}
		return NewOpenAIClient(cfg), nil
	case "mock":
		return NewMockClient(), nil
	default:
		return nil, errors.New("invalid llm mode: " + cfg.Mode)
	}
}

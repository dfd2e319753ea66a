package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/optommarket/shopbot/internal/reliability"
)

// OpenAIClient talks to any OpenAI-compatible chat completion endpoint.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

func NewOpenAIClient(cfg Config) *OpenAIClient {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if strings.TrimSpace(cfg.BaseURL) != "" {
		// Used as-is: providers disagree on the version path (/v1 vs others).
		clientConfig.BaseURL = cfg.BaseURL
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	clientConfig.HTTPClient = &http.Client{
		Timeout: timeout,
	}

	return &OpenAIClient{
		client: openai.NewClientWithConfig(clientConfig),
		model:  cfg.Model,
	}
}

func (c *OpenAIClient) Complete(ctx context.Context, req Request) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages)+1)
	if strings.TrimSpace(req.System) != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	for _, msg := range req.Messages {
		role := msg.Role
		if role != RoleUser && role != RoleAssistant {
			role = RoleUser
		}
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    role,
			Content: msg.Content,
		})
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: messages,
	})
	if err != nil {
		return "", classifyError(err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty completion from model %s", c.model)
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// classifyError folds provider errors into the boundary's two classes:
// rate-limited (retryable) and everything else.
func classifyError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && reliability.IsRateLimitHTTPStatus(apiErr.HTTPStatusCode) {
		return fmt.Errorf("%w: %v", ErrRateLimited, err)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reliability.IsRateLimitHTTPStatus(reqErr.HTTPStatusCode) {
		return fmt.Errorf("%w: %v", ErrRateLimited, err)
	}
	if reliability.IsRateLimitMessage(err.Error()) {
		return fmt.Errorf("%w: %v", ErrRateLimited, err)
	}
	return err
}

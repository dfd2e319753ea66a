package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// MockClient provides deterministic local replies when no model is configured.
type MockClient struct{}

func NewMockClient() *MockClient { return &MockClient{} }

func (c *MockClient) Complete(ctx context.Context, req Request) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}
	return buildMockReply(req), nil
}

func buildMockReply(req Request) string {
	last := ""
	if len(req.Messages) > 0 {
		last = strings.TrimSpace(req.Messages[len(req.Messages)-1].Content)
	}

	// Extraction prompts ask for a bare JSON object; answer in kind so the
	// pipeline stays exercisable without a real model.
	if utterance, ok := quotedMessage(last); ok && strings.Contains(last, "JSON") {
		payload := map[string]any{
			"search_query":        utterance,
			"translated_keywords": nil,
			"min_price":           nil,
			"max_price":           nil,
			"category_hint":       nil,
			"is_product_search":   len(strings.Fields(utterance)) <= 3,
		}
		raw, _ := json.Marshal(payload)
		return string(raw)
	}

	if last == "" {
		return "Sizni eshitaman."
	}
	if strings.Contains(req.System, "mahsulotlar") || strings.Contains(req.System, "products") {
		return fmt.Sprintf("Sizga mos mahsulotlarni yuqoridagi ro'yxatdan tanladim: %s", last)
	}
	return fmt.Sprintf("Savolingizni qabul qildim: %s", last)
}

// quotedMessage pulls the utterance out of an extraction prompt of the form
// `... Xabar: "<text>" ...`.
func quotedMessage(prompt string) (string, bool) {
	idx := strings.Index(prompt, `Xabar: "`)
	if idx < 0 {
		return "", false
	}
	rest := prompt[idx+len(`Xabar: "`):]
	end := strings.Index(rest, `"`)
	if end < 0 {
		return "", false
	}
	return rest[:end], true
}

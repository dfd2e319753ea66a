package intent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/optommarket/shopbot/internal/llm"
	"github.com/optommarket/shopbot/internal/observability"
)

// Catalog titles are often stored in Russian while customers write in Uzbek,
// so the prompt asks for a translated keyword to widen recall.
const extractionPromptTemplate = `Foydalanuvchi xabaridan qidiruv parametrlarini ajratib oling.

Xabar: "%s"

DIQQAT: Bazadagi mahsulotlar asosan RUS tilida nomlangan bo'lishi mumkin.
Shuning uchun "translated_keywords" maydoniga mahsulot nomining RUS tilidagi tarjimasini ham qo'shing.

Javobni FAQAT quyidagi JSON formatida qaytaring (boshqa so'z qo'shmang):
{
    "search_query": "mahsulot nomi yoki kalit so'z (asl tilda)",
    "translated_keywords": "mahsulot nomi (Rus tilida) yoki null",
    "min_price": null yoki raqam (so'm),
    "max_price": null yoki raqam (so'm),
    "category_hint": "kategoriya nomi yoki null",
    "is_product_search": true/false (bu mahsulot qidiruv so'rovi yoki yo'q)
}`

// extractedParams is the wire shape the model is asked to produce.
type extractedParams struct {
	SearchQuery        string   `json:"search_query"`
	TranslatedKeywords string   `json:"translated_keywords"`
	MinPrice           *float64 `json:"min_price"`
	MaxPrice           *float64 `json:"max_price"`
	CategoryHint       string   `json:"category_hint"`
	IsProductSearch    bool     `json:"is_product_search"`
}

// Extractor turns free-form text into a SearchIntent via one model call.
// It never returns an error: any failure degrades to HeuristicIntent.
type Extractor struct {
	client  llm.Client
	metrics *observability.Metrics
	log     zerolog.Logger
}

func NewExtractor(client llm.Client, metrics *observability.Metrics, log zerolog.Logger) *Extractor {
	return &Extractor{
		client:  client,
		metrics: metrics,
		log:     log.With().Str("component", "intent").Logger(),
	}
}

func (e *Extractor) Extract(ctx context.Context, utterance string) SearchIntent {
	prompt := fmt.Sprintf(extractionPromptTemplate, utterance)
	reply, err := e.client.Complete(ctx, llm.Request{
		Messages: []llm.Message{{Role: llm.RoleUser, Content: prompt}},
	})
	if err != nil {
		e.log.Warn().Err(err).Msg("intent extraction call failed, using heuristic")
		return e.fallback(utterance)
	}

	obj, ok := sliceJSONObject(reply)
	if !ok {
		e.log.Warn().Str("reply", truncate(reply, 120)).Msg("no JSON object in extraction reply")
		return e.fallback(utterance)
	}

	var params extractedParams
	if err := json.Unmarshal([]byte(obj), &params); err != nil {
		e.log.Warn().Err(err).Msg("extraction reply did not decode")
		return e.fallback(utterance)
	}

	return SearchIntent{
		PrimaryKeyword:   strings.TrimSpace(params.SearchQuery),
		SecondaryKeyword: strings.TrimSpace(params.TranslatedKeywords),
		MinPrice:         params.MinPrice,
		MaxPrice:         params.MaxPrice,
		CategoryHint:     strings.TrimSpace(params.CategoryHint),
		IsProductQuery:   params.IsProductSearch,
	}
}

func (e *Extractor) fallback(utterance string) SearchIntent {
	if e.metrics != nil {
		e.metrics.ExtractionFallbacks.Inc()
		e.metrics.ObserveTurnIndicator("extraction_fallback")
	}
	return HeuristicIntent(utterance)
}

// HeuristicIntent is the deterministic safety net: short utterances are
// treated as a direct product query, longer ones as plain conversation.
func HeuristicIntent(utterance string) SearchIntent {
	if len(strings.Fields(utterance)) <= 3 {
		return SearchIntent{
			PrimaryKeyword: utterance,
			IsProductQuery: true,
		}
	}
	return SearchIntent{IsProductQuery: false}
}

// sliceJSONObject returns the substring between the first '{' and the last
// '}' of a reply; models often wrap the object in prose or code fences.
func sliceJSONObject(s string) (string, bool) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end < start {
		return "", false
	}
	return s[start : end+1], true
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

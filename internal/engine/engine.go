package engine

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/optommarket/shopbot/internal/catalog"
	"github.com/optommarket/shopbot/internal/convo"
	"github.com/optommarket/shopbot/internal/intent"
	"github.com/optommarket/shopbot/internal/knowledge"
	"github.com/optommarket/shopbot/internal/llm"
	"github.com/optommarket/shopbot/internal/observability"
	"github.com/optommarket/shopbot/internal/reliability"
	"github.com/optommarket/shopbot/internal/retrieval"
)

// maxAttempts bounds the chat completion retry loop: one initial call plus
// three backoff retries on rate limiting.
const maxAttempts = 4

// fallbackAnswer is the only failure surface the caller ever sees.
const fallbackAnswer = "Kechirasiz, hozirda texnik xatolik yuz berdi. Iltimos, birozdan so'ng qayta urinib ko'ring."

// Engine runs the extract -> retrieve -> compose pipeline for one user turn.
// Each turn is independent; only per-user history mutation is serialized.
type Engine struct {
	client    llm.Client
	lookup    catalog.Lookup
	kb        *knowledge.Provider
	history   *convo.Store
	extractor *intent.Extractor
	retriever *retrieval.Retriever
	metrics   *observability.Metrics
	log       zerolog.Logger

	retryBase time.Duration
	sleep     func(ctx context.Context, d time.Duration) error
}

func New(
	client llm.Client,
	lookup catalog.Lookup,
	kb *knowledge.Provider,
	history *convo.Store,
	metrics *observability.Metrics,
	retryBase time.Duration,
	log zerolog.Logger,
) *Engine {
	if retryBase <= 0 {
		retryBase = 3 * time.Second
	}
	return &Engine{
		client:    client,
		lookup:    lookup,
		kb:        kb,
		history:   history,
		extractor: intent.NewExtractor(client, metrics, log),
		retriever: retrieval.NewRetriever(lookup, metrics, log),
		metrics:   metrics,
		log:       log.With().Str("component", "engine").Logger(),
		retryBase: retryBase,
		sleep:     sleepContext,
	}
}

// HandleTurn is the caller-facing entry point: one utterance in, one answer
// and the products it narrates out. It never returns an error; every failure
// mode degrades to a user-safe answer.
func (e *Engine) HandleTurn(ctx context.Context, userID, utterance string) (string, []catalog.Product) {
	started := time.Now()

	extractStart := time.Now()
	si := e.extractor.Extract(ctx, utterance)
	e.observeStage("extract", extractStart)

	retrieveStart := time.Now()
	products, isProduct := e.retriever.Retrieve(ctx, si)
	e.observeStage("retrieve", retrieveStart)

	var productContext []catalog.Product
	if isProduct {
		productContext = products
	}

	composeStart := time.Now()
	answer, shown := e.respond(ctx, userID, utterance, productContext)
	e.observeStage("compose", composeStart)

	outcome := "answered"
	if answer == fallbackAnswer {
		outcome = "apology"
	}
	if e.metrics != nil {
		e.metrics.TurnsTotal.WithLabelValues(outcome).Inc()
		e.metrics.ObserveTurnLatency(time.Since(started))
	}
	e.log.Info().
		Str("user_id", userID).
		Bool("product_query", isProduct).
		Int("products", len(shown)).
		Str("outcome", outcome).
		Dur("took", time.Since(started)).
		Msg("turn handled")

	return answer, shown
}

// Reset clears the user's conversation and returns the configured greeting.
func (e *Engine) Reset(userID string) string {
	e.history.Clear(userID)
	return e.kb.Snapshot().Greeting
}

// respond issues the grounded chat completion with bounded retry. On success
// it records the exchange; on failure the history stays untouched and the
// caller gets the fixed apology with no products.
func (e *Engine) respond(ctx context.Context, userID, utterance string, products []catalog.Product) (string, []catalog.Product) {
	categories, err := e.lookup.CategoryNames(ctx)
	if err != nil {
		// Grounding degrades to an empty category list, never fails the turn.
		e.log.Warn().Err(err).Msg("category list unavailable")
		categories = ""
	}

	grounding := buildGroundingPrompt(e.kb.Snapshot(), categories, products)

	past := e.history.History(userID, convo.PromptTurnLimit)
	messages := make([]llm.Message, 0, len(past)+1)
	for _, turn := range past {
		messages = append(messages, llm.Message{Role: turn.Role, Content: turn.Text})
	}
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: utterance})

	req := llm.Request{System: grounding, Messages: messages}

	for attempt := 0; attempt < maxAttempts; attempt++ {
		answer, err := e.client.Complete(ctx, req)
		if err == nil {
			e.history.AppendExchange(userID, utterance, answer)
			return answer, products
		}

		if llm.IsRateLimited(err) && attempt < maxAttempts-1 {
			delay := reliability.ExponentialBackoff(attempt, e.retryBase, 8*e.retryBase)
			e.log.Warn().Err(err).Dur("delay", delay).Int("attempt", attempt+1).Msg("model rate limited, backing off")
			if e.metrics != nil {
				e.metrics.LLMRetries.Inc()
				e.metrics.ObserveTurnIndicator("llm_retry")
			}
			if sleepErr := e.sleep(ctx, delay); sleepErr != nil {
				break
			}
			continue
		}

		e.log.Error().Err(err).Int("attempt", attempt+1).Msg("chat completion failed")
		break
	}

	if e.metrics != nil {
		e.metrics.ObserveTurnIndicator("apology")
	}
	return fallbackAnswer, nil
}

func (e *Engine) observeStage(stage string, started time.Time) {
	if e.metrics == nil {
		return
	}
	e.metrics.ObserveTurnStage(stage, time.Since(started))
}

// sleepContext waits for d, but wakes early if the turn is abandoned.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

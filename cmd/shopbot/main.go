package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/optommarket/shopbot/internal/catalog"
	"github.com/optommarket/shopbot/internal/config"
	"github.com/optommarket/shopbot/internal/convo"
	"github.com/optommarket/shopbot/internal/engine"
	"github.com/optommarket/shopbot/internal/httpapi"
	"github.com/optommarket/shopbot/internal/knowledge"
	"github.com/optommarket/shopbot/internal/llm"
	"github.com/optommarket/shopbot/internal/observability"
)

func main() {
	// Local development convenience; a missing .env is not an error.
	_ = godotenv.Load()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config error")
	}

	metrics := observability.NewMetrics(cfg.MetricsNamespace)

	ctx := context.Background()
	lookup, err := catalog.NewLookup(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("catalog init failed")
	}
	defer lookup.Close()

	kb, err := knowledge.NewProvider(cfg.KnowledgeBasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("knowledge base init failed")
	}

	client, err := llm.NewClient(llm.Config{
		Mode:    cfg.LLMMode,
		APIKey:  cfg.LLMAPIKey,
		BaseURL: cfg.LLMBaseURL,
		Model:   cfg.LLMModel,
		Timeout: cfg.LLMCallTimeout,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("llm client init failed")
	}
	log.Info().Str("mode", cfg.LLMMode).Str("model", cfg.LLMModel).Msg("llm client ready")

	history := convo.NewStore()
	eng := engine.New(client, lookup, kb, history, metrics, cfg.LLMRetryBase, log)

	api := httpapi.New(cfg, eng, kb, lookup, metrics, log)
	httpServer := &http.Server{
		Addr:    cfg.BindAddr,
		Handler: api.Router(),
	}

	go func() {
		log.Info().Str("addr", cfg.BindAddr).Msg("server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("listen error")
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("graceful shutdown failed")
		_ = httpServer.Close()
	}

	log.Info().Msg("shutdown complete")
}

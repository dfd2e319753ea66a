package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/optommarket/shopbot/internal/catalog"
	"github.com/optommarket/shopbot/internal/config"
	"github.com/optommarket/shopbot/internal/knowledge"
	"github.com/optommarket/shopbot/internal/observability"
)

// TurnEngine is the conversation pipeline the transport layer drives.
type TurnEngine interface {
	HandleTurn(ctx context.Context, userID, utterance string) (string, []catalog.Product)
	Reset(userID string) string
}

type Server struct {
	cfg     config.Config
	engine  TurnEngine
	kb      *knowledge.Provider
	lookup  catalog.Lookup
	metrics *observability.Metrics
	log     zerolog.Logger

	upgrader websocket.Upgrader
}

func New(cfg config.Config, engine TurnEngine, kb *knowledge.Provider, lookup catalog.Lookup, metrics *observability.Metrics, log zerolog.Logger) *Server {
	return &Server{
		cfg:     cfg,
		engine:  engine,
		kb:      kb,
		lookup:  lookup,
		metrics: metrics,
		log:     log.With().Str("component", "httpapi").Logger(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				// Default: only allow browser websocket connections from the
				// same origin, so a foreign page cannot drive a user's chat
				// if the service is ever exposed beyond localhost.
				if cfg.AllowAnyOrigin {
					return true
				}
				origin := strings.TrimSpace(r.Header.Get("Origin"))
				if origin == "" {
					// Non-browser clients often omit Origin. Allow them.
					return true
				}
				u, err := url.Parse(origin)
				if err != nil {
					return false
				}
				if u.Scheme != "http" && u.Scheme != "https" {
					return false
				}
				return strings.EqualFold(u.Host, r.Host)
			},
		},
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		observability.MetricsHandler().ServeHTTP(w, r)
	})

	r.Post("/v1/chat/turn", s.handleChatTurn)
	r.Post("/v1/chat/reset", s.handleChatReset)
	r.Get("/v1/chat/ws", s.handleChatWS)

	r.Get("/v1/catalog/products", s.handleListProducts)

	r.Get("/v1/admin/knowledge", s.handleGetKnowledge)
	r.Put("/v1/admin/knowledge", s.handlePutKnowledge)

	r.Get("/v1/perf/latency", s.handlePerfLatency)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"llm_mode": s.cfg.LLMMode,
	})
}

func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	catalogMode := "in-memory"
	if strings.TrimSpace(s.cfg.DatabaseURL) != "" {
		catalogMode = "postgres"
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"status":       "ready",
		"catalog_mode": catalogMode,
	})
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

var errEmptyBody = errors.New("empty body")

func decodeJSON(r *http.Request, out any) error {
	if r.Body == nil {
		return errEmptyBody
	}
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(out); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "eof") {
			return errEmptyBody
		}
		return err
	}
	return nil
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, errorResponse{Error: message, Code: code})
}

package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/optommarket/shopbot/internal/catalog"
)

type turnRequest struct {
	UserID  string `json:"user_id"`
	Message string `json:"message"`
}

type turnResponse struct {
	UserID   string           `json:"user_id"`
	Answer   string           `json:"answer"`
	Products []productPayload `json:"products"`
}

type resetResponse struct {
	UserID   string `json:"user_id"`
	Greeting string `json:"greeting"`
}

type productPayload struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	Price        float64 `json:"price"`
	PriceDisplay string  `json:"price_display"`
	InStock      bool    `json:"in_stock"`
	CategoryName string  `json:"category_name,omitempty"`
	SKU          string  `json:"sku,omitempty"`
}

func toProductPayloads(products []catalog.Product) []productPayload {
	out := make([]productPayload, 0, len(products))
	for _, p := range products {
		out = append(out, productPayload{
			ID:           p.ID,
			Title:        p.Title,
			Price:        p.Price,
			PriceDisplay: catalog.FormatPrice(p.Price) + " so'm",
			InStock:      p.InStock(),
			CategoryName: p.CategoryName,
			SKU:          p.SKU,
		})
	}
	return out
}

func (s *Server) handleChatTurn(w http.ResponseWriter, r *http.Request) {
	var req turnRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		respondError(w, http.StatusBadRequest, "empty_message", "message must not be empty")
		return
	}
	if strings.TrimSpace(req.UserID) == "" {
		req.UserID = uuid.NewString()
	}

	answer, products := s.engine.HandleTurn(r.Context(), req.UserID, req.Message)
	respondJSON(w, http.StatusOK, turnResponse{
		UserID:   req.UserID,
		Answer:   answer,
		Products: toProductPayloads(products),
	})
}

func (s *Server) handleChatReset(w http.ResponseWriter, r *http.Request) {
	var req turnRequest
	if err := decodeJSON(r, &req); err != nil && !errors.Is(err, errEmptyBody) {
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	if strings.TrimSpace(req.UserID) == "" {
		respondError(w, http.StatusBadRequest, "missing_user_id", "user_id is required")
		return
	}

	greeting := s.engine.Reset(req.UserID)
	respondJSON(w, http.StatusOK, resetResponse{UserID: req.UserID, Greeting: greeting})
}

// handleChatWS upgrades to a websocket chat channel. Messages on one
// connection are handled sequentially so a user's turns stay ordered.
func (s *Server) handleChatWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	if s.metrics != nil {
		s.metrics.ActiveConnections.Inc()
		defer s.metrics.ActiveConnections.Dec()
	}

	// Fallback identity when the client never supplies user_id.
	connUserID := uuid.NewString()

	conn.SetReadLimit(64 << 10)
	_ = conn.SetReadDeadline(time.Now().Add(300 * time.Second))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(300 * time.Second))
		return nil
	})

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}
		_ = conn.SetReadDeadline(time.Now().Add(300 * time.Second))

		var req turnRequest
		if err := json.Unmarshal(data, &req); err != nil {
			s.writeWS(conn, errorResponse{Error: err.Error(), Code: "invalid_client_message"})
			continue
		}
		if strings.TrimSpace(req.UserID) == "" {
			req.UserID = connUserID
		}

		if strings.TrimSpace(req.Message) == "/start" {
			greeting := s.engine.Reset(req.UserID)
			s.writeWS(conn, resetResponse{UserID: req.UserID, Greeting: greeting})
			continue
		}
		if strings.TrimSpace(req.Message) == "" {
			s.writeWS(conn, errorResponse{Error: "message must not be empty", Code: "empty_message"})
			continue
		}

		answer, products := s.engine.HandleTurn(r.Context(), req.UserID, req.Message)
		s.writeWS(conn, turnResponse{
			UserID:   req.UserID,
			Answer:   answer,
			Products: toProductPayloads(products),
		})
	}
}

func (s *Server) writeWS(conn *websocket.Conn, v any) {
	_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	if err := conn.WriteJSON(v); err != nil {
		s.log.Debug().Err(err).Msg("websocket write failed")
	}
}

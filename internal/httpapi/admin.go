package httpapi

import (
	"net/http"
	"strings"

	"github.com/optommarket/shopbot/internal/knowledge"
)

func (s *Server) handleGetKnowledge(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, s.kb.Snapshot())
}

// handlePutKnowledge replaces the knowledge base and persists it. Turns in
// flight keep the snapshot they started with; the next turn sees the update.
func (s *Server) handlePutKnowledge(w http.ResponseWriter, r *http.Request) {
	var base knowledge.Base
	if err := decodeJSON(r, &base); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	if strings.TrimSpace(base.Company.Name) == "" {
		respondError(w, http.StatusBadRequest, "invalid_knowledge", "company_info.name must not be empty")
		return
	}
	if strings.TrimSpace(base.Greeting) == "" {
		respondError(w, http.StatusBadRequest, "invalid_knowledge", "greeting must not be empty")
		return
	}

	if err := s.kb.Update(base); err != nil {
		s.log.Error().Err(err).Msg("knowledge base update failed")
		respondError(w, http.StatusInternalServerError, "persist_failed", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, s.kb.Snapshot())
}

package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/optommarket/shopbot/internal/catalog"
)

const (
	defaultBrowseLimit = 20
	maxBrowseLimit     = 100
)

type browseResponse struct {
	Products []productPayload `json:"products"`
	Count    int              `json:"count"`
	Limit    int              `json:"limit"`
	Offset   int              `json:"offset"`
}

// handleListProducts serves plain catalog browsing without the LLM pipeline.
func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	q := catalog.Query{
		Keyword: strings.TrimSpace(r.URL.Query().Get("q")),
		Limit:   defaultBrowseLimit,
	}

	var err error
	if v := r.URL.Query().Get("category_id"); v != "" {
		q.CategoryID, err = strconv.ParseInt(v, 10, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid_category_id", "category_id must be an integer")
			return
		}
	}
	if q.MinPrice, err = priceParam(r, "min_price"); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_min_price", err.Error())
		return
	}
	if q.MaxPrice, err = priceParam(r, "max_price"); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_max_price", err.Error())
		return
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			respondError(w, http.StatusBadRequest, "invalid_limit", "limit must be a positive integer")
			return
		}
		if n > maxBrowseLimit {
			n = maxBrowseLimit
		}
		q.Limit = n
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			respondError(w, http.StatusBadRequest, "invalid_offset", "offset must be a non-negative integer")
			return
		}
		q.Offset = n
	}

	products, err := s.lookup.Search(r.Context(), q)
	if err != nil {
		s.log.Error().Err(err).Msg("catalog browse failed")
		if s.metrics != nil {
			s.metrics.CatalogErrors.Inc()
		}
		respondError(w, http.StatusInternalServerError, "catalog_unavailable", "catalog lookup failed")
		return
	}

	respondJSON(w, http.StatusOK, browseResponse{
		Products: toProductPayloads(products),
		Count:    len(products),
		Limit:    q.Limit,
		Offset:   q.Offset,
	})
}

func priceParam(r *http.Request, key string) (*float64, error) {
	v := strings.TrimSpace(r.URL.Query().Get(key))
	if v == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 {
		return nil, fmt.Errorf("%s must be a non-negative number", key)
	}
	return &f, nil
}

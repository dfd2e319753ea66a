package retrieval

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/optommarket/shopbot/internal/catalog"
	"github.com/optommarket/shopbot/internal/intent"
	"github.com/optommarket/shopbot/internal/observability"
)

// resultLimit caps each catalog lookup; the composer shows at most this many.
const resultLimit = 5

// Retriever executes the bilingual catalog search for a product intent.
type Retriever struct {
	lookup  catalog.Lookup
	metrics *observability.Metrics
	log     zerolog.Logger
}

func NewRetriever(lookup catalog.Lookup, metrics *observability.Metrics, log zerolog.Logger) *Retriever {
	return &Retriever{
		lookup:  lookup,
		metrics: metrics,
		log:     log.With().Str("component", "retrieval").Logger(),
	}
}

// Retrieve returns the merged product set for an intent. Non-product intents
// skip the catalog entirely. Catalog failures surface as an empty result set,
// never as an error.
func (r *Retriever) Retrieve(ctx context.Context, si intent.SearchIntent) ([]catalog.Product, bool) {
	if !si.IsProductQuery {
		return nil, false
	}

	products := r.search(ctx, si.PrimaryKeyword, si)

	secondary := strings.TrimSpace(si.SecondaryKeyword)
	if secondary != "" && !strings.EqualFold(secondary, strings.TrimSpace(si.PrimaryKeyword)) {
		more := r.search(ctx, secondary, si)

		// Primary results keep their order; secondary ones are appended only
		// when their ID is new, so the numbered list stays stable.
		seen := make(map[int64]struct{}, len(products))
		for _, p := range products {
			seen[p.ID] = struct{}{}
		}
		for _, p := range more {
			if _, ok := seen[p.ID]; ok {
				continue
			}
			seen[p.ID] = struct{}{}
			products = append(products, p)
		}
	}

	return products, true
}

func (r *Retriever) search(ctx context.Context, keyword string, si intent.SearchIntent) []catalog.Product {
	out, err := r.lookup.Search(ctx, catalog.Query{
		Keyword:  keyword,
		MinPrice: si.MinPrice,
		MaxPrice: si.MaxPrice,
		Limit:    resultLimit,
	})
	if err != nil {
		r.log.Warn().Err(err).Str("keyword", keyword).Msg("catalog search failed, treating as no results")
		if r.metrics != nil {
			r.metrics.CatalogErrors.Inc()
			r.metrics.ObserveTurnIndicator("catalog_error")
		}
		return nil
	}
	return out
}

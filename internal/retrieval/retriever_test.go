package retrieval

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/optommarket/shopbot/internal/catalog"
	"github.com/optommarket/shopbot/internal/intent"
)

type fakeLookup struct {
	byKeyword map[string][]catalog.Product
	err       error
	calls     []catalog.Query
}

func (f *fakeLookup) Search(_ context.Context, q catalog.Query) ([]catalog.Product, error) {
	f.calls = append(f.calls, q)
	if f.err != nil {
		return nil, f.err
	}
	return f.byKeyword[q.Keyword], nil
}

func (f *fakeLookup) CategoryNames(context.Context) (string, error) { return "", nil }
func (f *fakeLookup) Close() error                                  { return nil }

func TestRetrieveSkipsCatalogForNonProductIntent(t *testing.T) {
	lookup := &fakeLookup{}
	r := NewRetriever(lookup, nil, zerolog.Nop())

	products, isProduct := r.Retrieve(context.Background(), intent.SearchIntent{IsProductQuery: false})
	if isProduct {
		t.Fatalf("isProduct = true, want false")
	}
	if len(products) != 0 {
		t.Fatalf("len(products) = %d, want 0", len(products))
	}
	if len(lookup.calls) != 0 {
		t.Fatalf("catalog called %d times for non-product intent", len(lookup.calls))
	}
}

func TestRetrieveMergesSecondaryWithoutDuplicates(t *testing.T) {
	lookup := &fakeLookup{byKeyword: map[string][]catalog.Product{
		"televizor": {{ID: 1, Title: "Televizor A"}, {ID: 2, Title: "Televizor B"}},
		"телевизор": {{ID: 2, Title: "Televizor B"}, {ID: 3, Title: "Телевизор C"}},
	}}
	r := NewRetriever(lookup, nil, zerolog.Nop())

	products, isProduct := r.Retrieve(context.Background(), intent.SearchIntent{
		PrimaryKeyword:   "televizor",
		SecondaryKeyword: "телевизор",
		IsProductQuery:   true,
	})
	if !isProduct {
		t.Fatalf("isProduct = false, want true")
	}
	wantIDs := []int64{1, 2, 3}
	if len(products) != len(wantIDs) {
		t.Fatalf("len(products) = %d, want %d", len(products), len(wantIDs))
	}
	for i, id := range wantIDs {
		if products[i].ID != id {
			t.Fatalf("products[%d].ID = %d, want %d", i, products[i].ID, id)
		}
	}
	if len(lookup.calls) != 2 {
		t.Fatalf("catalog called %d times, want 2", len(lookup.calls))
	}
}

func TestRetrieveIdenticalKeywordsSearchOnce(t *testing.T) {
	lookup := &fakeLookup{byKeyword: map[string][]catalog.Product{
		"televizor": {{ID: 1}, {ID: 2}},
	}}
	r := NewRetriever(lookup, nil, zerolog.Nop())

	merged, _ := r.Retrieve(context.Background(), intent.SearchIntent{
		PrimaryKeyword:   "televizor",
		SecondaryKeyword: "Televizor",
		IsProductQuery:   true,
	})
	if len(lookup.calls) != 1 {
		t.Fatalf("catalog called %d times, want 1 for case-equal keywords", len(lookup.calls))
	}

	lookup.calls = nil
	single, _ := r.Retrieve(context.Background(), intent.SearchIntent{
		PrimaryKeyword: "televizor",
		IsProductQuery: true,
	})
	if len(merged) != len(single) {
		t.Fatalf("merge not idempotent: %d vs %d products", len(merged), len(single))
	}
	for i := range merged {
		if merged[i].ID != single[i].ID {
			t.Fatalf("order differs at %d", i)
		}
	}
}

func TestRetrieveCatalogFailureYieldsEmptyResult(t *testing.T) {
	lookup := &fakeLookup{err: errors.New("connection refused")}
	r := NewRetriever(lookup, nil, zerolog.Nop())

	products, isProduct := r.Retrieve(context.Background(), intent.SearchIntent{
		PrimaryKeyword: "televizor",
		IsProductQuery: true,
	})
	if !isProduct {
		t.Fatalf("isProduct = false, want true even when catalog fails")
	}
	if len(products) != 0 {
		t.Fatalf("len(products) = %d, want 0 on catalog failure", len(products))
	}
}

func TestRetrievePassesPriceFiltersAndLimit(t *testing.T) {
	lookup := &fakeLookup{byKeyword: map[string][]catalog.Product{}}
	r := NewRetriever(lookup, nil, zerolog.Nop())

	min, max := 100000.0, 900000.0
	r.Retrieve(context.Background(), intent.SearchIntent{
		PrimaryKeyword: "telefon",
		MinPrice:       &min,
		MaxPrice:       &max,
		IsProductQuery: true,
	})
	if len(lookup.calls) != 1 {
		t.Fatalf("catalog called %d times, want 1", len(lookup.calls))
	}
	q := lookup.calls[0]
	if q.Limit != 5 {
		t.Fatalf("Limit = %d, want 5", q.Limit)
	}
	if q.MinPrice == nil || *q.MinPrice != min || q.MaxPrice == nil || *q.MaxPrice != max {
		t.Fatalf("price filters not forwarded: %+v", q)
	}
}

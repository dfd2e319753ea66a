package catalog

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// InMemoryLookup is a simple in-process catalog for local/dev use and tests.
// Search preserves insertion order, so repeated identical queries return
// identically ordered results.
type InMemoryLookup struct {
	mu       sync.RWMutex
	products []Product
}

func NewInMemoryLookup(products ...Product) *InMemoryLookup {
	cp := make([]Product, len(products))
	copy(cp, products)
	return &InMemoryLookup{products: cp}
}

func (l *InMemoryLookup) Add(p Product) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.products = append(l.products, p)
}

func (l *InMemoryLookup) Search(_ context.Context, q Query) ([]Product, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	limit := q.Limit
	if limit <= 0 {
		limit = 10
	}

	words := strings.Fields(strings.ToLower(q.Keyword))
	var out []Product
	skipped := 0
	for _, p := range l.products {
		if !matches(p, words, q) {
			continue
		}
		if skipped < q.Offset {
			skipped++
			continue
		}
		out = append(out, p)
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

func matches(p Product, words []string, q Query) bool {
	haystack := strings.ToLower(p.Title + " " + p.Description + " " + p.SKU)
	for _, w := range words {
		if !strings.Contains(haystack, w) {
			return false
		}
	}
	if q.CategoryID != 0 && p.CategoryID != q.CategoryID {
		return false
	}
	if q.MinPrice != nil && p.Price < *q.MinPrice {
		return false
	}
	if q.MaxPrice != nil && p.Price > *q.MaxPrice {
		return false
	}
	return true
}

func (l *InMemoryLookup) CategoryNames(_ context.Context) (string, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	seen := make(map[string]struct{})
	var names []string
	for _, p := range l.products {
		name := strings.TrimSpace(p.CategoryName)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", "), nil
}

func (l *InMemoryLookup) Close() error { return nil }

// DemoProducts seeds the in-memory catalog when no database is configured.
func DemoProducts() []Product {
	return []Product{
		{ID: 1, Title: "Televizor Samsung 43\"", Price: 3200000, Stock: 4, CategoryID: 1, CategoryName: "Elektronika", SKU: "TV-SAM-43"},
		{ID: 2, Title: "Телевизор LG 50\"", Price: 4100000, Stock: 2, CategoryID: 1, CategoryName: "Elektronika", SKU: "TV-LG-50"},
		{ID: 3, Title: "Muzlatgich Artel HD 341", Price: 3900000, Stock: 0, CategoryID: 2, CategoryName: "Maishiy texnika", SKU: "FR-ART-341"},
		{ID: 4, Title: "Kir yuvish mashinasi Samsung 6kg", Price: 3500000, Stock: 7, CategoryID: 2, CategoryName: "Maishiy texnika", SKU: "WM-SAM-6"},
		{ID: 5, Title: "Smartfon Redmi Note 13", Price: 2450000, Stock: 12, CategoryID: 3, CategoryName: "Telefonlar", SKU: "PH-RED-N13"},
	}
}

package catalog

import "context"

// Product is one catalog record. The assistant treats it as read-only and
// addresses it by ID when deduplicating merged search results.
type Product struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	Price        float64 `json:"price"`
	Stock        int     `json:"stock"`
	CategoryID   int64   `json:"category_id,omitempty"`
	CategoryName string  `json:"category_name,omitempty"`
	SKU          string  `json:"sku,omitempty"`
	Description  string  `json:"description,omitempty"`
}

// Query is one catalog search. An empty keyword returns unfiltered,
// paginated results; all set filters are AND-combined.
type Query struct {
	Keyword    string
	MinPrice   *float64
	MaxPrice   *float64
	CategoryID int64
	Limit      int
	Offset     int
}

// Lookup searches the product catalog and lists category names.
type Lookup interface {
	Search(ctx context.Context, q Query) ([]Product, error)
	// CategoryNames returns a comma-joined list for prompt grounding.
	CategoryNames(ctx context.Context) (string, error)
	Close() error
}

// InStock reports whether the product can currently be sold.
func (p Product) InStock() bool {
	return p.Stock > 0
}

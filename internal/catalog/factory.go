package catalog

import (
	"context"
	"strings"
)

// NewLookup creates a postgres-backed catalog when configured, otherwise an
// in-memory demo catalog.
func NewLookup(ctx context.Context, databaseURL string) (Lookup, error) {
	if strings.TrimSpace(databaseURL) == "" {
		return NewInMemoryLookup(DemoProducts()...), nil
	}
	return NewPostgresLookup(ctx, databaseURL)
}

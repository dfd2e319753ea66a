package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresLookup serves the product catalog from PostgreSQL.
type PostgresLookup struct {
	pool *pgxpool.Pool
}

func NewPostgresLookup(ctx context.Context, databaseURL string) (*PostgresLookup, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	if err := initSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	return &PostgresLookup{pool: pool}, nil
}

func initSchema(ctx context.Context, pool *pgxpool.Pool) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS categories (
			id BIGSERIAL PRIMARY KEY,
			title TEXT NOT NULL,
			invisible BOOLEAN NOT NULL DEFAULT FALSE
		);`,
		`CREATE TABLE IF NOT EXISTS products (
			id BIGSERIAL PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			sku TEXT NOT NULL DEFAULT '',
			price NUMERIC(14,2) NOT NULL DEFAULT 0,
			stock INTEGER NOT NULL DEFAULT 0,
			category_id BIGINT REFERENCES categories(id),
			active BOOLEAN NOT NULL DEFAULT TRUE
		);`,
		`CREATE INDEX IF NOT EXISTS idx_products_category ON products (category_id);`,
	}

	for _, stmt := range stmts {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema failed on %q: %w", stmt, err)
		}
	}
	return nil
}

func (l *PostgresLookup) Search(ctx context.Context, q Query) ([]Product, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = 10
	}

	var sb strings.Builder
	sb.WriteString(`SELECT p.id, p.title, p.price, p.stock, COALESCE(p.category_id, 0),
		COALESCE(c.title, ''), p.sku, p.description
		FROM products p
		LEFT JOIN categories c ON p.category_id = c.id
		WHERE p.active`)

	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	// Catalog titles mix languages, so every keyword word must match
	// somewhere in title, description or SKU.
	for _, word := range strings.Fields(q.Keyword) {
		ph := arg("%" + word + "%")
		fmt.Fprintf(&sb, " AND (p.title ILIKE %s OR p.description ILIKE %s OR p.sku ILIKE %s)", ph, ph, ph)
	}
	if q.CategoryID != 0 {
		fmt.Fprintf(&sb, " AND p.category_id = %s", arg(q.CategoryID))
	}
	if q.MinPrice != nil {
		fmt.Fprintf(&sb, " AND p.price >= %s", arg(*q.MinPrice))
	}
	if q.MaxPrice != nil {
		fmt.Fprintf(&sb, " AND p.price <= %s", arg(*q.MaxPrice))
	}

	// Stable ordering keeps repeated identical queries identically numbered
	// in the assistant's reply.
	fmt.Fprintf(&sb, " ORDER BY p.id ASC LIMIT %s OFFSET %s", arg(limit), arg(q.Offset))

	rows, err := l.pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	defer rows.Close()

	out := make([]Product, 0, limit)
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Title, &p.Price, &p.Stock, &p.CategoryID, &p.CategoryName, &p.SKU, &p.Description); err != nil {
			return nil, fmt.Errorf("scan product row: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product rows: %w", err)
	}
	return out, nil
}

func (l *PostgresLookup) CategoryNames(ctx context.Context) (string, error) {
	rows, err := l.pool.Query(ctx,
		`SELECT title FROM categories WHERE NOT invisible ORDER BY title ASC`)
	if err != nil {
		return "", fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var title string
		if err := rows.Scan(&title); err != nil {
			return "", fmt.Errorf("scan category row: %w", err)
		}
		names = append(names, title)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("iterate category rows: %w", err)
	}
	return strings.Join(names, ", "), nil
}

func (l *PostgresLookup) Close() error {
	l.pool.Close()
	return nil
}

package catalog

import (
	"context"
	"testing"
)

func TestInMemorySearchKeywordAndPriceFilters(t *testing.T) {
	l := NewInMemoryLookup(DemoProducts()...)

	min := 3000000.0
	got, err := l.Search(context.Background(), Query{Keyword: "samsung", MinPrice: &min, Limit: 5})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(got))
	}
	for _, p := range got {
		if p.Price < min {
			t.Fatalf("product %d price %v below min filter", p.ID, p.Price)
		}
	}
}

func TestInMemorySearchEmptyKeywordPaginates(t *testing.T) {
	l := NewInMemoryLookup(DemoProducts()...)

	page1, err := l.Search(context.Background(), Query{Limit: 2})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	page2, err := l.Search(context.Background(), Query{Limit: 2, Offset: 2})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(page1) != 2 || len(page2) != 2 {
		t.Fatalf("page sizes = %d, %d, want 2, 2", len(page1), len(page2))
	}
	if page1[0].ID == page2[0].ID {
		t.Fatalf("pagination returned overlapping pages")
	}
}

func TestInMemorySearchOrderIsStable(t *testing.T) {
	l := NewInMemoryLookup(DemoProducts()...)

	first, err := l.Search(context.Background(), Query{Keyword: "televizor", Limit: 5})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	second, err := l.Search(context.Background(), Query{Keyword: "televizor", Limit: 5})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("result sizes differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Fatalf("order differs at %d: %d vs %d", i, first[i].ID, second[i].ID)
		}
	}
}

func TestInMemoryCategoryNames(t *testing.T) {
	l := NewInMemoryLookup(DemoProducts()...)
	got, err := l.CategoryNames(context.Background())
	if err != nil {
		t.Fatalf("CategoryNames() error = %v", err)
	}
	want := "Elektronika, Maishiy texnika, Telefonlar"
	if got != want {
		t.Fatalf("CategoryNames() = %q, want %q", got, want)
	}
}

func TestFormatPrice(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{950, "950"},
		{150000, "150 000"},
		{3200000, "3 200 000"},
		{1234567.4, "1 234 567"},
		{-5, "0"},
	}
	for _, tc := range cases {
		if got := FormatPrice(tc.in); got != tc.want {
			t.Fatalf("FormatPrice(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

package product

import (
	"testing"
)

func TestParseCategoryIDs(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want []int64
	}{
		{name: "plain", raw: "1,2,3", want: []int64{1, 2, 3}},
		{name: "spaces", raw: " 4 , 5 ", want: []int64{4, 5}},
		{name: "malformedTokensDropped", raw: "1,abc,2", want: []int64{1, 2}},
		{name: "whollyUnparsable", raw: "abc,def", want: nil},
		{name: "empty", raw: "", want: nil},
		{name: "trailingComma", raw: "7,", want: []int64{7}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseCategoryIDs(tc.raw)
			if len(got) != len(tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("expected %v, got %v", tc.want, got)
				}
			}
		})
	}
}

func TestNormalizeSortFallsBackToFeatured(t *testing.T) {
	cases := map[string]string{
		"":           SortFeatured,
		"featured":   SortFeatured,
		"price_low":  SortPriceLow,
		"price_high": SortPriceHigh,
		"newest":     SortNewest,
		"bogus":      SortFeatured,
	}
	for raw, want := range cases {
		if got := NormalizeSort(raw); got != want {
			t.Errorf("NormalizeSort(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestOrderClause(t *testing.T) {
	cases := map[string]string{
		SortFeatured:  "products.id ASC",
		SortPriceLow:  "products.base_price ASC",
		SortPriceHigh: "products.base_price DESC",
		SortNewest:    "products.created_at DESC",
	}
	for sortBy, want := range cases {
		if got := orderClause(sortBy); got != want {
			t.Errorf("orderClause(%q) = %q, want %q", sortBy, got, want)
		}
	}
}

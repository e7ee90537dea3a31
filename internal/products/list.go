package product

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/marivelle/catalog-backend/pkg/pagination"
)

// Sort modes accepted by the browse endpoint. Unknown values fall back to
// SortFeatured.
const (
	SortFeatured  = "featured"
	SortPriceLow  = "price_low"
	SortPriceHigh = "price_high"
	SortNewest    = "newest"
)

// ListFilters describe the supported filter knobs for the browse endpoint.
type ListFilters struct {
	CategoryIDs []int64
	CategoryID  *int64
	Search      string
	MinPrice    *decimal.Decimal
	MaxPrice    *decimal.Decimal
	Color       string
	Size        string
}

// ListInput captures the inputs needed to paginate/filter/sort the catalog.
type ListInput struct {
	Filters    ListFilters
	SortBy     string
	Pagination pagination.Params
}

// ParseCategoryIDs splits a comma-separated id list, silently dropping
// malformed tokens. A wholly unparsable list returns nil, which disables the
// filter rather than erroring.
func ParseCategoryIDs(raw string) []int64 {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var ids []int64
	for _, token := range strings.Split(raw, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		id, err := strconv.ParseInt(token, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// NormalizeSort maps unknown or absent sort keys to the featured default.
func NormalizeSort(raw string) string {
	switch raw {
	case SortPriceLow, SortPriceHigh, SortNewest:
		return raw
	default:
		return SortFeatured
	}
}

func orderClause(sortBy string) string {
	switch sortBy {
	case SortPriceLow:
		return "products.base_price ASC"
	case SortPriceHigh:
		return "products.base_price DESC"
	case SortNewest:
		return "products.created_at DESC"
	default:
		// featured: ascending id is a proxy for creation/feature order
		return "products.id ASC"
	}
}

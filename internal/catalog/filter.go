package catalog

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Sort orders filtered results. Zero value keeps the catalog order.
type Sort string

const (
	SortNone      Sort = ""
	SortPriceAsc  Sort = "price_asc"
	SortPriceDesc Sort = "price_desc"
)

// ParseSort maps a query value onto a known sort, ignoring unknown values.
func ParseSort(value string) Sort {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case string(SortPriceAsc):
		return SortPriceAsc
	case string(SortPriceDesc):
		return SortPriceDesc
	default:
		return SortNone
	}
}

// Filter narrows the catalog. All criteria combine with AND.
type Filter struct {
	Search     string
	Category   string
	PriceMin   *decimal.Decimal
	PriceMax   *decimal.Decimal
	OnlyOffers bool
	Sort       Sort
}

// Apply returns the products matching the filter, ordered by the filter's
// sort. The sort is stable so equal-priced products keep catalog order.
func (f Filter) Apply(products []Product) []Product {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	category := strings.TrimSpace(f.Category)

	matched := make([]Product, 0, len(products))
	for _, p := range products {
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) {
			continue
		}
		if category != "" && p.Category != category {
			continue
		}
		if f.PriceMin != nil && p.Price.LessThan(*f.PriceMin) {
			continue
		}
		if f.PriceMax != nil && p.Price.GreaterThan(*f.PriceMax) {
			continue
		}
		if f.OnlyOffers && !p.Offer {
			continue
		}
		matched = append(matched, p)
	}

	switch f.Sort {
	case SortPriceAsc:
		sort.SliceStable(matched, func(i, j int) bool {
			return matched[i].Price.LessThan(matched[j].Price)
		})
	case SortPriceDesc:
		sort.SliceStable(matched, func(i, j int) bool {
			return matched[i].Price.GreaterThan(matched[j].Price)
		})
	}

	return matched
}

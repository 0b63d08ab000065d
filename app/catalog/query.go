package catalog

import (
	"slices"
)

// FilterByCategory returns the in-stock products, narrowed to one category
// unless category is CategoryAll.
func FilterByCategory(products []Product, category string) []Product {
	filtered := make([]Product, 0, len(products))
	for _, p := range products {
		if p.Stock <= 0 {
			continue
		}
		if category != CategoryAll && string(p.Category) != category {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}

// Sort returns a sorted copy of products and leaves the input untouched.
// Ties keep their input order. Unknown modes return the copy unsorted.
func Sort(products []Product, mode SortMode) []Product {
	sorted := slices.Clone(products)

	switch mode {
	case SortPriceLow:
		slices.SortStableFunc(sorted, func(a, b Product) int {
			return a.Price.Cmp(b.Price)
		})
	case SortPriceHigh:
		slices.SortStableFunc(sorted, func(a, b Product) int {
			return b.Price.Cmp(a.Price)
		})
	case SortFeatured:
		slices.SortStableFunc(sorted, func(a, b Product) int {
			switch {
			case a.Featured && !b.Featured:
				return -1
			case !a.Featured && b.Featured:
				return 1
			default:
				return 0
			}
		})
	}

	return sorted
}

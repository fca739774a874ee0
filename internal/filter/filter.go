// Package filter narrows a product list by the shopper's filter criteria.
package filter

import (
	"strings"

	"lilutecno/internal/domain"
)

// Default is the initial criteria: no search, no category, the whole price
// range and out-of-stock items included.
func Default(maxPrice float64) domain.FiltersState {
	return domain.FiltersState{PriceRange: domain.PriceRange{Min: 0, Max: maxPrice}}
}

// Apply returns the products matching f, in their original relative order.
// It never mutates products.
func Apply(products []domain.Product, f domain.FiltersState) []domain.Product {
	term := strings.ToLower(f.SearchTerm)
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if term != "" && !matchesTerm(p, term) {
			continue
		}
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if p.Price < f.PriceRange.Min || p.Price > f.PriceRange.Max {
			continue
		}
		if f.StockOnly && p.Stock <= 0 {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matchesTerm(p domain.Product, lowerTerm string) bool {
	if strings.Contains(strings.ToLower(p.Name), lowerTerm) {
		return true
	}
	return p.Summary != "" && strings.Contains(strings.ToLower(p.Summary), lowerTerm)
}

// OnOfferCount counts products whose old price exceeds the current one.
func OnOfferCount(products []domain.Product) int {
	n := 0
	for _, p := range products {
		if p.OnOffer() {
			n++
		}
	}
	return n
}

// Merge overlays the non-nil fields of patch onto current.
func Merge(current domain.FiltersState, patch domain.FiltersPatch) domain.FiltersState {
	if patch.SearchTerm != nil {
		current.SearchTerm = *patch.SearchTerm
	}
	if patch.Category != nil {
		current.Category = *patch.Category
	}
	if patch.PriceRange != nil {
		current.PriceRange = *patch.PriceRange
	}
	if patch.StockOnly != nil {
		current.StockOnly = *patch.StockOnly
	}
	return current
}

// Normalize clamps the price range into [0, maxPrice] and orders its bounds.
func Normalize(f domain.FiltersState, maxPrice float64) domain.FiltersState {
	r := f.PriceRange
	if r.Min > r.Max {
		r.Min, r.Max = r.Max, r.Min
	}
	r.Min = clamp(r.Min, 0, maxPrice)
	r.Max = clamp(r.Max, 0, maxPrice)
	f.PriceRange = r
	return f
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

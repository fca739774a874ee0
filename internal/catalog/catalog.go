// Package catalog turns raw catalog records into the immutable product list
// shared read-only by every session.
package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"lilutecno/internal/domain"
	"lilutecno/internal/validate"
)

var ErrNotFound = errors.New("product not found")

// SplitImages splits a comma-separated image list, trimming whitespace and
// dropping empty segments.
func SplitImages(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Normalize converts raw records in order. Records breaking the price/stock
// invariants or repeating an id are rejected.
func Normalize(raw []domain.RawProduct) ([]domain.Product, error) {
	out := make([]domain.Product, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, r := range raw {
		id, ok := validate.ID(r.ID)
		if !ok {
			return nil, fmt.Errorf("catalog: product %q has an invalid id %q", r.Name, r.ID)
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("catalog: duplicate product id %s", id)
		}
		if r.Price < 0 {
			return nil, fmt.Errorf("catalog: product %s has negative price", id)
		}
		if r.Stock < 0 {
			return nil, fmt.Errorf("catalog: product %s has negative stock", id)
		}
		seen[id] = struct{}{}
		out = append(out, domain.Product{
			ID:       id,
			Name:     r.Name,
			Summary:  r.Summary,
			Category: r.Category,
			Price:    r.Price,
			OldPrice: r.OldPrice,
			Stock:    r.Stock,
			Images:   SplitImages(r.Images),
		})
	}
	return out, nil
}

type Catalog struct {
	products   []domain.Product
	byID       map[string]int
	categories []string
}

// New builds a Catalog from already-normalized products.
func New(products []domain.Product) *Catalog {
	c := &Catalog{
		products: products,
		byID:     make(map[string]int, len(products)),
	}
	seen := map[string]struct{}{}
	for i, p := range products {
		c.byID[p.ID] = i
		if _, ok := seen[p.Category]; !ok {
			seen[p.Category] = struct{}{}
			c.categories = append(c.categories, p.Category)
		}
	}
	sort.Strings(c.categories)
	return c
}

// FromRaw normalizes raw and builds a Catalog.
func FromRaw(raw []domain.RawProduct) (*Catalog, error) {
	products, err := Normalize(raw)
	if err != nil {
		return nil, err
	}
	return New(products), nil
}

// Products returns the catalog in source order. Callers must not mutate it.
func (c *Catalog) Products() []domain.Product { return c.products }

func (c *Catalog) Len() int { return len(c.products) }

func (c *Catalog) Get(id string) (domain.Product, error) {
	i, ok := c.byID[id]
	if !ok {
		return domain.Product{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return c.products[i], nil
}

// Categories returns the sorted distinct categories.
func (c *Catalog) Categories() []string {
	out := make([]string, len(c.categories))
	copy(out, c.categories)
	return out
}

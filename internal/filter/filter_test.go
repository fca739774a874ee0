package filter

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"lilutecno/internal/domain"
)

const maxPrice = 5000000

func ptr[T any](v T) *T { return &v }

func sample() []domain.Product {
	return []domain.Product{
		{ID: "1", Name: "TV Samsung 55", Summary: "Smart TV 4K", Category: "TELEVISOR", Price: 1000, OldPrice: ptr(1500.0), Stock: 0},
		{ID: "2", Name: "Parlante JBL", Summary: "Bluetooth portátil", Category: "AUDIO Y SONIDO", Price: 300, Stock: 4},
		{ID: "3", Name: "Roku Express", Category: "ENTRETENIMIENTO", Price: 120, OldPrice: ptr(100.0), Stock: 9},
		{ID: "4", Name: "TV LG 43", Summary: "Pantalla LED", Category: "TELEVISOR", Price: 800, OldPrice: ptr(950.0), Stock: 2},
	}
}

func ids(ps []domain.Product) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.ID
	}
	return out
}

func TestApply(t *testing.T) {
	cases := []struct {
		name string
		f    domain.FiltersState
		want []string
	}{
		{"default keeps everything", Default(maxPrice), []string{"1", "2", "3", "4"}},
		{"search name case-insensitive", domain.FiltersState{SearchTerm: "tv", PriceRange: domain.PriceRange{Max: maxPrice}}, []string{"1", "4"}},
		{"search summary", domain.FiltersState{SearchTerm: "BLUETOOTH", PriceRange: domain.PriceRange{Max: maxPrice}}, []string{"2"}},
		{"category exact", domain.FiltersState{Category: "TELEVISOR", PriceRange: domain.PriceRange{Max: maxPrice}}, []string{"1", "4"}},
		{"category is case-sensitive", domain.FiltersState{Category: "televisor", PriceRange: domain.PriceRange{Max: maxPrice}}, []string{}},
		{"price bounds inclusive", domain.FiltersState{PriceRange: domain.PriceRange{Min: 300, Max: 1000}}, []string{"1", "2", "4"}},
		{"stock only", domain.FiltersState{StockOnly: true, PriceRange: domain.PriceRange{Max: maxPrice}}, []string{"2", "3", "4"}},
		{"combined", domain.FiltersState{SearchTerm: "tv", Category: "TELEVISOR", StockOnly: true, PriceRange: domain.PriceRange{Max: 900}}, []string{"4"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ids(Apply(sample(), tc.f))
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("Apply mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestApply_StockOnlyScenario(t *testing.T) {
	products := []domain.Product{{ID: "1", Name: "TV Samsung", Price: 1000, Stock: 0, Category: "TELEVISOR"}}
	f := Default(maxPrice)
	f.StockOnly = true
	assert.Empty(t, Apply(products, f))
}

func TestApply_IdentityAndIdempotent(t *testing.T) {
	in := sample()
	got := Apply(in, Default(maxPrice))
	if diff := cmp.Diff(in, got); diff != "" {
		t.Fatalf("default filters changed input (-want +got):\n%s", diff)
	}

	f := domain.FiltersState{SearchTerm: "t", PriceRange: domain.PriceRange{Max: 1000}}
	once := Apply(in, f)
	twice := Apply(in, f)
	if diff := cmp.Diff(once, twice); diff != "" {
		t.Fatalf("Apply not idempotent:\n%s", diff)
	}
}

func TestApply_IsOrderedSubsequence(t *testing.T) {
	in := sample()
	filters := []domain.FiltersState{
		{SearchTerm: "e", PriceRange: domain.PriceRange{Max: maxPrice}},
		{StockOnly: true, PriceRange: domain.PriceRange{Min: 100, Max: 900}},
		{Category: "TELEVISOR", PriceRange: domain.PriceRange{Max: maxPrice}},
	}
	for _, f := range filters {
		out := Apply(in, f)
		j := 0
		for _, p := range out {
			for j < len(in) && in[j].ID != p.ID {
				j++
			}
			if j == len(in) {
				t.Fatalf("output %v is not an ordered subsequence of input", ids(out))
			}
			j++
		}
	}
}

func TestOnOfferCount(t *testing.T) {
	// "3" has an old price below the current one and does not count.
	assert.Equal(t, 2, OnOfferCount(sample()))
	assert.Equal(t, 0, OnOfferCount(nil))
}

func TestMerge(t *testing.T) {
	cur := Default(maxPrice)
	cur.Category = "TELEVISOR"
	got := Merge(cur, domain.FiltersPatch{SearchTerm: ptr("roku"), StockOnly: ptr(true)})
	assert.Equal(t, "roku", got.SearchTerm)
	assert.Equal(t, "TELEVISOR", got.Category)
	assert.True(t, got.StockOnly)
	assert.Equal(t, domain.PriceRange{Min: 0, Max: maxPrice}, got.PriceRange)
}

func TestNormalize(t *testing.T) {
	f := domain.FiltersState{PriceRange: domain.PriceRange{Min: 9000000, Max: -5}}
	got := Normalize(f, maxPrice)
	assert.Equal(t, domain.PriceRange{Min: 0, Max: maxPrice}, got.PriceRange)

	f = domain.FiltersState{PriceRange: domain.PriceRange{Min: 200, Max: 100}}
	assert.Equal(t, domain.PriceRange{Min: 100, Max: 200}, Normalize(f, maxPrice).PriceRange)
}

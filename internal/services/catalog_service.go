package services

import (
	"lilutecno/internal/catalog"
	"lilutecno/internal/domain"
	"lilutecno/internal/filter"
)

type CatalogService struct {
	Catalog  *catalog.Catalog
	MaxPrice float64
}

func NewCatalogService(c *catalog.Catalog, maxPrice float64) *CatalogService {
	return &CatalogService{Catalog: c, MaxPrice: maxPrice}
}

func (s *CatalogService) ListCategories() []string {
	return s.Catalog.Categories()
}

func (s *CatalogService) GetProduct(id string) (domain.Product, error) {
	return s.Catalog.Get(id)
}

// Result is the derived view of the catalog under a set of filters.
type Result struct {
	Products     []domain.Product    `json:"products"`
	Filters      domain.FiltersState `json:"filters"`
	OnOfferCount int                 `json:"onOfferCount"`
	Available    int                 `json:"availableCount"`
	Total        int                 `json:"totalCount"`
}

func (s *CatalogService) Search(f domain.FiltersState) Result {
	products := filter.Apply(s.Catalog.Products(), f)
	return Result{
		Products:     products,
		Filters:      f,
		OnOfferCount: filter.OnOfferCount(products),
		Available:    len(products),
		Total:        s.Catalog.Len(),
	}
}

func (s *CatalogService) DefaultFilters() domain.FiltersState {
	return filter.Default(s.MaxPrice)
}

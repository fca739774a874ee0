package services

import "lilutecno/internal/domain"

// LowStock is the quantity under which a product is reported as LOW_STOCK.
const LowStock = 5

type InventoryService struct {
	Catalog *CatalogService
}

func NewInventoryService(c *CatalogService) *InventoryService {
	return &InventoryService{Catalog: c}
}

// CheckAvailability converts stock → IN_STOCK / LOW_STOCK / OUT_OF_STOCK.
func (s *InventoryService) CheckAvailability(productID string) (domain.Availability, error) {
	p, err := s.Catalog.GetProduct(productID)
	if err != nil {
		return domain.Availability{}, err
	}
	return Availability(p.Stock), nil
}

func Availability(qty int) domain.Availability {
	status := "OUT_OF_STOCK"
	switch {
	case qty >= LowStock:
		status = "IN_STOCK"
	case qty > 0:
		status = "LOW_STOCK"
	}
	return domain.Availability{Status: status, Qty: qty}
}

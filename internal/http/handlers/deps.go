package handlers

import (
	"lilutecno/internal/catalog"
	"lilutecno/internal/clock"
	"lilutecno/internal/config"
	"lilutecno/internal/kv"
	"lilutecno/internal/services"
)

type Deps struct {
	Sessions *services.SessionService

	HomeHandler         *HomeHandler
	ProductHandler      *ProductHandler
	InventoryHandler    *InventoryHandler
	FiltersHandler      *FiltersHandler
	CartHandler         *CartHandler
	NotificationHandler *NotificationHandler
	HeaderHandler       *HeaderHandler
}

func NewDeps(cat *catalog.Catalog, store kv.Store, clk clock.Clock, cfg config.Config) *Deps {
	catalogSvc := services.NewCatalogService(cat, cfg.MaxPrice)
	invSvc := services.NewInventoryService(catalogSvc)
	sessions := services.NewSessionService(catalogSvc, store, clk, services.SessionOptions{
		NotifyTTL:   cfg.NotifyTTL,
		NotifyMax:   cfg.NotifyMax,
		IdleTimeout: cfg.SessionIdle,
	})

	return &Deps{
		Sessions:            sessions,
		HomeHandler:         &HomeHandler{Catalog: catalogSvc},
		ProductHandler:      &ProductHandler{Catalog: catalogSvc},
		InventoryHandler:    &InventoryHandler{Inv: invSvc},
		FiltersHandler:      &FiltersHandler{Catalog: catalogSvc},
		CartHandler:         &CartHandler{},
		NotificationHandler: &NotificationHandler{},
		HeaderHandler:       &HeaderHandler{},
	}
}

package handlers

import (
	"github.com/gofiber/fiber/v2"

	"lilutecno/internal/domain"
	"lilutecno/internal/services"
	"lilutecno/internal/validate"
)

type FiltersHandler struct {
	Catalog *services.CatalogService
}

func (h *FiltersHandler) Get(c *fiber.Ctx) error {
	return c.JSON(session(c).Filters())
}

// Patch merges the provided fields into the session filters.
func (h *FiltersHandler) Patch(c *fiber.Ctx) error {
	var p domain.FiltersPatch
	if err := c.BodyParser(&p); err != nil {
		return badRequest(c, "body", "invalid filters")
	}
	if p.SearchTerm != nil {
		if _, ok := validate.Q(*p.SearchTerm); !ok {
			return badRequest(c, "searchTerm", "Enter a valid keyword")
		}
	}
	if p.Category != nil {
		if _, ok := validate.Category(*p.Category); !ok {
			return badRequest(c, "category", "Invalid category")
		}
	}
	return c.JSON(session(c).SetFilters(p))
}

// Put replaces the session filters wholesale.
func (h *FiltersHandler) Put(c *fiber.Ctx) error {
	f := h.Catalog.DefaultFilters()
	if err := c.BodyParser(&f); err != nil {
		return badRequest(c, "body", "invalid filters")
	}
	if _, ok := validate.Q(f.SearchTerm); !ok {
		return badRequest(c, "searchTerm", "Enter a valid keyword")
	}
	if _, ok := validate.Category(f.Category); !ok {
		return badRequest(c, "category", "Invalid category")
	}
	return c.JSON(session(c).ReplaceFilters(f))
}

func (h *FiltersHandler) Clear(c *fiber.Ctx) error {
	return c.JSON(session(c).ClearFilters())
}

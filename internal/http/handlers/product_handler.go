package handlers

import (
	"github.com/gofiber/fiber/v2"

	"lilutecno/internal/domain"
	"lilutecno/internal/services"
	"lilutecno/internal/validate"
)

type ProductHandler struct {
	Catalog *services.CatalogService
}

// List answers with the catalog under the session filters. Query parameters
// q, category, min, max and stock override them for this request only.
func (h *ProductHandler) List(c *fiber.Ctx) error {
	patch, ferr := patchFromQuery(c)
	if ferr != nil {
		return badRequest(c, ferr.field, ferr.msg)
	}
	return c.JSON(session(c).Preview(patch))
}

func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return badRequest(c, "id", "invalid product id")
	}
	p, err := h.Catalog.GetProduct(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "This item is no longer available"})
	}
	return c.JSON(p)
}

func (h *ProductHandler) Categories(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"categories": h.Catalog.ListCategories()})
}

type fieldError struct{ field, msg string }

func patchFromQuery(c *fiber.Ctx) (domain.FiltersPatch, *fieldError) {
	var p domain.FiltersPatch
	args := c.Context().QueryArgs()
	if args.Has("q") {
		q, ok := validate.Q(c.Query("q"))
		if !ok {
			return p, &fieldError{"q", "Enter a valid keyword"}
		}
		p.SearchTerm = &q
	}
	if args.Has("category") {
		cat, ok := validate.Category(c.Query("category"))
		if !ok {
			return p, &fieldError{"category", "Invalid category"}
		}
		p.Category = &cat
	}
	if args.Has("min") || args.Has("max") {
		r := session(c).Filters().PriceRange
		if args.Has("min") {
			v, ok := validate.Price(c.Query("min"))
			if !ok {
				return p, &fieldError{"min", "Invalid price"}
			}
			r.Min = v
		}
		if args.Has("max") {
			v, ok := validate.Price(c.Query("max"))
			if !ok {
				return p, &fieldError{"max", "Invalid price"}
			}
			r.Max = v
		}
		p.PriceRange = &r
	}
	if args.Has("stock") {
		b, ok := validate.Bool(c.Query("stock"))
		if !ok {
			return p, &fieldError{"stock", "Invalid stock flag"}
		}
		p.StockOnly = &b
	}
	return p, nil
}

package handlers

import (
	"github.com/gofiber/fiber/v2"

	"lilutecno/internal/services"
)

type HomeHandler struct {
	Catalog *services.CatalogService
}

func (h *HomeHandler) Home(c *fiber.Ctx) error {
	sess := session(c)
	v := sess.View()
	return render(c, "home", fiber.Map{
		"Categories": h.Catalog.ListCategories(),
		"View":       v,
		"CartItems":  sess.Cart.TotalItems(),
		"Visible":    sess.Visibility.Visible(),
	})
}

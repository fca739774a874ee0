package handlers

import (
	"github.com/gofiber/fiber/v2"

	"lilutecno/internal/services"
	"lilutecno/internal/validate"
)

type InventoryHandler struct {
	Inv *services.InventoryService
}

func (h *InventoryHandler) Check(c *fiber.Ctx) error {
	productID, ok := validate.ID(c.Query("productId"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "missing productId",
		})
	}
	avail, err := h.Inv.CheckAvailability(productID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "This item is no longer available",
		})
	}
	return c.JSON(avail)
}

package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

type NotificationHandler struct{}

func (h *NotificationHandler) List(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"notifications": session(c).Notifications.List()})
}

// Dismiss is idempotent: an already expired id answers 204 as well.
func (h *NotificationHandler) Dismiss(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return badRequest(c, "id", "invalid notification id")
	}
	session(c).Notifications.Dismiss(id)
	return c.SendStatus(fiber.StatusNoContent)
}

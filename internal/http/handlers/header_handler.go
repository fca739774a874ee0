package handlers

import (
	"github.com/gofiber/fiber/v2"
)

type HeaderHandler struct{}

func (h *HeaderHandler) Get(c *fiber.Ctx) error {
	sess := session(c)
	v := sess.View()
	return c.JSON(fiber.Map{
		"stats":      v.Stats,
		"slide":      sess.Carousel.Index(),
		"autoScroll": sess.Carousel.Running(),
		"visible":    sess.Visibility.Visible(),
		"cartItems":  sess.Cart.TotalItems(),
	})
}

func (h *HeaderHandler) Scroll(c *fiber.Ctx) error {
	var body struct {
		Y float64 `json:"y"`
	}
	if err := c.BodyParser(&body); err != nil || body.Y < 0 {
		return badRequest(c, "y", "invalid scroll position")
	}
	return c.JSON(fiber.Map{"visible": session(c).Visibility.Observe(body.Y)})
}

func (h *HeaderHandler) Interact(c *fiber.Ctx) error {
	session(c).Carousel.Interact()
	return c.SendStatus(fiber.StatusNoContent)
}

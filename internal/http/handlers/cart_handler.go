package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"lilutecno/internal/catalog"
	applog "lilutecno/internal/log"
	"lilutecno/internal/services"
	"lilutecno/internal/validate"
)

type CartHandler struct{}

type cartView struct {
	Items      any     `json:"items"`
	TotalItems int     `json:"totalItems"`
	Subtotal   float64 `json:"subtotal"`
}

func viewOf(s *services.Session) cartView {
	return cartView{Items: s.Cart.Items(), TotalItems: s.Cart.TotalItems(), Subtotal: s.Cart.Subtotal()}
}

// respond answers with the cart state. A failed write-through is logged but
// the in-memory cart already changed, so the shopper still sees it.
func respond(c *fiber.Ctx, action string, err error, fields map[string]any) error {
	if err != nil {
		applog.Error(c, action+".persist.fail", err, fields)
	} else {
		applog.Audit(c, action, fields)
	}
	return c.JSON(viewOf(session(c)))
}

func (h *CartHandler) View(c *fiber.Ctx) error {
	return c.JSON(viewOf(session(c)))
}

func (h *CartHandler) Add(c *fiber.Ctx) error {
	var body struct {
		ProductID string `json:"productId" form:"productId"`
	}
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "body", "invalid request")
	}
	productID, ok := validate.ID(body.ProductID)
	if !ok {
		return badRequest(c, "productId", "missing productId")
	}
	err := session(c).AddToCart(c.UserContext(), productID)
	if errors.Is(err, catalog.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "This item is no longer available"})
	}
	return respond(c, "cart.add", err, map[string]any{"product": productID})
}

func (h *CartHandler) Update(c *fiber.Ctx) error {
	productID, ok := paramID(c)
	if !ok {
		return badRequest(c, "id", "invalid product id")
	}
	var body struct {
		Quantity *int `json:"quantity" form:"quantity"`
	}
	if err := c.BodyParser(&body); err != nil || body.Quantity == nil {
		// form posts carry the quantity as text
		q, ok := validate.Qty(c.FormValue("quantity"))
		if !ok {
			return badRequest(c, "quantity", "invalid quantity")
		}
		body.Quantity = &q
	}
	err := session(c).UpdateQuantity(c.UserContext(), productID, *body.Quantity)
	return respond(c, "cart.update", err, map[string]any{"product": productID, "qty": *body.Quantity})
}

func (h *CartHandler) Remove(c *fiber.Ctx) error {
	productID, ok := paramID(c)
	if !ok {
		return badRequest(c, "id", "invalid product id")
	}
	err := session(c).RemoveFromCart(c.UserContext(), productID)
	return respond(c, "cart.remove", err, map[string]any{"product": productID})
}

func (h *CartHandler) Clear(c *fiber.Ctx) error {
	err := session(c).ClearCart(c.UserContext())
	return respond(c, "cart.clear", err, nil)
}

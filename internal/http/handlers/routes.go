package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	applog "lilutecno/internal/log"
)

// Register mounts the storefront routes. Middlewares that are not specific
// to the storefront (request ids, csrf, helmet) are left to the caller.
func Register(app *fiber.App, deps *Deps) {
	withSession := WithSession(deps.Sessions)

	app.Get("/", withSession, deps.HomeHandler.Home)

	api := app.Group("/api/v1", withSession)
	api.Get("/products", deps.ProductHandler.List)
	api.Get("/products/:id", deps.ProductHandler.Detail)
	api.Get("/categories", deps.ProductHandler.Categories)

	availLimiter := limiter.New(limiter.Config{
		Max:        15,
		Expiration: 30 * time.Second,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP() + "|avail"
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.availability.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "rate limit exceeded, retry soon"})
		},
	})
	api.Get("/availability", availLimiter, deps.InventoryHandler.Check)

	api.Get("/filters", deps.FiltersHandler.Get)
	api.Patch("/filters", deps.FiltersHandler.Patch)
	api.Put("/filters", deps.FiltersHandler.Put)
	api.Delete("/filters", deps.FiltersHandler.Clear)

	api.Get("/cart", deps.CartHandler.View)
	api.Post("/cart", deps.CartHandler.Add)
	api.Delete("/cart", deps.CartHandler.Clear)
	api.Patch("/cart/:id", deps.CartHandler.Update)
	api.Delete("/cart/:id", deps.CartHandler.Remove)

	api.Get("/notifications", deps.NotificationHandler.List)
	api.Delete("/notifications/:id", deps.NotificationHandler.Dismiss)

	api.Get("/header", deps.HeaderHandler.Get)
	api.Post("/header/scroll", deps.HeaderHandler.Scroll)
	api.Post("/header/interact", deps.HeaderHandler.Interact)
}

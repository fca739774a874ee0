package handlers

import (
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	applog "lilutecno/internal/log"
	"lilutecno/internal/services"
	"lilutecno/internal/validate"
)

const sessionLocal = "session"

// WithSession resolves the sid cookie (issuing one if absent) and attaches the
// shopper's Session to the request.
func WithSession(sessions *services.SessionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies("sid")
		if _, err := uuid.Parse(sid); err != nil {
			if sid != "" {
				applog.Security(c, "session.sid.invalid", nil)
			}
			sid = uuid.NewString()
			c.Cookie(&fiber.Cookie{
				Name:     "sid",
				Value:    sid,
				Path:     "/",
				HTTPOnly: true,
				SameSite: fiber.CookieSameSiteLaxMode,
				Secure:   false, // enable true behind TLS
			})
		}
		c.Locals("sid", sid)
		sess, err := sessions.Get(c.UserContext(), sid)
		if err != nil {
			applog.Error(c, "session.open.fail", err, nil)
			return fiber.NewError(fiber.StatusInternalServerError, "could not open session")
		}
		c.Locals(sessionLocal, sess)
		return c.Next()
	}
}

func session(c *fiber.Ctx) *services.Session {
	s, _ := c.Locals(sessionLocal).(*services.Session)
	return s
}

func badRequest(c *fiber.Ctx, field, msg string) error {
	applog.Security(c, "validation.fail", map[string]any{"field": field})
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}

// paramID reads the :id route segment, which arrives still percent-encoded.
func paramID(c *fiber.Ctx) (string, bool) {
	raw, err := url.PathUnescape(c.Params("id"))
	if err != nil {
		return "", false
	}
	return validate.ID(raw)
}

package api

import (
	"github.com/gofiber/fiber/v2"
	fibersession "github.com/gofiber/fiber/v2/middleware/session"
	"github.com/travigo/commute/pkg/api/routes"
)

// NewSessionMiddleware makes sure every caller has a session cookie and exposes
// its id to the routes, which keep their planner state under it
func NewSessionMiddleware(store *fibersession.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := store.Get(c)
		if err != nil {
			return err
		}

		id := sess.ID()

		// Saving refreshes the cookie expiry
		if err := sess.Save(); err != nil {
			return err
		}

		c.Locals(routes.SessionLocal, id)

		return c.Next()
	}
}

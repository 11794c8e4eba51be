package routes

import (
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"
	"github.com/travigo/commute/pkg/tfl"
	"github.com/travigo/commute/pkg/upstream"
)

// SessionLocal is the fiber local holding the id of the caller's planner session
const SessionLocal = "planner_session"

var kindStatus = map[string]int{
	upstream.KindCredentialsMissing: fiber.StatusServiceUnavailable,
	upstream.KindTransportFailure:   fiber.StatusBadGateway,
	upstream.KindNoResults:          fiber.StatusNotFound,
	upstream.KindInvalidRequest:     fiber.StatusBadRequest,
}

func sessionID(c *fiber.Ctx) string {
	id, _ := c.Locals(SessionLocal).(string)
	return id
}

func sendError(c *fiber.Ctx, err error) error {
	kind := upstream.Kind(err)

	status, ok := kindStatus[kind]
	if !ok {
		status = fiber.StatusInternalServerError
	}

	c.Status(status)
	return c.JSON(fiber.Map{
		"success": false,
		"error":   err.Error(),
		"kind":    kind,
	})
}

// sendReduced only includes the fields tagged with one of the groups
func sendReduced(c *fiber.Ctx, value interface{}, groups ...string) error {
	reduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: groups,
	}, value)

	if err != nil {
		c.Status(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"success": false,
			"error":   "Sheriff could not reduce response",
			"kind":    upstream.KindInternal,
		})
	}

	return c.JSON(reduced)
}

func responseGroups(c *fiber.Ctx) []string {
	if c.QueryBool("detailed", false) {
		return []string{"basic", "detailed"}
	}
	return []string{"basic"}
}

func pathParam(c *fiber.Ctx, name string) string {
	value := c.Params(name)
	if unescaped, err := url.PathUnescape(value); err == nil {
		return unescaped
	}
	return value
}

func journeyOptions(c *fiber.Ctx) tfl.JourneyOptions {
	return tfl.JourneyOptions{
		Mode:              c.Query("mode"),
		Via:               c.Query("via"),
		JourneyPreference: c.Query("preference"),
		Time:              c.Query("time"),
		Date:              c.Query("date"),
		TimeIsArrival:     c.QueryBool("arriving", false),
	}
}

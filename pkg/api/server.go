package api

import (
	_ "embed"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	fibersession "github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"
	"github.com/travigo/commute/pkg/api/routes"
	"github.com/travigo/commute/pkg/metrics"
	"github.com/travigo/commute/pkg/planner"
)

//go:embed dashboard.html
var dashboard []byte

const sessionCookie = "commute_session"

func NewApp(p *planner.Planner, collector *metrics.Collector, sessionExpiration time.Duration) *fiber.App {
	webApp := fiber.New(fiber.Config{
		AppName: "commute",
	})
	webApp.Use(NewLogger())

	webApp.Get("/", func(c *fiber.Ctx) error {
		c.Type("html", "utf-8")
		return c.Send(dashboard)
	})

	if collector != nil {
		webApp.Get("/metrics", adaptor.HTTPHandler(collector.Handler()))
	}

	sessions := fibersession.New(fibersession.Config{
		Expiration:     sessionExpiration,
		KeyLookup:      "cookie:" + sessionCookie,
		CookieHTTPOnly: true,
		CookieSameSite: fiber.CookieSameSiteLaxMode,
		KeyGenerator:   uuid.NewString,
	})

	group := webApp.Group("/core", NewSessionMiddleware(sessions))

	group.Get("version", routes.APIVersion)

	routes.PlannerRouter(group.Group("/planner"), p)
	routes.JourneyRouter(group.Group("/journey"), p)
	routes.RoadRouter(group.Group("/road"), p)

	group.Get("/distance", routes.GetDistance)

	return webApp
}

func SetupServer(listen string, p *planner.Planner, collector *metrics.Collector, sessionExpiration time.Duration) error {
	webApp := NewApp(p, collector, sessionExpiration)

	return webApp.Listen(listen)
}

package routes

import (
	"bytes"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/travigo/commute/pkg/exporter"
	"github.com/travigo/commute/pkg/mapview"
	"github.com/travigo/commute/pkg/planner"
	"github.com/travigo/commute/pkg/tfl"
	"github.com/travigo/commute/pkg/upstream"
)

func JourneyRouter(router fiber.Router, p *planner.Planner) {
	// current must be registered before the origin/destination pattern which would also match it
	router.Get("/current", func(c *fiber.Ctx) error {
		return getCurrentJourney(c, p)
	})
	router.Get("/current/cost", func(c *fiber.Ctx) error {
		return getCurrentJourneyCost(c, p)
	})
	router.Get("/current/map", func(c *fiber.Ctx) error {
		return getCurrentJourneyMap(c, p)
	})
	router.Get("/current/calendar", func(c *fiber.Ctx) error {
		return getCurrentJourneyCalendar(c, p)
	})
	router.Post("/select/:index", func(c *fiber.Ctx) error {
		return selectJourney(c, p)
	})
	router.Get("/:origin/:destination", func(c *fiber.Ctx) error {
		return getJourney(c, p)
	})
}

func getJourney(c *fiber.Ctx, p *planner.Planner) error {
	journey, err := p.Journey(c.UserContext(), sessionID(c), pathParam(c, "origin"), pathParam(c, "destination"), journeyOptions(c))
	if err != nil {
		return sendError(c, err)
	}

	return sendReduced(c, journey, responseGroups(c)...)
}

func selectJourney(c *fiber.Ctx, p *planner.Planner) error {
	index, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return sendError(c, upstream.InvalidRequest("option index must be a number"))
	}

	journey, err := p.Select(c.UserContext(), sessionID(c), index)
	if err != nil {
		return sendError(c, err)
	}

	return sendReduced(c, journey, responseGroups(c)...)
}

func getCurrentJourney(c *fiber.Ctx, p *planner.Planner) error {
	journey, err := p.Current(c.UserContext(), sessionID(c))
	if err != nil {
		return sendError(c, err)
	}

	return sendReduced(c, journey, responseGroups(c)...)
}

func getCurrentJourneyCost(c *fiber.Ctx, p *planner.Planner) error {
	days, err := strconv.Atoi(c.Query("days", "0"))
	if err != nil {
		return sendError(c, upstream.InvalidRequest("days must be a number"))
	}

	estimate, err := p.Cost(c.UserContext(), sessionID(c), days)
	if err != nil {
		return sendError(c, err)
	}

	return sendReduced(c, estimate, "basic")
}

func getCurrentJourneyMap(c *fiber.Ctx, p *planner.Planner) error {
	journey, err := p.Current(c.UserContext(), sessionID(c))
	if err != nil {
		return sendError(c, err)
	}

	opts := mapview.DefaultOptions()
	opts.Centre = p.Defaults.MapCentre
	opts.Zoom = p.Defaults.MapZoom

	var document bytes.Buffer
	if err := mapview.Render(&document, journey, opts); err != nil {
		return sendError(c, err)
	}

	c.Type("html", "utf-8")
	return c.Send(document.Bytes())
}

func getCurrentJourneyCalendar(c *fiber.Ctx, p *planner.Planner) error {
	journey, err := p.Current(c.UserContext(), sessionID(c))
	if err != nil {
		return sendError(c, err)
	}

	var calendar bytes.Buffer
	if err := exporter.GenerateICS([]*tfl.NormalizedJourney{journey}, &calendar); err != nil {
		return sendError(c, err)
	}

	c.Set(fiber.HeaderContentType, "text/calendar; charset=utf-8")
	c.Attachment("journey.ics")
	return c.Send(calendar.Bytes())
}

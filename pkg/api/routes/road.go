package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/travigo/commute/pkg/ctdf"
	"github.com/travigo/commute/pkg/geo"
	"github.com/travigo/commute/pkg/planner"
	"github.com/travigo/commute/pkg/upstream"
)

type roadComparison struct {
	Success bool              `json:"success" groups:"basic"`
	Routes  []*ctdf.RoadRoute `json:"routes" groups:"basic"`
}

func RoadRouter(router fiber.Router, p *planner.Planner) {
	router.Get("/compare", func(c *fiber.Ctx) error {
		return compareRoadProfiles(c, p)
	})
	router.Get("/:profile", func(c *fiber.Ctx) error {
		return getRoadRoute(c, p)
	})
}

func getRoadRoute(c *fiber.Ctx, p *planner.Planner) error {
	from, to, err := coordinateQuery(c)
	if err != nil {
		return sendError(c, err)
	}

	route, err := p.Road(c.UserContext(), from, to, c.Params("profile"))
	if err != nil {
		return sendError(c, err)
	}

	return sendReduced(c, route, "basic")
}

func compareRoadProfiles(c *fiber.Ctx, p *planner.Planner) error {
	from, to, err := coordinateQuery(c)
	if err != nil {
		return sendError(c, err)
	}

	routes, err := p.CompareRoadProfiles(c.UserContext(), from, to)
	if err != nil {
		return sendError(c, err)
	}

	return sendReduced(c, roadComparison{Success: true, Routes: routes}, "basic")
}

func GetDistance(c *fiber.Ctx) error {
	from, to, err := coordinateQuery(c)
	if err != nil {
		return sendError(c, err)
	}

	unit, err := geo.ParseUnit(c.Query("unit"))
	if err != nil {
		return sendError(c, upstream.InvalidRequest("%v", err))
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"distance": geo.Haversine(from, to, unit),
		"unit":     unit,
	})
}

func coordinateQuery(c *fiber.Ctx) (geo.Coordinate, geo.Coordinate, error) {
	from, err := geo.ParseCoordinate(c.Query("from"))
	if err != nil {
		return geo.Coordinate{}, geo.Coordinate{}, upstream.InvalidRequest("from: %v", err)
	}

	to, err := geo.ParseCoordinate(c.Query("to"))
	if err != nil {
		return geo.Coordinate{}, geo.Coordinate{}, upstream.InvalidRequest("to: %v", err)
	}

	return from, to, nil
}

package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/travigo/commute/pkg/planner"
	"github.com/travigo/commute/pkg/tfl"
)

type plannerOption struct {
	Summary tfl.OptionSummary     `json:"summary" groups:"basic"`
	Journey tfl.NormalizedJourney `json:"journey" groups:"basic"`
}

type plannerResponse struct {
	Success bool            `json:"success" groups:"basic"`
	Count   int             `json:"count" groups:"basic"`
	Options []plannerOption `json:"options" groups:"basic"`
}

func PlannerRouter(router fiber.Router, p *planner.Planner) {
	router.Get("/:origin/:destination", func(c *fiber.Ctx) error {
		return getPlanBetweenLocations(c, p)
	})
}

// getPlanBetweenLocations lists the distinct options and remembers them for selection
func getPlanBetweenLocations(c *fiber.Ctx, p *planner.Planner) error {
	origin := pathParam(c, "origin")
	destination := pathParam(c, "destination")

	journeys, err := p.Options(c.UserContext(), sessionID(c), origin, destination, journeyOptions(c))
	if err != nil {
		return sendError(c, err)
	}

	response := plannerResponse{
		Success: true,
		Count:   len(journeys),
	}

	for i, journey := range journeys {
		response.Options = append(response.Options, plannerOption{
			Summary: tfl.Summarise(i+1, journey),
			Journey: tfl.Normalize(journey),
		})
	}

	return sendReduced(c, response, "basic")
}

package tfl

import (
	"fmt"
	"strings"

	"github.com/travigo/commute/pkg/ctdf"
	"github.com/travigo/commute/pkg/util"
)

const unknownStop = "Unknown"

// OptionSummary is a one-line description of a journey option
type OptionSummary struct {
	Index           int    `json:"index" groups:"basic"`
	DurationMinutes int    `json:"duration_minutes" groups:"basic"`
	Fare            string `json:"fare" groups:"basic"`
	LegCount        int    `json:"legs" groups:"basic"`
	StartTime       string `json:"start_time" groups:"basic"`
	ArrivalTime     string `json:"arrival_time" groups:"basic"`
	Route           string `json:"route" groups:"basic"`
	Lines           string `json:"lines" groups:"basic"`
}

func Summarise(index int, journey Journey) OptionSummary {
	return OptionSummary{
		Index:           index,
		DurationMinutes: max(journey.Duration, 0),
		Fare:            ExtractFare(journey.Fare).Label(),
		LegCount:        len(journey.Legs),
		StartTime:       util.ClockTime(journey.StartDateTime),
		ArrivalTime:     util.ClockTime(journey.ArrivalDateTime),
		Route:           RouteDescription(journey),
		Lines:           LineDescription(journey),
	}
}

func SummariseAll(journeys []Journey) []OptionSummary {
	summaries := make([]OptionSummary, 0, len(journeys))
	for i, journey := range journeys {
		summaries = append(summaries, Summarise(i+1, journey))
	}
	return summaries
}

// Label is the text shown when choosing between options
func (s OptionSummary) Label() string {
	return fmt.Sprintf("Option %d: %d min | %s | %s", s.Index, s.DurationMinutes, s.Fare, s.Lines)
}

// RouteDescription reads "Origin → [mode] → Stop → [mode] → Destination"
func RouteDescription(journey Journey) string {
	var parts []string

	for i, leg := range journey.Legs {
		if i == 0 {
			parts = append(parts, stopName(leg.DeparturePoint))
		}

		mode := leg.Mode.Name
		if mode == "" {
			mode = string(ctdf.TransportModeUnknown)
		}

		parts = append(parts, fmt.Sprintf("[%s]", mode), stopName(leg.ArrivalPoint))
	}

	return strings.Join(parts, " → ")
}

// LineDescription lists the lines used, hiding walking legs between them
func LineDescription(journey Journey) string {
	var parts []string

	for _, leg := range journey.Legs {
		mode := leg.TransportMode()

		if mode.HasNamedLines() {
			if lineName := firstRouteOptionName(leg); lineName != "" {
				parts = append(parts, lineName)
			} else {
				parts = append(parts, mode.Title())
			}
		}
	}

	if len(parts) == 0 {
		return "Walking only"
	}

	return strings.Join(parts, " → ")
}

func firstRouteOptionName(leg Leg) string {
	if len(leg.RouteOptions) == 0 {
		return ""
	}
	return leg.RouteOptions[0].Name
}

func stopName(point Point) string {
	if point.CommonName == "" {
		return unknownStop
	}
	return point.CommonName
}

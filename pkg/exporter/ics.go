package exporter

import (
	"fmt"
	"io"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/rs/zerolog/log"
	"github.com/travigo/commute/pkg/tfl"
	"github.com/travigo/commute/pkg/util"
)

// GenerateICS writes one event per journey, from departure to arrival. Journeys
// without readable start and arrival times are skipped.
func GenerateICS(journeys []*tfl.NormalizedJourney, w io.Writer) error {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//travigo//commute//EN")
	cal.SetXWRTimezone(util.LondonLocation().String())

	now := time.Now()

	for i, journey := range journeys {
		if journey == nil || journey.StartTime == nil || journey.ArrivalTime == nil {
			continue
		}

		startTime, err := util.ParseLocalDateTime(*journey.StartTime)
		if err != nil {
			log.Debug().Err(err).Int("journey", i).Msg("Skipping journey with unreadable start time")
			continue
		}

		endTime, err := util.ParseLocalDateTime(*journey.ArrivalTime)
		if err != nil {
			log.Debug().Err(err).Int("journey", i).Msg("Skipping journey with unreadable arrival time")
			continue
		}

		event := cal.AddEvent(fmt.Sprintf("%s-%d@commute", startTime.UTC().Format("20060102T150405Z"), i))
		event.SetCreatedTime(now)
		event.SetDtStampTime(now)
		event.SetModifiedAt(now)
		event.SetStartAt(startTime)
		event.SetEndAt(endTime)
		event.SetSummary(Summary(journey))
		event.SetDescription(Description(journey))

		if legs := journey.Legs(); len(legs) > 0 {
			event.SetLocation(legs[0].DeparturePoint.CommonName)
		}
	}

	return cal.SerializeTo(w)
}

// Summary is "FROM → TO" using the first departure and last arrival
func Summary(journey *tfl.NormalizedJourney) string {
	if journey.Raw == nil {
		return "Journey"
	}

	from, to := "Unknown", "Unknown"
	if first := journey.Raw.FirstLeg(); first != nil && first.DeparturePoint.CommonName != "" {
		from = first.DeparturePoint.CommonName
	}
	if last := journey.Raw.LastLeg(); last != nil && last.ArrivalPoint.CommonName != "" {
		to = last.ArrivalPoint.CommonName
	}

	return fmt.Sprintf("%s → %s", from, to)
}

func Description(journey *tfl.NormalizedJourney) string {
	var lines []string

	for i, leg := range journey.Legs() {
		line := fmt.Sprintf("%d. %s", i+1, leg.TransportMode().Title())
		if name := leg.LineName(); name != "" && leg.TransportMode().HasNamedLines() {
			line += fmt.Sprintf(" (%s)", name)
		}
		line += fmt.Sprintf(": %s → %s, %d min", leg.DeparturePoint.CommonName, leg.ArrivalPoint.CommonName, leg.Duration)

		lines = append(lines, line)
	}

	lines = append(lines, fmt.Sprintf("Duration: %d min", journey.DurationMinutes))
	if journey.Fare.TotalCost != nil {
		lines = append(lines, "Fare: "+journey.Fare.Label())
	}

	return strings.Join(lines, "\n")
}

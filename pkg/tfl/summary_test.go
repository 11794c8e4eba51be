package tfl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummariseFixture(t *testing.T) {
	summaries := SummariseAll(Deduplicate(fixtureJourneys(t)))
	require.Len(t, summaries, 2)

	first := summaries[0]
	assert.Equal(t, 1, first.Index)
	assert.Equal(t, 28, first.DurationMinutes)
	assert.Equal(t, "£2.80", first.Fare)
	assert.Equal(t, 3, first.LegCount)
	assert.Equal(t, "08:30", first.StartTime)
	assert.Equal(t, "08:58", first.ArrivalTime)
	assert.Equal(t, "Parliament Square → [walking] → Westminster Underground Station → [tube] → Tower Hill Underground Station → [walking] → Tower Bridge Road", first.Route)
	assert.Equal(t, "District", first.Lines)
	assert.Equal(t, "Option 1: 28 min | £2.80 | District", first.Label())

	second := summaries[1]
	assert.Equal(t, "£1.80", second.Fare)
	assert.Equal(t, "15", second.Lines)
}

func TestLineDescription(t *testing.T) {
	walk := Journey{Legs: []Leg{{Mode: Mode{Name: "walking"}}}}
	assert.Equal(t, "Walking only", LineDescription(walk))

	unnamed := Journey{Legs: []Leg{
		{Mode: Mode{Name: "walking"}},
		{Mode: Mode{Name: "overground"}},
		{Mode: Mode{Name: "bus"}, RouteOptions: []RouteOption{{Name: "N29"}}},
	}}
	assert.Equal(t, "Overground → N29", LineDescription(unnamed))
}

func TestRouteDescriptionUnknowns(t *testing.T) {
	journey := Journey{Legs: []Leg{{}}}
	assert.Equal(t, "Unknown → [unknown] → Unknown", RouteDescription(journey))
	assert.Equal(t, "", RouteDescription(Journey{}))
}

func TestLegHelpers(t *testing.T) {
	leg := Leg{Mode: Mode{Name: "Tube"}, RouteOptions: []RouteOption{{Name: ""}, {Name: "Jubilee"}}}

	assert.Equal(t, "Jubilee", leg.LineName())
	assert.True(t, leg.TransportMode().HasNamedLines())
	assert.False(t, Point{Lat: 51.5}.HasLocation())
}

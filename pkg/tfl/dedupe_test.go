package tfl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func journeyBetween(origin string, destination string, duration int) Journey {
	return Journey{
		Duration: duration,
		Legs: []Leg{
			{DeparturePoint: Point{CommonName: origin}, ArrivalPoint: Point{CommonName: "Interchange"}},
			{DeparturePoint: Point{CommonName: "Interchange"}, ArrivalPoint: Point{CommonName: destination}},
		},
	}
}

func TestDeduplicateCaseInsensitive(t *testing.T) {
	journeys := []Journey{
		journeyBetween("Bank", "Oxford Circus", 20),
		journeyBetween("  BANK ", "oxford circus", 25),
		journeyBetween("Bank", "Green Park", 22),
	}

	filtered := Deduplicate(journeys)

	assert.Len(t, filtered, 2)
	assert.Equal(t, 20, filtered[0].Duration)
	assert.Equal(t, 22, filtered[1].Duration)
}

func TestDeduplicateEmpty(t *testing.T) {
	filtered := Deduplicate(nil)
	assert.NotNil(t, filtered)
	assert.Empty(t, filtered)

	filtered = Deduplicate([]Journey{{Duration: 10}, {Duration: 20, Legs: []Leg{}}})
	assert.NotNil(t, filtered)
	assert.Empty(t, filtered)
}

func TestDeduplicateFixture(t *testing.T) {
	filtered := Deduplicate(fixtureJourneys(t))

	assert.Len(t, filtered, 2)
	assert.Equal(t, 28, filtered[0].Duration)
	assert.Equal(t, 40, filtered[1].Duration)
}

func TestDeduplicateMissingNames(t *testing.T) {
	filtered := Deduplicate([]Journey{
		{Duration: 1, Legs: []Leg{{}}},
		{Duration: 2, Legs: []Leg{{}}},
	})

	assert.Len(t, filtered, 1)
}

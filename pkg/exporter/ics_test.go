package exporter

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/commute/pkg/tfl"
	"github.com/travigo/commute/pkg/tfl/tfltest"
)

func fixtureJourneys(t *testing.T) []*tfl.NormalizedJourney {
	t.Helper()

	var response tfl.JourneyResponse
	require.NoError(t, json.Unmarshal([]byte(tfltest.JourneyResults), &response))

	var journeys []*tfl.NormalizedJourney
	for _, journey := range tfl.Deduplicate(response.Journeys) {
		normalized := tfl.Normalize(journey)
		journeys = append(journeys, &normalized)
	}

	return journeys
}

func TestGenerateICS(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, GenerateICS(fixtureJourneys(t), &buf))

	output := buf.String()

	assert.Equal(t, 2, strings.Count(output, "BEGIN:VEVENT"))
	assert.Contains(t, output, "SUMMARY:Parliament Square → Tower Bridge Road")
	assert.Contains(t, output, "SUMMARY:Westminster Bridge → Tower Bridge Road")

	// 08:30 in London during British Summer Time
	assert.Contains(t, output, "DTSTART:20261016T073000Z")
	assert.Contains(t, output, "DTEND:20261016T075800Z")
}

func TestGenerateICSSkipsJourneysWithoutTimes(t *testing.T) {
	journeys := fixtureJourneys(t)
	journeys[1].StartTime = nil

	var buf bytes.Buffer
	require.NoError(t, GenerateICS(append(journeys, nil), &buf))

	assert.Equal(t, 1, strings.Count(buf.String(), "BEGIN:VEVENT"))
}

func TestDescription(t *testing.T) {
	description := Description(fixtureJourneys(t)[0])

	lines := strings.Split(description, "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "1. Walking: Parliament Square → Westminster Underground Station, 4 min", lines[0])
	assert.Equal(t, "2. Tube (District): Westminster Underground Station → Tower Hill Underground Station, 18 min", lines[1])
	assert.Equal(t, "Duration: 28 min", lines[3])
	assert.Equal(t, "Fare: £2.80", lines[4])
}

func TestSummaryWithoutLegs(t *testing.T) {
	assert.Equal(t, "Journey", Summary(&tfl.NormalizedJourney{}))
	assert.Equal(t, "Unknown → Unknown", Summary(&tfl.NormalizedJourney{Raw: &tfl.Journey{Legs: []tfl.Leg{{}}}}))
}

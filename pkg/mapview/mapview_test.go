package mapview

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/commute/pkg/tfl"
	"github.com/travigo/commute/pkg/tfl/tfltest"
)

func fixtureJourney(t *testing.T, index int) *tfl.NormalizedJourney {
	t.Helper()

	var response tfl.JourneyResponse
	require.NoError(t, json.Unmarshal([]byte(tfltest.JourneyResults), &response))

	normalized := tfl.Normalize(response.Journeys[index])
	return &normalized
}

func TestBuild(t *testing.T) {
	document, err := Build(fixtureJourney(t, 0), DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, Point{51.5074, -0.1278}, document.Centre)
	assert.Equal(t, 12, document.Zoom)

	require.Len(t, document.Polylines, 3)
	assert.Equal(t, "#00A575", document.Polylines[0].Colour)
	assert.Len(t, document.Polylines[0].Points, 3)
	assert.False(t, document.Polylines[0].Straight)

	assert.Equal(t, "#003688", document.Polylines[1].Colour)
	assert.Len(t, document.Polylines[1].Points, 4)
	assert.Equal(t, "Leg 2: TUBE<br>Westminster Underground Station → Tower Hill Underground Station", document.Polylines[1].Popup)

	// The final walk has no path so it is drawn straight between its endpoints
	assert.True(t, document.Polylines[2].Straight)
	assert.Equal(t, []Point{{51.5098, -0.0766}, {51.5055, -0.0753}}, document.Polylines[2].Points)

	require.Len(t, document.Markers, 4)
	assert.Equal(t, "green", document.Markers[0].Colour)
	assert.Equal(t, "<b>START</b><br>Parliament Square", document.Markers[0].Popup)
	assert.Equal(t, "<b>STOP 1</b><br>Westminster Underground Station", document.Markers[1].Popup)
	assert.Equal(t, "blue", document.Markers[2].Colour)
	assert.Equal(t, "red", document.Markers[3].Colour)
	assert.Equal(t, "<b>END</b><br>Tower Bridge Road", document.Markers[3].Popup)

	assert.Equal(t, []Point{{51.5005, -0.1269}, {51.5118, -0.0753}}, document.Bounds)

	require.Len(t, document.Legend.Modes, 9)
	assert.Equal(t, "Tube", document.Legend.Modes[0].Label)
	assert.Equal(t, 28, document.Legend.DurationMinutes)
	assert.Equal(t, "£2.80", document.Legend.Fare)
}

func TestBuildWithoutLocations(t *testing.T) {
	journey := &tfl.NormalizedJourney{
		DurationMinutes: 10,
		Raw: &tfl.Journey{Legs: []tfl.Leg{{
			Mode:           tfl.Mode{Name: "hovercraft"},
			DeparturePoint: tfl.Point{CommonName: "A"},
			ArrivalPoint:   tfl.Point{CommonName: "B <i>"},
		}}},
	}

	document, err := Build(journey, DefaultOptions())
	require.NoError(t, err)

	assert.Empty(t, document.Polylines)
	assert.Empty(t, document.Markers)
	assert.Nil(t, document.Bounds)
	assert.Empty(t, document.Legend.Fare)
}

func TestBuildUnknownModeColour(t *testing.T) {
	journey := &tfl.NormalizedJourney{
		Raw: &tfl.Journey{Legs: []tfl.Leg{{
			Mode:           tfl.Mode{Name: "cable-car"},
			DeparturePoint: tfl.Point{CommonName: "Royal Docks", Lat: 51.5079, Lon: 0.0177},
			ArrivalPoint:   tfl.Point{CommonName: "Greenwich Peninsula", Lat: 51.4998, Lon: 0.0084},
		}}},
	}

	document, err := Build(journey, DefaultOptions())
	require.NoError(t, err)

	require.Len(t, document.Polylines, 1)
	assert.Equal(t, "#666666", document.Polylines[0].Colour)
	require.Len(t, document.Markers, 2)
	assert.Equal(t, "red", document.Markers[1].Colour)
}

func TestBuildEscapesStopNames(t *testing.T) {
	journey := &tfl.NormalizedJourney{
		Raw: &tfl.Journey{Legs: []tfl.Leg{{
			Mode:           tfl.Mode{Name: "bus"},
			DeparturePoint: tfl.Point{CommonName: "<img src=x onerror=alert(1)>", Lat: 51.5014, Lon: -0.1276},
			ArrivalPoint:   tfl.Point{CommonName: "Tower <b>Bridge</b> & Co", Lat: 51.5055, Lon: -0.0753},
		}}},
	}

	document, err := Build(journey, DefaultOptions())
	require.NoError(t, err)

	require.Len(t, document.Markers, 2)
	assert.Equal(t, "&lt;img src=x onerror=alert(1)&gt;", document.Markers[0].Tooltip)
	assert.Equal(t, "<b>START</b><br>&lt;img src=x onerror=alert(1)&gt;", document.Markers[0].Popup)
	assert.Equal(t, "Tower &lt;b&gt;Bridge&lt;/b&gt; &amp; Co", document.Markers[1].Tooltip)

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, journey, DefaultOptions()))
	assert.NotContains(t, buf.String(), "<img src=x")
}

func TestBuildNoLegs(t *testing.T) {
	_, err := Build(&tfl.NormalizedJourney{}, DefaultOptions())
	assert.ErrorIs(t, err, ErrNoLegs)

	_, err = Build(nil, DefaultOptions())
	assert.ErrorIs(t, err, ErrNoLegs)
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, fixtureJourney(t, 0), DefaultOptions()))

	output := buf.String()
	assert.True(t, strings.HasPrefix(output, "<!DOCTYPE html>"))
	assert.Contains(t, output, "leaflet.js")
	assert.Contains(t, output, "<h4>Transport Modes</h4>")
	assert.Contains(t, output, "> Tube</p>")
	assert.Contains(t, output, "<p><b>Duration:</b> 28 min</p>")
	assert.Contains(t, output, "<p><b>Fare:</b> £2.80</p>")
	assert.Contains(t, output, "#DC241F")
	assert.Contains(t, output, "setView([51.5074,-0.1278],")
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journey_map.html")

	require.NoError(t, WriteFile(path, fixtureJourney(t, 2), DefaultOptions()))

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(contents), "<p><b>Duration:</b> 40 min</p>")
}

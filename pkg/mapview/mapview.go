package mapview

import (
	_ "embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/travigo/commute/pkg/ctdf"
	"github.com/travigo/commute/pkg/geo"
	"github.com/travigo/commute/pkg/tfl"
)

var ErrNoLegs = errors.New("journey has no legs to draw")

const (
	startColour        = "green"
	intermediateColour = "blue"
	endColour          = "red"
)

//go:embed map.html.tmpl
var documentTemplate string

var mapTemplate = template.Must(template.New("map").Parse(documentTemplate))

type Options struct {
	Title  string
	Centre geo.Coordinate
	Zoom   int
}

// DefaultOptions centres the map on central London
func DefaultOptions() Options {
	return Options{
		Title:  "Journey map",
		Centre: geo.Coordinate{Longitude: -0.1278, Latitude: 51.5074},
		Zoom:   12,
	}
}

// Point is a [lat, lon] pair, the order Leaflet expects
type Point [2]float64

func pointOf(p tfl.Point) Point {
	return Point{p.Lat, p.Lon}
}

type Polyline struct {
	Points   []Point `json:"points"`
	Colour   string  `json:"colour"`
	Popup    string  `json:"popup"`
	Straight bool    `json:"straight"`
}

type Marker struct {
	Position Point  `json:"position"`
	Colour   string `json:"colour"`
	Popup    string `json:"popup"`
	Tooltip  string `json:"tooltip"`
}

type LegendEntry struct {
	Label  string
	Colour string
}

type Legend struct {
	Modes           []LegendEntry
	DurationMinutes int
	Fare            string
}

// Document is everything drawn on the map
type Document struct {
	Title     string
	Centre    Point
	Zoom      int
	Polylines []Polyline
	Markers   []Marker
	Bounds    []Point
	Legend    Legend
}

// Build lays out one polyline per leg in its mode colour with start, stop and
// end markers. Legs without a usable path are drawn as a straight line.
func Build(journey *tfl.NormalizedJourney, opts Options) (*Document, error) {
	if journey == nil {
		return nil, ErrNoLegs
	}

	legs := journey.Legs()
	if len(legs) == 0 {
		return nil, ErrNoLegs
	}

	document := &Document{
		Title:  opts.Title,
		Centre: Point{opts.Centre.Latitude, opts.Centre.Longitude},
		Zoom:   opts.Zoom,
		Legend: buildLegend(journey),
	}

	var allPoints []geo.Coordinate

	for i, leg := range legs {
		legNumber := i + 1
		modeName := strings.ToLower(leg.Mode.Name)
		if modeName == "" {
			modeName = string(ctdf.TransportModeUnknown)
		}

		departureName := nameOrUnknown(leg.DeparturePoint.CommonName)
		arrivalName := nameOrUnknown(leg.ArrivalPoint.CommonName)

		if leg.DeparturePoint.HasLocation() {
			allPoints = append(allPoints, coordinateOf(leg.DeparturePoint))

			if i == 0 {
				document.Markers = append(document.Markers, Marker{
					Position: pointOf(leg.DeparturePoint),
					Colour:   startColour,
					Popup:    "<b>START</b><br>" + template.HTMLEscapeString(departureName),
					Tooltip:  template.HTMLEscapeString(departureName),
				})
			}
		}

		if leg.ArrivalPoint.HasLocation() {
			allPoints = append(allPoints, coordinateOf(leg.ArrivalPoint))
		}

		points, straight := legPoints(leg)
		if len(points) > 0 {
			document.Polylines = append(document.Polylines, Polyline{
				Points:   points,
				Colour:   ctdf.ParseTransportMode(modeName).Colour(),
				Popup:    fmt.Sprintf("Leg %d: %s<br>%s → %s", legNumber, template.HTMLEscapeString(strings.ToUpper(modeName)), template.HTMLEscapeString(departureName), template.HTMLEscapeString(arrivalName)),
				Straight: straight,
			})
		}

		if leg.ArrivalPoint.HasLocation() {
			label, colour := fmt.Sprintf("STOP %d", legNumber), intermediateColour
			if legNumber == len(legs) {
				label, colour = "END", endColour
			}

			document.Markers = append(document.Markers, Marker{
				Position: pointOf(leg.ArrivalPoint),
				Colour:   colour,
				Popup:    fmt.Sprintf("<b>%s</b><br>%s", label, template.HTMLEscapeString(arrivalName)),
				Tooltip:  template.HTMLEscapeString(arrivalName),
			})
		}
	}

	for _, polyline := range document.Polylines {
		for _, point := range polyline.Points {
			allPoints = append(allPoints, geo.Coordinate{Latitude: point[0], Longitude: point[1]})
		}
	}

	if bounds, ok := geo.BoundsOf(allPoints); ok {
		document.Bounds = []Point{
			{bounds.SouthWest.Latitude, bounds.SouthWest.Longitude},
			{bounds.NorthEast.Latitude, bounds.NorthEast.Longitude},
		}
	}

	return document, nil
}

func Render(w io.Writer, journey *tfl.NormalizedJourney, opts Options) error {
	document, err := Build(journey, opts)
	if err != nil {
		return err
	}

	return mapTemplate.Execute(w, document)
}

// WriteFile renders the map into an HTML file at path
func WriteFile(path string, journey *tfl.NormalizedJourney, opts Options) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := Render(file, journey, opts); err != nil {
		return err
	}

	log.Debug().Str("path", path).Msg("Written journey map")

	return file.Close()
}

// legPoints returns the decoded path of a leg, or a straight line between its
// endpoints when there is no usable path
func legPoints(leg tfl.Leg) ([]Point, bool) {
	if leg.Path != nil && len(leg.Path.LineString.Points) > 0 {
		points := make([]Point, 0, len(leg.Path.LineString.Points))
		for _, pair := range leg.Path.LineString.Points {
			points = append(points, Point(pair))
		}
		return points, false
	}

	if leg.DeparturePoint.HasLocation() && leg.ArrivalPoint.HasLocation() {
		return []Point{pointOf(leg.DeparturePoint), pointOf(leg.ArrivalPoint)}, true
	}

	return nil, false
}

func buildLegend(journey *tfl.NormalizedJourney) Legend {
	legend := Legend{DurationMinutes: journey.DurationMinutes}

	for _, entry := range ctdf.Palette {
		legend.Modes = append(legend.Modes, LegendEntry{Label: entry.Mode.Title(), Colour: entry.Colour})
	}

	if journey.Fare.TotalCost != nil {
		legend.Fare = journey.Fare.Label()
	}

	return legend
}

func coordinateOf(p tfl.Point) geo.Coordinate {
	return geo.Coordinate{Longitude: p.Lon, Latitude: p.Lat}
}

func nameOrUnknown(name string) string {
	if name == "" {
		return "Unknown"
	}
	return name
}

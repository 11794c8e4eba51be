package geo

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/paulcager/osgridref"
)

const earthRadiusKm = 6371.0
const kmToMiles = 0.621371

type Unit string

const (
	UnitKilometres Unit = "km"
	UnitMiles      Unit = "miles"
)

// Coordinate is a WGS84 position, longitude first to match the routing services
type Coordinate struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}

func (c Coordinate) String() string {
	return fmt.Sprintf("%s,%s", formatFloat(c.Longitude), formatFloat(c.Latitude))
}

func (c Coordinate) IsValid() bool {
	return c.Latitude >= -90 && c.Latitude <= 90 && c.Longitude >= -180 && c.Longitude <= 180
}

// Haversine returns the great-circle distance between two coordinates
func Haversine(a Coordinate, b Coordinate, unit Unit) float64 {
	lat1 := toRadians(a.Latitude)
	lat2 := toRadians(b.Latitude)
	dLat := lat2 - lat1
	dLon := toRadians(b.Longitude) - toRadians(a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Asin(math.Sqrt(h))

	distance := earthRadiusKm * c

	if unit == UnitMiles {
		return distance * kmToMiles
	}
	return distance
}

func ParseUnit(value string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "km", "kilometres", "kilometers":
		return UnitKilometres, nil
	case "mi", "miles":
		return UnitMiles, nil
	default:
		return "", fmt.Errorf("unknown distance unit %q", value)
	}
}

// ParseCoordinate accepts "lon,lat" or an Ordnance Survey grid reference
// easting,northing pair such as "530080,180260"
func ParseCoordinate(value string) (Coordinate, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return Coordinate{}, errors.New("empty coordinate")
	}

	parts := strings.Split(value, ",")
	if len(parts) == 2 {
		lon, lonErr := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		lat, latErr := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)

		if lonErr == nil && latErr == nil {
			coordinate := Coordinate{Longitude: lon, Latitude: lat}
			if coordinate.IsValid() {
				return coordinate, nil
			}
		}
	}

	gridRef, err := osgridref.ParseOsGridRef(value)
	if err != nil {
		return Coordinate{}, fmt.Errorf("could not parse %q as lon,lat or OS grid reference: %w", value, err)
	}

	lat, lon := gridRef.ToLatLon()

	return Coordinate{Longitude: lon, Latitude: lat}, nil
}

func toRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

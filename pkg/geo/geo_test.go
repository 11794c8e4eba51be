package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	westminster = Coordinate{Longitude: -0.1276, Latitude: 51.5014}
	towerBridge = Coordinate{Longitude: -0.0753, Latitude: 51.5055}
)

func TestHaversineWestminsterToTowerBridge(t *testing.T) {
	km := Haversine(westminster, towerBridge, UnitKilometres)
	assert.InDelta(t, 3.6486, km, 0.005)

	miles := Haversine(westminster, towerBridge, UnitMiles)
	assert.InDelta(t, km*0.621371, miles, 1e-9)
}

func TestHaversineIsSymmetricAndZeroForSamePoint(t *testing.T) {
	assert.InDelta(t, Haversine(westminster, towerBridge, UnitKilometres), Haversine(towerBridge, westminster, UnitKilometres), 1e-12)
	assert.Equal(t, 0.0, Haversine(westminster, westminster, UnitKilometres))
}

func TestParseCoordinate(t *testing.T) {
	coordinate, err := ParseCoordinate("-0.1276, 51.5014")
	require.NoError(t, err)
	assert.Equal(t, westminster, coordinate)

	_, err = ParseCoordinate("")
	assert.Error(t, err)

	_, err = ParseCoordinate("somewhere near the river")
	assert.Error(t, err)
}

func TestParseCoordinateGridReference(t *testing.T) {
	// Easting and northing of the Palace of Westminster
	coordinate, err := ParseCoordinate("530200,179500")
	require.NoError(t, err)

	assert.InDelta(t, 51.499, coordinate.Latitude, 0.01)
	assert.InDelta(t, -0.124, coordinate.Longitude, 0.01)
}

func TestParseUnit(t *testing.T) {
	unit, err := ParseUnit("Miles")
	require.NoError(t, err)
	assert.Equal(t, UnitMiles, unit)

	unit, err = ParseUnit("")
	require.NoError(t, err)
	assert.Equal(t, UnitKilometres, unit)

	_, err = ParseUnit("furlongs")
	assert.Error(t, err)
}

func TestBoundsOf(t *testing.T) {
	_, ok := BoundsOf(nil)
	assert.False(t, ok)

	bounds, ok := BoundsOf([]Coordinate{westminster, towerBridge})
	require.True(t, ok)
	assert.Equal(t, Coordinate{Longitude: -0.1276, Latitude: 51.5014}, bounds.SouthWest)
	assert.Equal(t, Coordinate{Longitude: -0.0753, Latitude: 51.5055}, bounds.NorthEast)
}

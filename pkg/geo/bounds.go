package geo

// Bounds is the south-west and north-east corner of a set of points
type Bounds struct {
	SouthWest Coordinate
	NorthEast Coordinate
}

func BoundsOf(points []Coordinate) (Bounds, bool) {
	if len(points) == 0 {
		return Bounds{}, false
	}

	bounds := Bounds{SouthWest: points[0], NorthEast: points[0]}

	for _, point := range points[1:] {
		bounds.SouthWest.Latitude = min(bounds.SouthWest.Latitude, point.Latitude)
		bounds.SouthWest.Longitude = min(bounds.SouthWest.Longitude, point.Longitude)
		bounds.NorthEast.Latitude = max(bounds.NorthEast.Latitude, point.Latitude)
		bounds.NorthEast.Longitude = max(bounds.NorthEast.Longitude, point.Longitude)
	}

	return bounds, true
}

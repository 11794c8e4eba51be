package tfl

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

type LineStringKind int

const (
	LineStringNone LineStringKind = iota
	LineStringPairs
	LineStringEncoded
)

func (k LineStringKind) String() string {
	switch k {
	case LineStringPairs:
		return "pairs"
	case LineStringEncoded:
		return "encoded"
	default:
		return "none"
	}
}

// LineString is a leg path as [lat, lon] points. TfL has sent it both as a
// JSON array and as a string, so the format is resolved once while decoding.
// Anything unreadable decodes to LineStringNone rather than failing the journey.
type LineString struct {
	Kind   LineStringKind
	Points [][2]float64
}

func (l LineString) IsEmpty() bool {
	return len(l.Points) == 0
}

func (l *LineString) UnmarshalJSON(data []byte) error {
	*l = LineString{}

	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}

	switch data[0] {
	case '[':
		if points, ok := decodePairs(data); ok {
			*l = LineString{Kind: LineStringPairs, Points: points}
		}
	case '"':
		var encoded string
		if err := json.Unmarshal(data, &encoded); err != nil {
			return nil
		}

		if points, ok := decodeEncoded(encoded); ok {
			*l = LineString{Kind: LineStringEncoded, Points: points}
		}
	}

	return nil
}

func (l LineString) MarshalJSON() ([]byte, error) {
	if l.IsEmpty() {
		return []byte("null"), nil
	}
	return json.Marshal(l.Points)
}

func decodePairs(data []byte) ([][2]float64, bool) {
	var raw [][]float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, false
	}

	points := make([][2]float64, 0, len(raw))
	for _, pair := range raw {
		if len(pair) < 2 {
			return nil, false
		}
		points = append(points, [2]float64{pair[0], pair[1]})
	}

	return points, len(points) > 0
}

func decodeEncoded(encoded string) ([][2]float64, bool) {
	encoded = strings.TrimSpace(encoded)
	if encoded == "" {
		return nil, false
	}

	if points, ok := decodePairs([]byte(encoded)); ok {
		return points, true
	}

	// Flat "lat,lon,lat,lon" list, a trailing odd value is ignored
	values := strings.Split(strings.Trim(encoded, "[] "), ",")

	var points [][2]float64
	for i := 0; i+1 < len(values); i += 2 {
		lat, err := strconv.ParseFloat(strings.TrimSpace(values[i]), 64)
		if err != nil {
			return nil, false
		}
		lon, err := strconv.ParseFloat(strings.TrimSpace(values[i+1]), 64)
		if err != nil {
			return nil, false
		}

		points = append(points, [2]float64{lat, lon})
	}

	return points, len(points) > 0
}

package ctdf

type RoadRoute struct {
	Profile         string  `json:"profile" groups:"basic"`
	DistanceKm      float64 `json:"distance_km" groups:"basic"`
	DistanceMiles   float64 `json:"distance_miles" groups:"basic"`
	DurationMinutes float64 `json:"duration_minutes" groups:"basic"`
	DurationHours   float64 `json:"duration_hours" groups:"basic"`

	// Estimated is set when the distance is a straight line and not a routed path
	Estimated bool   `json:"estimated" groups:"basic"`
	Source    string `json:"source" groups:"basic"`
	Warning   string `json:"warning,omitempty" groups:"basic"`
}

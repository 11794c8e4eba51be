package ctdf

import (
	"time"
)

// PlannerEvent records a query made through the planner so usage can be indexed
type PlannerEvent struct {
	ID        string
	Type      PlannerEventType
	Timestamp time.Time

	SessionID   string
	Origin      string
	Destination string
	Profile     string `json:",omitempty"`

	Success         bool
	ErrorKind       string `json:",omitempty"`
	DurationMinutes float64
	Fare            *float64 `json:",omitempty"`
	Options         int      `json:",omitempty"`
}

type PlannerEventType string

const (
	PlannerEventTypeJourney PlannerEventType = "Journey"
	PlannerEventTypeOptions PlannerEventType = "Options"
	PlannerEventTypeSelect  PlannerEventType = "Select"
	PlannerEventTypeRoad    PlannerEventType = "Road"
)

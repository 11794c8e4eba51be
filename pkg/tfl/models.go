package tfl

import "github.com/travigo/commute/pkg/ctdf"

// JourneyResponse is the body of a JourneyResults request. Only the
// fields the planner reads are decoded.
type JourneyResponse struct {
	Journeys []Journey `json:"journeys"`
}

type Journey struct {
	Duration        int    `json:"duration" groups:"detailed"`
	StartDateTime   string `json:"startDateTime" groups:"detailed"`
	ArrivalDateTime string `json:"arrivalDateTime" groups:"detailed"`
	Legs            []Leg  `json:"legs" groups:"detailed"`
	Fare            *Fare  `json:"fare,omitempty" groups:"detailed"`
}

type Leg struct {
	Duration       int           `json:"duration" groups:"detailed"`
	DepartureTime  string        `json:"departureTime,omitempty" groups:"detailed"`
	ArrivalTime    string        `json:"arrivalTime,omitempty" groups:"detailed"`
	Mode           Mode          `json:"mode" groups:"detailed"`
	DeparturePoint Point         `json:"departurePoint" groups:"detailed"`
	ArrivalPoint   Point         `json:"arrivalPoint" groups:"detailed"`
	Instruction    *Instruction  `json:"instruction,omitempty" groups:"detailed"`
	RouteOptions   []RouteOption `json:"routeOptions,omitempty" groups:"detailed"`
	Disruptions    []Disruption  `json:"disruptions,omitempty" groups:"detailed"`
	IsDisrupted    bool          `json:"isDisrupted,omitempty" groups:"detailed"`
	Path           *Path         `json:"path,omitempty" groups:"detailed"`
}

type Mode struct {
	ID   string `json:"id,omitempty" groups:"detailed"`
	Name string `json:"name" groups:"detailed"`
}

type Point struct {
	CommonName string  `json:"commonName" groups:"detailed"`
	NaptanID   string  `json:"naptanId,omitempty" groups:"detailed"`
	Lat        float64 `json:"lat,omitempty" groups:"detailed"`
	Lon        float64 `json:"lon,omitempty" groups:"detailed"`
}

// HasLocation is false when either coordinate is missing
func (p Point) HasLocation() bool {
	return p.Lat != 0 && p.Lon != 0
}

type Instruction struct {
	Summary  string `json:"summary" groups:"detailed"`
	Detailed string `json:"detailed" groups:"detailed"`
}

type RouteOption struct {
	Name       string   `json:"name" groups:"detailed"`
	Directions []string `json:"directions,omitempty" groups:"detailed"`
}

type Disruption struct {
	Category    string `json:"category,omitempty" groups:"detailed"`
	Type        string `json:"type,omitempty" groups:"detailed"`
	Description string `json:"description,omitempty" groups:"detailed"`
}

type Path struct {
	LineString LineString `json:"lineString" groups:"detailed"`
}

// Fare amounts are in pence. Pointer fields distinguish absent from zero.
type Fare struct {
	TotalCost  *int         `json:"totalCost,omitempty" groups:"detailed"`
	Fares      []FareDetail `json:"fares,omitempty" groups:"detailed"`
	Caveats    []Caveat     `json:"caveats,omitempty" groups:"detailed"`
	CaveatText *string      `json:"caveatText,omitempty" groups:"detailed"`
}

type FareDetail struct {
	LowZone           *int   `json:"lowZone,omitempty" groups:"detailed"`
	HighZone          *int   `json:"highZone,omitempty" groups:"detailed"`
	Cost              *int   `json:"cost,omitempty" groups:"detailed"`
	ChargeProfileName string `json:"chargeProfileName,omitempty" groups:"detailed"`
}

type Caveat struct {
	Text string `json:"text" groups:"detailed"`
	Type string `json:"type,omitempty" groups:"detailed"`
}

func (j *Journey) FirstLeg() *Leg {
	if len(j.Legs) == 0 {
		return nil
	}
	return &j.Legs[0]
}

func (j *Journey) LastLeg() *Leg {
	if len(j.Legs) == 0 {
		return nil
	}
	return &j.Legs[len(j.Legs)-1]
}

func (l *Leg) TransportMode() ctdf.TransportMode {
	return ctdf.ParseTransportMode(l.Mode.Name)
}

// LineName is the first named route option, the canonical line for the leg
func (l *Leg) LineName() string {
	for _, option := range l.RouteOptions {
		if option.Name != "" {
			return option.Name
		}
	}
	return ""
}

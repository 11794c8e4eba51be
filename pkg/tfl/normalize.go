package tfl

import (
	"github.com/travigo/commute/pkg/ctdf"
	"golang.org/x/exp/slices"
)

// NormalizedJourney is the flattened view of a single TfL journey used by
// every presentation layer. It is never modified once created.
type NormalizedJourney struct {
	Success         bool          `json:"success" groups:"basic,detailed"`
	DurationMinutes int           `json:"duration_minutes" groups:"basic,detailed"`
	StartTime       *string       `json:"start_time" groups:"basic,detailed"`
	ArrivalTime     *string       `json:"arrival_time" groups:"basic,detailed"`
	LegCount        int           `json:"legs" groups:"basic,detailed"`
	Fare            ctdf.FareInfo `json:"fare" groups:"basic,detailed"`
	Raw             *Journey      `json:"raw_data,omitempty" groups:"detailed"`
}

func Normalize(journey Journey) NormalizedJourney {
	raw := journey
	raw.Legs = slices.Clone(journey.Legs)

	return NormalizedJourney{
		Success:         true,
		DurationMinutes: max(journey.Duration, 0),
		StartTime:       optionalString(journey.StartDateTime),
		ArrivalTime:     optionalString(journey.ArrivalDateTime),
		LegCount:        len(journey.Legs),
		Fare:            ExtractFare(journey.Fare),
		Raw:             &raw,
	}
}

func (n *NormalizedJourney) Legs() []Leg {
	if n.Raw == nil {
		return nil
	}
	return n.Raw.Legs
}

// ExtractFare converts the TfL fare block into pounds. A positive totalCost
// wins, otherwise the first fare breakdown is used. Peak and off-peak are then
// always taken from that breakdown when present.
func ExtractFare(fare *Fare) ctdf.FareInfo {
	var info ctdf.FareInfo

	if fare == nil {
		return info
	}

	if fare.TotalCost != nil && *fare.TotalCost > 0 {
		info.TotalCost = ctdf.PenceToPounds(*fare.TotalCost)
	}

	if info.TotalCost == nil && len(fare.Fares) > 0 {
		first := fare.Fares[0]

		if first.LowZone != nil && *first.LowZone > 0 {
			info.TotalCost = ctdf.PenceToPounds(*first.LowZone)
			info.OffPeakSingle = ctdf.PenceToPounds(*first.LowZone)
		} else if first.HighZone != nil && *first.HighZone > 0 {
			info.TotalCost = ctdf.PenceToPounds(*first.HighZone)
			info.PeakSingle = ctdf.PenceToPounds(*first.HighZone)
		}

		if first.HighZone != nil {
			info.PeakSingle = ctdf.PenceToPounds(*first.HighZone)
		}
		if first.LowZone != nil {
			info.OffPeakSingle = ctdf.PenceToPounds(*first.LowZone)
		}
	}

	if fare.CaveatText != nil {
		zones := *fare.CaveatText
		info.Zones = &zones
	}

	return info
}

func optionalString(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

package ctdf

import "fmt"

// FareInfo is the fare of a single journey in pounds. Nil fields were not
// provided by the journey planner.
type FareInfo struct {
	TotalCost     *float64 `json:"total_cost" groups:"basic,detailed"`
	PeakSingle    *float64 `json:"peak_single" groups:"basic,detailed"`
	OffPeakSingle *float64 `json:"off_peak_single" groups:"basic,detailed"`
	Zones         *string  `json:"zones" groups:"basic,detailed"`
}

func (f FareInfo) IsEmpty() bool {
	return f.TotalCost == nil && f.PeakSingle == nil && f.OffPeakSingle == nil && f.Zones == nil
}

// Label is the total cost formatted for display, or N/A when unknown
func (f FareInfo) Label() string {
	if f.TotalCost == nil {
		return "N/A"
	}
	return FormatPounds(*f.TotalCost)
}

func FormatPounds(value float64) string {
	return fmt.Sprintf("£%.2f", value)
}

// PenceToPounds converts a pence amount into pounds
func PenceToPounds(pence int) *float64 {
	pounds := float64(pence) / 100
	return &pounds
}

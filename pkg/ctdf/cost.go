package ctdf

const (
	DefaultDaysPerWeek = 5

	WeeksPerMonth = 4.33
	MonthsPerYear = 12

	// Approximate weekly cap used for the capped monthly figure
	CapFareMultiplier = 2.5
	CapDaysPerMonth   = 20
)

// CostEstimate is a projection of recurring commute cost. It's an
// approximation and not the official TfL capping rules.
type CostEstimate struct {
	SingleFare        float64 `json:"single_fare" groups:"basic"`
	DailyCost         float64 `json:"daily_cost" groups:"basic"`
	WeeklyCost        float64 `json:"weekly_cost" groups:"basic"`
	MonthlyCost       float64 `json:"monthly_cost" groups:"basic"`
	MonthlyCostCapped float64 `json:"monthly_cost_capped" groups:"basic"`
	AnnualCost        float64 `json:"annual_cost" groups:"basic"`
	DaysPerWeek       int     `json:"days_per_week" groups:"basic"`
	DurationMinutes   int     `json:"duration_minutes" groups:"basic"`
	Warning           string  `json:"warning,omitempty" groups:"basic"`
}

func (c CostEstimate) HasFare() bool {
	return c.Warning == ""
}

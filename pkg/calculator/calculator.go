package calculator

import (
	"errors"

	"github.com/travigo/commute/pkg/ctdf"
	"github.com/travigo/commute/pkg/tfl"
	"github.com/travigo/commute/pkg/upstream"
)

const NoFareWarning = "Fare information not available from TfL. Cost estimates will be £0."

// EstimateCost projects the recurring cost of making a journey there and back
// daysPerWeek times a week. Zero days means the default working week.
func EstimateCost(journey *tfl.NormalizedJourney, daysPerWeek int) (ctdf.CostEstimate, error) {
	if journey == nil {
		return ctdf.CostEstimate{}, errors.New("no journey to estimate")
	}

	if daysPerWeek == 0 {
		daysPerWeek = ctdf.DefaultDaysPerWeek
	}
	if daysPerWeek < 1 || daysPerWeek > 7 {
		return ctdf.CostEstimate{}, upstream.InvalidRequest("days per week must be between 1 and 7, got %d", daysPerWeek)
	}

	single := SingleFare(journey.Fare)

	daily := single * 2
	weekly := daily * float64(daysPerWeek)
	monthly := weekly * ctdf.WeeksPerMonth
	annual := monthly * ctdf.MonthsPerYear
	monthlyCap := single * ctdf.CapFareMultiplier * ctdf.CapDaysPerMonth

	estimate := ctdf.CostEstimate{
		SingleFare:        single,
		DailyCost:         daily,
		WeeklyCost:        weekly,
		MonthlyCost:       monthly,
		MonthlyCostCapped: min(monthly, monthlyCap),
		AnnualCost:        annual,
		DaysPerWeek:       daysPerWeek,
		DurationMinutes:   journey.DurationMinutes,
	}

	if single == 0 {
		estimate.Warning = NoFareWarning
	}

	return estimate, nil
}

// SingleFare picks total, then off-peak, then peak, ignoring non-positive values
func SingleFare(fare ctdf.FareInfo) float64 {
	for _, candidate := range []*float64{fare.TotalCost, fare.OffPeakSingle, fare.PeakSingle} {
		if candidate != nil && *candidate > 0 {
			return *candidate
		}
	}

	return 0
}

package optimizer

import "time"

const (
	// RestockCycleDays is the assumed length of one restock cycle; the
	// optimal stock level is expected to cover this many days of sales.
	RestockCycleDays = 30

	weekendBoost  = 1.3
	monthEndBoost = 1.2
)

// weekendFactor boosts demand on Saturdays and Sundays.
func weekendFactor(at time.Time) float64 {
	switch at.Weekday() {
	case time.Saturday, time.Sunday:
		return weekendBoost
	default:
		return 1.0
	}
}

// monthEndFactor boosts demand in the last days of the month.
func monthEndFactor(at time.Time) float64 {
	if at.Day() > 25 {
		return monthEndBoost
	}
	return 1.0
}

// EstimateDailyDemand derives the expected units sold per day for an
// item on the given date. The base velocity assumes optimal stock turns
// over once per restock cycle; weekday, month-end and festival
// multipliers adjust it. optimalStock <= 0 yields zero demand and must
// be guarded by the caller before dividing by a derived reorder point.
func EstimateDailyDemand(optimalStock int, category string, at time.Time) float64 {
	if optimalStock <= 0 {
		return 0
	}

	base := float64(optimalStock) / RestockCycleDays
	seasonal, _ := DemandMultiplier(at, category)

	return base * weekendFactor(at) * monthEndFactor(at) * seasonal
}

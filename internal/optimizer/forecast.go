package optimizer

import (
	"math"
	"time"

	"github.com/aims-retail/aims-backend/internal/domain"
)

// DailyForecast is one projected day of sales for an item.
type DailyForecast struct {
	Date     string `json:"date"`
	Units    int    `json:"units"`
	Festival string `json:"festival,omitempty"`
}

// Forecast projects expected daily sales for the next `days` days
// starting the day after `at`. Each day applies its own weekday,
// month-end and festival factors, so the series is deterministic for a
// fixed start date.
func Forecast(item domain.InventoryItem, at time.Time, days int) []DailyForecast {
	if days <= 0 || item.OptimalStock <= 0 {
		return nil
	}

	base := float64(item.OptimalStock) / RestockCycleDays
	series := make([]DailyForecast, 0, days)
	for i := 1; i <= days; i++ {
		day := at.AddDate(0, 0, i)
		seasonal, festival := DemandMultiplier(day, item.Category)
		units := base * weekendFactor(day) * monthEndFactor(day) * seasonal

		series = append(series, DailyForecast{
			Date:     day.Format("2006-01-02"),
			Units:    int(math.Round(units)),
			Festival: festival,
		})
	}

	return series
}

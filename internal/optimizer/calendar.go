package optimizer

import "time"

// Festival is a fixed demand window on the retail calendar. Multipliers
// are keyed by product category; categories missing from the map get
// DefaultFestivalMultiplier while the window is active.
type Festival struct {
	Name       string
	Month      time.Month
	StartDay   int
	EndDay     int
	Categories map[string]float64
}

// DefaultFestivalMultiplier applies to categories without an explicit
// entry during an active festival window.
const DefaultFestivalMultiplier = 1.3

// festivalCalendar is evaluated in order; the first window containing
// the date wins. Overlapping windows are not guarded against.
var festivalCalendar = []Festival{
	{Name: "Christmas", Month: time.December, StartDay: 20, EndDay: 26,
		Categories: map[string]float64{"Fruit": 1.8, "Vegetable": 1.5, "Dairy": 2.0}},
	{Name: "Thanksgiving", Month: time.November, StartDay: 20, EndDay: 28,
		Categories: map[string]float64{"Fruit": 1.7, "Vegetable": 2.0, "Dairy": 1.6}},
	{Name: "Easter", Month: time.April, StartDay: 15, EndDay: 22,
		Categories: map[string]float64{"Fruit": 1.5, "Vegetable": 1.3, "Dairy": 1.8}},
	{Name: "New Year", Month: time.January, StartDay: 1, EndDay: 3,
		Categories: map[string]float64{"Fruit": 1.6, "Vegetable": 1.4, "Dairy": 1.5}},
	{Name: "Independence Day", Month: time.July, StartDay: 2, EndDay: 5,
		Categories: map[string]float64{"Fruit": 1.7, "Vegetable": 1.8, "Dairy": 1.4}},
	{Name: "Diwali", Month: time.October, StartDay: 24, EndDay: 28,
		Categories: map[string]float64{"Fruit": 2.0, "Vegetable": 1.6, "Dairy": 2.2}},
}

// DemandMultiplier returns the seasonal demand multiplier for a category
// on the given date, plus the name of the active festival if any.
// Outside every window the multiplier is 1.0.
func DemandMultiplier(at time.Time, category string) (float64, string) {
	month := at.Month()
	day := at.Day()

	for _, festival := range festivalCalendar {
		if month == festival.Month && day >= festival.StartDay && day <= festival.EndDay {
			if multiplier, ok := festival.Categories[category]; ok {
				return multiplier, festival.Name
			}
			return DefaultFestivalMultiplier, festival.Name
		}
	}

	return 1.0, ""
}

package dashboard

import (
	"fmt"
	"strconv"
	"time"
)

// TimeRange is the caller-selected window of trailing days, or
// unbounded "all time".
type TimeRange struct {
	Days int
	All  bool
}

// DefaultTimeRange is the dashboard's initial window of roughly six
// months.
var DefaultTimeRange = TimeRange{Days: 180}

// ParseTimeRange parses the time-range input: a decimal day count or
// the literal "all".
func ParseTimeRange(s string) (TimeRange, error) {
	if s == "all" {
		return TimeRange{All: true}, nil
	}

	days, err := strconv.Atoi(s)
	if err != nil || days <= 0 {
		return TimeRange{}, fmt.Errorf("invalid time range %q", s)
	}

	return TimeRange{Days: days}, nil
}

// String renders the range back into its query-parameter form.
func (tr TimeRange) String() string {
	if tr.All {
		return "all"
	}

	return strconv.Itoa(tr.Days)
}

// FetchStart is the earliest session date worth fetching for this
// range: a practically unbounded 50 years for "all", otherwise the
// trailing day count.
func (tr TimeRange) FetchStart(today time.Time) string {
	if tr.All {
		return today.AddDate(-50, 0, 0).Format(dateFormat)
	}

	return today.AddDate(0, 0, -tr.Days).Format(dateFormat)
}

// CalendarDay is one heatmap cell.
type CalendarDay struct {
	Date          time.Time
	Month         time.Month
	Count         int
	FormattedDate string
}

// minimumGridDays is a presentation floor: very short ranges still
// render at least two weeks of cells.
const minimumGridDays = 14

// BuildCalendarGrid lays out per-date progress as consecutive weeks
// of day-cells for the activity heatmap. Weeks start on Sunday and
// run from the Sunday on or before the range's start date through
// today; days with no matching record get a zero count. Boundary
// weeks may hold fewer than seven cells. An empty progress list
// yields an empty grid.
func BuildCalendarGrid(progress []DailyProgress, timeRange TimeRange, today time.Time) [][]CalendarDay {
	if len(progress) == 0 {
		return nil
	}

	today = dateOnly(today)

	var start time.Time

	switch {
	case timeRange.All:
		start = dateOnly(progress[0].Day)
		if start.IsZero() {
			start = today.AddDate(0, 0, -365)
		}
	case timeRange.Days < minimumGridDays:
		start = today.AddDate(0, 0, -minimumGridDays)
	default:
		start = today.AddDate(0, 0, -timeRange.Days)
	}

	completedByDay := make(map[time.Time]int, len(progress))
	for _, record := range progress {
		completedByDay[dateOnly(record.Day)] = record.TotalCompleted
	}

	weekStart := start.AddDate(0, 0, -int(start.Weekday()))

	var weeks [][]CalendarDay

	var currentWeek []CalendarDay

	for day := weekStart; !day.After(today); day = day.AddDate(0, 0, 1) {
		if day.Weekday() == time.Sunday && len(currentWeek) > 0 {
			weeks = append(weeks, currentWeek)
			currentWeek = nil
		}

		currentWeek = append(currentWeek, CalendarDay{
			Date:          day,
			Month:         day.Month(),
			Count:         completedByDay[day],
			FormattedDate: day.Format(displayFormat),
		})
	}

	if len(currentWeek) > 0 {
		weeks = append(weeks, currentWeek)
	}

	return weeks
}

// dateOnly truncates a timestamp to its UTC calendar date, matching
// how stored dates are parsed.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

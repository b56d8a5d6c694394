package components

import (
	"time"

	"github.com/alb0rt/send-trend/dashboard"
)

// weekdayRows drives the calendar's seven day-rows, Sunday first.
func weekdayRows() []int {
	return []int{0, 1, 2, 3, 4, 5, 6}
}

// weekDay picks the cell of the given weekday out of a (possibly
// short) week, or nil when the boundary week has no such day.
func weekDay(week []dashboard.CalendarDay, weekday int) *dashboard.CalendarDay {
	for i := range week {
		if week[i].Date.Weekday() == time.Weekday(weekday) {
			return &week[i]
		}
	}

	return nil
}

// counterNames lists the adjustable per-category counters in display
// order.
func counterNames() []string {
	return []string{"completed", "attempted", "additional"}
}

// heatClass buckets a day's completed-route count into one of the
// heatmap intensity classes.
func heatClass(count int) string {
	switch {
	case count <= 0:
		return "level-0"
	case count <= 3:
		return "level-1"
	case count <= 6:
		return "level-2"
	case count <= 10:
		return "level-3"
	default:
		return "level-4"
	}
}

// barWidth scales a weekday average against the shared full mark into
// a 0-100 percentage for the inline bar charts.
func barWidth(value float64, fullMark int) int {
	if fullMark <= 0 {
		return 0
	}

	width := int(value / float64(fullMark) * 100)
	if width > 100 {
		width = 100
	}

	return width
}

package components

import (
	"github.com/alb0rt/send-trend/dashboard"
	"github.com/alb0rt/send-trend/model"
)

// RangeOption is one entry of the dashboard's time-range selector.
type RangeOption struct {
	Value    string
	Label    string
	Selected bool
}

// SessionListItem is one row of a session list.
type SessionListItem struct {
	ID             string
	Date           string
	GymName        string
	TotalCompleted int
}

// DashboardContext carries everything the dashboard page renders.
type DashboardContext struct {
	TimeRange    string
	RangeOptions []RangeOption

	SessionCount   int
	TotalCompleted int
	GymCount       int

	Weeks        [][]dashboard.CalendarDay
	Progress     []dashboard.DailyProgress
	Weekdays     []dashboard.WeekdayStat
	Difficulties []dashboard.DifficultyBucket
	Stacked      []dashboard.DateDifficultyRow

	Recent []SessionListItem
}

// SessionsContext backs the session list page with its new-session
// and new-gym forms.
type SessionsContext struct {
	Sessions []SessionListItem
	Gyms     []model.Gym
}

// CategoryCounts pairs a route category with the counts recorded for
// it in one session.
type CategoryCounts struct {
	Category   model.RouteCategory
	Completed  int
	Attempted  int
	Additional int
}

// SessionDetailContext backs the per-session tracking page.
type SessionDetailContext struct {
	Session    *model.Session
	GymName    string
	Categories []CategoryCounts
}

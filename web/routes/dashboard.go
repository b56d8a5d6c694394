package routes

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/alb0rt/send-trend/dashboard"
	cs "github.com/alb0rt/send-trend/web/components"
	json "github.com/goccy/go-json"
)

// rangeOptions are the selector choices offered on the dashboard.
var rangeOptions = []cs.RangeOption{
	{Value: "30", Label: "Last 30 days"},
	{Value: "90", Label: "Last 3 months"},
	{Value: "180", Label: "Last 6 months"},
	{Value: "365", Label: "Last year"},
	{Value: "all", Label: "All time"},
}

// dashboardData bundles every chart-ready aggregate for one time
// window.
type dashboardData struct {
	TimeRange    dashboard.TimeRange
	Progress     []dashboard.DailyProgress
	Weekdays     []dashboard.WeekdayStat
	Difficulties []dashboard.DifficultyBucket
	Stacked      []dashboard.DateDifficultyRow
	Calendar     [][]dashboard.CalendarDay
}

// requestTimeRange reads the range query parameter, falling back to
// the default window on absent or malformed input.
func requestTimeRange(r *http.Request) dashboard.TimeRange {
	raw := r.URL.Query().Get("range")
	if raw == "" {
		return dashboard.DefaultTimeRange
	}

	timeRange, err := dashboard.ParseTimeRange(raw)
	if err != nil {
		slog.Warn("Malformed time range, using default", "range", raw)

		return dashboard.DefaultTimeRange
	}

	return timeRange
}

// buildDashboardData fetches the window's rows and runs the full
// aggregation pipeline. Aggregates are recomputed from scratch on
// every request; nothing is cached between calls.
func (s *ServerHandler) buildDashboardData(timeRange dashboard.TimeRange) (*dashboardData, error) {
	today := s.today()

	sessions, err := s.Storage.SessionsSince(timeRange.FetchStart(today))
	if err != nil {
		return nil, fmt.Errorf("could not fetch sessions: %w", err)
	}

	categories, err := s.Storage.Categories()
	if err != nil {
		return nil, fmt.Errorf("could not fetch route categories: %w", err)
	}

	index := dashboard.BuildCategoryIndex(categories)
	progress, weekdayTally, difficultyTally := dashboard.AggregateDailyProgress(sessions, index)

	return &dashboardData{
		TimeRange:    timeRange,
		Progress:     progress,
		Weekdays:     dashboard.WeekdayAverages(weekdayTally),
		Difficulties: dashboard.DifficultyDistribution(difficultyTally),
		Stacked:      dashboard.AggregateByDateAndDifficulty(sessions, index),
		Calendar:     dashboard.BuildCalendarGrid(progress, timeRange, today),
	}, nil
}

// DashboardHandle renders the main dashboard page.
func (s *ServerHandler) DashboardHandle(w http.ResponseWriter, r *http.Request) {
	slog.Info("Handling dashboard page request")

	timeRange := requestTimeRange(r)

	data, err := s.buildDashboardData(timeRange)
	if err != nil {
		slog.Error("Failed to build dashboard data", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	recent, err := s.recentSessionItems(5)
	if err != nil {
		slog.Error("Failed to list recent sessions", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	renderContext := buildDashboardRenderContext(data, recent)

	_ = SafeRenderTemplate(cs.Dashboard(renderContext), w)
}

func buildDashboardRenderContext(data *dashboardData, recent []cs.SessionListItem) *cs.DashboardContext {
	options := make([]cs.RangeOption, len(rangeOptions))
	selected := data.TimeRange.String()

	for i, option := range rangeOptions {
		option.Selected = option.Value == selected
		options[i] = option
	}

	totalCompleted := 0
	gyms := 0

	for _, day := range data.Progress {
		totalCompleted += day.TotalCompleted

		if day.GymCount > gyms {
			gyms = day.GymCount
		}
	}

	return &cs.DashboardContext{
		TimeRange:      selected,
		RangeOptions:   options,
		SessionCount:   len(data.Stacked),
		TotalCompleted: totalCompleted,
		GymCount:       gyms,
		Weeks:          data.Calendar,
		Progress:       data.Progress,
		Weekdays:       data.Weekdays,
		Difficulties:   data.Difficulties,
		Stacked:        data.Stacked,
		Recent:         recent,
	}
}

// dashboardResponse is the JSON shape served to chart consumers.
type dashboardResponse struct {
	TimeRange              string           `json:"timeRange"`
	ProgressData           []progressJSON   `json:"progressData"`
	WeekdayData            []weekdayJSON    `json:"weekdayData"`
	DifficultyDistribution []difficultyJSON `json:"difficultyDistribution"`
	StackedBarData         []stackedJSON    `json:"stackedBarData"`
	Calendar               [][]calendarJSON `json:"calendar"`
}

type progressJSON struct {
	Date              string  `json:"date"`
	FormattedDate     string  `json:"formattedDate"`
	TotalCompleted    int     `json:"totalCompleted"`
	AverageDifficulty float64 `json:"averageDifficulty"`
	GymCount          int     `json:"gymCount"`
}

type weekdayJSON struct {
	Name     string  `json:"name"`
	Value    float64 `json:"value"`
	Count    int     `json:"count"`
	Fill     string  `json:"fill"`
	FullMark int     `json:"fullMark"`
}

type difficultyJSON struct {
	Difficulty      int    `json:"difficulty"`
	DifficultyLabel string `json:"difficultyLabel"`
	Count           int    `json:"count"`
}

type stackedJSON struct {
	Date              string         `json:"date"`
	FormattedDate     string         `json:"formattedDate"`
	GymName           string         `json:"gymName"`
	SessionID         string         `json:"sessionId"`
	Counts            map[int]int    `json:"counts"`
	DifficultyMap     map[int]string `json:"difficultyMap"`
	AverageDifficulty float64        `json:"averageDifficulty"`
}

type calendarJSON struct {
	Date          string `json:"date"`
	Month         int    `json:"month"`
	Count         int    `json:"count"`
	FormattedDate string `json:"formattedDate"`
}

// APIDashboardHandle serves the chart-ready aggregates as JSON.
func (s *ServerHandler) APIDashboardHandle(w http.ResponseWriter, r *http.Request) {
	slog.Info("Handling dashboard data request")

	data, err := s.buildDashboardData(requestTimeRange(r))
	if err != nil {
		slog.Error("Failed to build dashboard data", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	response := dashboardResponse{
		TimeRange:              data.TimeRange.String(),
		ProgressData:           make([]progressJSON, 0, len(data.Progress)),
		WeekdayData:            make([]weekdayJSON, 0, len(data.Weekdays)),
		DifficultyDistribution: make([]difficultyJSON, 0, len(data.Difficulties)),
		StackedBarData:         make([]stackedJSON, 0, len(data.Stacked)),
		Calendar:               make([][]calendarJSON, 0, len(data.Calendar)),
	}

	for _, day := range data.Progress {
		response.ProgressData = append(response.ProgressData, progressJSON{
			Date:              day.Date,
			FormattedDate:     day.FormattedDate,
			TotalCompleted:    day.TotalCompleted,
			AverageDifficulty: day.AverageDifficulty,
			GymCount:          day.GymCount,
		})
	}

	for _, stat := range data.Weekdays {
		response.WeekdayData = append(response.WeekdayData, weekdayJSON(stat))
	}

	for _, bucket := range data.Difficulties {
		response.DifficultyDistribution = append(response.DifficultyDistribution, difficultyJSON(bucket))
	}

	for _, row := range data.Stacked {
		response.StackedBarData = append(response.StackedBarData, stackedJSON{
			Date:              row.Date,
			FormattedDate:     row.FormattedDate,
			GymName:           row.GymName,
			SessionID:         row.SessionID,
			Counts:            row.Counts,
			DifficultyMap:     row.DifficultyMap,
			AverageDifficulty: row.AverageDifficulty,
		})
	}

	for _, week := range data.Calendar {
		cells := make([]calendarJSON, 0, len(week))
		for _, day := range week {
			cells = append(cells, calendarJSON{
				Date:          day.Date.Format("2006-01-02"),
				Month:         int(day.Month),
				Count:         day.Count,
				FormattedDate: day.FormattedDate,
			})
		}

		response.Calendar = append(response.Calendar, cells)
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(response); err != nil {
		slog.Error("Failed to encode dashboard response", "error", err)
	}
}

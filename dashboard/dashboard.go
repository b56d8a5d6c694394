// Package dashboard shapes raw session rows into the chart-ready
// aggregates the dashboard renders: per-date progress, weekday
// averages, difficulty distribution and the per-date-per-difficulty
// matrix. All functions are pure and recompute from scratch on every
// call; callers re-run them whenever the time window or row set
// changes.
package dashboard

import (
	"math"
	"sort"
	"time"

	"github.com/alb0rt/send-trend/model"
)

const (
	dateFormat    = "2006-01-02"
	displayFormat = "Jan 2"
)

// CategoryIndex is a lookup from route-category id to the full
// category record. It must be built before any aggregator runs.
type CategoryIndex map[string]model.RouteCategory

// BuildCategoryIndex converts a flat category list into an id-keyed
// lookup. Ids are unique at the source, so there is nothing to
// resolve on collision.
func BuildCategoryIndex(categories []model.RouteCategory) CategoryIndex {
	index := make(CategoryIndex, len(categories))
	for _, category := range categories {
		index[category.ID] = category
	}

	return index
}

// hasDifficulty reports whether the entry's category resolves in the
// index and carries a usable difficulty. An index of zero counts as
// absent, matching how the data is recorded.
func (idx CategoryIndex) hasDifficulty(categoryID string) (model.RouteCategory, bool) {
	category, ok := idx[categoryID]

	return category, ok && category.DifficultyIndex > 0
}

// DailyProgress is one calendar date's aggregated totals.
type DailyProgress struct {
	Date              string
	Day               time.Time
	FormattedDate     string
	TotalCompleted    int
	AverageDifficulty float64
	GymCount          int
}

// WeekdayTally accumulates completed-route counts into seven fixed
// weekday buckets (Sunday=0 .. Saturday=6). Value holds summed
// completions, Count the number of contributing session-route
// entries. Being a value type, each accumulate step yields a new
// tally.
type WeekdayTally struct {
	Value [7]int
	Count [7]int
}

// Accumulate adds one qualifying session-route entry's completed
// count to the bucket of the date's weekday.
func (t WeekdayTally) Accumulate(day time.Time, completed int) WeekdayTally {
	weekday := int(day.Weekday())
	t.Value[weekday] += completed
	t.Count[weekday]++

	return t
}

// DifficultyBucket counts completed routes at one difficulty index.
// The label is the display name of the first category seen at that
// index.
type DifficultyBucket struct {
	Difficulty      int
	DifficultyLabel string
	Count           int
}

// DifficultyTally maps difficulty index to its running bucket.
type DifficultyTally map[int]DifficultyBucket

// Add folds one qualifying entry into the tally and returns it.
func (t DifficultyTally) Add(category model.RouteCategory, completed int) DifficultyTally {
	bucket, ok := t[category.DifficultyIndex]
	if !ok {
		bucket = DifficultyBucket{Difficulty: category.DifficultyIndex, DifficultyLabel: category.Name}
	}

	bucket.Count += completed
	t[category.DifficultyIndex] = bucket

	return t
}

// dailyAccum is the per-date working state of AggregateDailyProgress.
type dailyAccum struct {
	date                 string
	day                  time.Time
	totalCompleted       int
	difficultySum        int
	routesWithDifficulty int
	gyms                 map[string]struct{}
}

// AggregateDailyProgress folds session rows into one record per
// calendar date (total completions, difficulty-weighted average,
// distinct gyms), feeding the weekday and difficulty tallies in the
// same pass. Entries with no completions never contribute; entries
// whose category is missing from the index still count toward totals
// but are excluded from every difficulty-weighted figure.
func AggregateDailyProgress(sessions []model.Session, index CategoryIndex) ([]DailyProgress, WeekdayTally, DifficultyTally) {
	byDate := make(map[string]*dailyAccum)
	weekdays := WeekdayTally{}
	difficulties := DifficultyTally{}

	for _, session := range sessions {
		accum, ok := byDate[session.Date]
		if !ok {
			// Dates come from the store in ISO form; an unparsable
			// one still aggregates under its raw string.
			day, _ := time.Parse(dateFormat, session.Date)
			accum = &dailyAccum{date: session.Date, day: day, gyms: make(map[string]struct{})}
			byDate[session.Date] = accum
		}

		accum.gyms[session.GymName()] = struct{}{}

		for _, route := range session.Routes {
			if route.UniqueRoutesCompleted <= 0 {
				continue
			}

			completed := route.UniqueRoutesCompleted
			accum.totalCompleted += completed
			weekdays = weekdays.Accumulate(accum.day, completed)

			category, ok := index.hasDifficulty(route.RouteCategoryID)
			if !ok {
				continue
			}

			accum.difficultySum += category.DifficultyIndex * completed
			accum.routesWithDifficulty += completed
			difficulties = difficulties.Add(category, completed)
		}
	}

	progress := make([]DailyProgress, 0, len(byDate))
	for _, accum := range byDate {
		progress = append(progress, DailyProgress{
			Date:              accum.date,
			Day:               accum.day,
			FormattedDate:     accum.day.Format(displayFormat),
			TotalCompleted:    accum.totalCompleted,
			AverageDifficulty: roundedAverage(accum.difficultySum, accum.routesWithDifficulty),
			GymCount:          len(accum.gyms),
		})
	}

	// ISO date strings sort chronologically.
	sort.Slice(progress, func(i, j int) bool { return progress[i].Date < progress[j].Date })

	return progress, weekdays, difficulties
}

// DifficultyDistribution finalizes a difficulty tally into buckets
// ordered by ascending difficulty index.
func DifficultyDistribution(tally DifficultyTally) []DifficultyBucket {
	buckets := make([]DifficultyBucket, 0, len(tally))
	for _, bucket := range tally {
		buckets = append(buckets, bucket)
	}

	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Difficulty < buckets[j].Difficulty })

	return buckets
}

// WeekdayStat is one finalized radar-chart record. FullMark is the
// suggested axis ceiling and is identical across all seven records.
type WeekdayStat struct {
	Name     string
	Value    float64
	Count    int
	Fill     string
	FullMark int
}

var weekdayNames = [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

var weekdayFills = [7]string{"#FF5733", "#FFC300", "#36DBCA", "#3498DB", "#9B59B6", "#1ABC9C", "#2ECC71"}

// defaultFullMark is the radar axis ceiling when no weekday has data.
const defaultFullMark = 10

// WeekdayAverages finalizes a weekday tally: each bucket's value
// becomes the per-entry average rounded to one decimal, and every
// record gets the shared FullMark of ceil(max * 1.2), or the default
// when all buckets are empty. Runs strictly after accumulation is
// complete since FullMark depends on the global maximum.
func WeekdayAverages(tally WeekdayTally) []WeekdayStat {
	stats := make([]WeekdayStat, 7)
	maxAvg := 0.0

	for i := range stats {
		average := 0.0
		if tally.Count[i] > 0 {
			average = roundedAverage(tally.Value[i], tally.Count[i])
		}

		stats[i] = WeekdayStat{Name: weekdayNames[i], Value: average, Count: tally.Count[i], Fill: weekdayFills[i]}

		if average > maxAvg {
			maxAvg = average
		}
	}

	fullMark := defaultFullMark
	if maxAvg > 0 {
		fullMark = int(math.Ceil(maxAvg * 1.2))
	}

	for i := range stats {
		stats[i].FullMark = fullMark
	}

	return stats
}

// DateDifficultyRow is one stacked-chart record: completed counts per
// difficulty index for a single date, plus the lookup data tooltips
// need. When a date holds several sessions, GymName and SessionID
// reflect only the first session encountered.
type DateDifficultyRow struct {
	Date              string
	FormattedDate     string
	GymName           string
	SessionID         string
	Counts            map[int]int
	DifficultyMap     map[int]string
	AverageDifficulty float64

	totalDifficultySum int
	totalRoutes        int
}

// Difficulties returns the row's difficulty indices in ascending
// order, for deterministic rendering of the sparse count fields.
func (r *DateDifficultyRow) Difficulties() []int {
	keys := make([]int, 0, len(r.Counts))
	for difficulty := range r.Counts {
		keys = append(keys, difficulty)
	}

	sort.Ints(keys)

	return keys
}

// AggregateByDateAndDifficulty folds session rows into one record per
// date with completed counts bucketed by difficulty index. Only
// entries whose category resolves to a difficulty contribute; the
// per-date average uses the same weighting as AggregateDailyProgress.
func AggregateByDateAndDifficulty(sessions []model.Session, index CategoryIndex) []DateDifficultyRow {
	byDate := make(map[string]*DateDifficultyRow)

	for _, session := range sessions {
		row, ok := byDate[session.Date]
		if !ok {
			day, _ := time.Parse(dateFormat, session.Date)
			row = &DateDifficultyRow{
				Date:          session.Date,
				FormattedDate: day.Format(displayFormat),
				GymName:       session.GymName(),
				SessionID:     session.ID,
				Counts:        make(map[int]int),
				DifficultyMap: make(map[int]string),
			}
			byDate[session.Date] = row
		}

		for _, route := range session.Routes {
			if route.UniqueRoutesCompleted <= 0 {
				continue
			}

			category, ok := index.hasDifficulty(route.RouteCategoryID)
			if !ok {
				continue
			}

			completed := route.UniqueRoutesCompleted
			difficulty := category.DifficultyIndex

			row.Counts[difficulty] += completed
			// Last write wins; the index is only used to look up a
			// category name for the tooltip.
			row.DifficultyMap[difficulty] = route.RouteCategoryID
			row.totalDifficultySum += difficulty * completed
			row.totalRoutes += completed
		}

		row.AverageDifficulty = roundedAverage(row.totalDifficultySum, row.totalRoutes)
	}

	rows := make([]DateDifficultyRow, 0, len(byDate))
	for _, row := range byDate {
		rows = append(rows, *row)
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].Date < rows[j].Date })

	return rows
}

// roundedAverage divides sum by n rounded to one decimal place, with
// a defined zero for empty denominators.
func roundedAverage(sum, n int) float64 {
	if n <= 0 {
		return 0
	}

	return math.Round(float64(sum)/float64(n)*10) / 10
}

package dashboard_test

import (
	"testing"

	"github.com/alb0rt/send-trend/dashboard"
	"github.com/alb0rt/send-trend/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boulderBarn() *model.Gym {
	return &model.Gym{ID: "g1", Name: "Boulder Barn", Location: "Denver"}
}

func categories() []model.RouteCategory {
	return []model.RouteCategory{
		{ID: "c1", GymID: "g1", Name: "V3", DifficultyIndex: 3},
		{ID: "c2", GymID: "g1", Name: "V5", DifficultyIndex: 5},
		{ID: "c3", GymID: "g1", Name: "Untiered", DifficultyIndex: 0},
	}
}

func TestBuildCategoryIndex(t *testing.T) {
	t.Run("one entry per record keyed by id", func(t *testing.T) {
		index := dashboard.BuildCategoryIndex(categories())

		assert.Len(t, index, 3)
		assert.Equal(t, "V3", index["c1"].Name)
		assert.Equal(t, 5, index["c2"].DifficultyIndex)
	})

	t.Run("empty input yields empty map", func(t *testing.T) {
		assert.Empty(t, dashboard.BuildCategoryIndex(nil))
	})
}

func TestAggregateDailyProgressSingleSession(t *testing.T) {
	sessions := []model.Session{{
		ID:   "s1",
		Date: "2024-01-10",
		Gym:  boulderBarn(),
		Routes: []model.SessionRoute{
			{RouteCategoryID: "c1", UniqueRoutesCompleted: 5, UniqueRoutesAttempted: 8, AdditionalAttempts: 2},
		},
	}}
	index := dashboard.BuildCategoryIndex(categories())

	progress, weekdays, difficulties := dashboard.AggregateDailyProgress(sessions, index)

	require.Len(t, progress, 1)
	day := progress[0]
	assert.Equal(t, "2024-01-10", day.Date)
	assert.Equal(t, "Jan 10", day.FormattedDate)
	assert.Equal(t, 5, day.TotalCompleted)
	assert.InDelta(t, 3.0, day.AverageDifficulty, 0.001)
	assert.Equal(t, 1, day.GymCount)

	// 2024-01-10 is a Wednesday.
	assert.Equal(t, 5, weekdays.Value[3])
	assert.Equal(t, 1, weekdays.Count[3])

	buckets := dashboard.DifficultyDistribution(difficulties)
	require.Len(t, buckets, 1)
	assert.Equal(t, dashboard.DifficultyBucket{Difficulty: 3, DifficultyLabel: "V3", Count: 5}, buckets[0])
}

func TestAggregateDailyProgressProperties(t *testing.T) {
	sessions := []model.Session{
		{
			ID:   "s1",
			Date: "2024-01-10",
			Gym:  boulderBarn(),
			Routes: []model.SessionRoute{
				{RouteCategoryID: "c1", UniqueRoutesCompleted: 5},
				{RouteCategoryID: "c2", UniqueRoutesCompleted: 2},
				{RouteCategoryID: "c2", UniqueRoutesCompleted: 0},
				{RouteCategoryID: "c1", UniqueRoutesCompleted: -3},
			},
		},
		{
			ID:   "s2",
			Date: "2024-01-12",
			Routes: []model.SessionRoute{
				{RouteCategoryID: "missing", UniqueRoutesCompleted: 4},
			},
		},
	}
	index := dashboard.BuildCategoryIndex(categories())

	progress, weekdays, _ := dashboard.AggregateDailyProgress(sessions, index)

	require.Len(t, progress, 2)

	totalCompleted := 0
	for _, day := range progress {
		totalCompleted += day.TotalCompleted
	}

	// Sum across dates equals the sum over qualifying entries only:
	// zero and negative counts never contribute.
	assert.Equal(t, 11, totalCompleted)

	qualifyingEntries := 0
	for _, count := range weekdays.Count {
		qualifyingEntries += count
	}

	assert.Equal(t, 3, qualifyingEntries)

	// The unknown category still counts completions but stays out of
	// the difficulty-weighted average.
	assert.Equal(t, 4, progress[1].TotalCompleted)
	assert.InDelta(t, 0.0, progress[1].AverageDifficulty, 0.001)

	// (3*5 + 5*2) / 7 = 3.57 -> 3.6
	assert.InDelta(t, 3.6, progress[0].AverageDifficulty, 0.001)
}

func TestAggregateDailyProgressMultipleGymsSameDate(t *testing.T) {
	other := &model.Gym{ID: "g2", Name: "Crux City", Location: "Boulder"}
	sessions := []model.Session{
		{ID: "s1", Date: "2024-02-03", Gym: boulderBarn(), Routes: []model.SessionRoute{{RouteCategoryID: "c1", UniqueRoutesCompleted: 2}}},
		{ID: "s2", Date: "2024-02-03", Gym: other, Routes: []model.SessionRoute{{RouteCategoryID: "c2", UniqueRoutesCompleted: 1}}},
	}
	index := dashboard.BuildCategoryIndex(categories())

	progress, _, _ := dashboard.AggregateDailyProgress(sessions, index)

	require.Len(t, progress, 1)
	assert.Equal(t, 2, progress[0].GymCount)
	assert.Equal(t, 3, progress[0].TotalCompleted)
}

func TestWeekdayAverages(t *testing.T) {
	t.Run("averages and shared full mark", func(t *testing.T) {
		tally := dashboard.WeekdayTally{}
		tally.Value[3] = 7
		tally.Count[3] = 2
		tally.Value[6] = 2
		tally.Count[6] = 1

		stats := dashboard.WeekdayAverages(tally)

		require.Len(t, stats, 7)
		assert.Equal(t, "Wednesday", stats[3].Name)
		assert.InDelta(t, 3.5, stats[3].Value, 0.001)
		assert.InDelta(t, 2.0, stats[6].Value, 0.001)
		assert.InDelta(t, 0.0, stats[0].Value, 0.001)

		// ceil(3.5 * 1.2) = 5, identical on every record.
		for _, stat := range stats {
			assert.Equal(t, 5, stat.FullMark)
		}
	})

	t.Run("all-zero tally falls back to default full mark", func(t *testing.T) {
		stats := dashboard.WeekdayAverages(dashboard.WeekdayTally{})

		for _, stat := range stats {
			assert.InDelta(t, 0.0, stat.Value, 0.001)
			assert.Equal(t, 10, stat.FullMark)
		}
	})
}

func TestDifficultyDistributionOrdering(t *testing.T) {
	sessions := []model.Session{{
		ID:   "s1",
		Date: "2024-01-10",
		Routes: []model.SessionRoute{
			{RouteCategoryID: "c2", UniqueRoutesCompleted: 1},
			{RouteCategoryID: "c1", UniqueRoutesCompleted: 2},
			{RouteCategoryID: "c3", UniqueRoutesCompleted: 4},
		},
	}}
	index := dashboard.BuildCategoryIndex(categories())

	_, _, tally := dashboard.AggregateDailyProgress(sessions, index)
	buckets := dashboard.DifficultyDistribution(tally)

	// The zero-index category is excluded entirely.
	require.Len(t, buckets, 2)
	assert.Equal(t, 3, buckets[0].Difficulty)
	assert.Equal(t, 5, buckets[1].Difficulty)
	assert.Equal(t, "V5", buckets[1].DifficultyLabel)
}

func TestAggregateByDateAndDifficulty(t *testing.T) {
	index := dashboard.BuildCategoryIndex(categories())

	t.Run("single session round trip", func(t *testing.T) {
		sessions := []model.Session{{
			ID:   "s1",
			Date: "2024-01-10",
			Gym:  boulderBarn(),
			Routes: []model.SessionRoute{
				{RouteCategoryID: "c1", UniqueRoutesCompleted: 5, UniqueRoutesAttempted: 8, AdditionalAttempts: 2},
			},
		}}

		rows := dashboard.AggregateByDateAndDifficulty(sessions, index)

		require.Len(t, rows, 1)
		row := rows[0]
		assert.Equal(t, "2024-01-10", row.Date)
		assert.Equal(t, "Boulder Barn - Denver", row.GymName)
		assert.Equal(t, "s1", row.SessionID)
		assert.Equal(t, map[int]int{3: 5}, row.Counts)
		assert.Equal(t, map[int]string{3: "c1"}, row.DifficultyMap)
		assert.InDelta(t, 3.0, row.AverageDifficulty, 0.001)
	})

	t.Run("first session wins gym name and id", func(t *testing.T) {
		other := &model.Gym{ID: "g2", Name: "Crux City", Location: "Boulder"}
		sessions := []model.Session{
			{ID: "s1", Date: "2024-02-03", Gym: boulderBarn(), Routes: []model.SessionRoute{{RouteCategoryID: "c1", UniqueRoutesCompleted: 2}}},
			{ID: "s2", Date: "2024-02-03", Gym: other, Routes: []model.SessionRoute{{RouteCategoryID: "c2", UniqueRoutesCompleted: 4}}},
		}

		rows := dashboard.AggregateByDateAndDifficulty(sessions, index)

		require.Len(t, rows, 1)
		row := rows[0]
		assert.Equal(t, "Boulder Barn - Denver", row.GymName)
		assert.Equal(t, "s1", row.SessionID)
		assert.Equal(t, map[int]int{3: 2, 5: 4}, row.Counts)
		assert.Equal(t, []int{3, 5}, row.Difficulties())
		// (3*2 + 5*4) / 6 = 4.33 -> 4.3
		assert.InDelta(t, 4.3, row.AverageDifficulty, 0.001)
	})

	t.Run("rows sorted by date", func(t *testing.T) {
		sessions := []model.Session{
			{ID: "s2", Date: "2024-02-10", Routes: []model.SessionRoute{{RouteCategoryID: "c1", UniqueRoutesCompleted: 1}}},
			{ID: "s1", Date: "2024-01-05", Routes: []model.SessionRoute{{RouteCategoryID: "c1", UniqueRoutesCompleted: 1}}},
		}

		rows := dashboard.AggregateByDateAndDifficulty(sessions, index)

		require.Len(t, rows, 2)
		assert.Equal(t, "2024-01-05", rows[0].Date)
		assert.Equal(t, "2024-02-10", rows[1].Date)
	})
}

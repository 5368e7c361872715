package timeseries

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MoraFFox/syncolow-org-sub003/internal/dist"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// TestDailyCounts_ExactTotal is the core invariant: whatever the
// weighting and jitter, the counts must sum to exactly the requested
// total.
func TestDailyCounts_ExactTotal(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		total int
	}{
		{"one week", date(2024, time.January, 1), date(2024, time.January, 8), 350},
		{"single day", date(2024, time.March, 4), date(2024, time.March, 5), 17},
		{"peak season month", date(2024, time.December, 1), date(2025, time.January, 1), 5000},
		{"zero total", date(2024, time.January, 1), date(2024, time.January, 8), 0},
		{"tiny total many days", date(2024, time.January, 1), date(2024, time.March, 1), 3},
		{"large total", date(2024, time.January, 1), date(2024, time.January, 31), 123457},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(dist.New(42), DefaultConfig())
			counts := e.DailyCounts(tt.start, tt.end, tt.total)
			require.Len(t, counts, daysBetween(tt.start, tt.end))

			sum := 0
			for _, c := range counts {
				require.GreaterOrEqual(t, c, 0)
				sum += c
			}
			assert.Equal(t, tt.total, sum)
		})
	}
}

func TestDailyCounts_EmptyRange(t *testing.T) {
	e := New(dist.New(1), DefaultConfig())
	assert.Nil(t, e.DailyCounts(date(2024, time.January, 8), date(2024, time.January, 1), 100))
	assert.Nil(t, e.DailyCounts(date(2024, time.January, 1), date(2024, time.January, 1), 100))
}

// TestDailyCounts_WeekendSuppression generates a long range and checks
// that weekday days carry more volume than weekend days on average.
func TestDailyCounts_WeekendSuppression(t *testing.T) {
	e := New(dist.New(42), DefaultConfig())
	start, end := date(2024, time.January, 1), date(2024, time.July, 1)
	counts := e.DailyCounts(start, end, 20000)

	var weekdaySum, weekdayN, weekendSum, weekendN float64
	for i, c := range counts {
		day := start.AddDate(0, 0, i)
		if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
			weekendSum += float64(c)
			weekendN++
		} else {
			weekdaySum += float64(c)
			weekdayN++
		}
	}
	assert.Greater(t, weekdaySum/weekdayN, 2*weekendSum/weekendN,
		"weekday average should dominate weekend average at multiplier 0.3")
}

func TestDailyCounts_Deterministic(t *testing.T) {
	a := New(dist.New(7), DefaultConfig())
	b := New(dist.New(7), DefaultConfig())
	start, end := date(2024, time.January, 1), date(2024, time.February, 1)
	assert.Equal(t, a.DailyCounts(start, end, 999), b.DailyCounts(start, end, 999))
}

func TestTimestampForDay_BusinessHours(t *testing.T) {
	e := New(dist.New(3), DefaultConfig())
	day := date(2024, time.May, 15)
	for i := 0; i < 1000; i++ {
		ts := e.TimestampForDay(day)
		assert.Equal(t, day.Year(), ts.Year())
		assert.Equal(t, day.Month(), ts.Month())
		assert.Equal(t, day.Day(), ts.Day())
		require.GreaterOrEqual(t, ts.Hour(), 8)
		require.Less(t, ts.Hour(), 20)
	}
}

func TestDistribute_SortedAndComplete(t *testing.T) {
	e := New(dist.New(11), DefaultConfig())
	start, end := date(2024, time.January, 1), date(2024, time.January, 15)
	stamps := e.Distribute(start, end, 500)
	require.Len(t, stamps, 500)
	for i := 1; i < len(stamps); i++ {
		require.False(t, stamps[i].Before(stamps[i-1]), "timestamps must be ascending at %d", i)
	}
	for _, ts := range stamps {
		require.False(t, ts.Before(start))
		require.True(t, ts.Before(end))
	}
}

func TestSeries_BuildsInTimestampOrder(t *testing.T) {
	e := New(dist.New(13), DefaultConfig())
	start, end := date(2024, time.January, 1), date(2024, time.January, 8)

	type event struct {
		idx int
		at  time.Time
	}
	events := Series(e, start, end, 40, func(i int, ts time.Time) event {
		return event{idx: i, at: ts}
	})
	require.Len(t, events, 40)
	for i, ev := range events {
		assert.Equal(t, i, ev.idx)
		if i > 0 {
			assert.False(t, ev.at.Before(events[i-1].at))
		}
	}
}

func TestInjectSpread_RateZeroAndOne(t *testing.T) {
	rng := dist.New(5)
	items := make([]int, 100)

	assert.Equal(t, 0, InjectSpread(rng, items, 0, func(v *int) { *v = 1 }))

	n := InjectSpread(rng, items, 1.0, func(v *int) { *v = 1 })
	assert.Equal(t, 100, n)
	for _, v := range items {
		assert.Equal(t, 1, v)
	}
}

func TestInjectSpread_ApproximatesRate(t *testing.T) {
	rng := dist.New(19)
	items := make([]int, 20000)
	n := InjectSpread(rng, items, 0.1, func(v *int) { *v = 1 })
	assert.InDelta(t, 2000, n, 150)
}

// TestInjectBurst_Clustering verifies that burst mode produces contiguous
// mutated windows rather than uniform scatter.
func TestInjectBurst_Clustering(t *testing.T) {
	rng := dist.New(23)
	items := make([]int, 1000)
	calls := InjectBurst(rng, items, 0.1, func(v *int) { *v = 1 })
	require.Greater(t, calls, 0)

	// Count contiguous mutated runs. 100 anomalies in ~10 bursts must
	// form far fewer runs than 100 independent hits would.
	runs := 0
	for i, v := range items {
		if v == 1 && (i == 0 || items[i-1] == 0) {
			runs++
		}
	}
	assert.LessOrEqual(t, runs, 15, "burst anomalies should cluster into a handful of windows")
}

// TestInjectBurst_IdempotentHandlers documents the overlap contract:
// windows may overlap, so handlers must tolerate re-application. A
// set-to-value handler applied through overlapping windows leaves items
// in the same state as a single application.
func TestInjectBurst_IdempotentHandlers(t *testing.T) {
	rng := dist.New(29)
	items := make([]int, 50)
	InjectBurst(rng, items, 0.8, func(v *int) { *v = 1 })
	for _, v := range items {
		assert.LessOrEqual(t, v, 1)
	}
}

func TestInjectBurst_SmallInputs(t *testing.T) {
	rng := dist.New(31)
	assert.Equal(t, 0, InjectBurst(rng, []int{}, 0.5, func(v *int) {}))

	one := []int{0}
	InjectBurst(rng, one, 1.0, func(v *int) { *v = 1 })
	assert.Equal(t, 1, one[0])

	// Rate too small to yield a single anomaly.
	few := make([]int, 5)
	assert.Equal(t, 0, InjectBurst(rng, few, 0.1, func(v *int) { *v = 1 }))
}

// Package timeseries spreads synthetic event counts across a date range
// with weekday and seasonal weighting, synthesizes business-hour
// timestamps, and injects anomalies in spread or burst clustering modes.
package timeseries

import (
	"math"
	"sort"
	"time"

	"github.com/MoraFFox/syncolow-org-sub003/internal/dist"
)

// Config tunes the daily weighting and timestamp synthesis.
type Config struct {
	// WeekendMultiplier scales Saturday/Sunday weights. B2B order flow
	// drops sharply on weekends.
	WeekendMultiplier float64

	// PeakMultiplier scales days whose month is in PeakMonths.
	PeakMultiplier float64
	PeakMonths     []time.Month

	// Jitter bounds for the per-day uniform noise factor.
	JitterLow  float64
	JitterHigh float64

	// Business hours window for timestamp synthesis, [start, end) in
	// local hours.
	BusinessHoursStart int
	BusinessHoursEnd   int
}

// DefaultConfig returns the standard weighting: weekends at 0.3, peak
// months (November, December) at 1.5, jitter in [0.7, 1.3], business
// hours 8-20.
func DefaultConfig() Config {
	return Config{
		WeekendMultiplier:  0.3,
		PeakMultiplier:     1.5,
		PeakMonths:         []time.Month{time.November, time.December},
		JitterLow:          0.7,
		JitterHigh:         1.3,
		BusinessHoursStart: 8,
		BusinessHoursEnd:   20,
	}
}

// Engine distributes event counts over a date range. Not safe for
// concurrent use; each pipeline stage owns its own Engine.
type Engine struct {
	rng *dist.Rand
	cfg Config
}

// New creates an Engine drawing from the given source.
func New(rng *dist.Rand, cfg Config) *Engine {
	return &Engine{rng: rng, cfg: cfg}
}

// DailyCounts spreads total events across the days of [start, end).
// The returned slice has one entry per day and always sums to exactly
// total.
//
// Per-day weight: 1.0, scaled by the weekend multiplier, scaled by the
// peak multiplier, scaled by uniform jitter. Weights are normalized and
// multiplied by total, rounding each day to nearest. Rounding drift is
// pushed entirely onto the single highest-raw-weight day: spreading it
// would flatten the distribution's shape, concentrating it preserves it
// while guaranteeing the exact total.
func (e *Engine) DailyCounts(start, end time.Time, total int) []int {
	days := daysBetween(start, end)
	if days <= 0 {
		return nil
	}
	counts := make([]int, days)
	if total <= 0 {
		return counts
	}

	weights := make([]float64, days)
	weightSum := 0.0
	peakIdx := 0
	for i := range weights {
		day := start.AddDate(0, 0, i)
		w := 1.0
		if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
			w *= e.cfg.WeekendMultiplier
		}
		if e.isPeakMonth(day.Month()) {
			w *= e.cfg.PeakMultiplier
		}
		w *= e.rng.FloatBetween(e.cfg.JitterLow, e.cfg.JitterHigh)
		weights[i] = w
		weightSum += w
		if w > weights[peakIdx] {
			peakIdx = i
		}
	}

	actual := 0
	for i, w := range weights {
		counts[i] = int(math.Round(w / weightSum * float64(total)))
		actual += counts[i]
	}

	// Correct rounding drift on the heaviest day only.
	counts[peakIdx] += total - actual
	if counts[peakIdx] < 0 {
		// Extreme case: drift exceeded the heaviest day's count. Zero it
		// and take the remainder out of the other days left to right.
		deficit := -counts[peakIdx]
		counts[peakIdx] = 0
		for i := range counts {
			if deficit == 0 {
				break
			}
			take := min(counts[i], deficit)
			counts[i] -= take
			deficit -= take
		}
	}
	return counts
}

// TimestampForDay synthesizes a timestamp within the day's business
// hours: uniform hour in [start, end), uniform minute and second.
func (e *Engine) TimestampForDay(day time.Time) time.Time {
	hour := e.rng.IntBetween(e.cfg.BusinessHoursStart, e.cfg.BusinessHoursEnd-1)
	minute := e.rng.Intn(60)
	second := e.rng.Intn(60)
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, second, 0, day.Location())
}

// Distribute returns total timestamps placed across [start, end) per the
// daily weighting, sorted ascending.
func (e *Engine) Distribute(start, end time.Time, total int) []time.Time {
	counts := e.DailyCounts(start, end, total)
	out := make([]time.Time, 0, total)
	for i, n := range counts {
		day := start.AddDate(0, 0, i)
		for j := 0; j < n; j++ {
			out = append(out, e.TimestampForDay(day))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// Series places total events across [start, end) and builds one item per
// event via fn, invoked in ascending timestamp order.
func Series[T any](e *Engine, start, end time.Time, total int, fn func(i int, ts time.Time) T) []T {
	stamps := e.Distribute(start, end, total)
	out := make([]T, len(stamps))
	for i, ts := range stamps {
		out[i] = fn(i, ts)
	}
	return out
}

func (e *Engine) isPeakMonth(m time.Month) bool {
	for _, pm := range e.cfg.PeakMonths {
		if m == pm {
			return true
		}
	}
	return false
}

// daysBetween counts whole days from start (inclusive) to end
// (exclusive), comparing calendar days in start's location.
func daysBetween(start, end time.Time) int {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	t := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, start.Location())
	return int(t.Sub(s).Hours() / 24)
}

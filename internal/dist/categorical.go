package dist

import (
	"math"
	"sort"
)

// DefaultZipfAlpha is the skew used for popularity modelling (best-selling
// products, largest customers). Values just above 1 give a heavy but not
// degenerate head.
const DefaultZipfAlpha = 1.07

// WeightedChoice selects one category from a weight map.
//
// Weights are accumulated in sorted key order (maps have no stable
// iteration order in Go, and selection must be deterministic for a fixed
// seed). The first category whose cumulative weight reaches the uniform
// draw wins; if floating error leaves the draw unmatched, the first
// category is returned.
func (r *Rand) WeightedChoice(weights map[string]float64) string {
	if len(weights) == 0 {
		return ""
	}
	keys := make([]string, 0, len(weights))
	for k := range weights {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	total := 0.0
	for _, k := range keys {
		total += weights[k]
	}
	u := r.rng.Float64() * total

	cum := 0.0
	for _, k := range keys {
		cum += weights[k]
		if cum >= u {
			return k
		}
	}
	return keys[0]
}

// Zipf returns a rank in [0, n) drawn from a Zipf distribution with the
// given alpha. Rank 0 is the most likely outcome for any alpha > 0.
//
// The implementation normalizes 1/k^alpha by the generalized harmonic
// sum and walks ranks until the cumulative mass reaches the draw. n is
// small for our use (companies, products), so the O(n) walk is fine.
func (r *Rand) Zipf(n int, alpha float64) int {
	if n <= 1 {
		return 0
	}
	harmonic := 0.0
	for k := 1; k <= n; k++ {
		harmonic += 1 / math.Pow(float64(k), alpha)
	}
	u := r.rng.Float64()
	cum := 0.0
	for k := 1; k <= n; k++ {
		cum += (1 / math.Pow(float64(k), alpha)) / harmonic
		if cum >= u {
			return k - 1
		}
	}
	return n - 1
}

// ZipfPick selects one element of items by Zipf-weighted rank, treating
// the slice order as the popularity ranking.
func ZipfPick[T any](r *Rand, items []T, alpha float64) T {
	var zero T
	if len(items) == 0 {
		return zero
	}
	return items[r.Zipf(len(items), alpha)]
}

// Pick selects one element of items uniformly.
func Pick[T any](r *Rand, items []T) T {
	var zero T
	if len(items) == 0 {
		return zero
	}
	return items[r.rng.Intn(len(items))]
}

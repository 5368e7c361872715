package timeseries

import "github.com/MoraFFox/syncolow-org-sub003/internal/dist"

// InjectSpread runs an independent Bernoulli(rate) trial per item and
// mutates winners in place. Produces uniformly scattered anomalies.
// Returns the number of items mutated.
func InjectSpread[T any](rng *dist.Rand, items []T, rate float64, mutate func(*T)) int {
	if rate <= 0 || len(items) == 0 {
		return 0
	}
	hit := 0
	for i := range items {
		if rng.Chance(rate) {
			mutate(&items[i])
			hit++
		}
	}
	return hit
}

// InjectBurst concentrates floor(n*rate) anomalies into contiguous
// windows of consecutive items, modelling temporally clustered failures
// (an outage) rather than background noise.
//
// The anomaly budget is split into roughly total/10 bursts; each burst
// picks one random window and mutates every item in it. Windows may
// overlap, so mutate must be idempotent-safe: re-applying it to an
// already-mutated item must not compound. Returns the number of mutate
// calls performed.
func InjectBurst[T any](rng *dist.Rand, items []T, rate float64, mutate func(*T)) int {
	n := len(items)
	if rate <= 0 || n == 0 {
		return 0
	}
	totalAnomalies := int(float64(n) * rate)
	if totalAnomalies == 0 {
		return 0
	}
	burstCount := totalAnomalies / 10
	if burstCount < 1 {
		burstCount = 1
	}
	perBurst := totalAnomalies / burstCount
	if perBurst < 1 {
		perBurst = 1
	}
	if perBurst > n {
		perBurst = n
	}

	calls := 0
	for b := 0; b < burstCount; b++ {
		start := 0
		if n > perBurst {
			start = rng.Intn(n - perBurst + 1)
		}
		for i := start; i < start+perBurst; i++ {
			mutate(&items[i])
			calls++
		}
	}
	return calls
}

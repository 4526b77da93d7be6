package grouping

import (
	"math"
	"sort"
)

// EpsConfig controls the adaptive density radius
type EpsConfig struct {
	// Percentile of the conflict-free distance distribution (default: 40)
	Percentile float64

	// MaxEps caps the radius so a degenerate single-row page cannot run away (default: 8)
	MaxEps float64

	// MinEps floors the radius. It exceeds the full horizontal feature span
	// (XWeight * TargetColumnSpan = 1.5) so one printed row is never split on
	// horizontal offset alone (default: 2)
	MinEps float64

	// FallbackEps is used when every pair carries a penalty (default: 5)
	FallbackEps float64
}

// DefaultEpsConfig returns sensible default configuration
func DefaultEpsConfig() EpsConfig {
	return EpsConfig{
		Percentile:  40,
		MaxEps:      8,
		MinEps:      2,
		FallbackEps: 5,
	}
}

// SelectEps picks the density radius for one page from its conflict-free
// pairs. With row spacing normalized to 10 units, same-row pairs sit under
// about 5 units and cross-row pairs above 10; the 40th percentile falls in
// the same-row band whatever the menu density.
func SelectEps(m *Matrix, config EpsConfig) float64 {
	distances := m.ConflictFree()

	eps := config.FallbackEps
	if len(distances) > 0 {
		eps = percentile(distances, config.Percentile)
	}

	eps = math.Min(eps, config.MaxEps)
	eps = math.Max(eps, config.MinEps)
	return eps
}

// percentile returns the p-th percentile (0-100) with linear interpolation
// between closest ranks.
func percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	if p <= 0 {
		return sorted[0]
	}
	if p >= 100 {
		return sorted[len(sorted)-1]
	}

	rank := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}

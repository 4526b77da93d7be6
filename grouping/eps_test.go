package grouping

import (
	"testing"
)

func TestPercentile(t *testing.T) {
	values := []float64{5, 1, 4, 2, 3}

	tests := []struct {
		p    float64
		want float64
	}{
		{0, 1},
		{40, 2.6},
		{50, 3},
		{100, 5},
	}

	for _, tt := range tests {
		if got := percentile(values, tt.p); !approxEqual(got, tt.want) {
			t.Errorf("percentile(%v): Expected %v, got %v", tt.p, tt.want, got)
		}
	}

	if values[0] != 5 {
		t.Error("Expected percentile not to reorder its input")
	}
}

func TestSelectEps_Clamped(t *testing.T) {
	config := DefaultEpsConfig()

	small := &Matrix{n: 2, spatial: []float64{0, 0.5, 0.5, 0}, penalty: make([]float64, 4)}
	if eps := SelectEps(small, config); eps != config.MinEps {
		t.Errorf("Expected eps floored to %v, got %v", config.MinEps, eps)
	}

	large := &Matrix{n: 2, spatial: []float64{0, 40, 40, 0}, penalty: make([]float64, 4)}
	if eps := SelectEps(large, config); eps != config.MaxEps {
		t.Errorf("Expected eps capped to %v, got %v", config.MaxEps, eps)
	}

	mid := &Matrix{n: 2, spatial: []float64{0, 4.5, 4.5, 0}, penalty: make([]float64, 4)}
	if eps := SelectEps(mid, config); eps != 4.5 {
		t.Errorf("Expected eps 4.5, got %v", eps)
	}
}

func TestSelectEps_FallbackWhenAllPenalized(t *testing.T) {
	m := &Matrix{
		n:       2,
		spatial: []float64{0, 1, 1, 0},
		penalty: []float64{0, 1000, 1000, 0},
	}

	if eps := SelectEps(m, DefaultEpsConfig()); eps != 5 {
		t.Errorf("Expected fallback eps 5, got %v", eps)
	}
}

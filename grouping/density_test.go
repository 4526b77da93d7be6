package grouping

import (
	"testing"
)

// chainMatrix places n points on a line, one unit apart
func chainMatrix(n int) *Matrix {
	m := &Matrix{n: n, spatial: make([]float64, n*n), penalty: make([]float64, n*n)}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			d := float64(i - j)
			if d < 0 {
				d = -d
			}
			m.spatial[i*n+j] = d
		}
	}
	return m
}

func TestDensityCluster_Chain(t *testing.T) {
	labels := densityCluster(chainMatrix(4), 1, 2, nil)

	for i, l := range labels {
		if l != 0 {
			t.Errorf("Expected point %d in cluster 0, got %d", i, l)
		}
	}
}

func TestDensityCluster_IsolatedPointIsNoise(t *testing.T) {
	m := chainMatrix(3)
	// Move point 2 away from the others
	m.spatial[0*3+2], m.spatial[2*3+0] = 10, 10
	m.spatial[1*3+2], m.spatial[2*3+1] = 9, 9

	labels := densityCluster(m, 1, 2, nil)

	if labels[0] != 0 || labels[1] != 0 {
		t.Errorf("Expected points 0 and 1 in cluster 0, got %v", labels)
	}
	if labels[2] != noiseLabel {
		t.Errorf("Expected point 2 to be noise, got %d", labels[2])
	}
}

func TestDensityCluster_ConflictBlocksChain(t *testing.T) {
	m := chainMatrix(3)
	conflicts := func(i, j int) bool {
		return (i == 0 && j == 2) || (i == 2 && j == 0)
	}

	labels := densityCluster(m, 1, 2, conflicts)

	if labels[0] != 0 || labels[1] != 0 {
		t.Errorf("Expected points 0 and 1 in cluster 0, got %v", labels)
	}
	if labels[2] != noiseLabel {
		t.Errorf("Expected point 2 blocked into noise, got %d", labels[2])
	}
}

func TestDensityCluster_Empty(t *testing.T) {
	if labels := densityCluster(chainMatrix(0), 1, 2, nil); len(labels) != 0 {
		t.Errorf("Expected no labels, got %v", labels)
	}
}

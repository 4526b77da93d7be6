package grouping

import (
	"github.com/thierryx96/cellar-ai/layout"
	"github.com/thierryx96/cellar-ai/model"
)

// Matrix is the symmetric pairwise distance matrix of one page. Spatial and
// penalty parts are kept separately so eps selection can look at
// conflict-free pairs only.
type Matrix struct {
	n       int
	spatial []float64
	penalty []float64
}

// NewMatrix computes distance[i,j] = ||feature_i - feature_j|| + penalty(token_i, token_j)
func NewMatrix(tokens []model.Token, features []layout.Feature, penalties *PenaltyModel) *Matrix {
	n := len(tokens)
	m := &Matrix{
		n:       n,
		spatial: make([]float64, n*n),
		penalty: make([]float64, n*n),
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			s := features[i].Distance(features[j])
			p := penalties.Penalty(tokens[i], tokens[j])
			m.spatial[i*n+j], m.spatial[j*n+i] = s, s
			m.penalty[i*n+j], m.penalty[j*n+i] = p, p
		}
	}
	return m
}

// Size returns the number of tokens
func (m *Matrix) Size() int {
	return m.n
}

// At returns the combined distance between i and j
func (m *Matrix) At(i, j int) float64 {
	return m.spatial[i*m.n+j] + m.penalty[i*m.n+j]
}

// Spatial returns the spatial part of the distance between i and j
func (m *Matrix) Spatial(i, j int) float64 {
	return m.spatial[i*m.n+j]
}

// Penalty returns the semantic part of the distance between i and j
func (m *Matrix) Penalty(i, j int) float64 {
	return m.penalty[i*m.n+j]
}

// ConflictFree returns the spatial distances of all pairs i<j with zero penalty
func (m *Matrix) ConflictFree() []float64 {
	var out []float64
	for i := 0; i < m.n; i++ {
		for j := i + 1; j < m.n; j++ {
			if m.Penalty(i, j) == 0 {
				out = append(out, m.Spatial(i, j))
			}
		}
	}
	return out
}

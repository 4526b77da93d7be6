package model

import (
	"math"
	"sort"
)

// Point represents a 2D point
type Point struct {
	X, Y float64
}

// Distance calculates the Euclidean distance to another point
func (p Point) Distance(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

func sortStableBy(tokens []Token, less func(a, b Token) bool) {
	sort.SliceStable(tokens, func(i, j int) bool {
		return less(tokens[i], tokens[j])
	})
}

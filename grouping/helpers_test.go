package grouping

import (
	"math"

	"github.com/thierryx96/cellar-ai/layout"
	"github.com/thierryx96/cellar-ai/model"
)

// tok creates a test token with glyph height 12 and the given tags
func tok(text string, x, y float64, tags ...model.Tag) model.Token {
	t := model.Token{Text: text, X: x, Y: y, H: 12, Confidence: 1}
	for _, tag := range tags {
		t = t.Tagged(tag)
	}
	return t
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func groupTexts(r *Result) [][]string {
	out := make([][]string, len(r.Groups))
	for i, g := range r.Groups {
		out[i] = g.Texts()
	}
	return out
}

func noiseTexts(r *Result) []string {
	out := make([]string, len(r.Noise))
	for i, t := range r.Noise {
		out[i] = t.Text
	}
	return out
}

func sameStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// groupOf returns the ID of the group holding text, or -1
func groupOf(r *Result, text string) int {
	for _, g := range r.Groups {
		for _, t := range g.Tokens {
			if t.Text == text {
				return g.ID
			}
		}
	}
	return -1
}

func layoutOf(tokens []model.Token) *layout.Descriptor {
	return layout.NewAnalyzer().Analyze(tokens)
}

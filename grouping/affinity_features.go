package grouping

import (
	"math"
	"sort"
	"unicode/utf8"

	"github.com/tidwall/rtree"

	"github.com/thierryx96/cellar-ai/layout"
	"github.com/thierryx96/cellar-ai/model"
)

// FeatureDim is the width of an affinity feature vector:
// x, y, length, vintage, price, red, white, region.
const FeatureDim = 8

var oneHotTags = [...]model.Tag{
	model.TagVintage,
	model.TagPrice,
	model.TagVarietalRed,
	model.TagVarietalWhite,
	model.TagRegion,
}

// tokenFeatures builds the raw per-token affinity features. Coordinates are
// scaled to [0,1] over the page extent, text length over the longest token.
func tokenFeatures(tokens []model.Token, desc *layout.Descriptor) [][]float64 {
	maxLen := 0
	for _, t := range tokens {
		if n := utf8.RuneCountInString(t.Text); n > maxLen {
			maxLen = n
		}
	}

	features := make([][]float64, len(tokens))
	for i, t := range tokens {
		f := make([]float64, FeatureDim)
		if desc != nil {
			f[0] = unitScale(t.X, desc.MinX, desc.XRange)
			f[1] = unitScale(t.Y, desc.MinY, desc.YRange)
		}
		if maxLen > 0 {
			f[2] = float64(utf8.RuneCountInString(t.Text)) / float64(maxLen)
		}
		for k, tag := range oneHotTags {
			if t.Is(tag) {
				f[3+k] = 1
			}
		}
		features[i] = f
	}
	return features
}

func unitScale(v, min, span float64) float64 {
	if span <= 0 {
		return 0
	}
	return (v - min) / span
}

// neighborIndex answers fixed-radius pixel-space queries over one page
type neighborIndex struct {
	tokens []model.Token
	tree   rtree.RTreeG[int]
}

func newNeighborIndex(tokens []model.Token) *neighborIndex {
	idx := &neighborIndex{tokens: tokens}
	for i, t := range tokens {
		p := [2]float64{t.X, t.Y}
		idx.tree.Insert(p, p, i)
	}
	return idx
}

// within returns the indices of tokens inside the axis-aligned box
// [x-dx, x+dx] x [y-dy, y+dy], sorted ascending.
func (n *neighborIndex) within(x, y, dx, dy float64) []int {
	var out []int
	n.tree.Search(
		[2]float64{x - dx, y - dy},
		[2]float64{x + dx, y + dy},
		func(_, _ [2]float64, i int) bool {
			out = append(out, i)
			return true
		},
	)
	sort.Ints(out)
	return out
}

// smoothFeatures applies one hop of graph smoothing: each vector becomes the
// weighted mean of its neighborhood, weight max(0, 1 - d/radius) in pixels,
// self-loop included.
func smoothFeatures(tokens []model.Token, features [][]float64, radius float64) [][]float64 {
	idx := newNeighborIndex(tokens)
	smoothed := make([][]float64, len(tokens))

	for i, t := range tokens {
		out := make([]float64, FeatureDim)
		total := 0.0

		for _, j := range idx.within(t.X, t.Y, radius, radius) {
			w := 1.0
			if j != i {
				d := t.Position().Distance(tokens[j].Position())
				w = math.Max(0, 1-d/radius)
			}
			if w == 0 {
				continue
			}
			total += w
			for k := range out {
				out[k] += w * features[j][k]
			}
		}

		for k := range out {
			out[k] /= total
		}
		smoothed[i] = out
	}
	return smoothed
}

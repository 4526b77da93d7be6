package layout

import (
	"testing"

	"github.com/thierryx96/cellar-ai/model"
)

func TestNormalizer_Scales(t *testing.T) {
	n := NewNormalizer()
	desc := &Descriptor{RowSpacing: 30, XRange: 100}

	yScale, xScale := n.Scales(desc)
	if !approxEqual(yScale, 3) || !approxEqual(xScale, 20) {
		t.Errorf("Expected scales (3, 20), got (%f, %f)", yScale, xScale)
	}

	features := n.Normalize([]model.Token{makeToken("a", 40, 90, 10)}, desc)
	if !approxEqual(features[0].Y, 30) {
		t.Errorf("Expected Y 30, got %f", features[0].Y)
	}
	if !approxEqual(features[0].X, 0.6) {
		t.Errorf("Expected X 0.6, got %f", features[0].X)
	}
}

func TestNormalizer_SmallPageNotStretched(t *testing.T) {
	n := NewNormalizer()
	desc := &Descriptor{RowSpacing: 4, XRange: 2}

	yScale, xScale := n.Scales(desc)
	if yScale != 1 || xScale != 1 {
		t.Errorf("Expected unit scales, got (%f, %f)", yScale, xScale)
	}
	if n.NormalizedRowSpacing(desc) != 4 {
		t.Errorf("Expected normalized spacing 4, got %f", n.NormalizedRowSpacing(desc))
	}
}

func TestNormalizer_RowSpacingMapsToTarget(t *testing.T) {
	tokens := []model.Token{
		makeToken("a", 0, 100, 10),
		makeToken("b", 0, 140, 10),
		makeToken("c", 0, 180, 10),
	}
	n := NewNormalizer()
	desc := NewAnalyzer().Analyze(tokens)

	if !approxEqual(n.NormalizedRowSpacing(desc), 10) {
		t.Errorf("Expected normalized row spacing 10, got %f", n.NormalizedRowSpacing(desc))
	}

	features := n.Normalize(tokens, desc)
	if d := features[0].Distance(features[1]); !approxEqual(d, 10) {
		t.Errorf("Expected adjacent rows 10 units apart, got %f", d)
	}
}

func TestNormalizer_ScaleInvariance(t *testing.T) {
	base := []model.Token{
		makeToken("a", 10, 100, 10),
		makeToken("b", 90, 100, 10),
		makeToken("c", 10, 160, 10),
	}
	zoomed := make([]model.Token, len(base))
	for i, tok := range base {
		zoomed[i] = makeToken(tok.Text, tok.X*2, tok.Y*2, tok.H*2)
	}

	n := NewNormalizer()
	a := NewAnalyzer()
	f1 := n.Normalize(base, a.Analyze(base))
	f2 := n.Normalize(zoomed, a.Analyze(zoomed))

	for i := range base {
		for j := i + 1; j < len(base); j++ {
			d1 := f1[i].Distance(f1[j])
			d2 := f2[i].Distance(f2[j])
			if !approxEqual(d1, d2) {
				t.Errorf("Pair (%d,%d): distance %f changed to %f after zoom", i, j, d1, d2)
			}
		}
	}
}

func TestNormalizer_NilDescriptor(t *testing.T) {
	n := NewNormalizer()
	if n.NormalizedRowSpacing(nil) != 0 {
		t.Error("Expected zero spacing for nil descriptor")
	}
	yScale, xScale := n.Scales(nil)
	if yScale != 1 || xScale != 1 {
		t.Errorf("Expected unit scales, got (%f, %f)", yScale, xScale)
	}
}

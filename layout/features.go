package layout

import (
	"math"

	"github.com/thierryx96/cellar-ai/model"
)

// FeatureConfig holds configuration for the normalized feature space
type FeatureConfig struct {
	// TargetRowSpacing is the number of units the typical row spacing maps to (default: 10)
	TargetRowSpacing float64

	// TargetColumnSpan is the number of units the full X range maps to before weighting (default: 5)
	TargetColumnSpan float64

	// XWeight down-weights horizontal offset so it only breaks ties (default: 0.3)
	XWeight float64
}

// DefaultFeatureConfig returns sensible default configuration
func DefaultFeatureConfig() FeatureConfig {
	return FeatureConfig{
		TargetRowSpacing: 10.0,
		TargetColumnSpan: 5.0,
		XWeight:          0.3,
	}
}

// Feature is a token position in the normalized space. One unit of Y is a
// tenth of a typical row; X is secondary.
type Feature struct {
	Y float64
	X float64
}

// Distance returns the Euclidean distance between two features
func (f Feature) Distance(other Feature) float64 {
	dy := f.Y - other.Y
	dx := f.X - other.X
	return math.Sqrt(dy*dy + dx*dx)
}

// Normalizer maps pixel coordinates into the layout-invariant feature space
type Normalizer struct {
	config FeatureConfig
}

// NewNormalizer creates a normalizer with default configuration
func NewNormalizer() *Normalizer {
	return &Normalizer{config: DefaultFeatureConfig()}
}

// NewNormalizerWithConfig creates a normalizer with custom configuration
func NewNormalizerWithConfig(config FeatureConfig) *Normalizer {
	return &Normalizer{config: config}
}

// Config returns the normalizer configuration
func (n *Normalizer) Config() FeatureConfig {
	return n.config
}

// Scales returns the Y and X divisors derived from the layout. Both are at
// least 1 so small pages are never stretched.
func (n *Normalizer) Scales(desc *Descriptor) (yScale, xScale float64) {
	if desc == nil {
		return 1, 1
	}
	yScale = math.Max(1, desc.RowSpacing/n.config.TargetRowSpacing)
	xScale = math.Max(1, desc.XRange/n.config.TargetColumnSpan)
	return yScale, xScale
}

// Normalize returns one feature per token, in token order
func (n *Normalizer) Normalize(tokens []model.Token, desc *Descriptor) []Feature {
	yScale, xScale := n.Scales(desc)

	features := make([]Feature, len(tokens))
	for i, t := range tokens {
		features[i] = Feature{
			Y: t.Y / yScale,
			X: t.X / xScale * n.config.XWeight,
		}
	}
	return features
}

// NormalizedRowSpacing returns the row spacing expressed in feature units
func (n *Normalizer) NormalizedRowSpacing(desc *Descriptor) float64 {
	if desc == nil {
		return 0
	}
	yScale, _ := n.Scales(desc)
	return desc.RowSpacing / yScale
}

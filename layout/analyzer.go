package layout

import (
	"math"
	"sort"

	"github.com/thierryx96/cellar-ai/model"
)

// Config holds configuration for layout analysis
type Config struct {
	// MinRowGap is the smallest Y gap (pixels) that may separate two rows
	// regardless of glyph size (default: 3)
	MinRowGap float64

	// RowMergeFactor scales the average glyph height into the row merge
	// threshold (default: 0.7)
	RowMergeFactor float64

	// SingleRowSpacingFactor gives the row spacing, as a multiple of the
	// average glyph height, when only one row exists (default: 2)
	SingleRowSpacingFactor float64

	// MinColumnGap is the X gap (pixels) above which a gap between distinct X
	// values counts as column spacing rather than jitter (default: 15)
	MinColumnGap float64

	// DefaultColumnSpacing is used when no X gap qualifies (default: 100)
	DefaultColumnSpacing float64
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() Config {
	return Config{
		MinRowGap:              3.0,
		RowMergeFactor:         0.7,
		SingleRowSpacingFactor: 2.0,
		MinColumnGap:           15.0,
		DefaultColumnSpacing:   100.0,
	}
}

// Descriptor summarises the layout of one page. It is computed once per
// grouping call and never persisted.
type Descriptor struct {
	// TokenCount is the number of tokens analysed
	TokenCount int

	// RowCount is the number of detected rows
	RowCount int

	// RowCenters are the row centroids, top to bottom
	RowCenters []float64

	// TokensPerRow is TokenCount / RowCount
	TokensPerRow float64

	// RowSpacing is the median gap between consecutive row centroids
	RowSpacing float64

	// ColumnSpacing is the median significant gap between distinct X values
	ColumnSpacing float64

	// RowThreshold is the Y gap below which values were merged into one row
	RowThreshold float64

	// Coordinate ranges
	MinX, MaxX float64
	MinY, MaxY float64
	XRange     float64
	YRange     float64

	// AverageHeight is the mean glyph height
	AverageHeight float64
}

// Analyzer infers row and column statistics from token coordinates
type Analyzer struct {
	config Config
}

// NewAnalyzer creates a new analyzer with default configuration
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		config: DefaultConfig(),
	}
}

// NewAnalyzerWithConfig creates an analyzer with custom configuration
func NewAnalyzerWithConfig(config Config) *Analyzer {
	return &Analyzer{
		config: config,
	}
}

// Config returns the analyzer configuration
func (a *Analyzer) Config() Config {
	return a.config
}

// Analyze computes the layout descriptor for one page. It returns nil for an
// empty token set.
func (a *Analyzer) Analyze(tokens []model.Token) *Descriptor {
	if len(tokens) == 0 {
		return nil
	}

	desc := &Descriptor{
		TokenCount: len(tokens),
		MinX:       tokens[0].X,
		MaxX:       tokens[0].X,
		MinY:       tokens[0].Y,
		MaxY:       tokens[0].Y,
	}

	totalHeight := 0.0
	for _, t := range tokens {
		totalHeight += t.H
		desc.MinX = math.Min(desc.MinX, t.X)
		desc.MaxX = math.Max(desc.MaxX, t.X)
		desc.MinY = math.Min(desc.MinY, t.Y)
		desc.MaxY = math.Max(desc.MaxY, t.Y)
	}
	desc.AverageHeight = totalHeight / float64(len(tokens))
	desc.XRange = desc.MaxX - desc.MinX
	desc.YRange = desc.MaxY - desc.MinY

	// Step 1: Merge distinct Y values into rows
	desc.RowThreshold = math.Max(a.config.MinRowGap, desc.AverageHeight*a.config.RowMergeFactor)
	rows := a.groupRows(distinctSorted(tokens, func(t model.Token) float64 { return t.Y }), desc.RowThreshold)

	desc.RowCount = len(rows)
	desc.TokensPerRow = float64(desc.TokenCount) / float64(desc.RowCount)
	desc.RowCenters = make([]float64, len(rows))
	for i, row := range rows {
		desc.RowCenters[i] = mean(row)
	}

	// Step 2: Typical row spacing
	if len(desc.RowCenters) > 1 {
		gaps := make([]float64, 0, len(desc.RowCenters)-1)
		for i := 1; i < len(desc.RowCenters); i++ {
			gaps = append(gaps, desc.RowCenters[i]-desc.RowCenters[i-1])
		}
		desc.RowSpacing = median(gaps)
	} else {
		desc.RowSpacing = desc.AverageHeight * a.config.SingleRowSpacingFactor
	}

	// Step 3: Typical column spacing
	desc.ColumnSpacing = a.columnSpacing(distinctSorted(tokens, func(t model.Token) float64 { return t.X }))

	return desc
}

// groupRows merges adjacent sorted values whose gap is within threshold
func (a *Analyzer) groupRows(ys []float64, threshold float64) [][]float64 {
	rows := [][]float64{{ys[0]}}
	for i := 1; i < len(ys); i++ {
		if ys[i]-ys[i-1] <= threshold {
			rows[len(rows)-1] = append(rows[len(rows)-1], ys[i])
		} else {
			rows = append(rows, []float64{ys[i]})
		}
	}
	return rows
}

// columnSpacing returns the median of the significant gaps between sorted distinct X values
func (a *Analyzer) columnSpacing(xs []float64) float64 {
	var significant []float64
	for i := 1; i < len(xs); i++ {
		// Small gaps are the same column with slight misalignment
		if gap := xs[i] - xs[i-1]; gap > a.config.MinColumnGap {
			significant = append(significant, gap)
		}
	}
	if len(significant) == 0 {
		return a.config.DefaultColumnSpacing
	}
	return median(significant)
}

// IsSingleRow returns true if every token sits on one row
func (d *Descriptor) IsSingleRow() bool {
	return d == nil || d.RowCount <= 1
}

// distinctSorted returns the sorted distinct values of a token coordinate
func distinctSorted(tokens []model.Token, coord func(model.Token) float64) []float64 {
	seen := make(map[float64]bool, len(tokens))
	values := make([]float64, 0, len(tokens))
	for _, t := range tokens {
		v := coord(t)
		if !seen[v] {
			seen[v] = true
			values = append(values, v)
		}
	}
	sort.Float64s(values)
	return values
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total / float64(len(values))
}

// median returns the middle value, averaging the two middle values for even counts
func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

// Package layout infers the row and column structure of a menu page from raw
// token coordinates and maps tokens into a layout-invariant feature space.
//
// # Layout Analysis
//
// The [Analyzer] produces a [Descriptor] for one page:
//
//	analyzer := layout.NewAnalyzer()
//	desc := analyzer.Analyze(tokens)
//	fmt.Println(desc.RowCount, desc.RowSpacing, desc.ColumnSpacing)
//
// Rows are found by merging sorted distinct Y values whose gap is within an
// adaptive threshold scaled to the page's average glyph height, so the same
// rules work across image resolutions.
//
// # Feature Space
//
// The [Normalizer] rescales coordinates so the typical row spacing becomes a
// fixed number of units (10 by default) and horizontal offset becomes a
// down-weighted tie-breaker:
//
//	features := layout.NewNormalizer().Normalize(tokens, desc)
//	d := features[0].Distance(features[1])
//
// # Configuration
//
//	config := layout.DefaultConfig()
//	config.RowMergeFactor = 0.5
//	analyzer := layout.NewAnalyzerWithConfig(config)
package layout

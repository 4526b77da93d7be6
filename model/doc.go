// Package model defines the data shared by every stage of menu grouping.
//
// # Tokens
//
// A [Token] is one text fragment detected on a photographed menu page. It
// carries the centroid position, the glyph height, the detection confidence
// and a [Tags] bitset produced by the enrichment step:
//
//	tok := model.Token{Text: "Malbec", X: 10, Y: 50, H: 12, Tags: model.TagVarietalRed.Set()}
//	if tok.Tags.Has(model.TagVarietalRed) {
//	    // ...
//	}
//
// Tags are read-only ground truth for the grouping stages. [Untagged] is the
// explicit empty state.
//
// # Entries
//
// A [WineEntry] is the structured record assembled from one group of tokens.
// Year and Price are optional and stay nil when they could not be parsed.
//
// # Geometry
//
// [Point] provides the Euclidean distance used for pixel-space neighborhoods.
package model

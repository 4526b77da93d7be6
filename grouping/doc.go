// Package grouping partitions the tagged tokens of one menu page into
// candidate wine listings.
//
// Two interchangeable [Strategy] implementations are provided:
//
//   - [Clusterer] - density clustering over a combined spatial and semantic
//     distance matrix with an adaptively chosen radius (eps)
//   - [Assembler] - a learned per-token relevance score with price-anchored
//     greedy assembly; it must be fitted before use
//
// Both return a [Result]: ordered groups of tokens (each sorted left to right)
// plus the noise tokens that could not be assigned. Every input token appears
// exactly once, either in a group or in the noise list.
//
//	result, err := grouping.NewClusterer().Group(tokens)
//	for _, g := range result.Groups {
//	    fmt.Println(g.ID, g.Texts())
//	}
//
// # Semantic Penalties
//
// The [PenaltyModel] adds large distances between tokens that cannot belong to
// the same listing (two vintages, two same-colour varietals, two headers). The
// clusterer also refuses to grow a group across such a hard conflict, so two
// conflicting tokens never share a group, even through intermediate tokens.
// Two prices only receive a soft penalty since glass and bottle prices
// legitimately appear together.
//
// # Affinity Model
//
//	trainer := grouping.NewTrainer()
//	m, err := trainer.Fit(menus)
//	assembler := grouping.NewAssembler(m)
//	result, err := assembler.Group(tokens)
//
// Calling Group on an assembler without a fitted model returns [ErrModelNotReady].
package grouping

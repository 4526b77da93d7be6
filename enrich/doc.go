// Package enrich tags raw OCR tokens with wine semantics.
//
// A [Lexicon] holds the wine vocabulary: countries with their name
// patterns, regions and home varietals, the red and white varietal lists,
// common abbreviations and the menu header vocabulary. The default lexicon
// is embedded and parsed once per process; [LoadLexicon] reads an override
// file with the same YAML shape.
//
// An [Enricher] applies the tagging rules to each token:
//
//	lex, err := enrich.DefaultLexicon()
//	e := enrich.New(lex)
//	tagged := e.EnrichAll(tokens)
//
// Lookups compare normalized keys: compatibility forms folded, accents
// removed, case folded and runs of spaces collapsed, so "Gewürztraminer",
// "GEWURZTRAMINER" and "gewurztraminer" all match.
package enrich

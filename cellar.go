// Package cellar provides a fluent API for turning the tokens of a
// photographed wine menu into structured wine entries.
//
// Basic usage:
//
//	report, err := cellar.FromTokens(tokens).Entries()
//	if err != nil {
//	    // handle error
//	}
//	for _, e := range report.Entries {
//	    fmt.Println(e.Variety, e.Year, e.Price)
//	}
//
// With options:
//
//	lex, _ := enrich.DefaultLexicon()
//	report, err := cellar.FromTokens(rawTokens).
//	    WithEnricher(enrich.New(lex)).
//	    WithStrategy(grouping.NewAssembler(model)).
//	    WithLogger(logger).
//	    Entries()
//
// The grouping, entry and enrich packages are also usable on their own.
package cellar

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/thierryx96/cellar-ai/model"
)

// FromTokens returns a Pipeline over one page of tokens. The slice is copied.
//
// Example:
//
//	groups, err := cellar.FromTokens(tokens).Groups()
func FromTokens(tokens []model.Token) *Pipeline {
	copied := make([]model.Token, len(tokens))
	copy(copied, tokens)
	return &Pipeline{
		tokens:  copied,
		options: defaultOptions(),
	}
}

// FromJSON decodes a JSON array of tokens and returns a Pipeline over them.
// A decoding error is reported by the terminal operation.
//
// Example:
//
//	report, err := cellar.FromJSON(os.Stdin).Entries()
func FromJSON(r io.Reader) *Pipeline {
	var tokens []model.Token
	if err := json.NewDecoder(r).Decode(&tokens); err != nil {
		p := FromTokens(nil)
		p.err = fmt.Errorf("failed to decode tokens: %w", err)
		return p
	}
	return FromTokens(tokens)
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	report := cellar.Must(cellar.FromTokens(tokens).Entries())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

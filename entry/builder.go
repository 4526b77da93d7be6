package entry

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/thierryx96/cellar-ai/model"
)

// Builder converts groups of tokens into wine entries
type Builder struct {
	lang language.Tag
}

// NewBuilder creates a builder that lower-cases with language-neutral rules
func NewBuilder() *Builder {
	return NewBuilderForLanguage(language.Und)
}

// NewBuilderForLanguage creates a builder that lower-cases field values
// with the rules of the given language
func NewBuilderForLanguage(lang language.Tag) *Builder {
	return &Builder{lang: lang}
}

// Build extracts one entry from a group already sorted left to right
func (b *Builder) Build(group []model.Token) model.WineEntry {
	// Casers keep state, so each call gets its own
	lower := cases.Lower(b.lang)

	var e model.WineEntry
	var description []string

	for _, t := range group {
		switch {
		case t.Is(model.TagVintage):
			if year, ok := ParseYear(t.Text); ok {
				e.Year = &year
			}

		case t.Is(model.TagPrice):
			if price, ok := ParsePrice(t.Text); ok && (e.Price == nil || price > *e.Price) {
				e.Price = &price
			}

		case t.Is(model.TagVarietalRed):
			e.Type = model.WineTypeRed
			e.Variety = lower.String(t.Text)

		case t.Is(model.TagVarietalWhite):
			e.Type = model.WineTypeWhite
			e.Variety = lower.String(t.Text)

		case t.Is(model.TagRegion):
			e.Region = lower.String(t.Text)

		case t.Is(model.TagCountry):
			e.Country = lower.String(t.Text)

		default:
			if t.Text != "" {
				description = append(description, t.Text)
			}
		}
	}

	e.Description = strings.Join(description, " ")
	return e
}

// BuildAll builds one entry per group, in group order
func (b *Builder) BuildAll(groups [][]model.Token) []model.WineEntry {
	entries := make([]model.WineEntry, len(groups))
	for i, g := range groups {
		entries[i] = b.Build(g)
	}
	return entries
}

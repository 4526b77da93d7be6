package model

import (
	"encoding/json"
	"strings"
)

// Token is one OCR-detected text fragment on a menu page
type Token struct {
	// Text is the trimmed fragment text
	Text string

	// X, Y is the centroid in source-image pixel space (Y grows downwards)
	X, Y float64

	// H is the detected glyph height
	H float64

	// Confidence is the detector confidence in [0,1]
	Confidence float64

	// Tags are the semantic flags assigned upstream
	Tags Tags
}

// NewToken creates an untagged token with trimmed text
func NewToken(text string, x, y, h, confidence float64) Token {
	return Token{
		Text:       strings.TrimSpace(text),
		X:          x,
		Y:          y,
		H:          h,
		Confidence: confidence,
	}
}

// Is reports whether the token carries the tag
func (t Token) Is(tag Tag) bool {
	return t.Tags.Has(tag)
}

// Tagged returns a copy of the token with the tag set
func (t Token) Tagged(tag Tag) Token {
	if tag == TagVarietalRed || tag == TagVarietalWhite || tag == TagVarietalOther {
		t.Tags = t.Tags.WithVarietal(tag)
		return t
	}
	t.Tags = t.Tags.With(tag)
	return t
}

// Position returns the centroid as a point
func (t Token) Position() Point {
	return Point{X: t.X, Y: t.Y}
}

// tokenJSON mirrors the flat dictionary shape produced by the extraction and
// enrichment collaborators.
type tokenJSON struct {
	Text            string  `json:"text"`
	X               float64 `json:"x"`
	Y               float64 `json:"y"`
	H               float64 `json:"h"`
	Confidence      float64 `json:"confidence"`
	IsCountry       bool    `json:"is_country,omitempty"`
	IsRegion        bool    `json:"is_region,omitempty"`
	IsVintage       bool    `json:"is_vintage,omitempty"`
	IsPrice         bool    `json:"is_price,omitempty"`
	IsVarietalRed   bool    `json:"is_varietal_red,omitempty"`
	IsVarietalWhite bool    `json:"is_varietal_white,omitempty"`
	IsVarietalOther bool    `json:"is_varietal_other,omitempty"`
}

// MarshalJSON encodes the token with one boolean key per set tag
func (t Token) MarshalJSON() ([]byte, error) {
	return json.Marshal(tokenJSON{
		Text:            t.Text,
		X:               t.X,
		Y:               t.Y,
		H:               t.H,
		Confidence:      t.Confidence,
		IsCountry:       t.Is(TagCountry),
		IsRegion:        t.Is(TagRegion),
		IsVintage:       t.Is(TagVintage),
		IsPrice:         t.Is(TagPrice),
		IsVarietalRed:   t.Is(TagVarietalRed),
		IsVarietalWhite: t.Is(TagVarietalWhite),
		IsVarietalOther: t.Is(TagVarietalOther),
	})
}

// UnmarshalJSON decodes the flat dictionary shape. When more than one varietal
// flag is present the first of red, white, other wins.
func (t *Token) UnmarshalJSON(data []byte) error {
	var raw tokenJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	tok := NewToken(raw.Text, raw.X, raw.Y, raw.H, raw.Confidence)
	flags := []struct {
		set bool
		tag Tag
	}{
		{raw.IsCountry, TagCountry},
		{raw.IsRegion, TagRegion},
		{raw.IsVintage, TagVintage},
		{raw.IsPrice, TagPrice},
		{raw.IsVarietalOther, TagVarietalOther},
		{raw.IsVarietalWhite, TagVarietalWhite},
		{raw.IsVarietalRed, TagVarietalRed},
	}
	for _, f := range flags {
		if f.set {
			tok = tok.Tagged(f.tag)
		}
	}

	*t = tok
	return nil
}

// SortByX sorts tokens left to right, keeping input order for equal X
func SortByX(tokens []Token) {
	sortStableBy(tokens, func(a, b Token) bool { return a.X < b.X })
}

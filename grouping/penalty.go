package grouping

import (
	"strings"

	"github.com/thierryx96/cellar-ai/model"
)

// DefaultHeaders is the menu header vocabulary (compared case-insensitively)
var DefaultHeaders = []string{
	"WINE LIST", "WHITE WINES", "RED WINES", "YEAR", "WINE", "REGION", "GLASS", "BOTTLE", "PRICE",
}

// PenaltyConfig holds the semantic conflict penalties. Penalties are an order
// of magnitude above any normalized spatial distance.
type PenaltyConfig struct {
	// ConflictPenalty applies to two vintages, two varietals of the same
	// colour, or a red and a white varietal (default: 1000)
	ConflictPenalty float64

	// PricePenalty applies to two prices; soft because glass and bottle
	// prices share a listing (default: 200)
	PricePenalty float64

	// HeaderPenalty applies when both texts are headers (default: 2000)
	HeaderPenalty float64

	// HardConflictThreshold is the penalty at or above which two tokens may
	// never share a group (default: 1000)
	HardConflictThreshold float64

	// Headers is the header vocabulary
	Headers []string
}

// DefaultPenaltyConfig returns the standard penalty table
func DefaultPenaltyConfig() PenaltyConfig {
	headers := make([]string, len(DefaultHeaders))
	copy(headers, DefaultHeaders)
	return PenaltyConfig{
		ConflictPenalty:       1000,
		PricePenalty:          200,
		HeaderPenalty:         2000,
		HardConflictThreshold: 1000,
		Headers:               headers,
	}
}

// PenaltyModel scores the semantic incompatibility of two tokens
type PenaltyModel struct {
	config  PenaltyConfig
	headers map[string]bool
}

// NewPenaltyModel creates a penalty model with the default table
func NewPenaltyModel() *PenaltyModel {
	return NewPenaltyModelWithConfig(DefaultPenaltyConfig())
}

// NewPenaltyModelWithConfig creates a penalty model with a custom table
func NewPenaltyModelWithConfig(config PenaltyConfig) *PenaltyModel {
	headers := make(map[string]bool, len(config.Headers))
	for _, h := range config.Headers {
		headers[strings.ToUpper(strings.TrimSpace(h))] = true
	}
	return &PenaltyModel{config: config, headers: headers}
}

// Config returns the penalty configuration
func (m *PenaltyModel) Config() PenaltyConfig {
	return m.config
}

// IsHeader reports whether the text is in the header vocabulary
func (m *PenaltyModel) IsHeader(text string) bool {
	return m.headers[strings.ToUpper(strings.TrimSpace(text))]
}

// Penalty returns the summed, uncapped penalty for grouping a with b. It is
// symmetric and zero for compatible tokens.
func (m *PenaltyModel) Penalty(a, b model.Token) float64 {
	penalty := 0.0

	both := func(tag model.Tag) bool {
		return a.Is(tag) && b.Is(tag)
	}

	if both(model.TagVintage) {
		penalty += m.config.ConflictPenalty
	}
	if both(model.TagVarietalRed) {
		penalty += m.config.ConflictPenalty
	}
	if both(model.TagVarietalWhite) {
		penalty += m.config.ConflictPenalty
	}
	if both(model.TagVarietalOther) {
		penalty += m.config.ConflictPenalty
	}

	// Mixed colours
	if (a.Is(model.TagVarietalRed) && b.Is(model.TagVarietalWhite)) ||
		(a.Is(model.TagVarietalWhite) && b.Is(model.TagVarietalRed)) {
		penalty += m.config.ConflictPenalty
	}

	if both(model.TagPrice) {
		penalty += m.config.PricePenalty
	}

	if m.IsHeader(a.Text) && m.IsHeader(b.Text) {
		penalty += m.config.HeaderPenalty
	}

	return penalty
}

// IsHardConflict reports whether a and b may never share a group
func (m *PenaltyModel) IsHardConflict(a, b model.Token) bool {
	return m.Penalty(a, b) >= m.config.HardConflictThreshold
}

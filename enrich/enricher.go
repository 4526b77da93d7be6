package enrich

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/thierryx96/cellar-ai/model"
)

// vintagePattern matches a four digit year with an optional "vintage",
// "v" or "v." suffix and an optional trailing "wine"
var vintagePattern = regexp.MustCompile(`(?i)\b(19[5-9]\d|20\d\d)(?:\s*(?:vintage|v\.?))?(?:\s*wine)?\b`)

var lookalikes = strings.NewReplacer("O", "0", "I", "1", "l", "1")

// Config holds enrichment settings
type Config struct {
	// MaxVintageYear is the latest year accepted as a vintage (default: current year)
	MaxVintageYear int

	// Logger receives debug diagnostics; nil disables logging
	Logger *zap.Logger
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() Config {
	return Config{MaxVintageYear: time.Now().Year()}
}

// Enricher tags tokens using a shared lexicon
type Enricher struct {
	lex    *Lexicon
	config Config
	logger *zap.Logger
}

// New creates an enricher with default configuration
func New(lex *Lexicon) *Enricher {
	return NewWithConfig(lex, DefaultConfig())
}

// NewWithConfig creates an enricher with custom configuration
func NewWithConfig(lex *Lexicon, config Config) *Enricher {
	if config.MaxVintageYear == 0 {
		config.MaxVintageYear = DefaultConfig().MaxVintageYear
	}
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Enricher{lex: lex, config: config, logger: logger.Named("enrich")}
}

// Lexicon returns the vocabulary in use
func (e *Enricher) Lexicon() *Lexicon {
	return e.lex
}

// Config returns the enricher configuration
func (e *Enricher) Config() Config {
	return e.config
}

// Enrich returns a tagged copy of the token. Existing tags are replaced.
// The rules are tried in order and the first conclusive one wins:
// country, region (inconclusive), vintage, varietal, price.
func (e *Enricher) Enrich(t model.Token) model.Token {
	text := strings.TrimSpace(t.Text)
	t.Text = text
	t.Tags = model.Untagged

	if _, ok := e.lex.Country(text); ok {
		t.Text = strings.ToLower(text)
		return t.Tagged(model.TagCountry)
	}

	if _, ok := e.lex.Region(text); ok {
		t.Text = strings.ToLower(text)
		t = t.Tagged(model.TagRegion)
	}

	if year, ok := e.vintage(text); ok {
		t.Text = year
		t.Tags = model.Untagged
		return t.Tagged(model.TagVintage)
	}

	name, abbreviated := e.lex.Expand(text)
	if !abbreviated {
		name = text
	}
	if canonical, tag, ok := e.lex.Varietal(name); ok {
		t.Text = canonical
		return t.Tagged(tag)
	}
	if abbreviated {
		t.Text = name
		return t.Tagged(model.TagVarietalOther)
	}

	if isPrice(text) {
		t.Text = priceDigits(text)
		return t.Tagged(model.TagPrice)
	}

	return t
}

// EnrichAll tags every token. The input slice is not modified.
func (e *Enricher) EnrichAll(tokens []model.Token) []model.Token {
	out := make([]model.Token, len(tokens))
	counts := make(map[model.Tag]int)
	for i, t := range tokens {
		out[i] = e.Enrich(t)
		for _, tag := range out[i].Tags.List() {
			counts[tag]++
		}
	}

	fields := make([]zap.Field, 0, len(counts)+1)
	fields = append(fields, zap.Int("tokens", len(tokens)))
	for _, tag := range model.AllTags() {
		if n := counts[tag]; n > 0 {
			fields = append(fields, zap.Int(tag.String(), n))
		}
	}
	e.logger.Debug("enriched tokens", fields...)
	return out
}

// vintage returns the look-alike corrected text when it carries a plausible
// vintage year
func (e *Enricher) vintage(text string) (string, bool) {
	if !strings.ContainsFunc(text, unicode.IsDigit) {
		return "", false
	}
	fixed := strings.TrimSpace(lookalikes.Replace(text))

	m := vintagePattern.FindStringSubmatch(fixed)
	if m == nil {
		return "", false
	}
	year, err := strconv.Atoi(m[1])
	if err != nil || year > e.config.MaxVintageYear {
		return "", false
	}
	return fixed, true
}

const currencySymbols = "$€£"

func isPrice(text string) bool {
	if text == "" {
		return false
	}
	if strings.IndexFunc(text, func(r rune) bool { return !unicode.IsDigit(r) }) < 0 {
		return true
	}
	first, _ := utf8.DecodeRuneInString(text)
	last, _ := utf8.DecodeLastRuneInString(text)
	return strings.ContainsRune(currencySymbols, first) || strings.ContainsRune(currencySymbols, last)
}

// priceDigits keeps the digits and decimal separators of a price
func priceDigits(text string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) || r == '.' || r == ',' {
			return r
		}
		return -1
	}, text)
}

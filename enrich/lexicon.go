package enrich

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/thierryx96/cellar-ai/model"
)

//go:embed lexicon.yaml
var embeddedLexicon []byte

// ErrEmptyLexicon is returned when a lexicon defines no countries and no varietals
var ErrEmptyLexicon = errors.New("lexicon has no countries or varietals")

// Country is the vocabulary of one wine-producing country
type Country struct {
	Patterns  []string `yaml:"patterns"`
	Regions   []string `yaml:"regions"`
	Varietals []string `yaml:"varietals"`
}

// Lexicon is the immutable wine vocabulary. Build it with ParseLexicon,
// LoadLexicon or DefaultLexicon and share it by pointer.
type Lexicon struct {
	Countries      map[string]Country `yaml:"countries"`
	RedVarietals   []string           `yaml:"red_varietals"`
	WhiteVarietals []string           `yaml:"white_varietals"`
	Abbreviations  map[string]string  `yaml:"abbreviations"`
	Headers        []string           `yaml:"headers"`

	codes     map[string]string
	patterns  map[string]string
	regions   map[string]string
	red       map[string]string
	white     map[string]string
	abbrevs   map[string]string
	headerSet map[string]bool
}

var (
	defaultOnce    sync.Once
	defaultLexicon *Lexicon
	defaultErr     error
)

// DefaultLexicon returns the embedded lexicon, parsed on first use
func DefaultLexicon() (*Lexicon, error) {
	defaultOnce.Do(func() {
		defaultLexicon, defaultErr = ParseLexicon(embeddedLexicon)
	})
	return defaultLexicon, defaultErr
}

// LoadLexicon reads a lexicon from a YAML file
func LoadLexicon(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lexicon: %w", err)
	}
	return ParseLexicon(data)
}

// ParseLexicon decodes a YAML lexicon and builds its lookup indexes
func ParseLexicon(data []byte) (*Lexicon, error) {
	var lex Lexicon
	if err := yaml.Unmarshal(data, &lex); err != nil {
		return nil, fmt.Errorf("failed to parse lexicon: %w", err)
	}
	if len(lex.Countries) == 0 && len(lex.RedVarietals) == 0 && len(lex.WhiteVarietals) == 0 {
		return nil, ErrEmptyLexicon
	}
	lex.index()
	return &lex, nil
}

func (l *Lexicon) index() {
	l.codes = make(map[string]string)
	l.patterns = make(map[string]string)
	l.regions = make(map[string]string)

	// Earlier codes win shared patterns and regions
	for _, code := range l.CountryCodes() {
		c := l.Countries[code]
		l.codes[Key(code)] = code
		for _, p := range c.Patterns {
			if _, ok := l.patterns[Key(p)]; !ok {
				l.patterns[Key(p)] = code
			}
		}
		for _, r := range c.Regions {
			if _, ok := l.regions[Key(r)]; !ok {
				l.regions[Key(r)] = code
			}
		}
	}

	l.red = canonicalIndex(l.RedVarietals)
	l.white = canonicalIndex(l.WhiteVarietals)

	l.abbrevs = make(map[string]string, len(l.Abbreviations))
	for short, full := range l.Abbreviations {
		l.abbrevs[Key(short)] = full
	}

	l.headerSet = make(map[string]bool, len(l.Headers))
	for _, h := range l.Headers {
		l.headerSet[Key(h)] = true
	}
}

func canonicalIndex(names []string) map[string]string {
	m := make(map[string]string, len(names))
	for _, n := range names {
		if _, ok := m[Key(n)]; !ok {
			m[Key(n)] = n
		}
	}
	return m
}

// CountryCodes returns the ISO codes in sorted order
func (l *Lexicon) CountryCodes() []string {
	codes := make([]string, 0, len(l.Countries))
	for code := range l.Countries {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Country returns the ISO code named by text, either the code itself or one
// of the country's patterns
func (l *Lexicon) Country(text string) (string, bool) {
	k := Key(text)
	if code, ok := l.codes[k]; ok {
		return code, true
	}
	code, ok := l.patterns[k]
	return code, ok
}

// Region returns the ISO code of the country a region belongs to
func (l *Lexicon) Region(text string) (string, bool) {
	code, ok := l.regions[Key(text)]
	return code, ok
}

// Expand returns the canonical varietal for an abbreviation
func (l *Lexicon) Expand(text string) (string, bool) {
	full, ok := l.abbrevs[Key(text)]
	return full, ok
}

// Varietal returns the canonical spelling and colour tag of a varietal
func (l *Lexicon) Varietal(text string) (string, model.Tag, bool) {
	k := Key(text)
	if name, ok := l.red[k]; ok {
		return name, model.TagVarietalRed, true
	}
	if name, ok := l.white[k]; ok {
		return name, model.TagVarietalWhite, true
	}
	return "", 0, false
}

// IsHeader reports whether text is a menu header
func (l *Lexicon) IsHeader(text string) bool {
	return l.headerSet[Key(text)]
}

// HeaderList returns the headers upper-cased, for the grouping penalty table
func (l *Lexicon) HeaderList() []string {
	out := make([]string, len(l.Headers))
	for i, h := range l.Headers {
		out[i] = strings.ToUpper(h)
	}
	return out
}

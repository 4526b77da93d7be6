package model

import (
	"sort"
	"strings"
)

// Tag is a single semantic flag attached to a token by the enrichment step.
type Tag uint8

const (
	TagCountry Tag = iota
	TagRegion
	TagVintage
	TagPrice
	TagVarietalRed
	TagVarietalWhite
	TagVarietalOther

	tagCount
)

var tagNames = [tagCount]string{
	TagCountry:       "is_country",
	TagRegion:        "is_region",
	TagVintage:       "is_vintage",
	TagPrice:         "is_price",
	TagVarietalRed:   "is_varietal_red",
	TagVarietalWhite: "is_varietal_white",
	TagVarietalOther: "is_varietal_other",
}

// String returns the wire name of the tag (e.g. "is_price")
func (t Tag) String() string {
	if t >= tagCount {
		return "unknown"
	}
	return tagNames[t]
}

// Set returns a Tags value holding only this tag
func (t Tag) Set() Tags {
	return Tags(1) << t
}

// ParseTag maps a wire name back to its tag
func ParseTag(name string) (Tag, bool) {
	for i, n := range tagNames {
		if n == name {
			return Tag(i), true
		}
	}
	return 0, false
}

// AllTags returns every known tag in declaration order
func AllTags() []Tag {
	tags := make([]Tag, 0, tagCount)
	for t := Tag(0); t < tagCount; t++ {
		tags = append(tags, t)
	}
	return tags
}

// Tags is a fixed-shape bitset of semantic flags.
type Tags uint8

// Untagged is the empty tag set
const Untagged Tags = 0

const varietalMask = Tags(1)<<TagVarietalRed | Tags(1)<<TagVarietalWhite | Tags(1)<<TagVarietalOther

// Has reports whether the tag is set
func (s Tags) Has(t Tag) bool {
	return s&(Tags(1)<<t) != 0
}

// With returns a copy with the tag set
func (s Tags) With(t Tag) Tags {
	return s | Tags(1)<<t
}

// Without returns a copy with the tag cleared
func (s Tags) Without(t Tag) Tags {
	return s &^ (Tags(1) << t)
}

// WithVarietal sets a varietal tag, clearing any other varietal colour so that
// at most one of red/white/other is ever set.
func (s Tags) WithVarietal(t Tag) Tags {
	return (s &^ varietalMask).With(t)
}

// IsUntagged returns true if no flag is set
func (s Tags) IsUntagged() bool {
	return s == Untagged
}

// Varietal returns the varietal tag if one is set
func (s Tags) Varietal() (Tag, bool) {
	for _, t := range []Tag{TagVarietalRed, TagVarietalWhite, TagVarietalOther} {
		if s.Has(t) {
			return t, true
		}
	}
	return 0, false
}

// List returns the set tags in declaration order
func (s Tags) List() []Tag {
	var out []Tag
	for t := Tag(0); t < tagCount; t++ {
		if s.Has(t) {
			out = append(out, t)
		}
	}
	return out
}

// String returns the set tag names joined with "|", or "untagged"
func (s Tags) String() string {
	if s.IsUntagged() {
		return "untagged"
	}
	names := make([]string, 0, tagCount)
	for _, t := range s.List() {
		names = append(names, t.String())
	}
	sort.Strings(names)
	return strings.Join(names, "|")
}

package grouping

import (
	"github.com/thierryx96/cellar-ai/layout"
	"github.com/thierryx96/cellar-ai/model"
)

// Strategy partitions one page of tokens into groups and noise
type Strategy interface {
	// Name identifies the strategy (e.g. "cluster", "affinity")
	Name() string

	// Group partitions the tokens. Implementations must place every token in
	// exactly one group or in the noise list.
	Group(tokens []model.Token) (*Result, error)
}

// Group is one candidate wine listing, tokens sorted left to right
type Group struct {
	// ID is the group label (>= 0), unique within a Result
	ID int `json:"id"`

	// Tokens are the members sorted by ascending X
	Tokens []model.Token `json:"tokens"`
}

// Texts returns the token texts in group order
func (g Group) Texts() []string {
	texts := make([]string, len(g.Tokens))
	for i, t := range g.Tokens {
		texts[i] = t.Text
	}
	return texts
}

// Len returns the number of tokens in the group
func (g Group) Len() int {
	return len(g.Tokens)
}

// Result is the outcome of grouping one page
type Result struct {
	// Groups are ordered by ID
	Groups []Group `json:"groups"`

	// Noise are the tokens not assigned to any group, in input order
	Noise []model.Token `json:"noise"`

	// Eps is the density radius used, when the strategy has one
	Eps float64 `json:"eps,omitempty"`

	// Layout is the page layout the strategy worked from
	Layout *layout.Descriptor `json:"-"`
}

// GroupCount returns the number of groups
func (r *Result) GroupCount() int {
	if r == nil {
		return 0
	}
	return len(r.Groups)
}

// TokenCount returns the number of tokens in groups and noise
func (r *Result) TokenCount() int {
	if r == nil {
		return 0
	}
	n := len(r.Noise)
	for _, g := range r.Groups {
		n += len(g.Tokens)
	}
	return n
}

// Map returns the groups keyed by ID
func (r *Result) Map() map[int][]model.Token {
	if r == nil {
		return nil
	}
	m := make(map[int][]model.Token, len(r.Groups))
	for _, g := range r.Groups {
		m[g.ID] = g.Tokens
	}
	return m
}

// newResult builds a Result from per-token labels (-1 for noise). Groups are
// numbered in order of first appearance and sorted left to right.
func newResult(tokens []model.Token, labels []int) *Result {
	result := &Result{Noise: []model.Token{}, Groups: []Group{}}
	index := make(map[int]int)

	for i, label := range labels {
		if label < 0 {
			result.Noise = append(result.Noise, tokens[i])
			continue
		}
		pos, ok := index[label]
		if !ok {
			pos = len(result.Groups)
			index[label] = pos
			result.Groups = append(result.Groups, Group{ID: pos})
		}
		result.Groups[pos].Tokens = append(result.Groups[pos].Tokens, tokens[i])
	}

	for i := range result.Groups {
		model.SortByX(result.Groups[i].Tokens)
	}
	return result
}

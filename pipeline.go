package cellar

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/thierryx96/cellar-ai/enrich"
	"github.com/thierryx96/cellar-ai/entry"
	"github.com/thierryx96/cellar-ai/grouping"
	"github.com/thierryx96/cellar-ai/model"
)

// Pipeline provides a fluent interface from tokens to wine entries.
// Each configuration method returns a new Pipeline instance, making it
// safe for concurrent use and allowing method chaining.
type Pipeline struct {
	tokens  []model.Token
	options pipelineOptions

	// Accumulated error (fail-fast)
	err error
}

// Report is the outcome of one page: entries, the groups they were built
// from, and the tokens left over.
type Report struct {
	// Strategy names the grouping strategy used
	Strategy string `json:"strategy"`

	// Entries[i] was built from Groups[i]
	Entries []model.WineEntry `json:"entries"`
	Groups  []grouping.Group  `json:"groups"`

	// Noise are the unassigned tokens
	Noise []model.Token `json:"noise"`

	// Eps is the density radius, for the cluster strategy
	Eps float64 `json:"eps,omitempty"`
}

// clone creates a copy of the Pipeline sharing its token slice, which is
// never modified.
func (p *Pipeline) clone() *Pipeline {
	return &Pipeline{
		tokens:  p.tokens,
		options: p.options.clone(),
		err:     p.err,
	}
}

// ============================================================================
// Configuration Methods (return new Pipeline instance)
// ============================================================================

// WithStrategy selects the grouping strategy. The default is a Clusterer.
//
// Example:
//
//	cellar.FromTokens(tokens).WithStrategy(grouping.NewAssembler(m)).Groups()
func (p *Pipeline) WithStrategy(s grouping.Strategy) *Pipeline {
	newP := p.clone()
	newP.options.strategy = s
	return newP
}

// WithBuilder replaces the entry builder.
func (p *Pipeline) WithBuilder(b *entry.Builder) *Pipeline {
	newP := p.clone()
	newP.options.builder = b
	return newP
}

// WithEnricher tags the tokens before grouping. Without it, tokens are
// expected to carry their tags already.
func (p *Pipeline) WithEnricher(e *enrich.Enricher) *Pipeline {
	newP := p.clone()
	newP.options.enricher = e
	return newP
}

// WithLogger sets the logger. It is also handed to the default Clusterer.
func (p *Pipeline) WithLogger(logger *zap.Logger) *Pipeline {
	newP := p.clone()
	if logger == nil {
		logger = zap.NewNop()
	}
	newP.options.logger = logger
	return newP
}

// ============================================================================
// Terminal Operations
// ============================================================================

// Tokens returns the tokens that will be grouped, enriched if an enricher
// is configured.
func (p *Pipeline) Tokens() ([]model.Token, error) {
	if p.err != nil {
		return nil, p.err
	}
	if p.options.enricher != nil {
		return p.options.enricher.EnrichAll(p.tokens), nil
	}
	out := make([]model.Token, len(p.tokens))
	copy(out, p.tokens)
	return out, nil
}

// Groups partitions the tokens into groups and noise.
//
// Example:
//
//	result, err := cellar.FromTokens(tokens).Groups()
func (p *Pipeline) Groups() (*grouping.Result, error) {
	tokens, err := p.Tokens()
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return &grouping.Result{Groups: []grouping.Group{}, Noise: []model.Token{}}, nil
	}

	strategy := p.strategy()
	result, err := strategy.Group(tokens)
	if err != nil {
		return nil, fmt.Errorf("%s grouping failed: %w", strategy.Name(), err)
	}

	p.options.logger.Debug("grouped page",
		zap.String("strategy", strategy.Name()),
		zap.Int("tokens", len(tokens)),
		zap.Int("groups", len(result.Groups)),
		zap.Int("noise", len(result.Noise)),
	)
	return result, nil
}

// Entries groups the tokens and builds one wine entry per group.
//
// Example:
//
//	report, err := cellar.FromTokens(tokens).Entries()
func (p *Pipeline) Entries() (*Report, error) {
	result, err := p.Groups()
	if err != nil {
		return nil, err
	}

	report := &Report{
		Strategy: p.strategy().Name(),
		Entries:  make([]model.WineEntry, len(result.Groups)),
		Groups:   result.Groups,
		Noise:    result.Noise,
		Eps:      result.Eps,
	}
	for i, g := range result.Groups {
		report.Entries[i] = p.options.builder.Build(g.Tokens)
	}
	return report, nil
}

func (p *Pipeline) strategy() grouping.Strategy {
	if p.options.strategy != nil {
		return p.options.strategy
	}
	config := grouping.DefaultClusterConfig()
	config.Logger = p.options.logger
	return grouping.NewClustererWithConfig(config)
}

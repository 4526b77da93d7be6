package cellar

import (
	"go.uber.org/zap"

	"github.com/thierryx96/cellar-ai/enrich"
	"github.com/thierryx96/cellar-ai/entry"
	"github.com/thierryx96/cellar-ai/grouping"
)

// pipelineOptions holds the collaborators of a Pipeline.
type pipelineOptions struct {
	strategy grouping.Strategy
	builder  *entry.Builder
	enricher *enrich.Enricher // nil means tokens arrive already tagged
	logger   *zap.Logger
}

// defaultOptions returns the default pipeline options.
func defaultOptions() pipelineOptions {
	return pipelineOptions{
		strategy: nil, // nil means a default Clusterer, built with the logger
		builder:  entry.NewBuilder(),
		enricher: nil,
		logger:   zap.NewNop(),
	}
}

// clone creates a copy of pipelineOptions. Collaborators are immutable or
// safe to share, so they are copied by reference.
func (o pipelineOptions) clone() pipelineOptions {
	return pipelineOptions{
		strategy: o.strategy,
		builder:  o.builder,
		enricher: o.enricher,
		logger:   o.logger,
	}
}

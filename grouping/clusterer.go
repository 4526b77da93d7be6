package grouping

import (
	"go.uber.org/zap"

	"github.com/thierryx96/cellar-ai/layout"
	"github.com/thierryx96/cellar-ai/model"
)

// ClusterConfig holds configuration for penalized density clustering
type ClusterConfig struct {
	// Layout configures row and column inference
	Layout layout.Config

	// Features configures the normalized feature space
	Features layout.FeatureConfig

	// Penalty configures semantic conflict penalties
	Penalty PenaltyConfig

	// Eps configures the adaptive density radius
	Eps EpsConfig

	// MinSamples is the neighborhood size (self included) that makes a
	// token a core point (default: 2)
	MinSamples int

	// Logger receives debug diagnostics; nil disables logging
	Logger *zap.Logger
}

// DefaultClusterConfig returns sensible default configuration
func DefaultClusterConfig() ClusterConfig {
	return ClusterConfig{
		Layout:     layout.DefaultConfig(),
		Features:   layout.DefaultFeatureConfig(),
		Penalty:    DefaultPenaltyConfig(),
		Eps:        DefaultEpsConfig(),
		MinSamples: 2,
	}
}

// Clusterer groups tokens by density clustering over combined spatial and
// semantic distances
type Clusterer struct {
	config     ClusterConfig
	analyzer   *layout.Analyzer
	normalizer *layout.Normalizer
	penalties  *PenaltyModel
	logger     *zap.Logger
}

// NewClusterer creates a clusterer with default configuration
func NewClusterer() *Clusterer {
	return NewClustererWithConfig(DefaultClusterConfig())
}

// NewClustererWithConfig creates a clusterer with custom configuration
func NewClustererWithConfig(config ClusterConfig) *Clusterer {
	if config.MinSamples < 2 {
		config.MinSamples = 2
	}
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Clusterer{
		config:     config,
		analyzer:   layout.NewAnalyzerWithConfig(config.Layout),
		normalizer: layout.NewNormalizerWithConfig(config.Features),
		penalties:  NewPenaltyModelWithConfig(config.Penalty),
		logger:     logger.Named("cluster"),
	}
}

// Config returns the clusterer configuration
func (c *Clusterer) Config() ClusterConfig {
	return c.config
}

// Penalties returns the penalty model in use
func (c *Clusterer) Penalties() *PenaltyModel {
	return c.penalties
}

// Name implements Strategy
func (c *Clusterer) Name() string {
	return "cluster"
}

// Group implements Strategy. It never fails.
func (c *Clusterer) Group(tokens []model.Token) (*Result, error) {
	return c.Cluster(tokens), nil
}

// Cluster partitions tokens into groups and noise
func (c *Clusterer) Cluster(tokens []model.Token) *Result {
	if len(tokens) == 0 {
		return &Result{Groups: []Group{}, Noise: []model.Token{}}
	}

	desc := c.analyzer.Analyze(tokens)

	if len(tokens) < 2 {
		noise := make([]model.Token, len(tokens))
		copy(noise, tokens)
		return &Result{Groups: []Group{}, Noise: noise, Layout: desc}
	}

	features := c.normalizer.Normalize(tokens, desc)
	matrix := NewMatrix(tokens, features, c.penalties)
	eps := SelectEps(matrix, c.config.Eps)

	hard := c.penalties.Config().HardConflictThreshold
	labels := densityCluster(matrix, eps, c.config.MinSamples, func(i, j int) bool {
		return matrix.Penalty(i, j) >= hard
	})

	result := newResult(tokens, labels)
	result.Eps = eps
	result.Layout = desc

	c.logger.Debug("clustered tokens",
		zap.Int("tokens", len(tokens)),
		zap.Int("rows", desc.RowCount),
		zap.Float64("row_spacing", desc.RowSpacing),
		zap.Float64("eps", eps),
		zap.Int("groups", len(result.Groups)),
		zap.Int("noise", len(result.Noise)),
	)

	return result
}

// Package config loads cellar settings from an optional YAML file and
// CELLAR_* environment variables, and maps them onto the library configs.
package config

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/thierryx96/cellar-ai/enrich"
	"github.com/thierryx96/cellar-ai/grouping"
	"github.com/thierryx96/cellar-ai/internal/logging"
	"github.com/thierryx96/cellar-ai/layout"
	"github.com/thierryx96/cellar-ai/ocr"
)

// Config is the root configuration.
type Config struct {
	Log      logging.Config `mapstructure:"log"`
	Layout   LayoutConfig   `mapstructure:"layout"`
	Features FeaturesConfig `mapstructure:"features"`
	Cluster  ClusterConfig  `mapstructure:"cluster"`
	Affinity AffinityConfig `mapstructure:"affinity"`
	Enrich   EnrichConfig   `mapstructure:"enrich"`
	OCR      OCRConfig      `mapstructure:"ocr"`
}

// LayoutConfig mirrors layout.Config.
type LayoutConfig struct {
	MinRowGap            float64 `mapstructure:"min_row_gap"`
	RowMergeFactor       float64 `mapstructure:"row_merge_factor"`
	MinColumnGap         float64 `mapstructure:"min_column_gap"`
	DefaultColumnSpacing float64 `mapstructure:"default_column_spacing"`
}

// FeaturesConfig mirrors layout.FeatureConfig.
type FeaturesConfig struct {
	TargetRowSpacing float64 `mapstructure:"target_row_spacing"`
	TargetColumnSpan float64 `mapstructure:"target_column_span"`
	XWeight          float64 `mapstructure:"x_weight"`
}

// ClusterConfig holds the density clustering settings.
type ClusterConfig struct {
	MinSamples    int     `mapstructure:"min_samples"`
	EpsPercentile float64 `mapstructure:"eps_percentile"`
	MaxEps        float64 `mapstructure:"max_eps"`
	MinEps        float64 `mapstructure:"min_eps"`
	FallbackEps   float64 `mapstructure:"fallback_eps"`
}

// AffinityConfig holds the affinity assembler settings.
type AffinityConfig struct {
	SimilarityThreshold float64 `mapstructure:"similarity_threshold"`
	NeighborRadius      float64 `mapstructure:"neighbor_radius"`
	AnchorWindowY       float64 `mapstructure:"anchor_window_y"`
	AnchorWindowX       float64 `mapstructure:"anchor_window_x"`
	Epochs              int     `mapstructure:"epochs"`
	LearningRate        float64 `mapstructure:"learning_rate"`
	ModelPath           string  `mapstructure:"model_path"`
}

// EnrichConfig holds token enrichment settings.
type EnrichConfig struct {
	// LexiconPath overrides the embedded lexicon when set
	LexiconPath    string `mapstructure:"lexicon_path"`
	MaxVintageYear int    `mapstructure:"max_vintage_year"`
}

// OCRConfig holds Tesseract settings.
type OCRConfig struct {
	Languages   string `mapstructure:"languages"`
	PageSegMode int    `mapstructure:"page_seg_mode"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	l := layout.DefaultConfig()
	f := layout.DefaultFeatureConfig()
	c := grouping.DefaultClusterConfig()
	a := grouping.DefaultAssemblerConfig()

	return &Config{
		Log: logging.Config{Level: "info", Format: "console"},
		Layout: LayoutConfig{
			MinRowGap:            l.MinRowGap,
			RowMergeFactor:       l.RowMergeFactor,
			MinColumnGap:         l.MinColumnGap,
			DefaultColumnSpacing: l.DefaultColumnSpacing,
		},
		Features: FeaturesConfig{
			TargetRowSpacing: f.TargetRowSpacing,
			TargetColumnSpan: f.TargetColumnSpan,
			XWeight:          f.XWeight,
		},
		Cluster: ClusterConfig{
			MinSamples:    c.MinSamples,
			EpsPercentile: c.Eps.Percentile,
			MaxEps:        c.Eps.MaxEps,
			MinEps:        c.Eps.MinEps,
			FallbackEps:   c.Eps.FallbackEps,
		},
		Affinity: AffinityConfig{
			SimilarityThreshold: a.SimilarityThreshold,
			NeighborRadius:      a.Trainer.NeighborRadius,
			AnchorWindowY:       a.AnchorWindowY,
			AnchorWindowX:       a.AnchorWindowX,
			Epochs:              a.Trainer.Epochs,
			LearningRate:        a.Trainer.LearningRate,
		},
		Enrich: EnrichConfig{MaxVintageYear: time.Now().Year()},
		OCR:    OCRConfig{Languages: "eng", PageSegMode: int(ocr.PSMSparseText)},
	}
}

// Validation errors
var (
	ErrInvalidEps        = errors.New("invalid eps bounds")
	ErrInvalidPercentile = errors.New("eps percentile must be within [0, 100]")
	ErrInvalidMinSamples = errors.New("min samples must be at least 2")
	ErrInvalidThreshold  = errors.New("similarity threshold must be within [0, 1]")
	ErrInvalidTraining   = errors.New("epochs and learning rate must be positive")
	ErrInvalidScale      = errors.New("feature targets must be positive")
)

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Cluster.MinEps <= 0 || c.Cluster.MaxEps < c.Cluster.MinEps || c.Cluster.FallbackEps <= 0 {
		return fmt.Errorf("%w: min %v, max %v, fallback %v",
			ErrInvalidEps, c.Cluster.MinEps, c.Cluster.MaxEps, c.Cluster.FallbackEps)
	}
	if c.Cluster.EpsPercentile < 0 || c.Cluster.EpsPercentile > 100 {
		return fmt.Errorf("%w: got %v", ErrInvalidPercentile, c.Cluster.EpsPercentile)
	}
	if c.Cluster.MinSamples < 2 {
		return fmt.Errorf("%w: got %d", ErrInvalidMinSamples, c.Cluster.MinSamples)
	}
	if c.Affinity.SimilarityThreshold < 0 || c.Affinity.SimilarityThreshold > 1 {
		return fmt.Errorf("%w: got %v", ErrInvalidThreshold, c.Affinity.SimilarityThreshold)
	}
	if c.Affinity.Epochs <= 0 || c.Affinity.LearningRate <= 0 {
		return ErrInvalidTraining
	}
	if c.Features.TargetRowSpacing <= 0 || c.Features.TargetColumnSpan <= 0 {
		return ErrInvalidScale
	}
	return nil
}

// LayoutSettings returns the layout analyzer settings.
func (c *Config) LayoutSettings() layout.Config {
	l := layout.DefaultConfig()
	l.MinRowGap = c.Layout.MinRowGap
	l.RowMergeFactor = c.Layout.RowMergeFactor
	l.MinColumnGap = c.Layout.MinColumnGap
	l.DefaultColumnSpacing = c.Layout.DefaultColumnSpacing
	return l
}

// ClusterSettings returns the clusterer configuration. Headers, when given,
// replace the default header vocabulary of the penalty model.
func (c *Config) ClusterSettings(logger *zap.Logger, headers []string) grouping.ClusterConfig {
	gc := grouping.DefaultClusterConfig()
	gc.Layout = c.LayoutSettings()
	gc.Features = layout.FeatureConfig{
		TargetRowSpacing: c.Features.TargetRowSpacing,
		TargetColumnSpan: c.Features.TargetColumnSpan,
		XWeight:          c.Features.XWeight,
	}
	gc.MinSamples = c.Cluster.MinSamples
	gc.Eps = grouping.EpsConfig{
		Percentile:  c.Cluster.EpsPercentile,
		MaxEps:      c.Cluster.MaxEps,
		MinEps:      c.Cluster.MinEps,
		FallbackEps: c.Cluster.FallbackEps,
	}
	if len(headers) > 0 {
		gc.Penalty.Headers = headers
	}
	gc.Logger = logger
	return gc
}

// AssemblerSettings returns the affinity assembler configuration.
func (c *Config) AssemblerSettings(logger *zap.Logger) grouping.AssemblerConfig {
	ac := grouping.DefaultAssemblerConfig()
	ac.SimilarityThreshold = c.Affinity.SimilarityThreshold
	ac.AnchorWindowY = c.Affinity.AnchorWindowY
	ac.AnchorWindowX = c.Affinity.AnchorWindowX
	ac.Trainer = grouping.TrainerConfig{
		NeighborRadius: c.Affinity.NeighborRadius,
		Epochs:         c.Affinity.Epochs,
		LearningRate:   c.Affinity.LearningRate,
		Layout:         c.LayoutSettings(),
	}
	ac.Logger = logger
	return ac
}

// EnrichSettings returns the enricher configuration.
func (c *Config) EnrichSettings(logger *zap.Logger) enrich.Config {
	return enrich.Config{MaxVintageYear: c.Enrich.MaxVintageYear, Logger: logger}
}

// Lexicon loads the configured lexicon, or the embedded one.
func (c *Config) Lexicon() (*enrich.Lexicon, error) {
	if c.Enrich.LexiconPath != "" {
		return enrich.LoadLexicon(c.Enrich.LexiconPath)
	}
	return enrich.DefaultLexicon()
}

package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// envPrefix is the environment variable prefix used by all cellar settings.
const envPrefix = "CELLAR"

// newViper builds a Viper instance with YAML files, the CELLAR_ env prefix
// and a "." -> "_" key replacer, so "cluster.max_eps" resolves to
// CELLAR_CLUSTER_MAX_EPS.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults(v, Default())
	return v
}

// setDefaults registers every key so environment overrides apply even when
// no file sets them.
func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("log.output_paths", d.Log.OutputPaths)

	v.SetDefault("layout.min_row_gap", d.Layout.MinRowGap)
	v.SetDefault("layout.row_merge_factor", d.Layout.RowMergeFactor)
	v.SetDefault("layout.min_column_gap", d.Layout.MinColumnGap)
	v.SetDefault("layout.default_column_spacing", d.Layout.DefaultColumnSpacing)

	v.SetDefault("features.target_row_spacing", d.Features.TargetRowSpacing)
	v.SetDefault("features.target_column_span", d.Features.TargetColumnSpan)
	v.SetDefault("features.x_weight", d.Features.XWeight)

	v.SetDefault("cluster.min_samples", d.Cluster.MinSamples)
	v.SetDefault("cluster.eps_percentile", d.Cluster.EpsPercentile)
	v.SetDefault("cluster.max_eps", d.Cluster.MaxEps)
	v.SetDefault("cluster.min_eps", d.Cluster.MinEps)
	v.SetDefault("cluster.fallback_eps", d.Cluster.FallbackEps)

	v.SetDefault("affinity.similarity_threshold", d.Affinity.SimilarityThreshold)
	v.SetDefault("affinity.neighbor_radius", d.Affinity.NeighborRadius)
	v.SetDefault("affinity.anchor_window_y", d.Affinity.AnchorWindowY)
	v.SetDefault("affinity.anchor_window_x", d.Affinity.AnchorWindowX)
	v.SetDefault("affinity.epochs", d.Affinity.Epochs)
	v.SetDefault("affinity.learning_rate", d.Affinity.LearningRate)
	v.SetDefault("affinity.model_path", d.Affinity.ModelPath)

	v.SetDefault("enrich.lexicon_path", d.Enrich.LexiconPath)
	v.SetDefault("enrich.max_vintage_year", d.Enrich.MaxVintageYear)

	v.SetDefault("ocr.languages", d.OCR.Languages)
	v.SetDefault("ocr.page_seg_mode", d.OCR.PageSegMode)
}

// Load reads the YAML file at configPath, when given, merges CELLAR_*
// environment overrides over the defaults and validates the result.
func Load(configPath string) (*Config, error) {
	v := newViper()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: failed to read config file %q: %w", configPath, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validation failed: %w", err)
	}
	return cfg, nil
}

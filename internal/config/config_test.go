package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/thierryx96/cellar-ai/grouping"
	"github.com/thierryx96/cellar-ai/layout"
)

func TestDefault_MatchesLibraries(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, grouping.DefaultClusterConfig().Eps, cfg.ClusterSettings(nil, nil).Eps)
	assert.Equal(t, layout.DefaultConfig(), cfg.LayoutSettings())
	assert.Equal(t, layout.DefaultFeatureConfig(), cfg.ClusterSettings(nil, nil).Features)
	assert.Equal(t, 2, cfg.Cluster.MinSamples)
	assert.Equal(t, 0.5, cfg.AssemblerSettings(nil).SimilarityThreshold)
	assert.Equal(t, "eng", cfg.OCR.Languages)
}

func TestLoad_NoFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().Cluster, cfg.Cluster)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cellar.yaml")
	data := `
log:
  level: debug
  format: json
cluster:
  max_eps: 6.5
affinity:
  model_path: /tmp/model.json
  epochs: 50
enrich:
  max_vintage_year: 2024
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 6.5, cfg.Cluster.MaxEps)
	assert.Equal(t, 2.0, cfg.Cluster.MinEps)
	assert.Equal(t, "/tmp/model.json", cfg.Affinity.ModelPath)
	assert.Equal(t, 50, cfg.AssemblerSettings(nil).Trainer.Epochs)
	assert.Equal(t, 2024, cfg.EnrichSettings(nil).MaxVintageYear)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("CELLAR_CLUSTER_MAX_EPS", "7")
	t.Setenv("CELLAR_LOG_LEVEL", "warn")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 7.0, cfg.Cluster.MaxEps)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cellar.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cluster:\n  min_eps: 9\n  max_eps: 3\n"), 0o644))

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrInvalidEps)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"percentile", func(c *Config) { c.Cluster.EpsPercentile = 120 }, ErrInvalidPercentile},
		{"min samples", func(c *Config) { c.Cluster.MinSamples = 1 }, ErrInvalidMinSamples},
		{"threshold", func(c *Config) { c.Affinity.SimilarityThreshold = 1.5 }, ErrInvalidThreshold},
		{"epochs", func(c *Config) { c.Affinity.Epochs = 0 }, ErrInvalidTraining},
		{"scale", func(c *Config) { c.Features.TargetRowSpacing = 0 }, ErrInvalidScale},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), tt.want)
		})
	}
}

func TestClusterSettings_Headers(t *testing.T) {
	logger := zap.NewNop()
	gc := Default().ClusterSettings(logger, []string{"CARTE DES VINS"})

	assert.Equal(t, []string{"CARTE DES VINS"}, gc.Penalty.Headers)
	assert.Same(t, logger, gc.Logger)
}

func TestLexicon(t *testing.T) {
	cfg := Default()
	lex, err := cfg.Lexicon()
	require.NoError(t, err)
	assert.NotEmpty(t, lex.CountryCodes())

	cfg.Enrich.LexiconPath = filepath.Join(t.TempDir(), "missing.yaml")
	_, err = cfg.Lexicon()
	assert.Error(t, err)
}

package grouping

import (
	"go.uber.org/zap"

	"github.com/thierryx96/cellar-ai/model"
)

// AssemblerConfig holds price-anchored assembly parameters
type AssemblerConfig struct {
	// SimilarityThreshold is the score a token must exceed to take part (default: 0.5)
	SimilarityThreshold float64

	// AnchorWindowY is how far above a price anchor tokens are absorbed, in pixels (default: 100)
	AnchorWindowY float64

	// AnchorWindowX is the horizontal reach either side of the anchor, in pixels (default: 400)
	AnchorWindowX float64

	// Trainer configures Fit
	Trainer TrainerConfig

	// Logger receives debug diagnostics; nil disables logging
	Logger *zap.Logger
}

// DefaultAssemblerConfig returns sensible default configuration
func DefaultAssemblerConfig() AssemblerConfig {
	return AssemblerConfig{
		SimilarityThreshold: 0.5,
		AnchorWindowY:       100,
		AnchorWindowX:       400,
		Trainer:             DefaultTrainerConfig(),
	}
}

// Assembler groups tokens around price anchors using a learned relevance score
type Assembler struct {
	config AssemblerConfig
	model  *AffinityModel
	logger *zap.Logger
}

// NewAssembler creates an assembler with default configuration. The model
// may be nil; Group then fails until Fit or SetModel is called.
func NewAssembler(m *AffinityModel) *Assembler {
	return NewAssemblerWithConfig(m, DefaultAssemblerConfig())
}

// NewAssemblerWithConfig creates an assembler with custom configuration
func NewAssemblerWithConfig(m *AffinityModel, config AssemblerConfig) *Assembler {
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Assembler{config: config, model: m, logger: logger.Named("affinity")}
}

// Config returns the assembler configuration
func (a *Assembler) Config() AssemblerConfig {
	return a.config
}

// Model returns the installed model, nil before fitting
func (a *Assembler) Model() *AffinityModel {
	return a.model
}

// SetModel installs a previously trained model
func (a *Assembler) SetModel(m *AffinityModel) {
	a.model = m
}

// Fit trains a model from grouped menus and installs it
func (a *Assembler) Fit(menus []TrainingMenu) error {
	m, err := NewTrainerWithConfig(a.config.Trainer).Fit(menus)
	if err != nil {
		return err
	}
	a.model = m
	a.logger.Debug("fitted affinity model",
		zap.Int("samples", m.Stats.Samples),
		zap.Float64("loss", m.Stats.Loss),
		zap.Float64("accuracy", m.Stats.Accuracy),
	)
	return nil
}

// Name implements Strategy
func (a *Assembler) Name() string {
	return "affinity"
}

// Group implements Strategy. Anchors are processed in token order and the
// first anchor to reach a token keeps it.
func (a *Assembler) Group(tokens []model.Token) (*Result, error) {
	if !a.model.Ready() {
		return nil, ErrModelNotReady
	}
	if len(tokens) == 0 {
		return &Result{Groups: []Group{}, Noise: []model.Token{}}, nil
	}

	scores, err := a.model.Score(tokens)
	if err != nil {
		return nil, err
	}

	candidate := make([]bool, len(tokens))
	for i, s := range scores {
		candidate[i] = s > a.config.SimilarityThreshold
	}

	idx := newNeighborIndex(tokens)
	used := make([]bool, len(tokens))
	labels := make([]int, len(tokens))
	for i := range labels {
		labels[i] = noiseLabel
	}

	next := 0
	for i, anchor := range tokens {
		if used[i] || !candidate[i] || !anchor.Is(model.TagPrice) {
			continue
		}
		used[i] = true

		// Search box spans the full window; the exact test below keeps only
		// tokens at or above the anchor.
		var members []int
		halfY := a.config.AnchorWindowY / 2
		for _, j := range idx.within(anchor.X, anchor.Y-halfY, a.config.AnchorWindowX, halfY) {
			if used[j] || !candidate[j] {
				continue
			}
			dy := anchor.Y - tokens[j].Y
			if dy < 0 || dy > a.config.AnchorWindowY {
				continue
			}
			members = append(members, j)
		}

		if len(members) == 0 {
			continue
		}
		labels[i] = next
		for _, j := range members {
			used[j] = true
			labels[j] = next
		}
		next++
	}

	result := newResult(tokens, labels)
	a.logger.Debug("assembled tokens",
		zap.Int("tokens", len(tokens)),
		zap.Int("groups", len(result.Groups)),
		zap.Int("noise", len(result.Noise)),
	)
	return result, nil
}

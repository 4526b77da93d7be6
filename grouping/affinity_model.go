package grouping

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/thierryx96/cellar-ai/layout"
	"github.com/thierryx96/cellar-ai/model"
)

var (
	// ErrModelNotReady is returned when affinity grouping runs without a fitted model
	ErrModelNotReady = errors.New("affinity model not fitted")

	// ErrNoTrainingData is returned when fitting is given no labelled tokens
	ErrNoTrainingData = errors.New("no training data")

	// ErrModelShape is returned when a loaded model has the wrong feature dimension
	ErrModelShape = errors.New("affinity model has wrong feature dimension")
)

// TrainingMenu is one manually grouped menu page
type TrainingMenu struct {
	// Groups are the known listings; their tokens are labelled relevant
	Groups [][]model.Token `json:"groups"`

	// Noise are tokens that belong to no listing
	Noise []model.Token `json:"noise,omitempty"`
}

// tokens flattens the menu and returns matching labels
func (m TrainingMenu) tokens() ([]model.Token, []float64) {
	var tokens []model.Token
	var labels []float64
	for _, g := range m.Groups {
		for _, t := range g {
			tokens = append(tokens, t)
			labels = append(labels, 1)
		}
	}
	for _, t := range m.Noise {
		tokens = append(tokens, t)
		labels = append(labels, 0)
	}
	return tokens, labels
}

// ModelStats records how a model was trained
type ModelStats struct {
	Menus    int     `json:"menus"`
	Samples  int     `json:"samples"`
	Epochs   int     `json:"epochs"`
	Loss     float64 `json:"loss"`
	Accuracy float64 `json:"accuracy"`
}

// AffinityModel is a logistic relevance scorer over graph-smoothed features
type AffinityModel struct {
	Dim            int        `json:"dim"`
	Weights        []float64  `json:"weights"`
	Bias           float64    `json:"bias"`
	NeighborRadius float64    `json:"neighbor_radius"`
	Stats          ModelStats `json:"stats"`

	analyzer *layout.Analyzer
}

// Ready reports whether the model carries fitted weights
func (m *AffinityModel) Ready() bool {
	return m != nil && m.Dim == FeatureDim && len(m.Weights) == FeatureDim
}

// Score returns the relevance probability of each token in (0,1)
func (m *AffinityModel) Score(tokens []model.Token) ([]float64, error) {
	if !m.Ready() {
		return nil, ErrModelNotReady
	}
	if len(tokens) == 0 {
		return []float64{}, nil
	}

	features := m.features(tokens)
	scores := make([]float64, len(tokens))
	for i, f := range features {
		scores[i] = m.predict(f)
	}
	return scores, nil
}

func (m *AffinityModel) features(tokens []model.Token) [][]float64 {
	analyzer := m.analyzer
	if analyzer == nil {
		analyzer = layout.NewAnalyzer()
	}
	desc := analyzer.Analyze(tokens)
	return smoothFeatures(tokens, tokenFeatures(tokens, desc), m.NeighborRadius)
}

func (m *AffinityModel) predict(f []float64) float64 {
	z := m.Bias
	for k, w := range m.Weights {
		z += w * f[k]
	}
	return sigmoid(z)
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}

// SaveModel writes the model as JSON
func (m *AffinityModel) SaveModel(w io.Writer) error {
	if !m.Ready() {
		return ErrModelNotReady
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("failed to encode affinity model: %w", err)
	}
	return nil
}

// LoadModel reads a model written by SaveModel
func LoadModel(r io.Reader) (*AffinityModel, error) {
	var m AffinityModel
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("failed to decode affinity model: %w", err)
	}
	if m.Dim != FeatureDim || len(m.Weights) != FeatureDim {
		return nil, fmt.Errorf("%w: got dim %d with %d weights, want %d",
			ErrModelShape, m.Dim, len(m.Weights), FeatureDim)
	}
	if m.NeighborRadius <= 0 {
		m.NeighborRadius = DefaultTrainerConfig().NeighborRadius
	}
	return &m, nil
}

// TrainerConfig holds affinity training parameters
type TrainerConfig struct {
	// NeighborRadius is the smoothing radius in pixels (default: 300)
	NeighborRadius float64

	// Epochs is the number of full-batch gradient steps (default: 500)
	Epochs int

	// LearningRate is the gradient step size (default: 0.5)
	LearningRate float64

	// Layout configures the page analysis used for coordinate scaling
	Layout layout.Config
}

// DefaultTrainerConfig returns sensible default configuration
func DefaultTrainerConfig() TrainerConfig {
	return TrainerConfig{
		NeighborRadius: 300,
		Epochs:         500,
		LearningRate:   0.5,
		Layout:         layout.DefaultConfig(),
	}
}

// Trainer fits affinity models from grouped menus
type Trainer struct {
	config TrainerConfig
}

// NewTrainer creates a trainer with default configuration
func NewTrainer() *Trainer {
	return NewTrainerWithConfig(DefaultTrainerConfig())
}

// NewTrainerWithConfig creates a trainer with custom configuration
func NewTrainerWithConfig(config TrainerConfig) *Trainer {
	return &Trainer{config: config}
}

// Config returns the trainer configuration
func (t *Trainer) Config() TrainerConfig {
	return t.config
}

// Fit trains a logistic scorer. Weights start at zero and every epoch uses
// the full batch, so equal input gives an equal model.
func (t *Trainer) Fit(menus []TrainingMenu) (*AffinityModel, error) {
	m := &AffinityModel{
		Dim:            FeatureDim,
		Weights:        make([]float64, FeatureDim),
		NeighborRadius: t.config.NeighborRadius,
		analyzer:       layout.NewAnalyzerWithConfig(t.config.Layout),
	}

	var xs [][]float64
	var ys []float64
	for _, menu := range menus {
		tokens, labels := menu.tokens()
		if len(tokens) == 0 {
			continue
		}
		xs = append(xs, m.features(tokens)...)
		ys = append(ys, labels...)
	}
	if len(xs) == 0 {
		return nil, ErrNoTrainingData
	}

	n := float64(len(xs))
	grad := make([]float64, FeatureDim)
	for epoch := 0; epoch < t.config.Epochs; epoch++ {
		for k := range grad {
			grad[k] = 0
		}
		gradBias := 0.0
		for i, f := range xs {
			diff := m.predict(f) - ys[i]
			for k := range grad {
				grad[k] += diff * f[k]
			}
			gradBias += diff
		}
		for k := range m.Weights {
			m.Weights[k] -= t.config.LearningRate * grad[k] / n
		}
		m.Bias -= t.config.LearningRate * gradBias / n
	}

	loss, correct := 0.0, 0
	for i, f := range xs {
		p := m.predict(f)
		p = math.Min(math.Max(p, 1e-12), 1-1e-12)
		loss -= ys[i]*math.Log(p) + (1-ys[i])*math.Log(1-p)
		if (p > 0.5) == (ys[i] == 1) {
			correct++
		}
	}
	m.Stats = ModelStats{
		Menus:    len(menus),
		Samples:  len(xs),
		Epochs:   t.config.Epochs,
		Loss:     loss / n,
		Accuracy: float64(correct) / n,
	}
	return m, nil
}

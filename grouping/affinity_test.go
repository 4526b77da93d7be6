package grouping

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/thierryx96/cellar-ai/model"
)

// constantModel scores every token sigmoid(bias)
func constantModel(bias float64) *AffinityModel {
	return &AffinityModel{
		Dim:            FeatureDim,
		Weights:        make([]float64, FeatureDim),
		Bias:           bias,
		NeighborRadius: 300,
	}
}

func trainingMenus() []TrainingMenu {
	return []TrainingMenu{
		{
			Groups: [][]model.Token{
				{tok("Merlot", 20, 100, model.TagVarietalRed), tok("2018", 150, 100, model.TagVintage), tok("$45", 300, 100, model.TagPrice)},
				{tok("Riesling", 20, 140, model.TagVarietalWhite), tok("2020", 150, 140, model.TagVintage), tok("$38", 300, 140, model.TagPrice)},
			},
			Noise: []model.Token{tok("Corkage", 900, 900), tok("Service", 1400, 1200)},
		},
		{
			Groups: [][]model.Token{
				{tok("Shiraz", 40, 300, model.TagVarietalRed), tok("Barossa", 200, 300, model.TagRegion), tok("$60", 380, 300, model.TagPrice)},
			},
			Noise: []model.Token{tok("Thank", 1000, 20), tok("you", 1100, 20)},
		},
	}
}

func TestAssembler_NotFitted(t *testing.T) {
	tokens := []model.Token{tok("Merlot", 10, 40), tok("$45", 120, 50, model.TagPrice)}

	for name, a := range map[string]*Assembler{
		"nil model":     NewAssembler(nil),
		"empty model":   NewAssembler(&AffinityModel{}),
		"wrong weights": NewAssembler(&AffinityModel{Dim: FeatureDim, Weights: []float64{1}}),
	} {
		result, err := a.Group(tokens)
		if !errors.Is(err, ErrModelNotReady) {
			t.Errorf("%s: Expected ErrModelNotReady, got %v", name, err)
		}
		if result != nil {
			t.Errorf("%s: Expected no result, got %+v", name, result)
		}
	}
}

func TestAssembler_PriceAnchored(t *testing.T) {
	tokens := []model.Token{
		tok("Merlot", 10, 40),
		tok("2018", 60, 40, model.TagVintage),
		tok("$45", 120, 50, model.TagPrice),
		tok("note", 10, 60),
		tok("Shiraz", 10, 400),
		tok("$30", 120, 420, model.TagPrice),
		tok("$99", 900, 900, model.TagPrice),
	}

	result, err := NewAssembler(constantModel(5)).Group(tokens)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	want := [][]string{
		{"Merlot", "2018", "$45"},
		{"Shiraz", "$30"},
	}
	if got := groupTexts(result); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected groups %v, got %v", want, got)
	}
	if got := noiseTexts(result); !sameStrings(got, []string{"note", "$99"}) {
		t.Errorf("Expected noise [note $99], got %v", got)
	}
}

func TestAssembler_FirstAnchorWins(t *testing.T) {
	tokens := []model.Token{
		tok("Merlot", 50, 10),
		tok("$12", 100, 50, model.TagPrice),
		tok("$48", 150, 60, model.TagPrice),
	}

	result, err := NewAssembler(constantModel(5)).Group(tokens)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// $12 absorbs Merlot; $48 then finds only the used $12 above it
	if got := groupTexts(result); len(got) != 1 || !sameStrings(got[0], []string{"Merlot", "$12"}) {
		t.Errorf("Expected group [Merlot $12], got %v", got)
	}
	if got := noiseTexts(result); !sameStrings(got, []string{"$48"}) {
		t.Errorf("Expected noise [$48], got %v", got)
	}
}

func TestAssembler_BelowThresholdIsNoise(t *testing.T) {
	tokens := []model.Token{
		tok("Merlot", 10, 40),
		tok("$45", 120, 50, model.TagPrice),
	}

	result, err := NewAssembler(constantModel(-5)).Group(tokens)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(result.Groups) != 0 || len(result.Noise) != 2 {
		t.Errorf("Expected all noise, got %v noise %v", groupTexts(result), noiseTexts(result))
	}
}

func TestAssembler_Empty(t *testing.T) {
	result, err := NewAssembler(constantModel(5)).Group(nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if result.TokenCount() != 0 {
		t.Errorf("Expected empty result, got %d tokens", result.TokenCount())
	}
}

func TestAssembler_FitInstallsModel(t *testing.T) {
	a := NewAssembler(nil)
	if err := a.Fit(trainingMenus()); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !a.Model().Ready() {
		t.Fatal("Expected fitted model")
	}

	result, err := a.Group(trainingMenus()[0].Groups[0])
	if err != nil {
		t.Fatalf("Expected no error after fit, got %v", err)
	}
	if result.TokenCount() != 3 {
		t.Errorf("Expected 3 tokens in result, got %d", result.TokenCount())
	}
	if a.Name() != "affinity" {
		t.Errorf("Expected name affinity, got %s", a.Name())
	}
}

func TestTrainer_NoData(t *testing.T) {
	if _, err := NewTrainer().Fit(nil); !errors.Is(err, ErrNoTrainingData) {
		t.Errorf("Expected ErrNoTrainingData, got %v", err)
	}
	if _, err := NewTrainer().Fit([]TrainingMenu{{}}); !errors.Is(err, ErrNoTrainingData) {
		t.Errorf("Expected ErrNoTrainingData for empty menus, got %v", err)
	}
}

func TestTrainer_SeparatesListingsFromNoise(t *testing.T) {
	menus := trainingMenus()
	m, err := NewTrainer().Fit(menus)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if m.Stats.Samples != 13 {
		t.Errorf("Expected 13 samples, got %d", m.Stats.Samples)
	}

	tokens, labels := menus[0].tokens()
	scores, err := m.Score(tokens)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var grouped, noise float64
	var ng, nn int
	for i, s := range scores {
		if s <= 0 || s >= 1 {
			t.Errorf("Expected score in (0,1), got %v", s)
		}
		if labels[i] == 1 {
			grouped += s
			ng++
		} else {
			noise += s
			nn++
		}
	}
	if grouped/float64(ng) <= noise/float64(nn) {
		t.Errorf("Expected listing tokens to outscore noise, got %v vs %v", grouped/float64(ng), noise/float64(nn))
	}
}

func TestTrainer_Deterministic(t *testing.T) {
	first, err := NewTrainer().Fit(trainingMenus())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	second, err := NewTrainer().Fit(trainingMenus())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !reflect.DeepEqual(first.Weights, second.Weights) || first.Bias != second.Bias {
		t.Errorf("Expected identical models, got %v/%v and %v/%v", first.Weights, first.Bias, second.Weights, second.Bias)
	}
}

func TestAffinityModel_SaveLoad(t *testing.T) {
	m, err := NewTrainer().Fit(trainingMenus())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var buf bytes.Buffer
	if err := m.SaveModel(&buf); err != nil {
		t.Fatalf("Expected no error saving, got %v", err)
	}

	loaded, err := LoadModel(&buf)
	if err != nil {
		t.Fatalf("Expected no error loading, got %v", err)
	}
	if !reflect.DeepEqual(loaded.Weights, m.Weights) || loaded.Bias != m.Bias {
		t.Errorf("Expected loaded weights to match")
	}
	if loaded.Stats != m.Stats {
		t.Errorf("Expected stats %+v, got %+v", m.Stats, loaded.Stats)
	}
}

func TestAffinityModel_LoadWrongShape(t *testing.T) {
	_, err := LoadModel(strings.NewReader(`{"dim":3,"weights":[1,2,3],"bias":0}`))
	if !errors.Is(err, ErrModelShape) {
		t.Errorf("Expected ErrModelShape, got %v", err)
	}
}

func TestAffinityModel_SaveUnfitted(t *testing.T) {
	var buf bytes.Buffer
	if err := (&AffinityModel{}).SaveModel(&buf); !errors.Is(err, ErrModelNotReady) {
		t.Errorf("Expected ErrModelNotReady, got %v", err)
	}
}

func TestSmoothFeatures(t *testing.T) {
	tokens := []model.Token{
		tok("a", 0, 0),
		tok("b", 150, 0),
		tok("c", -250, 250),
	}
	features := [][]float64{
		{1, 0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0, 0},
		{0, 9, 0, 0, 0, 0, 0, 0},
	}

	smoothed := smoothFeatures(tokens, features, 300)

	// a and b are 150px apart (weight 0.5); c is 353px from a (weight 0)
	if !approxEqual(smoothed[0][0], 1/1.5) {
		t.Errorf("Expected a[0] = %v, got %v", 1/1.5, smoothed[0][0])
	}
	if !approxEqual(smoothed[0][1], 0) {
		t.Errorf("Expected a[1] = 0, got %v", smoothed[0][1])
	}
	if !approxEqual(smoothed[1][0], 0.5/1.5) {
		t.Errorf("Expected b[0] = %v, got %v", 0.5/1.5, smoothed[1][0])
	}
	if features[0][0] != 1 {
		t.Error("Expected input features to be left unchanged")
	}
}

func TestTokenFeatures(t *testing.T) {
	tokens := []model.Token{
		tok("Merlot", 10, 100, model.TagVarietalRed),
		tok("$45", 110, 300, model.TagPrice),
	}
	features := tokenFeatures(tokens, layoutOf(tokens))

	if features[0][0] != 0 || features[1][0] != 1 {
		t.Errorf("Expected x scaled to [0,1], got %v and %v", features[0][0], features[1][0])
	}
	if features[0][1] != 0 || features[1][1] != 1 {
		t.Errorf("Expected y scaled to [0,1], got %v and %v", features[0][1], features[1][1])
	}
	if features[0][2] != 1 || !approxEqual(features[1][2], 0.5) {
		t.Errorf("Expected length ratios 1 and 0.5, got %v and %v", features[0][2], features[1][2])
	}
	if features[0][5] != 1 || features[0][4] != 0 {
		t.Errorf("Expected red flag only for Merlot, got %v", features[0])
	}
	if features[1][4] != 1 {
		t.Errorf("Expected price flag for $45, got %v", features[1])
	}
}

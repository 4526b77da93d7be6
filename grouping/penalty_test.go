package grouping

import (
	"testing"

	"github.com/thierryx96/cellar-ai/model"
)

func TestPenaltyModel_Table(t *testing.T) {
	m := NewPenaltyModel()

	tests := []struct {
		name string
		a, b model.Token
		want float64
	}{
		{"two vintages", tok("2018", 0, 0, model.TagVintage), tok("2019", 0, 0, model.TagVintage), 1000},
		{"two reds", tok("Merlot", 0, 0, model.TagVarietalRed), tok("Malbec", 0, 0, model.TagVarietalRed), 1000},
		{"two whites", tok("Riesling", 0, 0, model.TagVarietalWhite), tok("Chardonnay", 0, 0, model.TagVarietalWhite), 1000},
		{"two others", tok("GSM", 0, 0, model.TagVarietalOther), tok("SSB", 0, 0, model.TagVarietalOther), 1000},
		{"red and white", tok("Merlot", 0, 0, model.TagVarietalRed), tok("Riesling", 0, 0, model.TagVarietalWhite), 1000},
		{"white and red", tok("Riesling", 0, 0, model.TagVarietalWhite), tok("Merlot", 0, 0, model.TagVarietalRed), 1000},
		{"two prices", tok("$12", 0, 0, model.TagPrice), tok("$48", 0, 0, model.TagPrice), 200},
		{"two headers", tok("Glass", 0, 0), tok(" bottle ", 0, 0), 2000},
		{"header and plain", tok("WINE", 0, 0), tok("Estate", 0, 0), 0},
		{"vintage and price", tok("2018", 0, 0, model.TagVintage), tok("$45", 0, 0, model.TagPrice), 0},
		{"red and other", tok("Merlot", 0, 0, model.TagVarietalRed), tok("GSM", 0, 0, model.TagVarietalOther), 0},
		{"untagged", tok("Estate", 0, 0), tok("Reserve", 0, 0), 0},
		{"header prices summed", tok("PRICE", 0, 0, model.TagPrice), tok("price", 0, 0, model.TagPrice), 2200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.Penalty(tt.a, tt.b); got != tt.want {
				t.Errorf("Expected penalty %v, got %v", tt.want, got)
			}
			if got := m.Penalty(tt.b, tt.a); got != tt.want {
				t.Errorf("Expected symmetric penalty %v, got %v", tt.want, got)
			}
		})
	}
}

func TestPenaltyModel_HardConflict(t *testing.T) {
	m := NewPenaltyModel()

	if !m.IsHardConflict(tok("2018", 0, 0, model.TagVintage), tok("2019", 0, 0, model.TagVintage)) {
		t.Error("Expected two vintages to be a hard conflict")
	}
	if m.IsHardConflict(tok("$12", 0, 0, model.TagPrice), tok("$48", 0, 0, model.TagPrice)) {
		t.Error("Expected two prices to be a soft conflict")
	}
}

func TestPenaltyModel_CustomHeaders(t *testing.T) {
	config := DefaultPenaltyConfig()
	config.Headers = []string{"Carte des vins"}
	m := NewPenaltyModelWithConfig(config)

	if !m.IsHeader("CARTE DES VINS") {
		t.Error("Expected custom header to match case-insensitively")
	}
	if m.IsHeader("WINE") {
		t.Error("Expected default header to be replaced")
	}
}

package bom

import (
	"math"
	"testing"
)

// stubStock is a fixed quantity map implementing Stock
type stubStock map[string]float64

func (s stubStock) Lookup(productID string) (float64, string) {
	qty, ok := s[productID]
	if !ok {
		return 0, ""
	}
	return qty, "KG"
}

func TestKindValid(t *testing.T) {
	valid := []Kind{KindBattery, KindPositivePlate, KindNegativePlate, KindInverter}
	for _, k := range valid {
		if !k.Valid() {
			t.Errorf("Expected %q to be valid", k)
		}
	}
	if Kind("charger").Valid() {
		t.Error("Expected unknown kind to be invalid")
	}
	if Kind("").Valid() {
		t.Error("Expected empty kind to be invalid")
	}
}

func TestNormalize(t *testing.T) {
	entries := []Entry{
		{ProductID: "RM-001", Name: "", Qty: 2},
		{ProductID: "RM-002", Name: "Acid", Qty: -1},
		{ProductID: "RM-003", Name: "Separator", Qty: math.NaN()},
		{ProductID: "RM-004", Name: "Container", Qty: math.Inf(1)},
	}

	out := Normalize(entries)

	if out[0].Name != "Unknown Item" {
		t.Errorf("Expected blank name to normalize to Unknown Item, got %q", out[0].Name)
	}
	for i := 1; i < len(out); i++ {
		if out[i].Qty != 0 {
			t.Errorf("Expected entry %d qty to normalize to 0, got %v", i, out[i].Qty)
		}
	}

	// Input must stay untouched
	if entries[0].Name != "" {
		t.Error("Normalize mutated its input")
	}
}

func TestMaxAchievable(t *testing.T) {
	tests := []struct {
		name    string
		entries []Entry
		stock   stubStock
		want    int
	}{
		{
			name: "binding_constraint",
			entries: []Entry{
				{ProductID: "RM-001", Qty: 2},
				{ProductID: "RM-003", Qty: 1},
			},
			stock: stubStock{"RM-001": 10, "RM-003": 4},
			want:  4,
		},
		{
			name: "zero_rate_unconstrained",
			entries: []Entry{
				{ProductID: "RM-001", Qty: 2},
				{ProductID: "RM-003", Qty: 0},
			},
			stock: stubStock{"RM-001": 10},
			want:  5,
		},
		{
			name:    "empty_bom",
			entries: nil,
			stock:   stubStock{},
			want:    0,
		},
		{
			name: "all_zero_rates",
			entries: []Entry{
				{ProductID: "RM-001", Qty: 0},
			},
			stock: stubStock{"RM-001": 10},
			want:  0,
		},
		{
			name: "missing_material_is_zero_available",
			entries: []Entry{
				{ProductID: "RM-001", Qty: 2},
				{ProductID: "RM-099", Qty: 1},
			},
			stock: stubStock{"RM-001": 10},
			want:  0,
		},
		{
			name: "fractional_rate_exact",
			entries: []Entry{
				{ProductID: "RM-001", Qty: 0.1},
			},
			stock: stubStock{"RM-001": 0.3},
			want:  3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MaxAchievable(tt.entries, tt.stock)
			if got != tt.want {
				t.Errorf("MaxAchievable() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	entries := []Entry{
		{ProductID: "RM-001", Name: "Lead", Qty: 2},
		{ProductID: "RM-404", Name: "Phantom", Qty: 1},
		{ProductID: "", Name: "Nameless", Qty: 1},
	}
	stock := stubStock{"RM-001": 10}

	warnings := Validate(entries, stock)
	if len(warnings) != 2 {
		t.Fatalf("Expected 2 warnings, got %d: %v", len(warnings), warnings)
	}
}

func TestFloorDiv(t *testing.T) {
	tests := []struct {
		name      string
		available float64
		rate      float64
		want      int
	}{
		{"exact", 10, 2, 5},
		{"rounds_down", 9, 2, 4},
		{"float_noise", 0.3, 0.1, 3},
		{"zero_rate", 10, 0, 0},
		{"negative_rate", 10, -1, 0},
		{"zero_available", 0, 3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FloorDiv(tt.available, tt.rate)
			if got != tt.want {
				t.Errorf("FloorDiv(%v, %v) = %d, want %d", tt.available, tt.rate, got, tt.want)
			}
		})
	}
}

func TestFind(t *testing.T) {
	entries := []Entry{
		{ProductID: "RM-001", Name: "Lead", Qty: 2},
	}

	if e, ok := Find(entries, "RM-001"); !ok || e.Name != "Lead" {
		t.Errorf("Expected to find RM-001, got %+v ok=%v", e, ok)
	}
	if _, ok := Find(entries, "RM-002"); ok {
		t.Error("Expected RM-002 to be absent")
	}
}

package order

import (
	"reflect"
	"testing"

	"github.com/your-org/manufacturing-backend/internal/domain/bom"
	"github.com/your-org/manufacturing-backend/internal/domain/inventory"
)

func completedOrder(predicted, actual int, used map[string]float64) *inventory.Order {
	return &inventory.Order{
		Seq:             1,
		Type:            inventory.OrderTypeProduction,
		BOMKind:         bom.KindBattery,
		MaterialsUsed:   used,
		Status:          inventory.OrderStatusCompleted,
		PredictedOutput: predicted,
		ActualOutput:    &actual,
	}
}

func TestDetect(t *testing.T) {
	entries := []bom.Entry{
		{ProductID: "RM-001", Name: "Lead", Qty: 2},
		{ProductID: "RM-003", Name: "Sulphuric Acid", Qty: 1},
	}

	tests := []struct {
		name      string
		predicted int
		actual    int
		used      map[string]float64
		want      []string
	}{
		{
			name:      "clean_completion",
			predicted: 2,
			actual:    2,
			used:      map[string]float64{"RM-001": 4, "RM-003": 2},
			want:      nil,
		},
		{
			name:      "short_yield_flags_everything",
			predicted: 2,
			actual:    1,
			used:      map[string]float64{"RM-001": 4, "RM-003": 2},
			want: []string{
				"Output mismatch: Predicted 2, Actual 1",
				"Lead: used 4, expected 2 (for 1 units)",
				"Sulphuric Acid: used 2, expected 1 (for 1 units)",
			},
		},
		{
			name:      "overconsumption_only",
			predicted: 2,
			actual:    2,
			used:      map[string]float64{"RM-001": 5, "RM-003": 2},
			want: []string{
				"Lead: used 5, expected 4 (for 2 units)",
			},
		},
		{
			name:      "zero_usage_reported_missing",
			predicted: 1,
			actual:    1,
			used:      map[string]float64{"RM-001": 2, "RM-003": 0},
			want: []string{
				"Sulphuric Acid is missing or 0",
			},
		},
		{
			name:      "fractional_rate_is_exact",
			predicted: 3,
			actual:    3,
			used:      map[string]float64{"RM-001": 6, "RM-003": 3},
			want:      nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := completedOrder(tt.predicted, tt.actual, tt.used)
			got := Detect(o, entries)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Detect() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDetectFractionalRates(t *testing.T) {
	entries := []bom.Entry{
		{ProductID: "RM-002", Name: "Lead Oxide", Qty: 0.8},
	}

	// 0.8 * 3 must compare equal to 2.4 despite float representation
	o := completedOrder(3, 3, map[string]float64{"RM-002": 2.4})
	if got := Detect(o, entries); len(got) != 0 {
		t.Errorf("Expected no discrepancies, got %v", got)
	}

	o = completedOrder(3, 3, map[string]float64{"RM-002": 2.5})
	want := []string{"Lead Oxide: used 2.5, expected 2.4 (for 3 units)"}
	if got := Detect(o, entries); !reflect.DeepEqual(got, want) {
		t.Errorf("Detect() = %v, want %v", got, want)
	}
}

func TestDetectUnknownMaterials(t *testing.T) {
	entries := []bom.Entry{
		{ProductID: "RM-001", Name: "Lead", Qty: 2},
	}

	// Unknown ids trail in sorted order; only the zero check applies to them
	o := completedOrder(1, 1, map[string]float64{
		"RM-001": 2,
		"RM-999": 0,
		"RM-500": 5,
	})

	want := []string{"RM-999 is missing or 0"}
	if got := Detect(o, entries); !reflect.DeepEqual(got, want) {
		t.Errorf("Detect() = %v, want %v", got, want)
	}
}

func TestDetectDoesNotMutateOrder(t *testing.T) {
	entries := []bom.Entry{
		{ProductID: "RM-001", Name: "Lead", Qty: 2},
	}
	o := completedOrder(2, 1, map[string]float64{"RM-001": 4})

	Detect(o, entries)
	if o.DiscrepancyMessages != nil {
		t.Error("Detect wrote messages onto the order")
	}
}

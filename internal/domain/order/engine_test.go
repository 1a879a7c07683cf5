package order

import (
	"errors"
	"strings"
	"testing"

	"github.com/your-org/manufacturing-backend/internal/domain/bom"
	"github.com/your-org/manufacturing-backend/internal/domain/inventory"
)

// productionDoc builds a document with a two-line battery BOM
// (Lead 2/unit, Sulphuric Acid 1/unit) over a small raw-material tier
func productionDoc(lead, acid float64) *inventory.Document {
	doc := inventory.SeedDocument()
	doc.BatteryBOM = []bom.Entry{
		{ProductID: "RM-001", Name: "Lead", Qty: 2},
		{ProductID: "RM-003", Name: "Sulphuric Acid", Qty: 1},
	}
	setQty(doc.L1Components, "RM-001", lead)
	setQty(doc.L1Components, "RM-003", acid)
	return doc
}

func setQty(tier inventory.Tier, productID string, qty float64) {
	for i := range tier {
		if tier[i].ProductID == productID {
			tier[i].Quantity = qty
			return
		}
	}
}

func TestPredictOutput(t *testing.T) {
	tests := []struct {
		name      string
		lead      float64
		acid      float64
		requested int
		materials map[string]float64
		want      int
	}{
		{
			name:      "requested_within_ceiling",
			lead:      10,
			acid:      4,
			requested: 2,
			materials: map[string]float64{"RM-001": 4, "RM-003": 2},
			want:      2,
		},
		{
			name:      "requested_capped_by_stock",
			lead:      10,
			acid:      4,
			requested: 100,
			materials: map[string]float64{"RM-001": 4, "RM-003": 2},
			want:      4, // min(10/2, 4/1)
		},
		{
			name:      "derived_from_materials",
			lead:      10,
			acid:      4,
			requested: 0,
			materials: map[string]float64{"RM-001": 4, "RM-003": 2},
			want:      2, // min(4/2, 2/1)
		},
		{
			name:      "derived_capped_by_stock",
			lead:      2,
			acid:      4,
			requested: 0,
			materials: map[string]float64{"RM-001": 8, "RM-003": 4},
			want:      1, // materials say 4, stock says 1
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := productionDoc(tt.lead, tt.acid)
			got := PredictOutput(doc, bom.KindBattery, tt.requested, tt.materials)
			if got != tt.want {
				t.Errorf("PredictOutput() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestStartDeductsStock(t *testing.T) {
	doc := productionDoc(10, 4)

	o, err := Start(doc, StartRequest{
		Kind:            bom.KindBattery,
		Materials:       map[string]float64{"RM-001": 4, "RM-003": 2},
		RequestedOutput: 2,
	})
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	if o.Seq != 1 {
		t.Errorf("Order seq = %d, want 1", o.Seq)
	}
	if o.Type != inventory.OrderTypeProduction {
		t.Errorf("Order type = %s, want production", o.Type)
	}
	if o.Status != inventory.OrderStatusStarted {
		t.Errorf("Order status = %s, want started", o.Status)
	}
	if o.PredictedOutput != 2 {
		t.Errorf("Predicted output = %d, want 2", o.PredictedOutput)
	}

	if qty, _ := doc.L1Components.Lookup("RM-001"); qty != 6 {
		t.Errorf("Lead after start = %v, want 6", qty)
	}
	if qty, _ := doc.L1Components.Lookup("RM-003"); qty != 2 {
		t.Errorf("Acid after start = %v, want 2", qty)
	}

	if len(doc.Logs) != 1 {
		t.Fatalf("Expected 1 log entry, got %d", len(doc.Logs))
	}
	if !strings.Contains(doc.Logs[0].Action, "Production started (Order #1)") {
		t.Errorf("Unexpected log line: %q", doc.Logs[0].Action)
	}
}

func TestStartValidation(t *testing.T) {
	tests := []struct {
		name string
		req  StartRequest
	}{
		{
			name: "unknown_kind",
			req: StartRequest{
				Kind:      bom.Kind("charger"),
				Materials: map[string]float64{"RM-001": 4},
			},
		},
		{
			name: "missing_material",
			req: StartRequest{
				Kind:      bom.KindBattery,
				Materials: map[string]float64{"RM-001": 4},
			},
		},
		{
			name: "zero_material",
			req: StartRequest{
				Kind:      bom.KindBattery,
				Materials: map[string]float64{"RM-001": 4, "RM-003": 0},
			},
		},
		{
			name: "negative_material",
			req: StartRequest{
				Kind:      bom.KindBattery,
				Materials: map[string]float64{"RM-001": 4, "RM-003": -2},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := productionDoc(10, 4)

			_, err := Start(doc, tt.req)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Expected ValidationError, got %v", err)
			}

			// Validation failures mutate nothing, not even the log
			if qty, _ := doc.L1Components.Lookup("RM-001"); qty != 10 {
				t.Errorf("Stock changed on validation failure: %v", qty)
			}
			if len(doc.ProductionOrders) != 0 || len(doc.Logs) != 0 {
				t.Error("Orders or logs changed on validation failure")
			}
		})
	}
}

func TestStartInsufficientStock(t *testing.T) {
	doc := productionDoc(10, 4)

	_, err := Start(doc, StartRequest{
		Kind:            bom.KindBattery,
		Materials:       map[string]float64{"RM-001": 100, "RM-003": 2},
		RequestedOutput: 2,
	})

	var insufficient *InsufficientStockError
	if !errors.As(err, &insufficient) {
		t.Fatalf("Expected InsufficientStockError, got %v", err)
	}
	if len(insufficient.Shortfalls) != 1 {
		t.Fatalf("Expected 1 shortfall, got %d", len(insufficient.Shortfalls))
	}
	s := insufficient.Shortfalls[0]
	if s.ProductID != "RM-001" || s.Needed != 100 || s.Available != 10 {
		t.Errorf("Unexpected shortfall: %+v", s)
	}

	// The failure leaves exactly one log entry and nothing else
	if qty, _ := doc.L1Components.Lookup("RM-001"); qty != 10 {
		t.Errorf("Stock changed on insufficiency: %v", qty)
	}
	if len(doc.ProductionOrders) != 0 {
		t.Error("Order was created despite insufficiency")
	}
	if len(doc.Logs) != 1 {
		t.Fatalf("Expected 1 failure log entry, got %d", len(doc.Logs))
	}
	if !strings.Contains(doc.Logs[0].Action, "Production start failed") {
		t.Errorf("Unexpected log line: %q", doc.Logs[0].Action)
	}
}

func TestStartSequencesPerBook(t *testing.T) {
	doc := productionDoc(100, 100)
	setQty(doc.L2Components, "CMP-003", 10)

	// Two production starts, then one assembly start
	for i := 0; i < 2; i++ {
		if _, err := Start(doc, StartRequest{
			Kind:            bom.KindBattery,
			Materials:       map[string]float64{"RM-001": 4, "RM-003": 2},
			RequestedOutput: 2,
		}); err != nil {
			t.Fatalf("Production start %d failed: %v", i+1, err)
		}
	}

	asm, err := Start(doc, StartRequest{
		Kind:            bom.KindInverter,
		Materials:       map[string]float64{"CMP-003": 2, "CMP-004": 2},
		RequestedOutput: 2,
	})
	if err != nil {
		t.Fatalf("Assembly start failed: %v", err)
	}

	// The assembly book numbers independently of the production book
	if asm.Seq != 1 {
		t.Errorf("Assembly order seq = %d, want 1", asm.Seq)
	}
	if asm.Type != inventory.OrderTypeAssembly {
		t.Errorf("Assembly order type = %s", asm.Type)
	}
	if doc.ProductionOrders[1].Seq != 2 {
		t.Errorf("Second production order seq = %d, want 2", doc.ProductionOrders[1].Seq)
	}
}

func TestCompleteCreditsBatteries(t *testing.T) {
	doc := productionDoc(10, 4)
	o, err := Start(doc, StartRequest{
		Kind:            bom.KindBattery,
		Materials:       map[string]float64{"RM-001": 4, "RM-003": 2},
		RequestedOutput: 2,
	})
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	done, err := Complete(doc, CompleteRequest{
		Type:         inventory.OrderTypeProduction,
		Seq:          o.Seq,
		ActualOutput: 2,
	})
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}

	if done.Status != inventory.OrderStatusCompleted {
		t.Errorf("Status = %s, want completed", done.Status)
	}
	if done.ActualOutput == nil || *done.ActualOutput != 2 {
		t.Error("Actual output not recorded")
	}
	if len(done.DiscrepancyMessages) != 0 {
		t.Errorf("Clean completion produced discrepancies: %v", done.DiscrepancyMessages)
	}

	if qty, _ := doc.L2Components.Lookup(inventory.ProductIDBattery); qty != 2 {
		t.Errorf("Battery component stock = %v, want 2", qty)
	}
	if doc.Batteries != 2 {
		t.Errorf("Batteries counter = %d, want 2", doc.Batteries)
	}
}

func TestCompleteCreditsInverters(t *testing.T) {
	doc := inventory.SeedDocument()
	setQty(doc.L2Components, "CMP-003", 10)

	o, err := Start(doc, StartRequest{
		Kind:            bom.KindInverter,
		Materials:       map[string]float64{"CMP-003": 3, "CMP-004": 3},
		RequestedOutput: 3,
	})
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	if _, err := Complete(doc, CompleteRequest{
		Type:         inventory.OrderTypeAssembly,
		Seq:          o.Seq,
		ActualOutput: 3,
	}); err != nil {
		t.Fatalf("Complete failed: %v", err)
	}

	if doc.FinalProducts != 3 {
		t.Errorf("FinalProducts = %d, want 3", doc.FinalProducts)
	}
	if doc.Inverters != 3 {
		t.Errorf("Inverters = %d, want 3", doc.Inverters)
	}
}

func TestCompleteRejectsSecondCompletion(t *testing.T) {
	doc := productionDoc(10, 4)
	o, _ := Start(doc, StartRequest{
		Kind:            bom.KindBattery,
		Materials:       map[string]float64{"RM-001": 4, "RM-003": 2},
		RequestedOutput: 2,
	})

	if _, err := Complete(doc, CompleteRequest{Type: inventory.OrderTypeProduction, Seq: o.Seq, ActualOutput: 2}); err != nil {
		t.Fatalf("First complete failed: %v", err)
	}

	batteriesBefore := doc.Batteries
	_, err := Complete(doc, CompleteRequest{Type: inventory.OrderTypeProduction, Seq: o.Seq, ActualOutput: 2})
	var done *AlreadyCompletedError
	if !errors.As(err, &done) {
		t.Fatalf("Expected AlreadyCompletedError, got %v", err)
	}
	if doc.Batteries != batteriesBefore {
		t.Error("Second completion credited stock again")
	}
}

func TestCompleteValidation(t *testing.T) {
	doc := productionDoc(10, 4)
	o, _ := Start(doc, StartRequest{
		Kind:            bom.KindBattery,
		Materials:       map[string]float64{"RM-001": 4, "RM-003": 2},
		RequestedOutput: 2,
	})

	if _, err := Complete(doc, CompleteRequest{Type: inventory.OrderTypeProduction, Seq: 99, ActualOutput: 1}); !errors.Is(err, ErrOrderNotFound) {
		t.Errorf("Expected ErrOrderNotFound, got %v", err)
	}

	var verr *ValidationError
	if _, err := Complete(doc, CompleteRequest{Type: inventory.OrderTypeProduction, Seq: o.Seq, ActualOutput: -1}); !errors.As(err, &verr) {
		t.Errorf("Expected ValidationError for negative output, got %v", err)
	}
	if _, err := Complete(doc, CompleteRequest{Type: inventory.OrderTypeProduction, Seq: o.Seq, ActualOutput: 3}); !errors.As(err, &verr) {
		t.Errorf("Expected ValidationError for output above predicted, got %v", err)
	}

	if doc.ProductionOrders[0].IsCompleted() {
		t.Error("Rejected completion still flipped the order")
	}
}

func TestCompleteLogsDiscrepancy(t *testing.T) {
	doc := productionDoc(10, 4)
	o, _ := Start(doc, StartRequest{
		Kind:            bom.KindBattery,
		Materials:       map[string]float64{"RM-001": 4, "RM-003": 2},
		RequestedOutput: 2,
	})

	done, err := Complete(doc, CompleteRequest{Type: inventory.OrderTypeProduction, Seq: o.Seq, ActualOutput: 1})
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}

	if len(done.DiscrepancyMessages) == 0 {
		t.Fatal("Expected discrepancy messages on short yield")
	}

	var discrepancyLogs int
	for _, entry := range doc.Logs {
		if entry.LogType == inventory.LogTypeDiscrepancy {
			discrepancyLogs++
			if entry.Remarks == "" {
				t.Error("Discrepancy log has empty remarks")
			}
		}
	}
	if discrepancyLogs != 1 {
		t.Errorf("Expected 1 discrepancy log entry, got %d", discrepancyLogs)
	}
}

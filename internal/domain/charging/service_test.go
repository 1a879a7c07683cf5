package charging

import (
	"errors"
	"testing"
	"time"

	"github.com/your-org/manufacturing-backend/internal/domain/inventory"
)

func chargingDoc(finalProducts int) *inventory.Document {
	doc := inventory.SeedDocument()
	doc.FinalProducts = finalProducts
	return doc
}

func assign(t *testing.T, doc *inventory.Document, circuitNo, count int) *Result {
	t.Helper()
	r, err := Apply(doc, circuitNo, EditRequest{
		CircuitStatus: inventory.CircuitStatusChargeable,
		Status:        inventory.BatchStatusRunning,
		BatteryCount:  count,
	})
	if err != nil {
		t.Fatalf("Assign to circuit %d failed: %v", circuitNo, err)
	}
	return r
}

func TestApplyUnknownCircuit(t *testing.T) {
	doc := chargingDoc(10)
	if _, err := Apply(doc, 99, EditRequest{CircuitStatus: inventory.CircuitStatusChargeable, Status: inventory.BatchStatusRunning}); !errors.Is(err, ErrCircuitNotFound) {
		t.Errorf("Expected ErrCircuitNotFound, got %v", err)
	}
}

func TestUpdateClampsToCapacity(t *testing.T) {
	doc := chargingDoc(100)

	r := assign(t, doc, 1, 40)
	if r.Circuit.BatteryCount != 25 {
		t.Errorf("Count clamped to %d, want capacity 25", r.Circuit.BatteryCount)
	}

	r = assign(t, doc, 5, 40)
	if r.Circuit.BatteryCount != 20 {
		t.Errorf("Count on slot 5 clamped to %d, want capacity 20", r.Circuit.BatteryCount)
	}
}

func TestUpdateClampsToUnassignedPool(t *testing.T) {
	doc := chargingDoc(30)

	// Circuit 1 takes 25, leaving 5 unassigned in the pool of 30
	assign(t, doc, 1, 25)

	r := assign(t, doc, 2, 25)
	if r.Circuit.BatteryCount != 5 {
		t.Errorf("Count = %d, want clamp to remaining 5", r.Circuit.BatteryCount)
	}

	// Re-editing circuit 1 excludes its own previous claim from the sum
	r = assign(t, doc, 1, 25)
	if r.Circuit.BatteryCount != 25 {
		t.Errorf("Re-edit of circuit 1 = %d, want 25", r.Circuit.BatteryCount)
	}
}

func TestUpdateSetsPutInDateOnce(t *testing.T) {
	doc := chargingDoc(50)

	r := assign(t, doc, 1, 10)
	if r.Circuit.PutInDate == nil {
		t.Fatal("PutInDate not set when batch starts running")
	}
	first := *r.Circuit.PutInDate

	r = assign(t, doc, 1, 15)
	if r.Circuit.PutInDate == nil || !r.Circuit.PutInDate.Equal(first) {
		t.Error("PutInDate changed on a later edit")
	}
}

func TestUpdateValidation(t *testing.T) {
	doc := chargingDoc(50)

	var verr *ValidationError
	_, err := Apply(doc, 1, EditRequest{
		CircuitStatus: inventory.CircuitStatusChargeable,
		Status:        inventory.BatchStatusRunning,
		BatteryCount:  -1,
	})
	if !errors.As(err, &verr) {
		t.Errorf("Expected ValidationError for negative count, got %v", err)
	}

	_, err = Apply(doc, 1, EditRequest{
		CircuitStatus: inventory.CircuitStatusChargeable,
		Status:        inventory.BatchStatus("paused"),
		BatteryCount:  5,
	})
	if !errors.As(err, &verr) {
		t.Errorf("Expected ValidationError for unknown batch status, got %v", err)
	}
}

func TestCompleteBatchMintsOrderAndResets(t *testing.T) {
	doc := chargingDoc(50)
	assign(t, doc, 1, 20)

	end := time.Now().UTC().Add(8 * time.Hour)
	r, err := Apply(doc, 1, EditRequest{
		CircuitStatus: inventory.CircuitStatusChargeable,
		Status:        inventory.BatchStatusDone,
		EndTime:       &end,
	})
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}

	if r.ChargingOrder == nil {
		t.Fatal("No charging order minted")
	}
	if r.ChargingOrder.OrderID != "ORD-001" {
		t.Errorf("Order id = %s, want ORD-001", r.ChargingOrder.OrderID)
	}
	if r.ChargingOrder.Quantity != 20 {
		t.Errorf("Order quantity = %d, want 20", r.ChargingOrder.Quantity)
	}
	if r.ChargingOrder.DurationHours <= 0 {
		t.Errorf("Duration = %v, want > 0", r.ChargingOrder.DurationHours)
	}

	// Charged batteries leave the pool and the slot resets
	if doc.FinalProducts != 30 {
		t.Errorf("FinalProducts = %d, want 30", doc.FinalProducts)
	}
	c := doc.Circuit(1)
	if c.CircuitStatus != inventory.CircuitStatusIdle || c.Status != inventory.BatchStatusEmpty || c.BatteryCount != 0 || c.PutInDate != nil {
		t.Errorf("Circuit not reset after completion: %+v", c)
	}

	// A second completed batch gets the next sequential id
	assign(t, doc, 2, 10)
	end2 := end.Add(4 * time.Hour)
	r, err = Apply(doc, 2, EditRequest{
		CircuitStatus: inventory.CircuitStatusChargeable,
		Status:        inventory.BatchStatusDone,
		EndTime:       &end2,
	})
	if err != nil {
		t.Fatalf("Second complete failed: %v", err)
	}
	if r.ChargingOrder.OrderID != "ORD-002" {
		t.Errorf("Second order id = %s, want ORD-002", r.ChargingOrder.OrderID)
	}
}

func TestCompleteBatchRequiresEndTime(t *testing.T) {
	doc := chargingDoc(50)
	assign(t, doc, 1, 20)

	var verr *ValidationError
	_, err := Apply(doc, 1, EditRequest{
		CircuitStatus: inventory.CircuitStatusChargeable,
		Status:        inventory.BatchStatusDone,
	})
	if !errors.As(err, &verr) {
		t.Fatalf("Expected ValidationError without end time, got %v", err)
	}
	if doc.FinalProducts != 50 {
		t.Errorf("Pool changed on rejected completion: %d", doc.FinalProducts)
	}
}

func TestCancelReturnsBatteries(t *testing.T) {
	doc := chargingDoc(50)
	assign(t, doc, 1, 25)

	before := doc.FinalProducts
	r, err := Apply(doc, 1, EditRequest{
		CircuitStatus: inventory.CircuitStatusBreakdown,
		Status:        inventory.BatchStatusRunning,
		BatteryCount:  25,
	})
	if err != nil {
		t.Fatalf("Cancel failed: %v", err)
	}

	if doc.FinalProducts != before+25 {
		t.Errorf("FinalProducts = %d, want %d", doc.FinalProducts, before+25)
	}
	if r.Circuit.CircuitStatus != inventory.CircuitStatusBreakdown || r.Circuit.BatteryCount != 0 {
		t.Errorf("Circuit not reset on cancel: %+v", r.Circuit)
	}
}

func TestAssignedNeverExceedsPool(t *testing.T) {
	doc := chargingDoc(60)

	// Saturate every circuit, then complete and cancel a few; the invariant
	// sum(chargeable counts) <= finalProducts must hold throughout
	check := func(step string) {
		t.Helper()
		if assigned := doc.ChargeableAssigned(0); assigned > doc.FinalProducts {
			t.Fatalf("%s: assigned %d exceeds pool %d", step, assigned, doc.FinalProducts)
		}
	}

	for no := 1; no <= inventory.CircuitCount; no++ {
		assign(t, doc, no, 25)
		check("assign")
	}

	end := time.Now().UTC()
	if _, err := Apply(doc, 1, EditRequest{
		CircuitStatus: inventory.CircuitStatusChargeable,
		Status:        inventory.BatchStatusDone,
		EndTime:       &end,
	}); err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	check("complete")

	if _, err := Apply(doc, 2, EditRequest{
		CircuitStatus: inventory.CircuitStatusIdle,
		Status:        inventory.BatchStatusRunning,
	}); err != nil {
		t.Fatalf("Cancel failed: %v", err)
	}
	check("cancel")

	assign(t, doc, 6, 20)
	check("reassign")
}

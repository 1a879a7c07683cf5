package inventory

import (
	"testing"

	"github.com/your-org/manufacturing-backend/internal/domain/bom"
)

func TestTierLookup(t *testing.T) {
	tier := Tier{
		{ProductID: "RM-001", ProductName: "Lead", Unit: UnitKG, Quantity: 500},
	}

	qty, unit := tier.Lookup("RM-001")
	if qty != 500 || unit != string(UnitKG) {
		t.Errorf("Lookup(RM-001) = (%v, %q), want (500, KG)", qty, unit)
	}

	qty, unit = tier.Lookup("RM-404")
	if qty != 0 || unit != "" {
		t.Errorf("Lookup on missing product = (%v, %q), want (0, \"\")", qty, unit)
	}
}

func TestTierAdjust(t *testing.T) {
	tier := Tier{
		{ProductID: "RM-001", Quantity: 10},
	}

	if !tier.Adjust("RM-001", -4) {
		t.Fatal("Adjust on existing product returned false")
	}
	if qty, _ := tier.Lookup("RM-001"); qty != 6 {
		t.Errorf("Expected quantity 6 after adjust, got %v", qty)
	}

	if tier.Adjust("RM-404", 5) {
		t.Error("Adjust on missing product returned true")
	}
}

func TestTierLowStock(t *testing.T) {
	tier := Tier{
		{ProductID: "RM-001", Quantity: 10, MinThreshold: 50},
		{ProductID: "RM-002", Quantity: 100, MinThreshold: 50},
		{ProductID: "RM-003", Quantity: 50, MinThreshold: 50},
	}

	low := tier.LowStock()
	if len(low) != 2 {
		t.Fatalf("Expected 2 low-stock items, got %d", len(low))
	}
}

func TestSeedDocument(t *testing.T) {
	doc := SeedDocument()

	if len(doc.Circuits) != CircuitCount {
		t.Fatalf("Expected %d circuits, got %d", CircuitCount, len(doc.Circuits))
	}
	wantCaps := []int{25, 25, 25, 25, 20, 20}
	for i, c := range doc.Circuits {
		if c.CircuitNo != i+1 {
			t.Errorf("Circuit %d has number %d", i, c.CircuitNo)
		}
		if c.BatteryCapacity != wantCaps[i] {
			t.Errorf("Circuit %d capacity = %d, want %d", c.CircuitNo, c.BatteryCapacity, wantCaps[i])
		}
		if c.CircuitStatus != CircuitStatusIdle || c.Status != BatchStatusEmpty {
			t.Errorf("Circuit %d not seeded idle/empty", c.CircuitNo)
		}
	}

	// Every seeded BOM must resolve against its tier
	if warnings := doc.ValidateBOMs(); len(warnings) != 0 {
		t.Errorf("Seed document has BOM warnings: %v", warnings)
	}

	if doc.FinalProducts != 0 || doc.Batteries != 0 || doc.Inverters != 0 {
		t.Error("Seed document must start with zero finished goods")
	}
}

func TestDocumentTierFor(t *testing.T) {
	doc := SeedDocument()

	if !doc.TierFor(bom.KindInverter).Contains("CMP-004") {
		t.Error("Inverter BOM must draw from the L2 tier")
	}
	if !doc.TierFor(bom.KindBattery).Contains("RM-001") {
		t.Error("Battery BOM must draw from the L1 tier")
	}
}

func TestChargeableAssigned(t *testing.T) {
	doc := SeedDocument()
	doc.Circuits[0].CircuitStatus = CircuitStatusChargeable
	doc.Circuits[0].BatteryCount = 10
	doc.Circuits[1].CircuitStatus = CircuitStatusChargeable
	doc.Circuits[1].BatteryCount = 5
	doc.Circuits[2].CircuitStatus = CircuitStatusBreakdown
	doc.Circuits[2].BatteryCount = 7 // not chargeable, never counted

	if got := doc.ChargeableAssigned(0); got != 15 {
		t.Errorf("ChargeableAssigned(0) = %d, want 15", got)
	}
	if got := doc.ChargeableAssigned(1); got != 5 {
		t.Errorf("ChargeableAssigned(1) = %d, want 5", got)
	}
}

func TestDocumentClone(t *testing.T) {
	doc := SeedDocument()
	doc.Version = 7
	doc.AppendLog("test entry", LogTypeAddProduct, "")

	clone, err := doc.Clone()
	if err != nil {
		t.Fatalf("Clone failed: %v", err)
	}

	if clone.Version != 7 {
		t.Errorf("Clone version = %d, want 7", clone.Version)
	}

	clone.L1Components.Adjust("RM-001", -100)
	if qty, _ := doc.L1Components.Lookup("RM-001"); qty != 500 {
		t.Error("Mutating the clone changed the original")
	}
}

func TestFindOrderCompositeIdentity(t *testing.T) {
	doc := SeedDocument()
	doc.AppendOrder(Order{Seq: 1, Type: OrderTypeProduction})
	doc.AppendOrder(Order{Seq: 1, Type: OrderTypeAssembly})

	// Same sequence number in different books resolves independently
	if o := doc.FindOrder(OrderTypeProduction, 1); o == nil || o.Type != OrderTypeProduction {
		t.Error("Production order #1 not found")
	}
	if o := doc.FindOrder(OrderTypeAssembly, 1); o == nil || o.Type != OrderTypeAssembly {
		t.Error("Assembly order #1 not found")
	}
	if o := doc.FindOrder(OrderTypeProduction, 2); o != nil {
		t.Error("Expected missing order to resolve to nil")
	}
}

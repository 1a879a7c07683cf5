package shipment

import (
	"errors"
	"testing"

	"github.com/your-org/manufacturing-backend/internal/domain/inventory"
)

func shipmentDoc(finalProducts int) *inventory.Document {
	doc := inventory.SeedDocument()
	doc.FinalProducts = finalProducts
	return doc
}

func TestCreateDeductsPool(t *testing.T) {
	doc := shipmentDoc(50)

	s, err := Create(doc, CreateRequest{Destination: "Chennai Depot", Quantity: 20})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if s.ID != 1 {
		t.Errorf("Shipment id = %d, want 1", s.ID)
	}
	if s.Status != inventory.ShipmentStatusPacked {
		t.Errorf("Status = %s, want packed", s.Status)
	}
	if doc.FinalProducts != 30 {
		t.Errorf("FinalProducts = %d, want 30", doc.FinalProducts)
	}
	if len(doc.Logs) != 1 {
		t.Errorf("Expected 1 log entry, got %d", len(doc.Logs))
	}
}

func TestCreateValidation(t *testing.T) {
	tests := []struct {
		name string
		req  CreateRequest
	}{
		{"empty_destination", CreateRequest{Destination: "", Quantity: 5}},
		{"zero_quantity", CreateRequest{Destination: "Depot", Quantity: 0}},
		{"negative_quantity", CreateRequest{Destination: "Depot", Quantity: -3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := shipmentDoc(50)
			_, err := Create(doc, tt.req)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Expected ValidationError, got %v", err)
			}
			if doc.FinalProducts != 50 || len(doc.Shipments) != 0 {
				t.Error("Rejected create mutated the document")
			}
		})
	}
}

func TestCreateRespectsAssignedBatteries(t *testing.T) {
	doc := shipmentDoc(50)
	doc.Circuits[0].CircuitStatus = inventory.CircuitStatusChargeable
	doc.Circuits[0].BatteryCount = 20

	// Only 30 of the 50 are unassigned
	_, err := Create(doc, CreateRequest{Destination: "Depot", Quantity: 40})
	var insufficient *InsufficientStockError
	if !errors.As(err, &insufficient) {
		t.Fatalf("Expected InsufficientStockError, got %v", err)
	}
	if insufficient.Available != 30 {
		t.Errorf("Available = %d, want 30", insufficient.Available)
	}

	if _, err := Create(doc, CreateRequest{Destination: "Depot", Quantity: 30}); err != nil {
		t.Errorf("Create within unassigned pool failed: %v", err)
	}
}

func TestIDsNeverReused(t *testing.T) {
	doc := shipmentDoc(100)

	first, _ := Create(doc, CreateRequest{Destination: "A", Quantity: 10})
	second, _ := Create(doc, CreateRequest{Destination: "B", Quantity: 10})

	if err := Delete(doc, first.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	third, err := Create(doc, CreateRequest{Destination: "C", Quantity: 10})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if third.ID <= second.ID {
		t.Errorf("Shipment id %d reused after deletion of #%d", third.ID, first.ID)
	}
}

func TestUpdateStatus(t *testing.T) {
	doc := shipmentDoc(50)
	s, _ := Create(doc, CreateRequest{Destination: "Depot", Quantity: 10})

	updated, err := UpdateStatus(doc, s.ID, inventory.ShipmentStatusShipped)
	if err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	if updated.Status != inventory.ShipmentStatusShipped {
		t.Errorf("Status = %s, want shipped", updated.Status)
	}

	var verr *ValidationError
	if _, err := UpdateStatus(doc, s.ID, inventory.ShipmentStatus("lost")); !errors.As(err, &verr) {
		t.Errorf("Expected ValidationError for unknown status, got %v", err)
	}
	if _, err := UpdateStatus(doc, 99, inventory.ShipmentStatusShipped); !errors.Is(err, ErrShipmentNotFound) {
		t.Errorf("Expected ErrShipmentNotFound, got %v", err)
	}
}

func TestDeliveredIsImmutable(t *testing.T) {
	doc := shipmentDoc(50)
	s, _ := Create(doc, CreateRequest{Destination: "Depot", Quantity: 10})

	if _, err := UpdateStatus(doc, s.ID, inventory.ShipmentStatusDelivered); err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}

	var verr *ValidationError
	if _, err := UpdateStatus(doc, s.ID, inventory.ShipmentStatusPacked); !errors.As(err, &verr) {
		t.Errorf("Expected ValidationError on delivered shipment, got %v", err)
	}
}

func TestDeleteRestoresUndeliveredStock(t *testing.T) {
	doc := shipmentDoc(50)
	s, _ := Create(doc, CreateRequest{Destination: "Depot", Quantity: 10})

	if err := Delete(doc, s.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if doc.FinalProducts != 50 {
		t.Errorf("FinalProducts = %d, want 50 after restore", doc.FinalProducts)
	}
	if len(doc.Shipments) != 0 {
		t.Error("Shipment not removed")
	}
}

func TestDeleteDeliveredKeepsStockOut(t *testing.T) {
	doc := shipmentDoc(50)
	s, _ := Create(doc, CreateRequest{Destination: "Depot", Quantity: 10})
	if _, err := UpdateStatus(doc, s.ID, inventory.ShipmentStatusDelivered); err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}

	if err := Delete(doc, s.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if doc.FinalProducts != 40 {
		t.Errorf("FinalProducts = %d, want 40; delivered goods must stay gone", doc.FinalProducts)
	}
}

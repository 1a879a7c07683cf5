// internal/domain/shipment/service.go
package shipment

import (
	"errors"
	"fmt"
	"time"

	"github.com/your-org/manufacturing-backend/internal/domain/inventory"
)

// ErrShipmentNotFound is returned when the shipment id does not resolve
var ErrShipmentNotFound = errors.New("shipment not found")

// ValidationError rejects a request before any mutation happens
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// InsufficientStockError aborts a shipment that asks for more finished
// products than the pool holds
type InsufficientStockError struct {
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient finished products: requested %d, available %d", e.Requested, e.Available)
}

// CreateRequest captures a new outbound shipment
type CreateRequest struct {
	Destination string `json:"destination" binding:"required"`
	Quantity    int    `json:"quantity" binding:"required"`
}

// Create reserves finished products into a new shipment in "packed" state
func Create(doc *inventory.Document, req CreateRequest) (*inventory.Shipment, error) {
	if req.Destination == "" {
		return nil, &ValidationError{Message: "destination is required"}
	}
	if req.Quantity <= 0 {
		return nil, &ValidationError{Message: "quantity must be positive"}
	}
	available := doc.FinalProducts - doc.ChargeableAssigned(0)
	if req.Quantity > available {
		return nil, &InsufficientStockError{Requested: req.Quantity, Available: available}
	}

	doc.FinalProducts -= req.Quantity

	// Shipments are deletable, so the next id is max+1, not len+1
	nextID := 1
	for i := range doc.Shipments {
		if doc.Shipments[i].ID >= nextID {
			nextID = doc.Shipments[i].ID + 1
		}
	}

	doc.Shipments = append(doc.Shipments, inventory.Shipment{
		ID:          nextID,
		Destination: req.Destination,
		Quantity:    req.Quantity,
		Status:      inventory.ShipmentStatusPacked,
		Timestamp:   time.Now().UTC(),
	})
	created := &doc.Shipments[len(doc.Shipments)-1]

	doc.AppendLog(fmt.Sprintf("Shipment #%d packed - %d units for %s",
		created.ID, created.Quantity, created.Destination), "", "")

	return created, nil
}

// UpdateStatus moves a shipment to a new status. The packed → shipped →
// in-transit → delivered progression is suggested, not enforced; delivered
// shipments are immutable.
func UpdateStatus(doc *inventory.Document, id int, status inventory.ShipmentStatus) (*inventory.Shipment, error) {
	if !status.Valid() {
		return nil, &ValidationError{Message: fmt.Sprintf("unknown shipment status %q", status)}
	}
	s := find(doc, id)
	if s == nil {
		return nil, ErrShipmentNotFound
	}
	if s.Status == inventory.ShipmentStatusDelivered {
		return nil, &ValidationError{Message: fmt.Sprintf("shipment #%d is already delivered", id)}
	}

	s.Status = status
	doc.AppendLog(fmt.Sprintf("Shipment #%d status changed to %s", s.ID, status), "", "")
	return s, nil
}

// Delete removes a shipment. Undelivered quantities return to the
// finished-goods pool; delivered goods are gone for good.
func Delete(doc *inventory.Document, id int) error {
	for i := range doc.Shipments {
		if doc.Shipments[i].ID != id {
			continue
		}
		s := doc.Shipments[i]
		if s.Status != inventory.ShipmentStatusDelivered {
			doc.FinalProducts += s.Quantity
		}
		doc.Shipments = append(doc.Shipments[:i], doc.Shipments[i+1:]...)
		doc.AppendLog(fmt.Sprintf("Shipment #%d (%s, %d units) deleted", s.ID, s.Destination, s.Quantity), "", "")
		return nil
	}
	return ErrShipmentNotFound
}

func find(doc *inventory.Document, id int) *inventory.Shipment {
	for i := range doc.Shipments {
		if doc.Shipments[i].ID == id {
			return &doc.Shipments[i]
		}
	}
	return nil
}

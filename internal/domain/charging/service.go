// internal/domain/charging/service.go
package charging

import (
	"errors"
	"fmt"
	"time"

	"github.com/your-org/manufacturing-backend/internal/domain/inventory"
)

// ErrCircuitNotFound is returned when the circuit number does not resolve
var ErrCircuitNotFound = errors.New("circuit not found")

// ValidationError rejects an edit before any mutation happens
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// EditRequest is the desired state for one circuit, captured from the
// operator's edit-and-save action
type EditRequest struct {
	CircuitStatus inventory.CircuitStatus `json:"circuitStatus" binding:"required"`
	Status        inventory.BatchStatus   `json:"status"`
	BatteryCount  int                     `json:"batteryCount"`
	EndTime       *time.Time              `json:"endTime,omitempty"`
}

// Result carries the applied circuit state and, for completed batches, the
// charging order that was minted
type Result struct {
	Circuit       *inventory.Circuit
	ChargingOrder *inventory.ChargingOrder
}

// Apply runs one circuit transition on the document:
//
//   - batch set to done: requires an end time; the circuit's pre-edit battery
//     count leaves the finished-goods pool, a charging order is minted and
//     the slot resets to idle/empty.
//   - circuit set to idle or breakdown (batch not done): the batteries go
//     back to the pool and the slot resets; the explicit cancel path.
//   - otherwise a normal chargeable update: the battery count is clamped so
//     a circuit can never claim more batteries than exist unassigned
//     system-wide. Clamping, not rejection.
//
// Every transition appends one audit log entry.
func Apply(doc *inventory.Document, circuitNo int, req EditRequest) (*Result, error) {
	c := doc.Circuit(circuitNo)
	if c == nil {
		return nil, ErrCircuitNotFound
	}

	switch {
	case req.Status == inventory.BatchStatusDone:
		return completeBatch(doc, c, req)
	case req.CircuitStatus == inventory.CircuitStatusIdle || req.CircuitStatus == inventory.CircuitStatusBreakdown:
		return cancelBatch(doc, c, req.CircuitStatus)
	case req.CircuitStatus == inventory.CircuitStatusChargeable:
		return updateBatch(doc, c, req)
	default:
		return nil, &ValidationError{Message: fmt.Sprintf("unknown circuit status %q", req.CircuitStatus)}
	}
}

// completeBatch finishes the running batch on a circuit
func completeBatch(doc *inventory.Document, c *inventory.Circuit, req EditRequest) (*Result, error) {
	if req.EndTime == nil {
		return nil, &ValidationError{Message: "end time is required to mark a batch done"}
	}

	quantity := c.BatteryCount
	doc.FinalProducts -= quantity

	start := *req.EndTime
	if c.PutInDate != nil {
		start = *c.PutInDate
	}
	duration := req.EndTime.Sub(start).Hours()
	if duration < 0 {
		duration = 0
	}

	chargingOrder := inventory.ChargingOrder{
		OrderID:       fmt.Sprintf("ORD-%03d", len(doc.ChargingOrders)+1),
		CircuitNo:     c.CircuitNo,
		StartTime:     start,
		EndTime:       *req.EndTime,
		Quantity:      quantity,
		DurationHours: duration,
		Status:        "done",
	}
	doc.ChargingOrders = append(doc.ChargingOrders, chargingOrder)

	resetCircuit(c, inventory.CircuitStatusIdle)

	doc.AppendLog(fmt.Sprintf("Circuit %d batch done - %d batteries charged (order %s)",
		c.CircuitNo, quantity, chargingOrder.OrderID), "", "")

	return &Result{Circuit: c, ChargingOrder: &doc.ChargingOrders[len(doc.ChargingOrders)-1]}, nil
}

// cancelBatch pulls batteries out of a circuit without them being finished
func cancelBatch(doc *inventory.Document, c *inventory.Circuit, status inventory.CircuitStatus) (*Result, error) {
	returned := c.BatteryCount
	doc.FinalProducts += returned

	resetCircuit(c, status)

	doc.AppendLog(fmt.Sprintf("Circuit %d set to %s - %d batteries returned to stock",
		c.CircuitNo, status, returned), "", "")

	return &Result{Circuit: c}, nil
}

// updateBatch applies a normal chargeable edit with battery-count clamping
func updateBatch(doc *inventory.Document, c *inventory.Circuit, req EditRequest) (*Result, error) {
	if req.BatteryCount < 0 {
		return nil, &ValidationError{Message: "battery count cannot be negative"}
	}
	if req.Status != inventory.BatchStatusRunning && req.Status != inventory.BatchStatusEmpty {
		return nil, &ValidationError{Message: fmt.Sprintf("unknown batch status %q", req.Status)}
	}

	// A circuit can never claim more batteries than exist unassigned
	available := doc.FinalProducts - doc.ChargeableAssigned(c.CircuitNo)
	count := req.BatteryCount
	if count > c.BatteryCapacity {
		count = c.BatteryCapacity
	}
	if count > available {
		count = available
	}
	if count < 0 {
		count = 0
	}

	c.CircuitStatus = inventory.CircuitStatusChargeable
	c.Status = req.Status
	c.BatteryCount = count
	if req.Status == inventory.BatchStatusRunning && c.PutInDate == nil {
		now := time.Now().UTC()
		c.PutInDate = &now
	}
	c.LastUpdated = time.Now().UTC()

	doc.AppendLog(fmt.Sprintf("Circuit %d updated - chargeable/%s with %d batteries",
		c.CircuitNo, c.Status, c.BatteryCount), "", "")

	return &Result{Circuit: c}, nil
}

// resetCircuit empties a slot after completion or cancellation
func resetCircuit(c *inventory.Circuit, status inventory.CircuitStatus) {
	c.CircuitStatus = status
	c.Status = inventory.BatchStatusEmpty
	c.BatteryCount = 0
	c.PutInDate = nil
	c.LastUpdated = time.Now().UTC()
}

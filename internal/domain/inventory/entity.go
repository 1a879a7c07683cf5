// internal/domain/inventory/entity.go
package inventory

import (
	"time"

	"github.com/your-org/manufacturing-backend/internal/domain/bom"
)

// Unit represents the unit of measure for a stock item
type Unit string

const (
	UnitKG  Unit = "KG"
	UnitLTR Unit = "LTR"
	UnitPCS Unit = "PCS"
	UnitSET Unit = "SET"
)

// Valid reports whether u is a known unit of measure
func (u Unit) Valid() bool {
	switch u {
	case UnitKG, UnitLTR, UnitPCS, UnitSET:
		return true
	}
	return false
}

// Item represents a product or material held in a stock tier
type Item struct {
	ProductID    string  `json:"productId"` // stable, format "PREFIX-NNN"
	ProductName  string  `json:"productName"`
	Category     string  `json:"category"`
	Unit         Unit    `json:"unit"`
	Quantity     float64 `json:"quantity"`
	MinThreshold float64 `json:"minThreshold"`
}

// IsLowStock checks if the item is at or below its minimum threshold
func (i *Item) IsLowStock() bool {
	return i.Quantity <= i.MinThreshold
}

// Tier is a stock bucket keyed by product id (L1 raw materials or
// L2 assembly components)
type Tier []Item

// Lookup returns the current quantity and unit for a product id,
// or (0, "") when the id is not present. Never fails.
func (t Tier) Lookup(productID string) (float64, string) {
	for i := range t {
		if t[i].ProductID == productID {
			return t[i].Quantity, string(t[i].Unit)
		}
	}
	return 0, ""
}

// Contains reports whether the tier holds the product id
func (t Tier) Contains(productID string) bool {
	_, unit := t.Lookup(productID)
	return unit != ""
}

// Adjust applies a signed quantity delta to a product and reports whether
// the product was found
func (t Tier) Adjust(productID string, delta float64) bool {
	for i := range t {
		if t[i].ProductID == productID {
			t[i].Quantity += delta
			return true
		}
	}
	return false
}

// LowStock returns the items at or below their minimum threshold
func (t Tier) LowStock() []Item {
	var low []Item
	for i := range t {
		if t[i].IsLowStock() {
			low = append(low, t[i])
		}
	}
	return low
}

// OrderType distinguishes production orders (raw material tier) from
// assembly orders (component tier)
type OrderType string

const (
	OrderTypeProduction OrderType = "production"
	OrderTypeAssembly   OrderType = "assembly"
)

// OrderStatus represents the order lifecycle state
type OrderStatus string

const (
	OrderStatusStarted   OrderStatus = "started"
	OrderStatusCompleted OrderStatus = "completed" // terminal
)

// Order represents a production or assembly order. Identity is the
// composite (Type, Seq): sequence numbers are per order type.
type Order struct {
	Seq                 int                `json:"id"`
	Type                OrderType          `json:"type"`
	BOMKind             bom.Kind           `json:"bomKind"`
	MaterialsUsed       map[string]float64 `json:"materialsUsed"`
	Status              OrderStatus        `json:"status"`
	PredictedOutput     int                `json:"predictedOutput"`
	ActualOutput        *int               `json:"actualOutput,omitempty"`
	Timestamp           time.Time          `json:"timestamp"`
	DiscrepancyMessages []string           `json:"discrepancyMessages,omitempty"`
}

// IsCompleted checks if the order has reached its terminal state
func (o *Order) IsCompleted() bool {
	return o.Status == OrderStatusCompleted
}

// CircuitStatus is the resource-level state of a charging slot
type CircuitStatus string

const (
	CircuitStatusIdle       CircuitStatus = "idle"
	CircuitStatusChargeable CircuitStatus = "chargeable"
	CircuitStatusBreakdown  CircuitStatus = "breakdown"
)

// BatchStatus is the battery-batch state, meaningful only while the
// circuit is chargeable
type BatchStatus string

const (
	BatchStatusRunning BatchStatus = "running"
	BatchStatusEmpty   BatchStatus = "empty"
	BatchStatusDone    BatchStatus = "done"
)

// Circuit represents one of the fixed charging slots
type Circuit struct {
	CircuitNo       int           `json:"circuitNo"`
	CircuitStatus   CircuitStatus `json:"circuitStatus"`
	Status          BatchStatus   `json:"status"`
	BatteryCount    int           `json:"batteryCount"`
	BatteryCapacity int           `json:"batteryCapacity"`
	PutInDate       *time.Time    `json:"putInDate,omitempty"`
	LastUpdated     time.Time     `json:"lastUpdated"`
}

// ChargingOrder records one finished charging batch. Immutable once created.
type ChargingOrder struct {
	OrderID       string    `json:"orderId"` // format "ORD-NNN"
	CircuitNo     int       `json:"circuitNo"`
	StartTime     time.Time `json:"startTime"`
	EndTime       time.Time `json:"endTime"`
	Quantity      int       `json:"quantity"`
	DurationHours float64   `json:"durationHours"`
	Status        string    `json:"status"` // always "done"
}

// ShipmentStatus represents the shipment progression. The packed → shipped →
// in-transit → delivered order is suggested, not enforced.
type ShipmentStatus string

const (
	ShipmentStatusPacked    ShipmentStatus = "packed"
	ShipmentStatusShipped   ShipmentStatus = "shipped"
	ShipmentStatusInTransit ShipmentStatus = "in-transit"
	ShipmentStatusDelivered ShipmentStatus = "delivered"
)

// Valid reports whether s is a known shipment status
func (s ShipmentStatus) Valid() bool {
	switch s {
	case ShipmentStatusPacked, ShipmentStatusShipped, ShipmentStatusInTransit, ShipmentStatusDelivered:
		return true
	}
	return false
}

// Shipment represents an outbound delivery of finished products
type Shipment struct {
	ID          int            `json:"id"`
	Destination string         `json:"destination"`
	Quantity    int            `json:"quantity"`
	Status      ShipmentStatus `json:"status"`
	Timestamp   time.Time      `json:"timestamp"`
}

// LogType tags special audit log entries
type LogType string

const (
	LogTypeDiscrepancy LogType = "discrepancy"
	LogTypeAddProduct  LogType = "add-product"
)

// LogEntry is a single line of the append-only audit log. Entries are never
// mutated or deleted; append order is the total order.
type LogEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"`
	LogType   LogType   `json:"logType,omitempty"`
	Remarks   string    `json:"remarks,omitempty"`
}

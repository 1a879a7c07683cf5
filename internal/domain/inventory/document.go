// internal/domain/inventory/document.go
package inventory

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/your-org/manufacturing-backend/internal/domain/bom"
)

// CircuitCount is the fixed number of charging slots
const CircuitCount = 6

// Well-known component product ids credited by completed orders
const (
	ProductIDPositivePlate = "CMP-001"
	ProductIDNegativePlate = "CMP-002"
	ProductIDBattery       = "CMP-003"
)

// Document is the aggregate root holding all mutable production state.
// Every mutation reads the whole document, derives a new one in memory and
// writes it back; there is no field-level locking.
type Document struct {
	L1Components Tier `json:"l1_component"`
	L2Components Tier `json:"l2_component"`

	BatteryBOM       []bom.Entry `json:"batteryBOM"`
	PositivePlateBOM []bom.Entry `json:"positivePlateBOM"`
	NegativePlateBOM []bom.Entry `json:"negativePlateBOM"`
	InverterBOM      []bom.Entry `json:"inverterBOM"`

	ProductionOrders []Order         `json:"productionOrders"`
	AssemblyOrders   []Order         `json:"assemblyOrders"`
	Circuits         []Circuit       `json:"circuits"`
	ChargingOrders   []ChargingOrder `json:"orders"`
	Shipments        []Shipment      `json:"shipments"`
	Logs             []LogEntry      `json:"logs"`

	FinalProducts int `json:"finalProducts"`
	Batteries     int `json:"batteries"`
	Inverters     int `json:"inverters"`

	// Version is the optimistic-concurrency token maintained by the store,
	// not part of the document payload itself
	Version int64 `json:"-"`
}

// BOM returns the entries for a BOM variant, normalized
func (d *Document) BOM(kind bom.Kind) []bom.Entry {
	switch kind {
	case bom.KindBattery:
		return bom.Normalize(d.BatteryBOM)
	case bom.KindPositivePlate:
		return bom.Normalize(d.PositivePlateBOM)
	case bom.KindNegativePlate:
		return bom.Normalize(d.NegativePlateBOM)
	case bom.KindInverter:
		return bom.Normalize(d.InverterBOM)
	}
	return nil
}

// TierFor returns the stock tier a BOM variant draws from: battery and plate
// production consume raw materials (L1), inverter assembly consumes
// components (L2)
func (d *Document) TierFor(kind bom.Kind) Tier {
	if kind == bom.KindInverter {
		return d.L2Components
	}
	return d.L1Components
}

// OrderTypeFor returns the order book a BOM variant belongs to
func OrderTypeFor(kind bom.Kind) OrderType {
	if kind == bom.KindInverter {
		return OrderTypeAssembly
	}
	return OrderTypeProduction
}

// Orders returns the order book for a type. The returned slice shares
// backing storage with the document.
func (d *Document) Orders(orderType OrderType) []Order {
	if orderType == OrderTypeAssembly {
		return d.AssemblyOrders
	}
	return d.ProductionOrders
}

// FindOrder returns a pointer into the document's order book for the
// composite (type, seq) identity, or nil
func (d *Document) FindOrder(orderType OrderType, seq int) *Order {
	book := d.ProductionOrders
	if orderType == OrderTypeAssembly {
		book = d.AssemblyOrders
	}
	for i := range book {
		if book[i].Seq == seq {
			return &book[i]
		}
	}
	return nil
}

// AppendOrder appends an order to its book and returns a pointer to the
// stored copy
func (d *Document) AppendOrder(o Order) *Order {
	if o.Type == OrderTypeAssembly {
		d.AssemblyOrders = append(d.AssemblyOrders, o)
		return &d.AssemblyOrders[len(d.AssemblyOrders)-1]
	}
	d.ProductionOrders = append(d.ProductionOrders, o)
	return &d.ProductionOrders[len(d.ProductionOrders)-1]
}

// Circuit returns a pointer to the slot with the given number, or nil
func (d *Document) Circuit(no int) *Circuit {
	for i := range d.Circuits {
		if d.Circuits[i].CircuitNo == no {
			return &d.Circuits[i]
		}
	}
	return nil
}

// ChargeableAssigned sums the battery counts over chargeable circuits,
// excluding the given circuit number (pass 0 to include all)
func (d *Document) ChargeableAssigned(excludeNo int) int {
	total := 0
	for i := range d.Circuits {
		c := &d.Circuits[i]
		if c.CircuitNo == excludeNo {
			continue
		}
		if c.CircuitStatus == CircuitStatusChargeable {
			total += c.BatteryCount
		}
	}
	return total
}

// AppendLog appends a timestamped entry to the audit log
func (d *Document) AppendLog(action string, logType LogType, remarks string) {
	d.Logs = append(d.Logs, LogEntry{
		Timestamp: time.Now().UTC(),
		Action:    action,
		LogType:   logType,
		Remarks:   remarks,
	})
}

// ValidateBOMs runs the referential-integrity pass over every BOM variant
// against its stock tier and returns the collected warnings
func (d *Document) ValidateBOMs() []string {
	var warnings []string
	for _, kind := range []bom.Kind{bom.KindBattery, bom.KindPositivePlate, bom.KindNegativePlate, bom.KindInverter} {
		for _, w := range bom.Validate(d.BOM(kind), d.TierFor(kind)) {
			warnings = append(warnings, fmt.Sprintf("%s: %s", kind, w))
		}
	}
	return warnings
}

// Clone returns a deep copy of the document
func (d *Document) Clone() (*Document, error) {
	raw, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document: %w", err)
	}
	var out Document
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to unmarshal document: %w", err)
	}
	out.Version = d.Version
	return &out, nil
}

// SeedDocument builds the hard-coded initial document: starting stock
// levels, BOM rates, six empty circuits and zeroed counters
func SeedDocument() *Document {
	return &Document{
		L1Components: Tier{
			{ProductID: "RM-001", ProductName: "Lead", Category: "raw-material", Unit: UnitKG, Quantity: 500, MinThreshold: 50},
			{ProductID: "RM-002", ProductName: "Lead Oxide", Category: "raw-material", Unit: UnitKG, Quantity: 300, MinThreshold: 40},
			{ProductID: "RM-003", ProductName: "Sulphuric Acid", Category: "raw-material", Unit: UnitLTR, Quantity: 200, MinThreshold: 25},
			{ProductID: "RM-004", ProductName: "Separator", Category: "raw-material", Unit: UnitPCS, Quantity: 1000, MinThreshold: 100},
			{ProductID: "RM-005", ProductName: "Container", Category: "raw-material", Unit: UnitPCS, Quantity: 150, MinThreshold: 20},
			{ProductID: "RM-006", ProductName: "Terminal Set", Category: "raw-material", Unit: UnitSET, Quantity: 150, MinThreshold: 20},
		},
		L2Components: Tier{
			{ProductID: "CMP-001", ProductName: "Positive Plate", Category: "component", Unit: UnitPCS, Quantity: 0, MinThreshold: 30},
			{ProductID: "CMP-002", ProductName: "Negative Plate", Category: "component", Unit: UnitPCS, Quantity: 0, MinThreshold: 30},
			{ProductID: "CMP-003", ProductName: "Battery", Category: "component", Unit: UnitPCS, Quantity: 0, MinThreshold: 10},
			{ProductID: "CMP-004", ProductName: "Inverter Card", Category: "component", Unit: UnitPCS, Quantity: 50, MinThreshold: 10},
		},
		BatteryBOM: []bom.Entry{
			{ProductID: "RM-001", Name: "Lead", Qty: 2},
			{ProductID: "RM-003", Name: "Sulphuric Acid", Qty: 1},
			{ProductID: "RM-004", Name: "Separator", Qty: 12},
			{ProductID: "RM-005", Name: "Container", Qty: 1},
			{ProductID: "RM-006", Name: "Terminal Set", Qty: 1},
		},
		PositivePlateBOM: []bom.Entry{
			{ProductID: "RM-002", Name: "Lead Oxide", Qty: 0.8},
			{ProductID: "RM-001", Name: "Lead", Qty: 0.2},
		},
		NegativePlateBOM: []bom.Entry{
			{ProductID: "RM-001", Name: "Lead", Qty: 0.9},
		},
		InverterBOM: []bom.Entry{
			{ProductID: "CMP-003", Name: "Battery", Qty: 1},
			{ProductID: "CMP-004", Name: "Inverter Card", Qty: 1},
		},
		Circuits:         seedCircuits(),
		ProductionOrders: []Order{},
		AssemblyOrders:   []Order{},
		ChargingOrders:   []ChargingOrder{},
		Shipments:        []Shipment{},
		Logs:             []LogEntry{},
	}
}

func seedCircuits() []Circuit {
	// slots 1-4 hold 25 batteries, slots 5-6 hold 20
	capacities := [CircuitCount]int{25, 25, 25, 25, 20, 20}
	now := time.Now().UTC()
	circuits := make([]Circuit, CircuitCount)
	for i, capacity := range capacities {
		circuits[i] = Circuit{
			CircuitNo:       i + 1,
			CircuitStatus:   CircuitStatusIdle,
			Status:          BatchStatusEmpty,
			BatteryCapacity: capacity,
			LastUpdated:     now,
		}
	}
	return circuits
}

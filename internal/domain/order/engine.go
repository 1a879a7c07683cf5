// internal/domain/order/engine.go
package order

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/your-org/manufacturing-backend/internal/domain/bom"
	"github.com/your-org/manufacturing-backend/internal/domain/inventory"
)

// StartRequest carries the operator input for starting an order
type StartRequest struct {
	Kind            bom.Kind           `json:"bomKind" binding:"required"`
	Materials       map[string]float64 `json:"materials" binding:"required"`
	RequestedOutput int                `json:"requestedOutput"`
}

// CompleteRequest carries the operator-reported yield for completing an order
type CompleteRequest struct {
	Type         inventory.OrderType `json:"type" binding:"required"`
	Seq          int                 `json:"id" binding:"required"`
	ActualOutput int                 `json:"actualOutput"`
}

// PredictOutput applies the single predicted-output policy used for every
// order type: the requested output when given, otherwise the output derived
// from the entered material quantities, capped by what current stock can
// achieve.
func PredictOutput(doc *inventory.Document, kind bom.Kind, requestedOutput int, materials map[string]float64) int {
	entries := doc.BOM(kind)
	ceiling := bom.MaxAchievable(entries, doc.TierFor(kind))

	base := requestedOutput
	if base <= 0 {
		base = derivedOutput(entries, materials)
	}
	if ceiling < base {
		return ceiling
	}
	return base
}

// derivedOutput computes output from entered material quantities alone:
// min over BOM entries of floor(entered / rate)
func derivedOutput(entries []bom.Entry, materials map[string]float64) int {
	min := -1
	for _, e := range entries {
		if e.Qty <= 0 {
			continue
		}
		n := bom.FloorDiv(materials[e.ProductID], e.Qty)
		if min < 0 || n < min {
			min = n
		}
	}
	if min < 0 {
		return 0
	}
	return min
}

// Start validates the request against the BOM and stock tier, deducts the
// requested materials and appends the new order in "started" state.
//
// On a material shortfall it appends only a failure entry to the audit log,
// leaves stock and order books untouched and returns *InsufficientStockError;
// the caller may still persist the document to keep the failure on record.
// Validation errors mutate nothing at all.
func Start(doc *inventory.Document, req StartRequest) (*inventory.Order, error) {
	if !req.Kind.Valid() {
		return nil, NewValidationError("unknown BOM kind %q", req.Kind)
	}

	entries := doc.BOM(req.Kind)
	if len(entries) == 0 {
		return nil, NewValidationError("no bill of materials configured for %s", req.Kind)
	}
	tier := doc.TierFor(req.Kind)
	orderType := inventory.OrderTypeFor(req.Kind)

	// Every required material must be entered and positive; this is a UX
	// guard on top of the stock check, blank fields are rejected outright
	for _, e := range entries {
		qty, ok := req.Materials[e.ProductID]
		if !ok || qty <= 0 || math.IsNaN(qty) || math.IsInf(qty, 0) {
			return nil, NewValidationError("quantity for %s is required", e.Name)
		}
	}

	predicted := PredictOutput(doc, req.Kind, req.RequestedOutput, req.Materials)

	// Sufficiency check is authoritative and exact, no tolerance
	var shortfalls []Shortfall
	for _, e := range entries {
		needed := req.Materials[e.ProductID]
		available, _ := tier.Lookup(e.ProductID)
		if needed > available {
			shortfalls = append(shortfalls, Shortfall{
				ProductID: e.ProductID,
				Name:      e.Name,
				Needed:    needed,
				Available: available,
			})
		}
	}
	if len(shortfalls) > 0 {
		err := &InsufficientStockError{Shortfalls: shortfalls}
		doc.AppendLog(
			displayType(orderType)+" start failed - "+err.Error(), "", "")
		return nil, err
	}

	for _, e := range entries {
		tier.Adjust(e.ProductID, -req.Materials[e.ProductID])
	}

	used := make(map[string]float64, len(entries))
	for _, e := range entries {
		used[e.ProductID] = req.Materials[e.ProductID]
	}

	created := doc.AppendOrder(inventory.Order{
		Seq:             len(doc.Orders(orderType)) + 1,
		Type:            orderType,
		BOMKind:         req.Kind,
		MaterialsUsed:   used,
		Status:          inventory.OrderStatusStarted,
		PredictedOutput: predicted,
		Timestamp:       time.Now().UTC(),
	})

	doc.AppendLog(
		displayType(orderType)+" started (Order #"+strconv.Itoa(created.Seq)+") - Predicted Output: "+strconv.Itoa(predicted),
		"", "")

	return created, nil
}

// Complete transitions an order to its terminal state, credits the
// downstream stock tier and records any discrepancies between the BOM
// expectation and what was actually consumed and produced. Discrepancies are
// normal outcomes, not errors; they never block completion. Re-completion is
// rejected with *AlreadyCompletedError and changes nothing.
func Complete(doc *inventory.Document, req CompleteRequest) (*inventory.Order, error) {
	o := doc.FindOrder(req.Type, req.Seq)
	if o == nil {
		return nil, ErrOrderNotFound
	}
	if o.IsCompleted() {
		return nil, &AlreadyCompletedError{Type: req.Type, Seq: req.Seq}
	}
	if req.ActualOutput < 0 {
		return nil, NewValidationError("actual output cannot be negative")
	}
	if req.ActualOutput > o.PredictedOutput {
		return nil, NewValidationError("actual output %d exceeds predicted output %d", req.ActualOutput, o.PredictedOutput)
	}

	actual := req.ActualOutput
	o.Status = inventory.OrderStatusCompleted
	o.ActualOutput = &actual

	// Credit the downstream tier. This credit is not reversible.
	switch o.BOMKind {
	case bom.KindBattery:
		doc.L2Components.Adjust(inventory.ProductIDBattery, float64(actual))
		doc.Batteries += actual
	case bom.KindPositivePlate:
		doc.L2Components.Adjust(inventory.ProductIDPositivePlate, float64(actual))
	case bom.KindNegativePlate:
		doc.L2Components.Adjust(inventory.ProductIDNegativePlate, float64(actual))
	case bom.KindInverter:
		doc.FinalProducts += actual
		doc.Inverters += actual
	}

	o.DiscrepancyMessages = Detect(o, doc.BOM(o.BOMKind))

	doc.AppendLog(
		displayType(o.Type)+" completed (Order #"+strconv.Itoa(o.Seq)+") - Actual Output: "+strconv.Itoa(actual),
		"", "")
	if len(o.DiscrepancyMessages) > 0 {
		doc.AppendLog(
			"⚠️ Discrepancy detected ("+displayType(o.Type)+" Order #"+strconv.Itoa(o.Seq)+")",
			inventory.LogTypeDiscrepancy,
			strings.Join(o.DiscrepancyMessages, "; "))
	}

	return o, nil
}

// displayType renders an order type for audit log lines
func displayType(t inventory.OrderType) string {
	if t == inventory.OrderTypeAssembly {
		return "Assembly"
	}
	return "Production"
}

// formatQty renders a quantity without trailing zeros
func formatQty(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

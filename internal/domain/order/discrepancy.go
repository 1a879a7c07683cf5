// internal/domain/order/discrepancy.go
package order

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/your-org/manufacturing-backend/internal/domain/bom"
	"github.com/your-org/manufacturing-backend/internal/domain/inventory"
)

// expectedPlaces absorbs floating-point noise when comparing consumed
// quantities against BOM expectations
const expectedPlaces = 4

// Detect compares an order's recorded consumption and yield against its
// bill of materials. Pure: the order is not modified. Returns one
// human-readable line per mismatch, in BOM order, with materials unknown to
// the BOM trailing in id order.
func Detect(o *inventory.Order, entries []bom.Entry) []string {
	var messages []string

	actual := 0
	if o.ActualOutput != nil {
		actual = *o.ActualOutput
	}

	if actual != o.PredictedOutput {
		messages = append(messages, fmt.Sprintf("Output mismatch: Predicted %d, Actual %d", o.PredictedOutput, actual))
	}

	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		used, ok := o.MaterialsUsed[e.ProductID]
		if !ok {
			continue
		}
		seen[e.ProductID] = true
		if msg := compareMaterial(e.Name, used, e.Qty, actual, true); msg != "" {
			messages = append(messages, msg)
		}
	}

	// Materials recorded on the order but absent from the BOM: the expected
	// quantity cannot be computed, so only the missing-or-zero check applies
	var unknown []string
	for id := range o.MaterialsUsed {
		if !seen[id] {
			unknown = append(unknown, id)
		}
	}
	sort.Strings(unknown)
	for _, id := range unknown {
		if msg := compareMaterial(id, o.MaterialsUsed[id], 0, actual, false); msg != "" {
			messages = append(messages, msg)
		}
	}

	return messages
}

// compareMaterial checks one material line. hasRate is false when no BOM
// entry resolves for the material.
func compareMaterial(name string, used, rate float64, actual int, hasRate bool) string {
	if used == 0 {
		return fmt.Sprintf("%s is missing or 0", name)
	}
	if !hasRate {
		return ""
	}

	expected := decimal.NewFromFloat(rate).Mul(decimal.NewFromInt(int64(actual))).Round(expectedPlaces)
	usedDec := decimal.NewFromFloat(used).Round(expectedPlaces)
	if !usedDec.Equal(expected) {
		return fmt.Sprintf("%s: used %s, expected %s (for %d units)", name, usedDec.String(), expected.String(), actual)
	}
	return ""
}

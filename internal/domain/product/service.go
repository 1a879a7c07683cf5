// internal/domain/product/service.go
package product

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/your-org/manufacturing-backend/internal/domain/inventory"
)

// ErrProductNotFound is returned when the product id does not resolve
var ErrProductNotFound = errors.New("product not found")

// ValidationError rejects a request before any mutation happens
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// TierName selects one of the two mutable stock tiers
type TierName string

const (
	TierL1 TierName = "l1_component"
	TierL2 TierName = "l2_component"
)

// AddRequest registers a new product or material into a stock tier
type AddRequest struct {
	Tier         TierName       `json:"tier" binding:"required"`
	ProductName  string         `json:"productName" binding:"required"`
	Category     string         `json:"category"`
	Unit         inventory.Unit `json:"unit" binding:"required"`
	Quantity     float64        `json:"quantity"`
	MinThreshold float64        `json:"minThreshold"`
}

// Add creates the item with a generated sequential product id and records
// an "add-product" audit entry
func Add(doc *inventory.Document, req AddRequest) (*inventory.Item, error) {
	if req.ProductName == "" {
		return nil, &ValidationError{Message: "product name is required"}
	}
	if !req.Unit.Valid() {
		return nil, &ValidationError{Message: fmt.Sprintf("unknown unit %q", req.Unit)}
	}
	if req.Quantity < 0 || req.MinThreshold < 0 {
		return nil, &ValidationError{Message: "quantity and minimum threshold cannot be negative"}
	}

	var tier *inventory.Tier
	var prefix, category string
	switch req.Tier {
	case TierL1:
		tier, prefix, category = &doc.L1Components, "RM", "raw-material"
	case TierL2:
		tier, prefix, category = &doc.L2Components, "CMP", "component"
	default:
		return nil, &ValidationError{Message: fmt.Sprintf("unknown tier %q", req.Tier)}
	}
	if req.Category != "" {
		category = req.Category
	}

	for i := range *tier {
		if strings.EqualFold((*tier)[i].ProductName, req.ProductName) {
			return nil, &ValidationError{Message: fmt.Sprintf("product %q already exists in %s", req.ProductName, req.Tier)}
		}
	}

	item := inventory.Item{
		ProductID:    nextProductID(*tier, prefix),
		ProductName:  req.ProductName,
		Category:     category,
		Unit:         req.Unit,
		Quantity:     req.Quantity,
		MinThreshold: req.MinThreshold,
	}
	*tier = append(*tier, item)

	doc.AppendLog(
		fmt.Sprintf("Product added: %s (%s) to %s", item.ProductName, item.ProductID, req.Tier),
		inventory.LogTypeAddProduct,
		fmt.Sprintf("starting quantity %s %s", strconv.FormatFloat(item.Quantity, 'f', -1, 64), item.Unit))

	return &(*tier)[len(*tier)-1], nil
}

// UpdateThreshold sets a product's minimum stock threshold
func UpdateThreshold(doc *inventory.Document, productID string, minThreshold float64) (*inventory.Item, error) {
	if minThreshold < 0 {
		return nil, &ValidationError{Message: "minimum threshold cannot be negative"}
	}
	for _, tier := range []inventory.Tier{doc.L1Components, doc.L2Components} {
		for i := range tier {
			if tier[i].ProductID == productID {
				tier[i].MinThreshold = minThreshold
				doc.AppendLog(fmt.Sprintf("Minimum threshold for %s set to %s",
					tier[i].ProductName, strconv.FormatFloat(minThreshold, 'f', -1, 64)), "", "")
				return &tier[i], nil
			}
		}
	}
	return nil, ErrProductNotFound
}

// nextProductID generates the next "PREFIX-NNN" id for a tier
func nextProductID(tier inventory.Tier, prefix string) string {
	max := 0
	for i := range tier {
		id := tier[i].ProductID
		if !strings.HasPrefix(id, prefix+"-") {
			continue
		}
		if n, err := strconv.Atoi(strings.TrimPrefix(id, prefix+"-")); err == nil && n > max {
			max = n
		}
	}
	return fmt.Sprintf("%s-%03d", prefix, max+1)
}

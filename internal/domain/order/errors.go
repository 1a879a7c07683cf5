// internal/domain/order/errors.go
package order

import (
	"errors"
	"fmt"
	"strings"

	"github.com/your-org/manufacturing-backend/internal/domain/inventory"
)

// ErrOrderNotFound is returned when the composite (type, seq) identity does
// not resolve to an order
var ErrOrderNotFound = errors.New("order not found")

// ValidationError rejects a request before any mutation happens
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a validation error from a format string
func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// Shortfall describes one material that cannot cover the requested quantity
type Shortfall struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Needed    float64 `json:"needed"`
	Available float64 `json:"available"`
}

// InsufficientStockError aborts an order start. Stock and order books are
// left unchanged; only a failure entry lands in the audit log.
type InsufficientStockError struct {
	Shortfalls []Shortfall
}

func (e *InsufficientStockError) Error() string {
	parts := make([]string, len(e.Shortfalls))
	for i, s := range e.Shortfalls {
		parts[i] = fmt.Sprintf("%s (needed %s, available %s)", s.Name, formatQty(s.Needed), formatQty(s.Available))
	}
	return "insufficient stock: " + strings.Join(parts, ", ")
}

// AlreadyCompletedError rejects a second completion of the same order
type AlreadyCompletedError struct {
	Type inventory.OrderType
	Seq  int
}

func (e *AlreadyCompletedError) Error() string {
	return fmt.Sprintf("%s order #%d is already completed", e.Type, e.Seq)
}

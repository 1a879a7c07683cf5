// internal/interfaces/http/handlers/errors.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/manufacturing-backend/internal/domain/inventory"
)

// respondStoreError maps persistence-level failures shared by every
// document endpoint. Returns true when the error was handled.
func respondStoreError(c *gin.Context, err error) bool {
	switch {
	case errors.Is(err, inventory.ErrVersionConflict):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Inventory was modified concurrently, please retry",
		})
		return true
	case errors.Is(err, inventory.ErrNotFound):
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Inventory document not initialized",
		})
		return true
	}
	return false
}

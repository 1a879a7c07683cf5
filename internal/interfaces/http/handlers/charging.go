// internal/interfaces/http/handlers/charging.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/manufacturing-backend/internal/config"
	"github.com/your-org/manufacturing-backend/internal/domain/charging"
	"github.com/your-org/manufacturing-backend/internal/domain/inventory"
)

// ChargingHandler handles charging circuit endpoints
type ChargingHandler struct {
	inventoryService *inventory.Service
	config           *config.Config
}

// NewChargingHandler creates a new charging handler
func NewChargingHandler(inv *inventory.Service, cfg *config.Config) *ChargingHandler {
	return &ChargingHandler{
		inventoryService: inv,
		config:           cfg,
	}
}

// ListCircuits handles GET /charging/circuits
func (h *ChargingHandler) ListCircuits(c *gin.Context) {
	doc, err := h.inventoryService.Snapshot(c.Request.Context())
	if err != nil {
		if respondStoreError(c, err) {
			return
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Failed to load circuits",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Circuits retrieved successfully",
		"data": gin.H{
			"circuits":      doc.Circuits,
			"finalProducts": doc.FinalProducts,
			"assigned":      doc.ChargeableAssigned(0),
		},
	})
}

// ListChargingOrders handles GET /charging/orders
func (h *ChargingHandler) ListChargingOrders(c *gin.Context) {
	doc, err := h.inventoryService.Snapshot(c.Request.Context())
	if err != nil {
		if respondStoreError(c, err) {
			return
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Failed to load charging orders",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Charging orders retrieved successfully",
		"data":    doc.ChargingOrders,
	})
}

// EditCircuit handles PUT /charging/circuits/:circuitNo
func (h *ChargingHandler) EditCircuit(c *gin.Context) {
	circuitNo, err := strconv.Atoi(c.Param("circuitNo"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid circuit number",
		})
		return
	}

	var req charging.EditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	var result *charging.Result
	_, err = h.inventoryService.Mutate(c.Request.Context(), func(doc *inventory.Document) error {
		r, err := charging.Apply(doc, circuitNo, req)
		if err != nil {
			return err
		}
		result = r
		return nil
	})
	if err != nil {
		var verr *charging.ValidationError
		switch {
		case errors.Is(err, charging.ErrCircuitNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Circuit not found",
			})
		case errors.As(err, &verr):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": verr.Error(),
			})
		default:
			if respondStoreError(c, err) {
				return
			}
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error": "Failed to update circuit",
			})
		}
		return
	}

	response := gin.H{
		"circuit": result.Circuit,
	}
	if result.ChargingOrder != nil {
		response["chargingOrder"] = result.ChargingOrder
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Circuit updated successfully",
		"data":    response,
	})
}

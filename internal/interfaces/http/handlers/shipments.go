// internal/interfaces/http/handlers/shipments.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/manufacturing-backend/internal/config"
	"github.com/your-org/manufacturing-backend/internal/domain/inventory"
	"github.com/your-org/manufacturing-backend/internal/domain/shipment"
)

// ShipmentHandler handles outbound shipment endpoints
type ShipmentHandler struct {
	inventoryService *inventory.Service
	config           *config.Config
}

// NewShipmentHandler creates a new shipment handler
func NewShipmentHandler(inv *inventory.Service, cfg *config.Config) *ShipmentHandler {
	return &ShipmentHandler{
		inventoryService: inv,
		config:           cfg,
	}
}

// ListShipments handles GET /shipments
func (h *ShipmentHandler) ListShipments(c *gin.Context) {
	doc, err := h.inventoryService.Snapshot(c.Request.Context())
	if err != nil {
		if respondStoreError(c, err) {
			return
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Failed to load shipments",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Shipments retrieved successfully",
		"data":    doc.Shipments,
	})
}

// CreateShipment handles POST /shipments
func (h *ShipmentHandler) CreateShipment(c *gin.Context) {
	var req shipment.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	var created *inventory.Shipment
	_, err := h.inventoryService.Mutate(c.Request.Context(), func(doc *inventory.Document) error {
		s, err := shipment.Create(doc, req)
		if err != nil {
			return err
		}
		created = s
		return nil
	})
	if err != nil {
		var verr *shipment.ValidationError
		var insufficient *shipment.InsufficientStockError
		switch {
		case errors.As(err, &insufficient):
			c.JSON(http.StatusConflict, gin.H{
				"error": insufficient.Error(),
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
				"error": "Failed to create shipment",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Shipment created successfully",
		"data":    created,
	})
}

// UpdateShipmentStatusRequest carries the new delivery status
type UpdateShipmentStatusRequest struct {
	Status inventory.ShipmentStatus `json:"status" binding:"required"`
}

// UpdateShipmentStatus handles PUT /shipments/:id/status
func (h *ShipmentHandler) UpdateShipmentStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid shipment ID",
		})
		return
	}

	var req UpdateShipmentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	var updated *inventory.Shipment
	_, err = h.inventoryService.Mutate(c.Request.Context(), func(doc *inventory.Document) error {
		s, err := shipment.UpdateStatus(doc, id, req.Status)
		if err != nil {
			return err
		}
		updated = s
		return nil
	})
	if err != nil {
		h.respondShipmentError(c, err, "Failed to update shipment")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Shipment updated successfully",
		"data":    updated,
	})
}

// DeleteShipment handles DELETE /shipments/:id
func (h *ShipmentHandler) DeleteShipment(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid shipment ID",
		})
		return
	}

	_, err = h.inventoryService.Mutate(c.Request.Context(), func(doc *inventory.Document) error {
		return shipment.Delete(doc, id)
	})
	if err != nil {
		h.respondShipmentError(c, err, "Failed to delete shipment")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Shipment deleted successfully",
	})
}

// respondShipmentError maps shipment domain errors onto HTTP responses
func (h *ShipmentHandler) respondShipmentError(c *gin.Context, err error, fallback string) {
	var verr *shipment.ValidationError
	switch {
	case errors.Is(err, shipment.ErrShipmentNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Shipment not found",
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
			"error": fallback,
		})
	}
}

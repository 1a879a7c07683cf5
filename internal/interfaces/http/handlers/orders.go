// internal/interfaces/http/handlers/orders.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/manufacturing-backend/internal/config"
	"github.com/your-org/manufacturing-backend/internal/domain/bom"
	"github.com/your-org/manufacturing-backend/internal/domain/inventory"
	"github.com/your-org/manufacturing-backend/internal/domain/order"
)

// OrderHandler handles production and assembly order endpoints
type OrderHandler struct {
	inventoryService *inventory.Service
	config           *config.Config
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(inv *inventory.Service, cfg *config.Config) *OrderHandler {
	return &OrderHandler{
		inventoryService: inv,
		config:           cfg,
	}
}

// ListOrders handles GET /orders
func (h *OrderHandler) ListOrders(c *gin.Context) {
	doc, err := h.inventoryService.Snapshot(c.Request.Context())
	if err != nil {
		if respondStoreError(c, err) {
			return
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Failed to load orders",
		})
		return
	}

	switch inventory.OrderType(c.Query("type")) {
	case inventory.OrderTypeProduction:
		c.JSON(http.StatusOK, gin.H{
			"message": "Orders retrieved successfully",
			"data":    doc.ProductionOrders,
		})
	case inventory.OrderTypeAssembly:
		c.JSON(http.StatusOK, gin.H{
			"message": "Orders retrieved successfully",
			"data":    doc.AssemblyOrders,
		})
	default:
		c.JSON(http.StatusOK, gin.H{
			"message": "Orders retrieved successfully",
			"data": gin.H{
				"production": doc.ProductionOrders,
				"assembly":   doc.AssemblyOrders,
			},
		})
	}
}

// PredictOutput handles POST /orders/predict
func (h *OrderHandler) PredictOutput(c *gin.Context) {
	var req order.StartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}
	if !req.Kind.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Unknown BOM kind",
		})
		return
	}

	doc, err := h.inventoryService.Snapshot(c.Request.Context())
	if err != nil {
		if respondStoreError(c, err) {
			return
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Failed to load inventory",
		})
		return
	}

	predicted := order.PredictOutput(doc, req.Kind, req.RequestedOutput, req.Materials)
	c.JSON(http.StatusOK, gin.H{
		"message": "Predicted output computed successfully",
		"data": gin.H{
			"bomKind":         req.Kind,
			"predictedOutput": predicted,
			"maxAchievable":   bom.MaxAchievable(doc.BOM(req.Kind), doc.TierFor(req.Kind)),
		},
	})
}

// StartOrder handles POST /orders/start
func (h *OrderHandler) StartOrder(c *gin.Context) {
	var req order.StartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	var started *inventory.Order
	var insufficient *order.InsufficientStockError
	_, err := h.inventoryService.Mutate(c.Request.Context(), func(doc *inventory.Document) error {
		o, err := order.Start(doc, req)
		if err != nil {
			// An insufficiency leaves a failure entry in the audit log and
			// nothing else; saving the document keeps that entry on record.
			if errors.As(err, &insufficient) {
				return nil
			}
			return err
		}
		started = o
		return nil
	})
	if err != nil {
		var verr *order.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": verr.Error(),
			})
			return
		}
		if respondStoreError(c, err) {
			return
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Failed to start order",
		})
		return
	}

	if insufficient != nil {
		c.JSON(http.StatusConflict, gin.H{
			"error":      insufficient.Error(),
			"shortfalls": insufficient.Shortfalls,
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order started successfully",
		"data":    started,
	})
}

// CompleteOrder handles POST /orders/complete
func (h *OrderHandler) CompleteOrder(c *gin.Context) {
	var req order.CompleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	var completed *inventory.Order
	_, err := h.inventoryService.Mutate(c.Request.Context(), func(doc *inventory.Document) error {
		o, err := order.Complete(doc, req)
		if err != nil {
			return err
		}
		completed = o
		return nil
	})
	if err != nil {
		var verr *order.ValidationError
		var done *order.AlreadyCompletedError
		switch {
		case errors.Is(err, order.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Order not found",
			})
		case errors.As(err, &done):
			c.JSON(http.StatusConflict, gin.H{
				"error": done.Error(),
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
				"error": "Failed to complete order",
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order completed successfully",
		"data":    completed,
	})
}

// internal/interfaces/http/handlers/stock.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/manufacturing-backend/internal/config"
	"github.com/your-org/manufacturing-backend/internal/domain/analytics"
	"github.com/your-org/manufacturing-backend/internal/domain/inventory"
	"github.com/your-org/manufacturing-backend/internal/domain/product"
)

// StockHandler handles stock tier endpoints
type StockHandler struct {
	inventoryService *inventory.Service
	config           *config.Config
}

// NewStockHandler creates a new stock handler
func NewStockHandler(inv *inventory.Service, cfg *config.Config) *StockHandler {
	return &StockHandler{
		inventoryService: inv,
		config:           cfg,
	}
}

// GetStock handles GET /stock
func (h *StockHandler) GetStock(c *gin.Context) {
	doc, err := h.inventoryService.Snapshot(c.Request.Context())
	if err != nil {
		if respondStoreError(c, err) {
			return
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Failed to load stock",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Stock retrieved successfully",
		"data":    analytics.BuildStockSummary(doc),
	})
}

// AddProduct handles POST /stock/products
func (h *StockHandler) AddProduct(c *gin.Context) {
	var req product.AddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	var created *inventory.Item
	_, err := h.inventoryService.Mutate(c.Request.Context(), func(doc *inventory.Document) error {
		item, err := product.Add(doc, req)
		if err != nil {
			return err
		}
		created = item
		return nil
	})
	if err != nil {
		var verr *product.ValidationError
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
			"error": "Failed to add product",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Product added successfully",
		"data":    created,
	})
}

// InitializeDocument handles POST /stock/initialize. Creates the inventory
// document from the seed when absent; a no-op on an initialized system.
func (h *StockHandler) InitializeDocument(c *gin.Context) {
	doc, err := h.inventoryService.Initialize(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Failed to initialize inventory document",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Inventory document initialized",
		"data": gin.H{
			"warnings": doc.ValidateBOMs(),
		},
	})
}

// UpdateThresholdRequest carries the new low-stock threshold
type UpdateThresholdRequest struct {
	MinThreshold float64 `json:"minThreshold"`
}

// UpdateThreshold handles PUT /stock/products/:productId/threshold
func (h *StockHandler) UpdateThreshold(c *gin.Context) {
	productID := c.Param("productId")

	var req UpdateThresholdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	var updated *inventory.Item
	_, err := h.inventoryService.Mutate(c.Request.Context(), func(doc *inventory.Document) error {
		item, err := product.UpdateThreshold(doc, productID, req.MinThreshold)
		if err != nil {
			return err
		}
		updated = item
		return nil
	})
	if err != nil {
		var verr *product.ValidationError
		switch {
		case errors.Is(err, product.ErrProductNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Product not found",
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
				"error": "Failed to update threshold",
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Threshold updated successfully",
		"data":    updated,
	})
}

// internal/interfaces/http/handlers/reports.go
package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/your-org/manufacturing-backend/internal/config"
	"github.com/your-org/manufacturing-backend/internal/domain/analytics"
	"github.com/your-org/manufacturing-backend/internal/domain/inventory"
	"github.com/your-org/manufacturing-backend/internal/pkg/pdf"
)

// ReportsHandler handles analytics and report endpoints
type ReportsHandler struct {
	inventoryService *inventory.Service
	pdfService       *pdf.Service
	config           *config.Config
}

// NewReportsHandler creates a new reports handler
func NewReportsHandler(inv *inventory.Service, cfg *config.Config) *ReportsHandler {
	return &ReportsHandler{
		inventoryService: inv,
		pdfService:       pdf.NewService(cfg),
		config:           cfg,
	}
}

// GetSummary handles GET /reports/summary
func (h *ReportsHandler) GetSummary(c *gin.Context) {
	doc, err := h.inventoryService.Snapshot(c.Request.Context())
	if err != nil {
		if respondStoreError(c, err) {
			return
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Failed to load summary",
		})
		return
	}

	summary := analytics.BuildSummary(doc)
	c.JSON(http.StatusOK, gin.H{
		"message": "Summary retrieved successfully",
		"data":    summary,
	})
}

// GetDiscrepancies handles GET /reports/discrepancies
func (h *ReportsHandler) GetDiscrepancies(c *gin.Context) {
	doc, err := h.inventoryService.Snapshot(c.Request.Context())
	if err != nil {
		if respondStoreError(c, err) {
			return
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Failed to load discrepancy history",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Discrepancy history retrieved successfully",
		"data":    analytics.DiscrepancyHistory(doc),
	})
}

// DownloadProductionReport handles GET /reports/production/pdf
func (h *ReportsHandler) DownloadProductionReport(c *gin.Context) {
	doc, err := h.inventoryService.Snapshot(c.Request.Context())
	if err != nil {
		if respondStoreError(c, err) {
			return
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Failed to load report data",
		})
		return
	}

	summary := analytics.BuildSummary(doc)
	buf, err := h.pdfService.GenerateProductionReport(&summary)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to generate report",
		})
		return
	}

	filename := fmt.Sprintf("production-report-%s.pdf", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

// DownloadShipmentManifest handles GET /reports/shipments/pdf
func (h *ReportsHandler) DownloadShipmentManifest(c *gin.Context) {
	doc, err := h.inventoryService.Snapshot(c.Request.Context())
	if err != nil {
		if respondStoreError(c, err) {
			return
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Failed to load manifest data",
		})
		return
	}

	buf, err := h.pdfService.GenerateShipmentManifest(doc.Shipments)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to generate manifest",
		})
		return
	}

	filename := fmt.Sprintf("shipment-manifest-%s.pdf", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

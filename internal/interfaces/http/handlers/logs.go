// internal/interfaces/http/handlers/logs.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/manufacturing-backend/internal/config"
	"github.com/your-org/manufacturing-backend/internal/domain/inventory"
)

// LogsHandler handles audit log endpoints
type LogsHandler struct {
	inventoryService *inventory.Service
	config           *config.Config
}

// NewLogsHandler creates a new logs handler
func NewLogsHandler(inv *inventory.Service, cfg *config.Config) *LogsHandler {
	return &LogsHandler{
		inventoryService: inv,
		config:           cfg,
	}
}

// ListLogs handles GET /logs, newest entries first
func (h *LogsHandler) ListLogs(c *gin.Context) {
	doc, err := h.inventoryService.Snapshot(c.Request.Context())
	if err != nil {
		if respondStoreError(c, err) {
			return
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Failed to load logs",
		})
		return
	}

	typeFilter := inventory.LogType(c.Query("type"))

	entries := make([]inventory.LogEntry, 0, len(doc.Logs))
	for i := len(doc.Logs) - 1; i >= 0; i-- {
		if typeFilter != "" && doc.Logs[i].LogType != typeFilter {
			continue
		}
		entries = append(entries, doc.Logs[i])
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Logs retrieved successfully",
		"data":    entries,
	})
}

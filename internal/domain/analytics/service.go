// internal/domain/analytics/service.go
package analytics

import (
	"github.com/your-org/manufacturing-backend/internal/domain/inventory"
)

// StockItemSummary is one stock line with its low-stock flag
type StockItemSummary struct {
	inventory.Item
	LowStock bool `json:"lowStock"`
}

// StockSummary reports both tiers plus the finished-goods counters
type StockSummary struct {
	L1Components  []StockItemSummary `json:"l1_component"`
	L2Components  []StockItemSummary `json:"l2_component"`
	FinalProducts int                `json:"finalProducts"`
	Batteries     int                `json:"batteries"`
	Inverters     int                `json:"inverters"`
	LowStockCount int                `json:"lowStockCount"`
}

// OrderStats aggregates one order book
type OrderStats struct {
	Total             int `json:"total"`
	Started           int `json:"started"`
	Completed         int `json:"completed"`
	PredictedOutput   int `json:"predictedOutput"`
	ActualOutput      int `json:"actualOutput"`
	WithDiscrepancies int `json:"withDiscrepancies"`
}

// CircuitStats aggregates charging activity for one slot
type CircuitStats struct {
	CircuitNo       int     `json:"circuitNo"`
	CompletedOrders int     `json:"completedOrders"`
	BatteriesDone   int     `json:"batteriesDone"`
	TotalHours      float64 `json:"totalHours"`
}

// Summary is the dashboard payload
type Summary struct {
	Stock      StockSummary   `json:"stock"`
	Production OrderStats     `json:"production"`
	Assembly   OrderStats     `json:"assembly"`
	Charging   []CircuitStats `json:"charging"`
	Shipments  int            `json:"shipments"`
}

// BuildSummary derives the dashboard summary from a document snapshot
func BuildSummary(doc *inventory.Document) Summary {
	return Summary{
		Stock:      BuildStockSummary(doc),
		Production: buildOrderStats(doc.ProductionOrders),
		Assembly:   buildOrderStats(doc.AssemblyOrders),
		Charging:   BuildChargingStats(doc),
		Shipments:  len(doc.Shipments),
	}
}

// BuildStockSummary flags low stock across both tiers
func BuildStockSummary(doc *inventory.Document) StockSummary {
	summary := StockSummary{
		L1Components:  flagTier(doc.L1Components),
		L2Components:  flagTier(doc.L2Components),
		FinalProducts: doc.FinalProducts,
		Batteries:     doc.Batteries,
		Inverters:     doc.Inverters,
	}
	for _, it := range summary.L1Components {
		if it.LowStock {
			summary.LowStockCount++
		}
	}
	for _, it := range summary.L2Components {
		if it.LowStock {
			summary.LowStockCount++
		}
	}
	return summary
}

// BuildChargingStats aggregates completed charging orders per circuit
func BuildChargingStats(doc *inventory.Document) []CircuitStats {
	stats := make([]CircuitStats, 0, len(doc.Circuits))
	byCircuit := make(map[int]*CircuitStats, len(doc.Circuits))
	for i := range doc.Circuits {
		stats = append(stats, CircuitStats{CircuitNo: doc.Circuits[i].CircuitNo})
	}
	for i := range stats {
		byCircuit[stats[i].CircuitNo] = &stats[i]
	}
	for _, co := range doc.ChargingOrders {
		s, ok := byCircuit[co.CircuitNo]
		if !ok {
			continue
		}
		s.CompletedOrders++
		s.BatteriesDone += co.Quantity
		s.TotalHours += co.DurationHours
	}
	return stats
}

// DiscrepancyHistory filters the audit log down to discrepancy entries,
// newest first
func DiscrepancyHistory(doc *inventory.Document) []inventory.LogEntry {
	var out []inventory.LogEntry
	for i := len(doc.Logs) - 1; i >= 0; i-- {
		if doc.Logs[i].LogType == inventory.LogTypeDiscrepancy {
			out = append(out, doc.Logs[i])
		}
	}
	return out
}

func flagTier(tier inventory.Tier) []StockItemSummary {
	out := make([]StockItemSummary, len(tier))
	for i := range tier {
		out[i] = StockItemSummary{Item: tier[i], LowStock: tier[i].IsLowStock()}
	}
	return out
}

func buildOrderStats(book []inventory.Order) OrderStats {
	stats := OrderStats{Total: len(book)}
	for i := range book {
		o := &book[i]
		if o.IsCompleted() {
			stats.Completed++
			if o.ActualOutput != nil {
				stats.ActualOutput += *o.ActualOutput
			}
			if len(o.DiscrepancyMessages) > 0 {
				stats.WithDiscrepancies++
			}
		} else {
			stats.Started++
		}
		stats.PredictedOutput += o.PredictedOutput
	}
	return stats
}

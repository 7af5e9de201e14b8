// Package optimizer implements the stock optimization engine: a pure
// computation that turns an inventory snapshot into reorder points,
// order quantities and restock priorities. It performs no I/O; the
// evaluation date is always passed in so results are reproducible.
package optimizer

import (
	"fmt"
	"math"
	"time"

	"github.com/aims-retail/aims-backend/internal/domain"
)

// Stock status bands, ordered by severity below the reorder point.
const (
	StatusCritical = "critical"
	StatusLow      = "low"
	StatusWarning  = "warning"
	StatusOptimal  = "optimal"
	StatusExcess   = "excess"
)

// Action priorities derived from status.
const (
	PriorityUrgent = "urgent"
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

const (
	// LeadTimeDays is the fixed interval between placing and receiving
	// an order.
	LeadTimeDays = 7

	// SafetyStockDays is the demand buffer held on top of lead-time
	// demand.
	SafetyStockDays = 3

	// orderWindowDays sizes the economic order quantity: two weeks of
	// projected demand.
	orderWindowDays = 14
)

// Result is the optimization outcome for a single item. It is computed
// fresh on every call and never persisted.
type Result struct {
	Status                string  `json:"status"`
	Priority              string  `json:"priority"`
	Recommendation        string  `json:"recommendation"`
	OrderQuantity         int     `json:"order_quantity"`
	ReorderPoint          float64 `json:"reorder_point"`
	EconomicOrderQuantity int     `json:"economic_order_quantity"`
	CurrentStock          int     `json:"current_stock"`
	StockRatio            float64 `json:"stock_ratio"`
	DailyDemand           int     `json:"daily_demand"`
	DaysOfStock           int     `json:"days_of_stock"`
	SafetyStock           int     `json:"safety_stock"`
}

// Optimize computes the reorder point, order quantity and priority
// classification for one item as of the given date.
//
// optimalStock <= 0 short-circuits to a no-action result: with no
// demand there is no reorder point to classify against.
func Optimize(item domain.InventoryItem, at time.Time) Result {
	demand := EstimateDailyDemand(item.OptimalStock, item.Category, at)
	if demand <= 0 {
		return Result{
			Status:         StatusOptimal,
			Priority:       PriorityLow,
			Recommendation: "No demand baseline; set an optimal stock level first",
			CurrentStock:   item.CurrentStock,
		}
	}

	reorderPoint := demand*LeadTimeDays + demand*SafetyStockDays
	eoq := int(math.Ceil(demand * orderWindowDays))
	ratio := float64(item.CurrentStock) / reorderPoint
	band := snapToBand(ratio)

	result := Result{
		ReorderPoint:          reorderPoint,
		EconomicOrderQuantity: eoq,
		CurrentStock:          item.CurrentStock,
		StockRatio:            ratio,
		DailyDemand:           int(math.Round(demand)),
		DaysOfStock:           int(math.Round(float64(item.CurrentStock) / demand)),
		SafetyStock:           int(math.Round(demand * SafetyStockDays)),
	}

	switch {
	case band < 0.3:
		result.Status = StatusCritical
		result.Priority = PriorityUrgent
		result.OrderQuantity = eoq
		result.Recommendation = fmt.Sprintf(
			"URGENT: Order %d %s immediately to avoid stockout", eoq, item.Unit)
	case band < 0.5:
		result.Status = StatusLow
		result.Priority = PriorityHigh
		result.OrderQuantity = eoq
		result.Recommendation = fmt.Sprintf(
			"Order %d %s within 24 hours", eoq, item.Unit)
	case band < 0.7:
		result.Status = StatusWarning
		result.Priority = PriorityMedium
		result.OrderQuantity = int(math.Ceil(float64(eoq) * 0.7))
		result.Recommendation = fmt.Sprintf(
			"Plan order for %d %s within 3 days", result.OrderQuantity, item.Unit)
	case band <= 1.3:
		result.Status = StatusOptimal
		result.Priority = PriorityLow
		result.Recommendation = "Stock levels are optimal"
	default:
		result.Status = StatusExcess
		result.Priority = PriorityLow
		excess := int(math.Floor(float64(item.CurrentStock) - reorderPoint))
		result.Recommendation = fmt.Sprintf(
			"Consider reducing by %d %s or running promotion", excess, item.Unit)
	}

	return result
}

// bandBoundaries are the classification edges; a ratio exactly on an
// edge belongs to the higher band.
var bandBoundaries = [...]float64{0.3, 0.5, 0.7, 1.3}

// snapToBand absorbs floating error around the band edges so a ratio
// that is mathematically on a boundary is not dropped into the lower
// bucket.
func snapToBand(ratio float64) float64 {
	const eps = 1e-9
	for _, b := range bandBoundaries {
		if math.Abs(ratio-b) < eps {
			return b
		}
	}
	return ratio
}

// ItemResult pairs an inventory item with its optimization result.
type ItemResult struct {
	Item   domain.InventoryItem `json:"item"`
	Result Result               `json:"optimization"`
}

// OptimizeBatch evaluates every item against the same date. Two calls
// with the same items and date produce identical output.
func OptimizeBatch(items []domain.InventoryItem, at time.Time) []ItemResult {
	results := make([]ItemResult, 0, len(items))
	for _, item := range items {
		results = append(results, ItemResult{Item: item, Result: Optimize(item, at)})
	}
	return results
}

// Plan partitions batch results into priority buckets and a combined
// restock list with the computed order quantities preserved.
type Plan struct {
	Urgent       []ItemResult `json:"urgent"`
	High         []ItemResult `json:"high"`
	Medium       []ItemResult `json:"medium"`
	NeedsRestock []ItemResult `json:"needs_restock"`
}

// BuildPlan groups results by action priority. Items with priority
// "low" (optimal or excess stock) need no action and are excluded.
func BuildPlan(results []ItemResult) Plan {
	var plan Plan
	for _, r := range results {
		switch r.Result.Priority {
		case PriorityUrgent:
			plan.Urgent = append(plan.Urgent, r)
		case PriorityHigh:
			plan.High = append(plan.High, r)
		case PriorityMedium:
			plan.Medium = append(plan.Medium, r)
		}
	}

	plan.NeedsRestock = make([]ItemResult, 0, len(plan.Urgent)+len(plan.High)+len(plan.Medium))
	plan.NeedsRestock = append(plan.NeedsRestock, plan.Urgent...)
	plan.NeedsRestock = append(plan.NeedsRestock, plan.High...)
	plan.NeedsRestock = append(plan.NeedsRestock, plan.Medium...)

	return plan
}

// Summary renders the one-line restock digest shown to the operator.
func (p Plan) Summary() string {
	if len(p.NeedsRestock) == 0 {
		return "All inventory levels are optimized"
	}

	msg := fmt.Sprintf("%d items need restocking: ", len(p.NeedsRestock))
	parts := make([]string, 0, 3)
	if n := len(p.Urgent); n > 0 {
		parts = append(parts, fmt.Sprintf("%d urgent", n))
	}
	if n := len(p.High); n > 0 {
		parts = append(parts, fmt.Sprintf("%d high priority", n))
	}
	if n := len(p.Medium); n > 0 {
		parts = append(parts, fmt.Sprintf("%d medium priority", n))
	}
	for i, part := range parts {
		if i > 0 {
			msg += ", "
		}
		msg += part
	}
	return msg
}

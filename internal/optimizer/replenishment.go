package optimizer

// OrderPriority classifies an already-created replenishment order by
// the ratio of current stock to optimal stock.
//
// Note this deliberately differs from Optimize: it divides by optimal
// stock, not the reorder point, and uses coarser thresholds. The two
// classifications are used by different workflows (order creation vs
// dashboard optimization) and must not be unified.
func OrderPriority(currentStock, optimalStock int) string {
	if optimalStock <= 0 {
		return PriorityLow
	}

	ratio := float64(currentStock) / float64(optimalStock)
	switch {
	case ratio <= 0.2:
		return "critical"
	case ratio <= 0.4:
		return PriorityHigh
	case ratio <= 0.6:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

package domain

import "strings"

// Replenishment order lifecycle.
const (
	OrderStatusPending  = "pending"
	OrderStatusApproved = "approved"
	OrderStatusRejected = "rejected"
)

// Defect report lifecycle.
const (
	DefectStatusReported        = "reported"
	DefectStatusReturnRequested = "return_requested"
	DefectStatusResolved        = "resolved"
)

// Notification lifecycle.
const (
	NotificationStatusPending  = "pending"
	NotificationStatusApproved = "approved"
	NotificationStatusRejected = "rejected"
	NotificationStatusRead     = "read"
)

var orderPriorityRanks = map[string]int{
	"critical": 0,
	"high":     1,
	"medium":   2,
	"low":      3,
}

// OrderPriorityRank returns the sort rank for an order priority,
// lower is more urgent. Unknown priorities sort last.
func OrderPriorityRank(priority string) int {
	if rank, ok := orderPriorityRanks[strings.ToLower(priority)]; ok {
		return rank
	}

	return len(orderPriorityRanks)
}

// ValidOrderPriority reports whether the label is a known order priority.
func ValidOrderPriority(priority string) bool {
	_, ok := orderPriorityRanks[strings.ToLower(priority)]
	return ok
}

package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// NotificationType discriminates the action payload carried by a notification.
type NotificationType string

const (
	NotificationReorder  NotificationType = "reorder"
	NotificationLowStock NotificationType = "low_stock"
	NotificationExpiring NotificationType = "expiring"
	NotificationDiscount NotificationType = "discount"
	NotificationDefect   NotificationType = "defect"
)

// Notification is an actionable alert surfaced to the store manager.
// Action is a tagged union keyed by Type; RawAction holds the JSONB
// column and is decoded lazily via DecodeAction.
type Notification struct {
	ID        int64            `json:"id" db:"id"`
	Type      NotificationType `json:"type" db:"type"`
	Title     string           `json:"title" db:"title"`
	Message   string           `json:"message" db:"message"`
	SKU       string           `json:"sku" db:"sku"`
	Status    string           `json:"status" db:"status"`
	RawAction json.RawMessage  `json:"action_data,omitempty" db:"action_data"`
	CreatedAt time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt time.Time        `json:"updated_at" db:"updated_at"`
}

// ActionData is implemented by every notification payload variant.
type ActionData interface {
	NotificationType() NotificationType
}

// ReorderAction backs NotificationReorder.
type ReorderAction struct {
	CurrentStock        int     `json:"current_stock"`
	OptimalStock        int     `json:"optimal_stock"`
	RecommendedQuantity int     `json:"recommended_quantity"`
	DailyDemand         float64 `json:"daily_demand"`
	DaysUntilStockout   int     `json:"days_until_stockout"`
	Priority            string  `json:"priority"`
}

func (ReorderAction) NotificationType() NotificationType { return NotificationReorder }

// LowStockAction backs NotificationLowStock.
type LowStockAction struct {
	CurrentStock      int     `json:"current_stock"`
	OptimalStock      int     `json:"optimal_stock"`
	RecommendedOrder  int     `json:"recommended_order"`
	DailyDemand       float64 `json:"daily_demand"`
	DaysUntilStockout int     `json:"days_until_stockout"`
}

func (LowStockAction) NotificationType() NotificationType { return NotificationLowStock }

// ExpiringAction backs NotificationExpiring.
type ExpiringAction struct {
	ExpiryDate        time.Time       `json:"expiry_date"`
	DaysUntilExpiry   int             `json:"days_until_expiry"`
	CurrentStock      int             `json:"current_stock"`
	DailySales        float64         `json:"daily_sales"`
	DaysToSell        int             `json:"days_to_sell"`
	SuggestedDiscount int             `json:"suggested_discount"`
	OriginalPrice     decimal.Decimal `json:"original_price"`
}

func (ExpiringAction) NotificationType() NotificationType { return NotificationExpiring }

// DiscountAction backs NotificationDiscount (overstocked, slow moving).
type DiscountAction struct {
	CurrentStock      int             `json:"current_stock"`
	OptimalStock      int             `json:"optimal_stock"`
	StockRatio        float64         `json:"stock_ratio"`
	MonthlySales      int             `json:"monthly_sales"`
	SuggestedDiscount int             `json:"suggested_discount"`
	OriginalPrice     decimal.Decimal `json:"original_price"`
	OfferType         string          `json:"offer_type"`
}

func (DiscountAction) NotificationType() NotificationType { return NotificationDiscount }

// DefectAction backs NotificationDefect.
type DefectAction struct {
	DefectID      int64  `json:"defect_id"`
	Quantity      int    `json:"quantity"`
	Description   string `json:"description"`
	SupplierEmail string `json:"supplier_email"`
}

func (DefectAction) NotificationType() NotificationType { return NotificationDefect }

// EncodeAction serializes a payload variant for storage.
func EncodeAction(action ActionData) (json.RawMessage, error) {
	if action == nil {
		return nil, nil
	}

	raw, err := json.Marshal(action)
	if err != nil {
		return nil, fmt.Errorf("encode %s action: %w", action.NotificationType(), err)
	}
	return raw, nil
}

// DecodeAction deserializes a stored payload into the variant matching
// the notification type.
func DecodeAction(t NotificationType, raw json.RawMessage) (ActionData, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var (
		action ActionData
		err    error
	)
	switch t {
	case NotificationReorder:
		var a ReorderAction
		err = json.Unmarshal(raw, &a)
		action = a
	case NotificationLowStock:
		var a LowStockAction
		err = json.Unmarshal(raw, &a)
		action = a
	case NotificationExpiring:
		var a ExpiringAction
		err = json.Unmarshal(raw, &a)
		action = a
	case NotificationDiscount:
		var a DiscountAction
		err = json.Unmarshal(raw, &a)
		action = a
	case NotificationDefect:
		var a DefectAction
		err = json.Unmarshal(raw, &a)
		action = a
	default:
		return nil, fmt.Errorf("unknown notification type %q", t)
	}

	if err != nil {
		return nil, fmt.Errorf("decode %s action: %w", t, err)
	}
	return action, nil
}

// Action decodes the notification's payload using its own type tag.
func (n *Notification) Action() (ActionData, error) {
	return DecodeAction(n.Type, n.RawAction)
}

// SetAction encodes and attaches a payload, enforcing the type tag.
func (n *Notification) SetAction(action ActionData) error {
	if action != nil && action.NotificationType() != n.Type {
		return fmt.Errorf("action type %s does not match notification type %s",
			action.NotificationType(), n.Type)
	}

	raw, err := EncodeAction(action)
	if err != nil {
		return err
	}
	n.RawAction = raw
	return nil
}

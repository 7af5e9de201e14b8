package service

import (
	"context"
	"fmt"
	"time"

	"github.com/aims-retail/aims-backend/internal/domain"
	"github.com/aims-retail/aims-backend/internal/repository"
	"github.com/shopspring/decimal"
)

const offerDurationDays = 14

// DiscountService turns approved discount suggestions into live offers
// and reprices the inventory row.
type DiscountService struct {
	discounts     repository.DiscountRepository
	inventory     repository.InventoryRepository
	notifications repository.NotificationRepository
	now           func() time.Time
}

func NewDiscountService(
	discounts repository.DiscountRepository,
	inventory repository.InventoryRepository,
	notifications repository.NotificationRepository,
) *DiscountService {
	return &DiscountService{
		discounts:     discounts,
		inventory:     inventory,
		notifications: notifications,
		now:           time.Now,
	}
}

func (s *DiscountService) ListActive(ctx context.Context) ([]domain.DiscountOffer, error) {
	return s.discounts.ListActive(ctx)
}

// Resolve approves or rejects a discount suggestion (expiring or
// overstock notification). Approval creates a 14-day offer and applies
// the discounted price to the item; percentage overrides the suggested
// discount when positive.
func (s *DiscountService) Resolve(ctx context.Context, notificationID int64, action string, percentage int, offerType string) (*domain.DiscountOffer, error) {
	n, err := s.notifications.GetByID(ctx, notificationID)
	if err != nil {
		return nil, err
	}

	switch action {
	case "reject":
		return nil, s.notifications.UpdateStatus(ctx, notificationID, domain.NotificationStatusRejected)
	case "approve":
	default:
		return nil, domain.ErrInvalidAction
	}

	originalPrice, suggested, suggestedType, err := discountDefaults(n)
	if err != nil {
		return nil, err
	}

	discount := suggested
	if percentage > 0 {
		discount = percentage
	}
	if offerType == "" {
		offerType = suggestedType
	}
	if offerType == "" {
		offerType = "percentage_off"
	}

	discountedPrice := originalPrice.Mul(
		decimal.NewFromInt(100 - int64(discount))).Div(decimal.NewFromInt(100))

	reason := "overstocked"
	if n.Type == domain.NotificationExpiring {
		reason = "expiring"
	}

	productName := ""
	if item, err := s.inventory.GetBySKU(ctx, n.SKU); err == nil {
		productName = item.Name
	}

	start := s.now()
	offer := &domain.DiscountOffer{
		SKU:                n.SKU,
		ProductName:        productName,
		OriginalPrice:      originalPrice,
		DiscountPercentage: discount,
		DiscountedPrice:    discountedPrice,
		OfferType:          offerType,
		Reason:             reason,
		Status:             "active",
		StartDate:          start,
		EndDate:            start.Add(offerDurationDays * 24 * time.Hour),
	}
	if err := s.discounts.CreateOffer(ctx, offer); err != nil {
		return nil, err
	}

	if err := s.inventory.ApplyDiscount(ctx, n.SKU, discount, discountedPrice); err != nil {
		return offer, err
	}
	if err := s.notifications.UpdateStatus(ctx, notificationID, domain.NotificationStatusApproved); err != nil {
		return offer, err
	}

	return offer, nil
}

// discountDefaults pulls price and suggested discount out of either
// payload variant that can carry one.
func discountDefaults(n *domain.Notification) (decimal.Decimal, int, string, error) {
	payload, err := n.Action()
	if err != nil {
		return decimal.Zero, 0, "", err
	}

	switch a := payload.(type) {
	case domain.ExpiringAction:
		return a.OriginalPrice, a.SuggestedDiscount, "", nil
	case domain.DiscountAction:
		return a.OriginalPrice, a.SuggestedDiscount, a.OfferType, nil
	default:
		return decimal.Zero, 0, "", fmt.Errorf(
			"notification %d (%s) carries no discount suggestion", n.ID, n.Type)
	}
}

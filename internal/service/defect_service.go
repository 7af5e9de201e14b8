package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/aims-retail/aims-backend/internal/domain"
	"github.com/aims-retail/aims-backend/internal/mailer"
	"github.com/aims-retail/aims-backend/internal/realtime"
	"github.com/aims-retail/aims-backend/internal/repository"
	"github.com/rs/zerolog/log"
)

// DefectService handles defective-product reports: stock write-down,
// defect flagging, supplier return requests.
type DefectService struct {
	defects       repository.DefectRepository
	inventory     repository.InventoryRepository
	notifications repository.NotificationRepository
	mail          mailer.Mailer
	hub           *realtime.Hub
}

func NewDefectService(
	defects repository.DefectRepository,
	inventory repository.InventoryRepository,
	notifications repository.NotificationRepository,
	mail mailer.Mailer,
	hub *realtime.Hub,
) *DefectService {
	return &DefectService{
		defects:       defects,
		inventory:     inventory,
		notifications: notifications,
		mail:          mail,
		hub:           hub,
	}
}

func (s *DefectService) List(ctx context.Context, status string) ([]domain.DefectReport, error) {
	return s.defects.List(ctx, status)
}

// Report records the defect, removes the units from stock, flags the
// item and raises a pending notification for the manager.
func (s *DefectService) Report(ctx context.Context, sku string, quantity int, description string) (*domain.DefectReport, error) {
	item, err := s.inventory.GetBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}

	report := &domain.DefectReport{
		SKU:               sku,
		ProductName:       item.Name,
		Quantity:          quantity,
		DefectDescription: description,
		Status:            domain.DefectStatusReported,
		SupplierEmail:     supplierAddress(sku),
	}
	if err := s.defects.Create(ctx, report); err != nil {
		return nil, err
	}

	after, err := s.inventory.IncrementStock(ctx, sku, -quantity)
	if err != nil {
		return report, err
	}
	if err := s.inventory.SetDefective(ctx, sku, true); err != nil {
		return report, err
	}

	n := &domain.Notification{
		Type:  domain.NotificationDefect,
		Title: fmt.Sprintf("Defective Product Reported: %s", item.Name),
		Message: fmt.Sprintf(
			"%d defective units reported. Stock reduced from %d to %d. Return request pending approval.",
			quantity, item.CurrentStock, after.CurrentStock),
		SKU: sku,
	}
	if err := n.SetAction(domain.DefectAction{
		DefectID:      report.ID,
		Quantity:      quantity,
		Description:   description,
		SupplierEmail: report.SupplierEmail,
	}); err != nil {
		return report, err
	}
	if err := s.notifications.Create(ctx, n); err != nil {
		log.Warn().Err(err).Str("sku", sku).Msg("defects: notification failed")
	} else {
		s.hub.Broadcast(realtime.EventNotification, n)
	}

	s.hub.Broadcast(realtime.EventStockChanged, map[string]interface{}{
		"sku":       sku,
		"new_stock": after.CurrentStock,
	})

	return report, nil
}

// Resolve handles the two defect follow-ups. "approve_return" raises a
// supplier return and emails the supplier; "resolve" closes the report
// and clears the item's defect flag once no other reports stay open.
func (s *DefectService) Resolve(ctx context.Context, defectID int64, action string) (*domain.SupplierReturn, error) {
	report, err := s.defects.GetByID(ctx, defectID)
	if err != nil {
		return nil, err
	}

	switch action {
	case "approve_return":
		ret := &domain.SupplierReturn{
			DefectID:      defectID,
			SKU:           report.SKU,
			ProductName:   report.ProductName,
			Quantity:      report.Quantity,
			SupplierEmail: report.SupplierEmail,
			Reason:        returnReason(report),
			Status:        "requested",
		}
		if err := s.defects.CreateReturn(ctx, ret); err != nil {
			return nil, err
		}
		if err := s.defects.UpdateStatus(ctx, defectID, domain.DefectStatusReturnRequested); err != nil {
			return ret, err
		}
		if err := s.defects.MarkReturnSent(ctx, defectID); err != nil {
			return ret, err
		}

		if err := s.mail.SendReturnRequest(*ret); err != nil {
			log.Warn().Err(err).Int64("defect_id", defectID).Msg("defects: return email failed")
		}

		return ret, nil

	case "resolve":
		if err := s.defects.UpdateStatus(ctx, defectID, domain.DefectStatusResolved); err != nil {
			return nil, err
		}

		open, err := s.hasOpenDefects(ctx, report.SKU)
		if err != nil {
			return nil, err
		}
		if !open {
			if err := s.inventory.SetDefective(ctx, report.SKU, false); err != nil {
				return nil, err
			}
		}
		return nil, nil

	default:
		return nil, domain.ErrInvalidAction
	}
}

func (s *DefectService) hasOpenDefects(ctx context.Context, sku string) (bool, error) {
	reports, err := s.defects.List(ctx, "")
	if err != nil {
		return false, err
	}
	for _, r := range reports {
		if r.SKU == sku && r.Status != domain.DefectStatusResolved {
			return true, nil
		}
	}
	return false, nil
}

func returnReason(report *domain.DefectReport) string {
	if report.DefectDescription != "" {
		return report.DefectDescription
	}
	return "Defective product"
}

// supplierAddress derives the per-SKU supplier mailbox. Placeholder
// addressing carried over until a supplier directory exists.
func supplierAddress(sku string) string {
	return fmt.Sprintf("supplier-%s@example.com", strings.ToLower(sku))
}

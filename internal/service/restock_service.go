package service

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/aims-retail/aims-backend/internal/cache"
	"github.com/aims-retail/aims-backend/internal/domain"
	"github.com/aims-retail/aims-backend/internal/mailer"
	"github.com/aims-retail/aims-backend/pkg/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RestockService sends supplier restock requests and settles the
// approve/reject links they contain. Requests live in the token store
// until acted on or expired, so any portal instance can settle them.
type RestockService struct {
	store   cache.RequestStore
	mail    mailer.Mailer
	baseURL string
	now     func() time.Time
}

func NewRestockService(store cache.RequestStore, mail mailer.Mailer, baseURL string) *RestockService {
	return &RestockService{
		store:   store,
		mail:    mail,
		baseURL: strings.TrimRight(baseURL, "/"),
		now:     time.Now,
	}
}

// SendResult reports the dispatched request.
type SendResult struct {
	RequestID string `json:"request_id"`
	EmailSent bool   `json:"email_sent"`
}

// Send stores the request under a fresh approval token and emails the
// supplier the approve/reject links.
func (s *RestockService) Send(ctx context.Context, items []domain.RestockRequestItem, supplierEmail, supplierName string) (*SendResult, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("items are required")
	}
	if supplierEmail == "" {
		return nil, fmt.Errorf("supplier email is required")
	}
	if supplierName == "" {
		supplierName = "Supplier"
	}

	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.QuantityToOrder))))
	}

	token := uuid.NewString()
	request := domain.RestockRequest{
		ID:            newRequestID(s.now()),
		Items:         items,
		TotalValue:    total,
		RequestDate:   s.now(),
		SupplierEmail: supplierEmail,
		SupplierName:  supplierName,
	}

	// The store key is the token, not the request id: the id appears in
	// emails and pages, the token only inside the links.
	if err := s.store.Put(ctx, token, request); err != nil {
		return nil, err
	}

	approveURL := fmt.Sprintf("%s/approve?token=%s", s.baseURL, token)
	rejectURL := fmt.Sprintf("%s/reject?token=%s", s.baseURL, token)

	if err := s.mail.SendRestockRequest(request, approveURL, rejectURL); err != nil {
		return nil, err
	}

	log := logger.WithComponent("restock")
	log.Info().
		Str("request_id", request.ID).
		Str("supplier", supplierEmail).
		Int("items", len(items)).
		Msg("restock request sent")

	return &SendResult{RequestID: request.ID, EmailSent: true}, nil
}

// Approve settles the request behind the token: confirmation email to
// the manager, token deleted so the link works once.
func (s *RestockService) Approve(ctx context.Context, token string) (*domain.RestockRequest, error) {
	request, err := s.takeUnderToken(ctx, token)
	if err != nil {
		return nil, err
	}

	subject := fmt.Sprintf("Restock request %s approved by %s", request.ID, request.SupplierName)
	body := fmt.Sprintf(
		"Supplier %s approved restock request %s (%d items, total %s).",
		request.SupplierName, request.ID, len(request.Items), request.TotalValue.StringFixed(2))
	if err := s.mail.SendManagerNotice(subject, body); err != nil {
		log := logger.WithComponent("restock")
		log.Warn().Err(err).
			Str("request_id", request.ID).Msg("approval confirmation email failed")
	}

	return request, nil
}

// Reject settles the request as declined.
func (s *RestockService) Reject(ctx context.Context, token string) (*domain.RestockRequest, error) {
	request, err := s.takeUnderToken(ctx, token)
	if err != nil {
		return nil, err
	}

	subject := fmt.Sprintf("Restock request %s rejected by %s", request.ID, request.SupplierName)
	body := fmt.Sprintf(
		"Supplier %s rejected restock request %s. Consider contacting an alternate supplier.",
		request.SupplierName, request.ID)
	if err := s.mail.SendManagerNotice(subject, body); err != nil {
		log := logger.WithComponent("restock")
		log.Warn().Err(err).
			Str("request_id", request.ID).Msg("rejection confirmation email failed")
	}

	return request, nil
}

func (s *RestockService) takeUnderToken(ctx context.Context, token string) (*domain.RestockRequest, error) {
	request, err := s.store.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	if err := s.store.Delete(ctx, token); err != nil {
		return nil, err
	}
	return request, nil
}

func newRequestID(at time.Time) string {
	const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	suffix := make([]byte, 6)
	for i := range suffix {
		suffix[i] = alphabet[rand.Intn(len(alphabet))]
	}
	return fmt.Sprintf("REQ-%d-%s", at.UnixMilli(), suffix)
}

package service

import (
	"context"
	"sort"
	"time"

	"github.com/aims-retail/aims-backend/internal/domain"
	"github.com/aims-retail/aims-backend/internal/repository"
	"github.com/shopspring/decimal"
)

type fakeInventoryRepo struct {
	items map[string]*domain.InventoryItem
}

func newFakeInventoryRepo(items ...domain.InventoryItem) *fakeInventoryRepo {
	r := &fakeInventoryRepo{items: make(map[string]*domain.InventoryItem)}
	for i := range items {
		item := items[i]
		r.items[item.SKU] = &item
	}
	return r
}

func (r *fakeInventoryRepo) List(context.Context) ([]domain.InventoryItem, error) {
	skus := make([]string, 0, len(r.items))
	for sku := range r.items {
		skus = append(skus, sku)
	}
	sort.Strings(skus)

	out := make([]domain.InventoryItem, 0, len(skus))
	for _, sku := range skus {
		out = append(out, *r.items[sku])
	}
	return out, nil
}

func (r *fakeInventoryRepo) GetBySKU(_ context.Context, sku string) (*domain.InventoryItem, error) {
	item, ok := r.items[sku]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *item
	return &copied, nil
}

func (r *fakeInventoryRepo) Create(_ context.Context, item *domain.InventoryItem) error {
	item.ID = int64(len(r.items) + 1)
	copied := *item
	r.items[item.SKU] = &copied
	return nil
}

func (r *fakeInventoryRepo) SetStock(_ context.Context, sku string, stock int) error {
	item, ok := r.items[sku]
	if !ok {
		return domain.ErrNotFound
	}
	item.CurrentStock = stock
	return nil
}

func (r *fakeInventoryRepo) IncrementStock(_ context.Context, sku string, delta int) (*domain.InventoryItem, error) {
	item, ok := r.items[sku]
	if !ok {
		return nil, domain.ErrNotFound
	}
	item.CurrentStock += delta
	if item.CurrentStock < 0 {
		item.CurrentStock = 0
	}
	copied := *item
	return &copied, nil
}

func (r *fakeInventoryRepo) ApplyDiscount(_ context.Context, sku string, percentage int, price decimal.Decimal) error {
	item, ok := r.items[sku]
	if !ok {
		return domain.ErrNotFound
	}
	item.DiscountPercentage = percentage
	item.Price = price
	return nil
}

func (r *fakeInventoryRepo) SetDefective(_ context.Context, sku string, defective bool) error {
	item, ok := r.items[sku]
	if !ok {
		return domain.ErrNotFound
	}
	item.IsDefective = defective
	return nil
}

func (r *fakeInventoryRepo) BulkUpsert(_ context.Context, items []domain.InventoryItem) (int, error) {
	for i := range items {
		item := items[i]
		r.items[item.SKU] = &item
	}
	return len(items), nil
}

type fakeSalesRepo struct {
	records []domain.SalesRecord
}

func (r *fakeSalesRepo) Create(_ context.Context, record *domain.SalesRecord) error {
	record.ID = int64(len(r.records) + 1)
	if record.SaleDate.IsZero() {
		record.SaleDate = time.Now()
	}
	r.records = append(r.records, *record)
	return nil
}

func (r *fakeSalesRepo) ListSince(_ context.Context, sku string, since time.Time) ([]domain.SalesRecord, error) {
	var out []domain.SalesRecord
	for _, rec := range r.records {
		if rec.SaleDate.Before(since) {
			continue
		}
		if sku != "" && rec.SKU != sku {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func (r *fakeSalesRepo) TotalSoldSince(_ context.Context, sku string, since time.Time) (int, error) {
	total := 0
	for _, rec := range r.records {
		if rec.SKU == sku && !rec.SaleDate.Before(since) {
			total += rec.QuantitySold
		}
	}
	return total, nil
}

type fakeNotificationRepo struct {
	notifications []domain.Notification
}

func (r *fakeNotificationRepo) Create(_ context.Context, n *domain.Notification) error {
	n.ID = int64(len(r.notifications) + 1)
	if n.Status == "" {
		n.Status = domain.NotificationStatusPending
	}
	n.CreatedAt = time.Now()
	n.UpdatedAt = n.CreatedAt
	r.notifications = append(r.notifications, *n)
	return nil
}

func (r *fakeNotificationRepo) List(_ context.Context, filter repository.NotificationFilter) ([]domain.Notification, error) {
	var out []domain.Notification
	for _, n := range r.notifications {
		if filter.Status != "" && n.Status != filter.Status {
			continue
		}
		if filter.Type != "" && n.Type != filter.Type {
			continue
		}
		if filter.SKU != "" && n.SKU != filter.SKU {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

func (r *fakeNotificationRepo) GetByID(_ context.Context, id int64) (*domain.Notification, error) {
	for i := range r.notifications {
		if r.notifications[i].ID == id {
			copied := r.notifications[i]
			return &copied, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeNotificationRepo) UpdateStatus(_ context.Context, id int64, status string) error {
	for i := range r.notifications {
		if r.notifications[i].ID == id {
			r.notifications[i].Status = status
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeNotificationRepo) ExistsPending(_ context.Context, sku string, t domain.NotificationType) (bool, error) {
	for _, n := range r.notifications {
		if n.SKU == sku && n.Type == t && n.Status == domain.NotificationStatusPending {
			return true, nil
		}
	}
	return false, nil
}

type fakeReplenishmentRepo struct {
	orders []domain.ReplenishmentOrder
}

func (r *fakeReplenishmentRepo) Create(_ context.Context, order *domain.ReplenishmentOrder) error {
	order.ID = int64(len(r.orders) + 1)
	if order.Status == "" {
		order.Status = domain.OrderStatusPending
	}
	order.CreatedAt = time.Now()
	order.UpdatedAt = order.CreatedAt
	r.orders = append(r.orders, *order)
	return nil
}

func (r *fakeReplenishmentRepo) List(_ context.Context, status string) ([]domain.ReplenishmentOrder, error) {
	var out []domain.ReplenishmentOrder
	for _, o := range r.orders {
		if status != "" && o.Status != status {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

func (r *fakeReplenishmentRepo) GetByID(_ context.Context, id int64) (*domain.ReplenishmentOrder, error) {
	for i := range r.orders {
		if r.orders[i].ID == id {
			copied := r.orders[i]
			return &copied, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeReplenishmentRepo) UpdateStatus(_ context.Context, id int64, status string) error {
	for i := range r.orders {
		if r.orders[i].ID == id {
			r.orders[i].Status = status
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeReplenishmentRepo) HasOpenOrder(_ context.Context, sku string) (bool, error) {
	for _, o := range r.orders {
		if o.SKU == sku && (o.Status == domain.OrderStatusPending || o.Status == domain.OrderStatusApproved) {
			return true, nil
		}
	}
	return false, nil
}

type fakeDefectRepo struct {
	reports []domain.DefectReport
	returns []domain.SupplierReturn
}

func (r *fakeDefectRepo) Create(_ context.Context, report *domain.DefectReport) error {
	report.ID = int64(len(r.reports) + 1)
	if report.Status == "" {
		report.Status = domain.DefectStatusReported
	}
	report.ReportedDate = time.Now()
	report.UpdatedAt = report.ReportedDate
	r.reports = append(r.reports, *report)
	return nil
}

func (r *fakeDefectRepo) List(_ context.Context, status string) ([]domain.DefectReport, error) {
	var out []domain.DefectReport
	for _, rep := range r.reports {
		if status != "" && rep.Status != status {
			continue
		}
		out = append(out, rep)
	}
	return out, nil
}

func (r *fakeDefectRepo) GetByID(_ context.Context, id int64) (*domain.DefectReport, error) {
	for i := range r.reports {
		if r.reports[i].ID == id {
			copied := r.reports[i]
			return &copied, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeDefectRepo) UpdateStatus(_ context.Context, id int64, status string) error {
	for i := range r.reports {
		if r.reports[i].ID == id {
			r.reports[i].Status = status
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeDefectRepo) MarkReturnSent(_ context.Context, id int64) error {
	for i := range r.reports {
		if r.reports[i].ID == id {
			r.reports[i].ReturnRequestSent = true
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeDefectRepo) CreateReturn(_ context.Context, ret *domain.SupplierReturn) error {
	ret.ID = int64(len(r.returns) + 1)
	ret.CreatedAt = time.Now()
	r.returns = append(r.returns, *ret)
	return nil
}

type fakeDiscountRepo struct {
	offers []domain.DiscountOffer
}

func (r *fakeDiscountRepo) CreateOffer(_ context.Context, offer *domain.DiscountOffer) error {
	offer.ID = int64(len(r.offers) + 1)
	offer.CreatedAt = time.Now()
	r.offers = append(r.offers, *offer)
	return nil
}

func (r *fakeDiscountRepo) ListActive(_ context.Context) ([]domain.DiscountOffer, error) {
	var out []domain.DiscountOffer
	for _, o := range r.offers {
		if o.Status == "active" {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *fakeDiscountRepo) ExpireEnded(context.Context) (int, error) { return 0, nil }

type fakeMailer struct {
	restockRequests []domain.RestockRequest
	returnRequests  []domain.SupplierReturn
	notices         []string
	approveURLs     []string
}

func (m *fakeMailer) SendRestockRequest(request domain.RestockRequest, approveURL, _ string) error {
	m.restockRequests = append(m.restockRequests, request)
	m.approveURLs = append(m.approveURLs, approveURL)
	return nil
}

func (m *fakeMailer) SendReturnRequest(ret domain.SupplierReturn) error {
	m.returnRequests = append(m.returnRequests, ret)
	return nil
}

func (m *fakeMailer) SendManagerNotice(subject, _ string) error {
	m.notices = append(m.notices, subject)
	return nil
}

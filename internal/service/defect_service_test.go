package service

import (
	"context"
	"testing"

	"github.com/aims-retail/aims-backend/internal/domain"
	"github.com/aims-retail/aims-backend/internal/realtime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDefectService(inv *fakeInventoryRepo, defects *fakeDefectRepo, notifs *fakeNotificationRepo, mail *fakeMailer) *DefectService {
	return NewDefectService(defects, inv, notifs, mail, realtime.NewHub())
}

func TestReportDefectWritesDownStock(t *testing.T) {
	inv := newFakeInventoryRepo(domain.InventoryItem{
		SKU: "VEG-001", Name: "Tomatoes", CurrentStock: 50, OptimalStock: 100,
	})
	defects := &fakeDefectRepo{}
	notifs := &fakeNotificationRepo{}
	svc := newDefectService(inv, defects, notifs, &fakeMailer{})

	report, err := svc.Report(context.Background(), "VEG-001", 8, "crushed in transit")
	require.NoError(t, err)

	assert.Equal(t, domain.DefectStatusReported, report.Status)
	assert.Equal(t, "supplier-veg-001@example.com", report.SupplierEmail)

	item, err := inv.GetBySKU(context.Background(), "VEG-001")
	require.NoError(t, err)
	assert.Equal(t, 42, item.CurrentStock)
	assert.True(t, item.IsDefective)

	require.Len(t, notifs.notifications, 1)
	payload, err := notifs.notifications[0].Action()
	require.NoError(t, err)
	action := payload.(domain.DefectAction)
	assert.Equal(t, report.ID, action.DefectID)
	assert.Equal(t, 8, action.Quantity)
}

func TestApproveReturnEmailsSupplier(t *testing.T) {
	inv := newFakeInventoryRepo(domain.InventoryItem{
		SKU: "VEG-001", Name: "Tomatoes", CurrentStock: 50,
	})
	defects := &fakeDefectRepo{}
	mail := &fakeMailer{}
	svc := newDefectService(inv, defects, &fakeNotificationRepo{}, mail)

	report, err := svc.Report(context.Background(), "VEG-001", 8, "crushed in transit")
	require.NoError(t, err)

	ret, err := svc.Resolve(context.Background(), report.ID, "approve_return")
	require.NoError(t, err)

	assert.Equal(t, "requested", ret.Status)
	assert.Equal(t, "crushed in transit", ret.Reason)
	require.Len(t, mail.returnRequests, 1)
	assert.Equal(t, report.SupplierEmail, mail.returnRequests[0].SupplierEmail)

	updated, err := defects.GetByID(context.Background(), report.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DefectStatusReturnRequested, updated.Status)
	assert.True(t, updated.ReturnRequestSent)
}

func TestResolveClearsDefectFlagWhenLastReportCloses(t *testing.T) {
	inv := newFakeInventoryRepo(domain.InventoryItem{
		SKU: "VEG-001", Name: "Tomatoes", CurrentStock: 50,
	})
	defects := &fakeDefectRepo{}
	svc := newDefectService(inv, defects, &fakeNotificationRepo{}, &fakeMailer{})

	first, err := svc.Report(context.Background(), "VEG-001", 3, "bruised")
	require.NoError(t, err)
	second, err := svc.Report(context.Background(), "VEG-001", 2, "moldy")
	require.NoError(t, err)

	_, err = svc.Resolve(context.Background(), first.ID, "resolve")
	require.NoError(t, err)

	item, err := inv.GetBySKU(context.Background(), "VEG-001")
	require.NoError(t, err)
	assert.True(t, item.IsDefective, "one report still open")

	_, err = svc.Resolve(context.Background(), second.ID, "resolve")
	require.NoError(t, err)

	item, err = inv.GetBySKU(context.Background(), "VEG-001")
	require.NoError(t, err)
	assert.False(t, item.IsDefective)
}

func TestResolveDefectInvalidAction(t *testing.T) {
	inv := newFakeInventoryRepo(domain.InventoryItem{SKU: "VEG-001", Name: "Tomatoes", CurrentStock: 10})
	defects := &fakeDefectRepo{}
	svc := newDefectService(inv, defects, &fakeNotificationRepo{}, &fakeMailer{})

	report, err := svc.Report(context.Background(), "VEG-001", 1, "")
	require.NoError(t, err)

	_, err = svc.Resolve(context.Background(), report.ID, "shred")
	assert.ErrorIs(t, err, domain.ErrInvalidAction)
}

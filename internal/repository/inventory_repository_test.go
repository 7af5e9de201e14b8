package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aims-retail/aims-backend/internal/domain"
	"github.com/aims-retail/aims-backend/internal/repository/postgres"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockInventoryRepo(t *testing.T) (InventoryRepository, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	return NewInventoryRepository(postgres.NewWithDB(sqlx.NewDb(mockDB, "sqlmock"))), mock
}

func TestBulkUpsertWritesAllRowsInOneTransaction(t *testing.T) {
	repo, mock := newMockInventoryRepo(t)

	mock.ExpectBegin()
	stmt := mock.ExpectPrepare("INSERT INTO inventory")
	stmt.ExpectExec().WillReturnResult(sqlmock.NewResult(0, 1))
	stmt.ExpectExec().WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	written, err := repo.BulkUpsert(context.Background(), []domain.InventoryItem{
		{SKU: "FRT-001", Name: "Apples", CurrentStock: 40, OptimalStock: 100},
		{SKU: "FRT-002", Name: "Bananas", CurrentStock: 25, OptimalStock: 80},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, written)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBulkUpsertRollsBackOnMidBatchFailure(t *testing.T) {
	repo, mock := newMockInventoryRepo(t)

	mock.ExpectBegin()
	stmt := mock.ExpectPrepare("INSERT INTO inventory")
	stmt.ExpectExec().WillReturnResult(sqlmock.NewResult(0, 1))
	stmt.ExpectExec().WillReturnError(assert.AnError)
	mock.ExpectRollback()

	written, err := repo.BulkUpsert(context.Background(), []domain.InventoryItem{
		{SKU: "FRT-001", Name: "Apples"},
		{SKU: "FRT-002", Name: "Bananas"},
	})
	require.Error(t, err)
	assert.Equal(t, 0, written)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBulkUpsertSkipsEmptyBatch(t *testing.T) {
	repo, mock := newMockInventoryRepo(t)

	written, err := repo.BulkUpsert(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, written)
	assert.NoError(t, mock.ExpectationsWereMet())
}

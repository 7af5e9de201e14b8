// internal/repository/sales_repository.go
package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/aims-retail/aims-backend/internal/domain"
	"github.com/jmoiron/sqlx"
)

type SalesRepository interface {
	Create(ctx context.Context, record *domain.SalesRecord) error
	// ListSince returns records on or after the cutoff, newest first.
	// An empty sku returns every product.
	ListSince(ctx context.Context, sku string, since time.Time) ([]domain.SalesRecord, error)
	TotalSoldSince(ctx context.Context, sku string, since time.Time) (int, error)
}

type salesRepository struct {
	db *sqlx.DB
}

func NewSalesRepository(db *sqlx.DB) SalesRepository {
	return &salesRepository{db: db}
}

func (r *salesRepository) Create(ctx context.Context, record *domain.SalesRecord) error {
	query := `
		INSERT INTO sales_records (sku, product_name, quantity_sold, sale_price, sale_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	if record.SaleDate.IsZero() {
		record.SaleDate = time.Now()
	}

	err := r.db.QueryRowxContext(ctx, query,
		record.SKU, record.ProductName, record.QuantitySold,
		record.SalePrice, record.SaleDate,
	).Scan(&record.ID)
	if err != nil {
		return fmt.Errorf("error recording sale for %s: %w", record.SKU, err)
	}

	return nil
}

func (r *salesRepository) ListSince(ctx context.Context, sku string, since time.Time) ([]domain.SalesRecord, error) {
	query := `
		SELECT id, sku, product_name, quantity_sold, sale_price, sale_date
		FROM sales_records
		WHERE sale_date >= $1
	`
	args := []interface{}{since}
	if sku != "" {
		query += " AND sku = $2"
		args = append(args, sku)
	}
	query += " ORDER BY sale_date DESC"

	var records []domain.SalesRecord
	if err := r.db.SelectContext(ctx, &records, query, args...); err != nil {
		return nil, fmt.Errorf("error listing sales: %w", err)
	}

	return records, nil
}

func (r *salesRepository) TotalSoldSince(ctx context.Context, sku string, since time.Time) (int, error) {
	query := `
		SELECT COALESCE(SUM(quantity_sold), 0)
		FROM sales_records
		WHERE sku = $1 AND sale_date >= $2
	`

	var total int
	if err := r.db.GetContext(ctx, &total, query, sku, since); err != nil {
		return 0, fmt.Errorf("error summing sales for %s: %w", sku, err)
	}

	return total, nil
}

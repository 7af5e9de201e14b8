// internal/repository/inventory_repository.go
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aims-retail/aims-backend/internal/domain"
	"github.com/aims-retail/aims-backend/internal/repository/postgres"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type InventoryRepository interface {
	List(ctx context.Context) ([]domain.InventoryItem, error)
	GetBySKU(ctx context.Context, sku string) (*domain.InventoryItem, error)
	Create(ctx context.Context, item *domain.InventoryItem) error
	SetStock(ctx context.Context, sku string, stock int) error
	IncrementStock(ctx context.Context, sku string, delta int) (*domain.InventoryItem, error)
	ApplyDiscount(ctx context.Context, sku string, percentage int, price decimal.Decimal) error
	SetDefective(ctx context.Context, sku string, defective bool) error
	BulkUpsert(ctx context.Context, items []domain.InventoryItem) (int, error)
}

type inventoryRepository struct {
	db *postgres.DB
}

func NewInventoryRepository(db *postgres.DB) InventoryRepository {
	return &inventoryRepository{db: db}
}

const inventoryColumns = `
	id, sku, name, barcode, category, price, current_stock, optimal_stock,
	expiry_date, discount_percentage, is_defective, unit, location, last_updated
`

func (r *inventoryRepository) List(ctx context.Context) ([]domain.InventoryItem, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory ORDER BY sku ASC`

	var items []domain.InventoryItem
	if err := r.db.SelectContext(ctx, &items, query); err != nil {
		return nil, fmt.Errorf("error listing inventory: %w", err)
	}

	return items, nil
}

func (r *inventoryRepository) GetBySKU(ctx context.Context, sku string) (*domain.InventoryItem, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory WHERE sku = $1`

	var item domain.InventoryItem
	if err := r.db.GetContext(ctx, &item, query, sku); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("error getting inventory item %s: %w", sku, err)
	}

	return &item, nil
}

func (r *inventoryRepository) Create(ctx context.Context, item *domain.InventoryItem) error {
	query := `
		INSERT INTO inventory (
			sku, name, barcode, category, price, current_stock, optimal_stock,
			expiry_date, unit, location, last_updated
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())
		RETURNING id, last_updated
	`

	err := r.db.QueryRowxContext(ctx, query,
		item.SKU, item.Name, item.Barcode, item.Category, item.Price,
		item.CurrentStock, item.OptimalStock, item.ExpiryDate, item.Unit,
		item.Location,
	).Scan(&item.ID, &item.LastUpdated)
	if err != nil {
		return fmt.Errorf("error creating inventory item %s: %w", item.SKU, err)
	}

	return nil
}

func (r *inventoryRepository) SetStock(ctx context.Context, sku string, stock int) error {
	query := `
		UPDATE inventory
		SET current_stock = $2, last_updated = NOW()
		WHERE sku = $1
	`

	result, err := r.db.ExecContext(ctx, query, sku, stock)
	if err != nil {
		return fmt.Errorf("error updating stock for %s: %w", sku, err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *inventoryRepository) IncrementStock(ctx context.Context, sku string, delta int) (*domain.InventoryItem, error) {
	query := `
		UPDATE inventory
		SET current_stock = GREATEST(0, current_stock + $2), last_updated = NOW()
		WHERE sku = $1
		RETURNING ` + inventoryColumns

	var item domain.InventoryItem
	if err := r.db.GetContext(ctx, &item, query, sku, delta); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("error incrementing stock for %s: %w", sku, err)
	}

	return &item, nil
}

func (r *inventoryRepository) ApplyDiscount(ctx context.Context, sku string, percentage int, price decimal.Decimal) error {
	query := `
		UPDATE inventory
		SET discount_percentage = $2, price = $3, last_updated = NOW()
		WHERE sku = $1
	`

	result, err := r.db.ExecContext(ctx, query, sku, percentage, price)
	if err != nil {
		return fmt.Errorf("error applying discount to %s: %w", sku, err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *inventoryRepository) SetDefective(ctx context.Context, sku string, defective bool) error {
	query := `UPDATE inventory SET is_defective = $2 WHERE sku = $1`

	if _, err := r.db.ExecContext(ctx, query, sku, defective); err != nil {
		return fmt.Errorf("error flagging %s defective=%v: %w", sku, defective, err)
	}

	return nil
}

// BulkUpsert inserts or refreshes imported items keyed by SKU inside a
// single transaction, so a failed import leaves no partial rows. It
// returns the number of rows written.
func (r *inventoryRepository) BulkUpsert(ctx context.Context, items []domain.InventoryItem) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}

	query := `
		INSERT INTO inventory (
			sku, name, barcode, category, price, current_stock, optimal_stock,
			expiry_date, unit, location, last_updated
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())
		ON CONFLICT (sku)
		DO UPDATE SET
			name = EXCLUDED.name,
			barcode = EXCLUDED.barcode,
			category = EXCLUDED.category,
			price = EXCLUDED.price,
			current_stock = EXCLUDED.current_stock,
			optimal_stock = EXCLUDED.optimal_stock,
			expiry_date = EXCLUDED.expiry_date,
			unit = EXCLUDED.unit,
			location = EXCLUDED.location,
			last_updated = NOW()
	`

	written := 0
	err := r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		stmt, err := tx.PreparexContext(ctx, query)
		if err != nil {
			return fmt.Errorf("error preparing inventory upsert: %w", err)
		}
		defer stmt.Close()

		for _, item := range items {
			if _, err := stmt.ExecContext(ctx,
				item.SKU, item.Name, item.Barcode, item.Category, item.Price,
				item.CurrentStock, item.OptimalStock, item.ExpiryDate, item.Unit,
				item.Location,
			); err != nil {
				return fmt.Errorf("error upserting %s: %w", item.SKU, err)
			}
			written++
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return written, nil
}

// internal/repository/replenishment_repository.go
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aims-retail/aims-backend/internal/domain"
	"github.com/jmoiron/sqlx"
)

type ReplenishmentRepository interface {
	Create(ctx context.Context, order *domain.ReplenishmentOrder) error
	List(ctx context.Context, status string) ([]domain.ReplenishmentOrder, error)
	GetByID(ctx context.Context, id int64) (*domain.ReplenishmentOrder, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	HasOpenOrder(ctx context.Context, sku string) (bool, error)
}

type replenishmentRepository struct {
	db *sqlx.DB
}

func NewReplenishmentRepository(db *sqlx.DB) ReplenishmentRepository {
	return &replenishmentRepository{db: db}
}

func (r *replenishmentRepository) Create(ctx context.Context, order *domain.ReplenishmentOrder) error {
	query := `
		INSERT INTO replenishment_orders (
			sku, item_name, current_stock, optimal_stock, quantity_to_order,
			status, priority, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	if order.Status == "" {
		order.Status = domain.OrderStatusPending
	}

	err := r.db.QueryRowxContext(ctx, query,
		order.SKU, order.ItemName, order.CurrentStock, order.OptimalStock,
		order.QuantityToOrder, order.Status, order.Priority,
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating replenishment order for %s: %w", order.SKU, err)
	}

	return nil
}

// List returns orders sorted by priority rank then recency. An empty
// status returns every order.
func (r *replenishmentRepository) List(ctx context.Context, status string) ([]domain.ReplenishmentOrder, error) {
	query := `
		SELECT id, sku, item_name, current_stock, optimal_stock, quantity_to_order,
		       status, priority, created_at, updated_at
		FROM replenishment_orders
	`
	args := []interface{}{}
	if status != "" {
		query += " WHERE status = $1"
		args = append(args, status)
	}
	query += `
		ORDER BY CASE priority
			WHEN 'critical' THEN 0
			WHEN 'urgent' THEN 1
			WHEN 'high' THEN 2
			WHEN 'medium' THEN 3
			ELSE 4
		END, created_at DESC
	`

	var orders []domain.ReplenishmentOrder
	if err := r.db.SelectContext(ctx, &orders, query, args...); err != nil {
		return nil, fmt.Errorf("error listing replenishment orders: %w", err)
	}

	return orders, nil
}

func (r *replenishmentRepository) GetByID(ctx context.Context, id int64) (*domain.ReplenishmentOrder, error) {
	query := `
		SELECT id, sku, item_name, current_stock, optimal_stock, quantity_to_order,
		       status, priority, created_at, updated_at
		FROM replenishment_orders
		WHERE id = $1
	`

	var order domain.ReplenishmentOrder
	if err := r.db.GetContext(ctx, &order, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("error getting replenishment order %d: %w", id, err)
	}

	return &order, nil
}

func (r *replenishmentRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	query := `
		UPDATE replenishment_orders
		SET status = $2, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("error updating replenishment order %d: %w", id, err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return domain.ErrNotFound
	}

	return nil
}

// HasOpenOrder reports whether the SKU already has a pending or
// approved order, so the auto-reorder pass does not double-order.
func (r *replenishmentRepository) HasOpenOrder(ctx context.Context, sku string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM replenishment_orders
			WHERE sku = $1 AND status IN ($2, $3)
		)
	`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, sku,
		domain.OrderStatusPending, domain.OrderStatusApproved)
	if err != nil {
		return false, fmt.Errorf("error checking open orders for %s: %w", sku, err)
	}

	return exists, nil
}

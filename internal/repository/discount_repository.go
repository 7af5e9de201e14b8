// internal/repository/discount_repository.go
package repository

import (
	"context"
	"fmt"

	"github.com/aims-retail/aims-backend/internal/domain"
	"github.com/jmoiron/sqlx"
)

type DiscountRepository interface {
	CreateOffer(ctx context.Context, offer *domain.DiscountOffer) error
	ListActive(ctx context.Context) ([]domain.DiscountOffer, error)
	ExpireEnded(ctx context.Context) (int, error)
}

type discountRepository struct {
	db *sqlx.DB
}

func NewDiscountRepository(db *sqlx.DB) DiscountRepository {
	return &discountRepository{db: db}
}

func (r *discountRepository) CreateOffer(ctx context.Context, offer *domain.DiscountOffer) error {
	query := `
		INSERT INTO discount_offers (
			sku, product_name, original_price, discount_percentage, discounted_price,
			offer_type, reason, status, start_date, end_date, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())
		RETURNING id, created_at
	`

	if offer.Status == "" {
		offer.Status = "active"
	}

	err := r.db.QueryRowxContext(ctx, query,
		offer.SKU, offer.ProductName, offer.OriginalPrice, offer.DiscountPercentage,
		offer.DiscountedPrice, offer.OfferType, offer.Reason, offer.Status,
		offer.StartDate, offer.EndDate,
	).Scan(&offer.ID, &offer.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating discount offer for %s: %w", offer.SKU, err)
	}

	return nil
}

func (r *discountRepository) ListActive(ctx context.Context) ([]domain.DiscountOffer, error) {
	query := `
		SELECT id, sku, product_name, original_price, discount_percentage, discounted_price,
		       offer_type, reason, status, start_date, end_date, created_at
		FROM discount_offers
		WHERE status = 'active' AND end_date >= NOW()
		ORDER BY created_at DESC
	`

	var offers []domain.DiscountOffer
	if err := r.db.SelectContext(ctx, &offers, query); err != nil {
		return nil, fmt.Errorf("error listing active offers: %w", err)
	}

	return offers, nil
}

// ExpireEnded flips offers past their end date to expired and returns
// how many rows changed.
func (r *discountRepository) ExpireEnded(ctx context.Context) (int, error) {
	query := `
		UPDATE discount_offers
		SET status = 'expired'
		WHERE status = 'active' AND end_date < NOW()
	`

	result, err := r.db.ExecContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("error expiring offers: %w", err)
	}
	rows, _ := result.RowsAffected()

	return int(rows), nil
}

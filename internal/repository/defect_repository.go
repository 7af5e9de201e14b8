// internal/repository/defect_repository.go
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aims-retail/aims-backend/internal/domain"
	"github.com/jmoiron/sqlx"
)

type DefectRepository interface {
	Create(ctx context.Context, report *domain.DefectReport) error
	List(ctx context.Context, status string) ([]domain.DefectReport, error)
	GetByID(ctx context.Context, id int64) (*domain.DefectReport, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	MarkReturnSent(ctx context.Context, id int64) error
	CreateReturn(ctx context.Context, ret *domain.SupplierReturn) error
}

type defectRepository struct {
	db *sqlx.DB
}

func NewDefectRepository(db *sqlx.DB) DefectRepository {
	return &defectRepository{db: db}
}

func (r *defectRepository) Create(ctx context.Context, report *domain.DefectReport) error {
	query := `
		INSERT INTO defect_reports (
			sku, product_name, quantity, defect_description, status,
			supplier_email, return_request_sent, reported_date, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, FALSE, NOW(), NOW())
		RETURNING id, reported_date, updated_at
	`

	if report.Status == "" {
		report.Status = domain.DefectStatusReported
	}

	err := r.db.QueryRowxContext(ctx, query,
		report.SKU, report.ProductName, report.Quantity,
		report.DefectDescription, report.Status, report.SupplierEmail,
	).Scan(&report.ID, &report.ReportedDate, &report.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating defect report for %s: %w", report.SKU, err)
	}

	return nil
}

func (r *defectRepository) List(ctx context.Context, status string) ([]domain.DefectReport, error) {
	query := `
		SELECT id, sku, product_name, quantity, defect_description, status,
		       supplier_email, return_request_sent, reported_date, updated_at
		FROM defect_reports
	`
	args := []interface{}{}
	if status != "" {
		query += " WHERE status = $1"
		args = append(args, status)
	}
	query += " ORDER BY reported_date DESC"

	var reports []domain.DefectReport
	if err := r.db.SelectContext(ctx, &reports, query, args...); err != nil {
		return nil, fmt.Errorf("error listing defect reports: %w", err)
	}

	return reports, nil
}

func (r *defectRepository) GetByID(ctx context.Context, id int64) (*domain.DefectReport, error) {
	query := `
		SELECT id, sku, product_name, quantity, defect_description, status,
		       supplier_email, return_request_sent, reported_date, updated_at
		FROM defect_reports
		WHERE id = $1
	`

	var report domain.DefectReport
	if err := r.db.GetContext(ctx, &report, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("error getting defect report %d: %w", id, err)
	}

	return &report, nil
}

func (r *defectRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	query := `
		UPDATE defect_reports
		SET status = $2, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("error updating defect report %d: %w", id, err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *defectRepository) MarkReturnSent(ctx context.Context, id int64) error {
	query := `
		UPDATE defect_reports
		SET return_request_sent = TRUE, updated_at = NOW()
		WHERE id = $1
	`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("error marking return sent for defect %d: %w", id, err)
	}

	return nil
}

func (r *defectRepository) CreateReturn(ctx context.Context, ret *domain.SupplierReturn) error {
	query := `
		INSERT INTO supplier_returns (
			defect_id, sku, product_name, quantity, supplier_email, reason, status, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING id, created_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		ret.DefectID, ret.SKU, ret.ProductName, ret.Quantity,
		ret.SupplierEmail, ret.Reason, ret.Status,
	).Scan(&ret.ID, &ret.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating supplier return for defect %d: %w", ret.DefectID, err)
	}

	return nil
}

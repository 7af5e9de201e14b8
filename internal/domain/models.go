// internal/domain/models.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem represents a single stocked product.
type InventoryItem struct {
	ID                 int64           `json:"id" db:"id"`
	SKU                string          `json:"sku" db:"sku"`
	Name               string          `json:"name" db:"name"`
	Barcode            string          `json:"barcode" db:"barcode"`
	Category           string          `json:"category" db:"category"`
	Price              decimal.Decimal `json:"price" db:"price"`
	CurrentStock       int             `json:"current_stock" db:"current_stock"`
	OptimalStock       int             `json:"optimal_stock" db:"optimal_stock"`
	ExpiryDate         *time.Time      `json:"expiry_date,omitempty" db:"expiry_date"`
	DiscountPercentage int             `json:"discount_percentage" db:"discount_percentage"`
	IsDefective        bool            `json:"is_defective" db:"is_defective"`
	Unit               string          `json:"unit" db:"unit"`
	Location           string          `json:"location" db:"location"`
	LastUpdated        time.Time       `json:"last_updated" db:"last_updated"`
}

// SalesRecord represents one recorded sale of a SKU.
type SalesRecord struct {
	ID           int64           `json:"id" db:"id"`
	SKU          string          `json:"sku" db:"sku"`
	ProductName  string          `json:"product_name" db:"product_name"`
	QuantitySold int             `json:"quantity_sold" db:"quantity_sold"`
	SalePrice    decimal.Decimal `json:"sale_price" db:"sale_price"`
	SaleDate     time.Time       `json:"sale_date" db:"sale_date"`
}

// ReplenishmentOrder is a persisted restock order awaiting approval.
type ReplenishmentOrder struct {
	ID              int64     `json:"id" db:"id"`
	SKU             string    `json:"sku" db:"sku"`
	ItemName        string    `json:"item_name" db:"item_name"`
	CurrentStock    int       `json:"current_stock" db:"current_stock"`
	OptimalStock    int       `json:"optimal_stock" db:"optimal_stock"`
	QuantityToOrder int       `json:"quantity_to_order" db:"quantity_to_order"`
	Status          string    `json:"status" db:"status"`
	Priority        string    `json:"priority" db:"priority"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

// DefectReport tracks defective units reported for a SKU.
type DefectReport struct {
	ID                int64     `json:"id" db:"id"`
	SKU               string    `json:"sku" db:"sku"`
	ProductName       string    `json:"product_name" db:"product_name"`
	Quantity          int       `json:"quantity" db:"quantity"`
	DefectDescription string    `json:"defect_description" db:"defect_description"`
	Status            string    `json:"status" db:"status"`
	SupplierEmail     string    `json:"supplier_email" db:"supplier_email"`
	ReturnRequestSent bool      `json:"return_request_sent" db:"return_request_sent"`
	ReportedDate      time.Time `json:"reported_date" db:"reported_date"`
	UpdatedAt         time.Time `json:"updated_at" db:"updated_at"`
}

// SupplierReturn is a return request raised against a defect report.
type SupplierReturn struct {
	ID            int64     `json:"id" db:"id"`
	DefectID      int64     `json:"defect_id" db:"defect_id"`
	SKU           string    `json:"sku" db:"sku"`
	ProductName   string    `json:"product_name" db:"product_name"`
	Quantity      int       `json:"quantity" db:"quantity"`
	SupplierEmail string    `json:"supplier_email" db:"supplier_email"`
	Reason        string    `json:"reason" db:"reason"`
	Status        string    `json:"status" db:"status"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// DiscountOffer is an active or historical markdown on a SKU.
type DiscountOffer struct {
	ID                 int64           `json:"id" db:"id"`
	SKU                string          `json:"sku" db:"sku"`
	ProductName        string          `json:"product_name" db:"product_name"`
	OriginalPrice      decimal.Decimal `json:"original_price" db:"original_price"`
	DiscountPercentage int             `json:"discount_percentage" db:"discount_percentage"`
	DiscountedPrice    decimal.Decimal `json:"discounted_price" db:"discounted_price"`
	OfferType          string          `json:"offer_type" db:"offer_type"`
	Reason             string          `json:"reason" db:"reason"`
	Status             string          `json:"status" db:"status"`
	StartDate          time.Time       `json:"start_date" db:"start_date"`
	EndDate            time.Time       `json:"end_date" db:"end_date"`
	CreatedAt          time.Time       `json:"created_at" db:"created_at"`
}

// RestockRequestItem is one line of an outbound supplier restock request.
type RestockRequestItem struct {
	SKU             string          `json:"sku"`
	Name            string          `json:"name"`
	CurrentStock    int             `json:"current_stock"`
	OptimalStock    int             `json:"optimal_stock"`
	QuantityToOrder int             `json:"quantity_to_order"`
	Unit            string          `json:"unit"`
	Price           decimal.Decimal `json:"price"`
}

// RestockRequest is the payload emailed to a supplier for approval.
// It lives in the token store until approved, rejected or expired.
type RestockRequest struct {
	ID            string               `json:"id"`
	Items         []RestockRequestItem `json:"items"`
	TotalValue    decimal.Decimal      `json:"total_value"`
	RequestDate   time.Time            `json:"request_date"`
	SupplierEmail string               `json:"supplier_email"`
	SupplierName  string               `json:"supplier_name"`
}

// StockSummary counts inventory items per optimization status.
type StockSummary struct {
	Status string `json:"status" db:"status"`
	Count  int    `json:"count" db:"count"`
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSaleRequest body para POST /api/sales. SoldAt por defecto es ahora.
type CreateSaleRequest struct {
	ProductID string          `json:"productId"`
	Quantity  float64         `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	SoldAt    *time.Time      `json:"soldAt,omitempty"`
}

// UpdateSaleRequest body para PUT /api/sales/:id (parcial).
type UpdateSaleRequest struct {
	ProductID *string          `json:"productId"`
	Quantity  *float64         `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unitPrice"`
	SoldAt    *time.Time       `json:"soldAt"`
}

// SaleResponse salida de una venta.
type SaleResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"productId"`
	Quantity  float64         `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	SoldAt    time.Time       `json:"soldAt"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
	Product   *ProductRef     `json:"product,omitempty"`
}

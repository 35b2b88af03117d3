package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePurchaseRequest body para POST /api/purchases. PurchasedAt por defecto es ahora.
type CreatePurchaseRequest struct {
	ProductID   string          `json:"productId"`
	Quantity    float64         `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unitCost"`
	PurchasedAt *time.Time      `json:"purchasedAt,omitempty"`
}

// UpdatePurchaseRequest body para PUT /api/purchases/:id (parcial).
type UpdatePurchaseRequest struct {
	ProductID   *string          `json:"productId"`
	Quantity    *float64         `json:"quantity"`
	UnitCost    *decimal.Decimal `json:"unitCost"`
	PurchasedAt *time.Time       `json:"purchasedAt"`
}

// PurchaseResponse salida de una compra.
type PurchaseResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"productId"`
	Quantity    float64         `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unitCost"`
	PurchasedAt time.Time       `json:"purchasedAt"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
	Product     *ProductRef     `json:"product,omitempty"`
}

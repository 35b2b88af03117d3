package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase entrada de stock (compra a proveedor).
type Purchase struct {
	ID          string
	ProductID   string
	Quantity    float64         // unidades, > 0
	UnitCost    decimal.Decimal // costo unitario, >= 0
	PurchasedAt time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Total costo total de la línea (Quantity * UnitCost).
func (p *Purchase) Total() decimal.Decimal {
	return decimal.NewFromFloat(p.Quantity).Mul(p.UnitCost)
}

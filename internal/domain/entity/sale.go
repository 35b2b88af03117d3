package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale salida de stock (venta a cliente).
type Sale struct {
	ID        string
	ProductID string
	Quantity  float64         // unidades, > 0
	UnitPrice decimal.Decimal // precio unitario cobrado, >= 0
	SoldAt    time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Total ingreso de la línea (Quantity * UnitPrice).
func (s *Sale) Total() decimal.Decimal {
	return decimal.NewFromFloat(s.Quantity).Mul(s.UnitPrice)
}

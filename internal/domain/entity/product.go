package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo. Code es el SKU que usa el motor
// de stock; se guarda en minúsculas y es único sin distinguir mayúsculas.
type Product struct {
	ID          string
	Code        string
	Name        string
	Description string
	Price       decimal.Decimal // precio de venta de lista
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

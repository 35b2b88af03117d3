package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-dashboard/internal/domain/inventory"
)

// StockItemDTO existencias de un producto (GET /api/stock).
type StockItemDTO struct {
	ID          string          `json:"id"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Purchased   float64         `json:"purchased"`
	Sold        float64         `json:"sold"`
	OnHand      float64         `json:"onHand"`
	AverageCost decimal.Decimal `json:"averageCost"` // costo promedio ponderado de las compras
}

// MonthlyStockResponse respuesta de GET /api/stock/monthly, por código de producto.
type MonthlyStockResponse struct {
	Report  inventory.MonthlyStockReport `json:"report"`
	Closing map[string]float64           `json:"closing"` // saldo de cierre del último mes por código
}

package inventory

import (
	"sort"
	"time"
)

// StockBalance totales por SKU del agregador de saldos.
type StockBalance struct {
	SKU       string  `json:"sku"`
	Purchased float64 `json:"purchased"`
	Sold      float64 `json:"sold"`
	Balance   float64 `json:"balance"` // Purchased - Sold, nunca negativo
}

// CalculateStockBalances reduce compras y ventas a totales por SKU.
//
// No recorre los movimientos en orden de fecha: suma primero todas las compras
// y luego aplica las ventas, verificando el saldo tras cada venta. Por eso no
// detecta una caída transitoria bajo cero que sí detecta BuildMonthlyStockReport.
// Una pasada final vuelve a verificar el saldo de cada SKU.
func CalculateStockBalances(purchases, sales []MovementRecord) (map[string]StockBalance, error) {
	if err := validateAll(purchases, sales); err != nil {
		return nil, err
	}

	totals := make(map[string]*StockBalance)
	acc := func(sku string) *StockBalance {
		b, ok := totals[sku]
		if !ok {
			b = &StockBalance{SKU: sku}
			totals[sku] = b
		}
		return b
	}

	for _, p := range purchases {
		b := acc(p.SKU)
		b.Purchased += p.Quantity
		b.Balance += p.Quantity
	}

	lastSale := make(map[string]time.Time)
	for _, s := range sales {
		b := acc(s.SKU)
		b.Sold += s.Quantity
		b.Balance -= s.Quantity
		lastSale[s.SKU] = s.Date
		if b.Balance < 0 {
			return nil, &NegativeStockError{SKU: s.SKU, Date: s.Date, Balance: b.Balance}
		}
	}

	skus := make([]string, 0, len(totals))
	for sku := range totals {
		skus = append(skus, sku)
	}
	sort.Strings(skus)

	out := make(map[string]StockBalance, len(totals))
	for _, sku := range skus {
		b := totals[sku]
		if b.Balance < 0 {
			return nil, &NegativeStockError{SKU: sku, Date: lastSale[sku], Balance: b.Balance}
		}
		out[sku] = *b
	}
	return out, nil
}

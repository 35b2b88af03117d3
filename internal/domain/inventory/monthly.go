package inventory

import "sort"

// MonthlyStockSummary movimiento agregado de un SKU en un mes.
// ClosingBalance es el saldo inmediatamente después del último movimiento del mes.
type MonthlyStockSummary struct {
	Month          Month   `json:"month"`
	Purchases      float64 `json:"purchases"`
	Sales          float64 `json:"sales"`
	ClosingBalance float64 `json:"closingBalance"`
}

// MonthlyStockReport SKU → resúmenes mensuales en orden cronológico.
// Solo aparecen los meses con movimientos (secuencia dispersa).
type MonthlyStockReport map[string][]MonthlyStockSummary

// BuildMonthlyStockReport reproduce los movimientos en orden cronológico
// manteniendo un saldo corriente por SKU y falla en el primer movimiento que
// lo deja negativo. Los empates de fecha conservan el orden de entrada
// (compras antes que ventas, luego el orden de cada lista).
func BuildMonthlyStockReport(purchases, sales []MovementRecord) (MonthlyStockReport, error) {
	movements, err := normalizeMovements(purchases, sales)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(movements, func(i, j int) bool {
		return movements[i].Date.Before(movements[j].Date)
	})

	report := make(MonthlyStockReport)
	running := make(map[string]float64)
	positions := make(map[string]map[Month]int)

	for _, mv := range movements {
		month := MonthOf(mv.Date)
		current := running[mv.SKU]

		byMonth, ok := positions[mv.SKU]
		if !ok {
			byMonth = make(map[Month]int)
			positions[mv.SKU] = byMonth
		}
		pos, ok := byMonth[month]
		if !ok {
			// el mes arranca con el saldo arrastrado del mes anterior
			report[mv.SKU] = append(report[mv.SKU], MonthlyStockSummary{Month: month, ClosingBalance: current})
			pos = len(report[mv.SKU]) - 1
			byMonth[month] = pos
		}

		updated := current + mv.signed()
		if updated < 0 {
			return nil, &NegativeStockError{SKU: mv.SKU, Date: mv.Date, Balance: updated}
		}

		summary := &report[mv.SKU][pos]
		if mv.Kind == KindPurchase {
			summary.Purchases += mv.Quantity
		} else {
			summary.Sales += mv.Quantity
		}
		summary.ClosingBalance = updated
		running[mv.SKU] = updated
	}

	for _, list := range report {
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].Month.Before(list[j].Month)
		})
	}
	return report, nil
}

// FinalBalance saldo de cierre del último mes del SKU (0 si no tiene movimientos).
func (r MonthlyStockReport) FinalBalance(sku string) float64 {
	list := r[sku]
	if len(list) == 0 {
		return 0
	}
	return list[len(list)-1].ClosingBalance
}

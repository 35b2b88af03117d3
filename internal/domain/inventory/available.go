package inventory

import (
	"math"
	"sort"
	"time"
)

// AvailableAt cantidad máxima del SKU que puede venderse en el instante at
// sin dejar negativo el saldo corriente en ningún movimiento posterior.
// Una venta nueva con la misma fecha que movimientos existentes se aplica
// después de ellos.
func AvailableAt(purchases, sales []MovementRecord, sku string, at time.Time) (float64, error) {
	movements, err := normalizeMovements(recordsOf(purchases, sku), recordsOf(sales, sku))
	if err != nil {
		return 0, err
	}
	sort.SliceStable(movements, func(i, j int) bool {
		return movements[i].Date.Before(movements[j].Date)
	})

	balance := 0.0
	i := 0
	for ; i < len(movements) && !movements[i].Date.After(at); i++ {
		balance += movements[i].signed()
	}
	available := balance
	for ; i < len(movements); i++ {
		balance += movements[i].signed()
		available = math.Min(available, balance)
	}
	return math.Max(available, 0), nil
}

func recordsOf(records []MovementRecord, sku string) []MovementRecord {
	out := make([]MovementRecord, 0, len(records))
	for _, r := range records {
		if r.SKU == sku {
			out = append(out, r)
		}
	}
	return out
}

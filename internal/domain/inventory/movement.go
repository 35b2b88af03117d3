// Package inventory contiene el motor de stock: convierte compras y ventas
// fechadas en saldos por SKU y en resúmenes mensuales con saldo de cierre.
//
// Es cómputo puro sobre un lote inmutable de movimientos: no guarda estado
// entre llamadas, no hace I/O y no necesita context.Context.
package inventory

import (
	"math"
	"time"
)

// MovementKind tipo de movimiento de stock.
type MovementKind string

const (
	KindPurchase MovementKind = "purchase" // entrada
	KindSale     MovementKind = "sale"     // salida
)

// MovementRecord es un movimiento ya tipado que entrega la capa CRUD.
// SKU es opaco y sensible a mayúsculas; solo el año/mes UTC de Date importa
// para agrupar, pero el instante completo define el orden cronológico.
type MovementRecord struct {
	SKU      string
	Quantity float64
	Date     time.Time
}

// Movement es un MovementRecord etiquetado con su tipo.
type Movement struct {
	SKU      string
	Quantity float64
	Date     time.Time
	Kind     MovementKind
}

// signed devuelve la cantidad con signo: positiva para compras, negativa para ventas.
func (m Movement) signed() float64 {
	if m.Kind == KindSale {
		return -m.Quantity
	}
	return m.Quantity
}

// validQuantity: estrictamente positiva y finita (NaN no pasa q > 0).
func validQuantity(q float64) bool {
	return q > 0 && !math.IsInf(q, 0)
}

// validateRecords falla con el primer registro cuya cantidad no es válida.
func validateRecords(kind MovementKind, records []MovementRecord) error {
	for i, r := range records {
		if !validQuantity(r.Quantity) {
			return &InvalidQuantityError{SKU: r.SKU, Kind: kind, Index: i, Quantity: r.Quantity}
		}
	}
	return nil
}

// validateAll valida primero todas las compras y luego todas las ventas.
func validateAll(purchases, sales []MovementRecord) error {
	if err := validateRecords(KindPurchase, purchases); err != nil {
		return err
	}
	return validateRecords(KindSale, sales)
}

// normalizeMovements valida y une compras y ventas en una sola secuencia etiquetada,
// compras primero y ventas después, respetando el orden original de cada lista.
func normalizeMovements(purchases, sales []MovementRecord) ([]Movement, error) {
	if err := validateAll(purchases, sales); err != nil {
		return nil, err
	}
	out := make([]Movement, 0, len(purchases)+len(sales))
	for _, p := range purchases {
		out = append(out, Movement{SKU: p.SKU, Quantity: p.Quantity, Date: p.Date, Kind: KindPurchase})
	}
	for _, s := range sales {
		out = append(out, Movement{SKU: s.SKU, Quantity: s.Quantity, Date: s.Date, Kind: KindSale})
	}
	return out, nil
}

package repository

import "time"

// MovementFilter filtros comunes para listar compras y ventas.
// From/To son inclusivos; ExcludeID omite un registro (edición de una venta).
type MovementFilter struct {
	ProductID string
	From      *time.Time
	To        *time.Time
	ExcludeID string
}

// Matches aplica el filtro en memoria.
func (f MovementFilter) Matches(id, productID string, date time.Time) bool {
	if f.ProductID != "" && productID != f.ProductID {
		return false
	}
	if f.ExcludeID != "" && id == f.ExcludeID {
		return false
	}
	if f.From != nil && date.Before(*f.From) {
		return false
	}
	if f.To != nil && date.After(*f.To) {
		return false
	}
	return true
}

package inventory

import (
	"fmt"
	"time"

	"github.com/jhoicas/inventory-dashboard/internal/domain"
)

// InvalidQuantityError cantidad no positiva o no finita en un movimiento.
// Index es la posición del registro dentro de su lista (compras o ventas).
type InvalidQuantityError struct {
	SKU      string
	Kind     MovementKind
	Index    int
	Quantity float64
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("cantidad de %s #%d (SKU %q) debe ser un número positivo y finito: %v",
		kindLabel(e.Kind), e.Index, e.SKU, e.Quantity)
}

// Is permite errors.Is(err, domain.ErrInvalidQuantity).
func (e *InvalidQuantityError) Is(target error) bool {
	return target == domain.ErrInvalidQuantity
}

// NegativeStockError saldo de un SKU por debajo de cero en el movimiento de fecha Date.
type NegativeStockError struct {
	SKU     string
	Date    time.Time
	Balance float64
}

func (e *NegativeStockError) Error() string {
	return fmt.Sprintf("stock negativo para SKU %q el %s (saldo %v)",
		e.SKU, e.Date.UTC().Format("2006-01-02"), e.Balance)
}

// Is permite errors.Is(err, domain.ErrNegativeStock).
func (e *NegativeStockError) Is(target error) bool {
	return target == domain.ErrNegativeStock
}

func kindLabel(k MovementKind) string {
	switch k {
	case KindPurchase:
		return "compra"
	case KindSale:
		return "venta"
	}
	return "movimiento"
}

package ports

import (
	"context"

	"github.com/jhoicas/inventory-dashboard/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción, pasando repositorios atados a esa tx.
// Garantiza que la verificación de stock y la escritura de una venta sean atómicas.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		purchaseRepo repository.PurchaseRepository,
		saleRepo repository.SaleRepository,
	) error) error
}

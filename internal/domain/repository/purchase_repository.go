package repository

import (
	"context"

	"github.com/jhoicas/inventory-dashboard/internal/domain/entity"
)

// PurchaseRepository define el puerto de persistencia para compras.
type PurchaseRepository interface {
	Create(ctx context.Context, purchase *entity.Purchase) error
	GetByID(ctx context.Context, id string) (*entity.Purchase, error)
	Update(ctx context.Context, purchase *entity.Purchase) error
	Delete(ctx context.Context, id string) error
	// List devuelve las compras filtradas, ordenadas por fecha descendente.
	List(ctx context.Context, filter MovementFilter) ([]*entity.Purchase, error)
	CountByProduct(ctx context.Context, productID string) (int, error)
}

package repository

import (
	"context"

	"github.com/jhoicas/inventory-dashboard/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para ventas.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	Update(ctx context.Context, sale *entity.Sale) error
	Delete(ctx context.Context, id string) error
	// List devuelve las ventas filtradas, ordenadas por fecha descendente.
	List(ctx context.Context, filter MovementFilter) ([]*entity.Sale, error)
	CountByProduct(ctx context.Context, productID string) (int, error)
}

package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/inventory-dashboard/internal/domain/entity"
	"github.com/jhoicas/inventory-dashboard/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación en memoria de SaleRepository.
type SaleRepo struct {
	s *Store
	g guard
}

// Create guarda una copia de la venta.
func (r *SaleRepo) Create(_ context.Context, sale *entity.Sale) error {
	defer r.g.lock()()
	cp := *sale
	r.s.sales[cp.ID] = &cp
	return nil
}

// GetByID obtiene una venta por ID; (nil, nil) si no existe.
func (r *SaleRepo) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	defer r.g.rlock()()
	v, ok := r.s.sales[id]
	if !ok {
		return nil, nil
	}
	cp := *v
	return &cp, nil
}

// Update reemplaza la venta existente; sin efecto si no existe.
func (r *SaleRepo) Update(_ context.Context, sale *entity.Sale) error {
	defer r.g.lock()()
	if _, ok := r.s.sales[sale.ID]; !ok {
		return nil
	}
	cp := *sale
	r.s.sales[cp.ID] = &cp
	return nil
}

// Delete elimina una venta por ID.
func (r *SaleRepo) Delete(_ context.Context, id string) error {
	defer r.g.lock()()
	delete(r.s.sales, id)
	return nil
}

// List ventas filtradas, por fecha descendente.
func (r *SaleRepo) List(_ context.Context, filter repository.MovementFilter) ([]*entity.Sale, error) {
	defer r.g.rlock()()
	list := make([]*entity.Sale, 0, len(r.s.sales))
	for _, v := range r.s.sales {
		if filter.Matches(v.ID, v.ProductID, v.SoldAt) {
			cp := *v
			list = append(list, &cp)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].SoldAt.Equal(list[j].SoldAt) {
			return list[i].SoldAt.After(list[j].SoldAt)
		}
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].ID > list[j].ID
	})
	return list, nil
}

// CountByProduct número de ventas del producto.
func (r *SaleRepo) CountByProduct(_ context.Context, productID string) (int, error) {
	defer r.g.rlock()()
	n := 0
	for _, v := range r.s.sales {
		if v.ProductID == productID {
			n++
		}
	}
	return n, nil
}

package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/inventory-dashboard/internal/domain/entity"
	"github.com/jhoicas/inventory-dashboard/internal/domain/repository"
)

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

// PurchaseRepo implementación en memoria de PurchaseRepository.
type PurchaseRepo struct {
	s *Store
	g guard
}

// Create guarda una copia de la compra.
func (r *PurchaseRepo) Create(_ context.Context, purchase *entity.Purchase) error {
	defer r.g.lock()()
	cp := *purchase
	r.s.purchases[cp.ID] = &cp
	return nil
}

// GetByID obtiene una compra por ID; (nil, nil) si no existe.
func (r *PurchaseRepo) GetByID(_ context.Context, id string) (*entity.Purchase, error) {
	defer r.g.rlock()()
	p, ok := r.s.purchases[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

// Update reemplaza la compra existente; sin efecto si no existe.
func (r *PurchaseRepo) Update(_ context.Context, purchase *entity.Purchase) error {
	defer r.g.lock()()
	if _, ok := r.s.purchases[purchase.ID]; !ok {
		return nil
	}
	cp := *purchase
	r.s.purchases[cp.ID] = &cp
	return nil
}

// Delete elimina una compra por ID.
func (r *PurchaseRepo) Delete(_ context.Context, id string) error {
	defer r.g.lock()()
	delete(r.s.purchases, id)
	return nil
}

// List compras filtradas, por fecha descendente.
func (r *PurchaseRepo) List(_ context.Context, filter repository.MovementFilter) ([]*entity.Purchase, error) {
	defer r.g.rlock()()
	list := make([]*entity.Purchase, 0, len(r.s.purchases))
	for _, p := range r.s.purchases {
		if filter.Matches(p.ID, p.ProductID, p.PurchasedAt) {
			cp := *p
			list = append(list, &cp)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].PurchasedAt.Equal(list[j].PurchasedAt) {
			return list[i].PurchasedAt.After(list[j].PurchasedAt)
		}
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].ID > list[j].ID
	})
	return list, nil
}

// CountByProduct número de compras del producto.
func (r *PurchaseRepo) CountByProduct(_ context.Context, productID string) (int, error) {
	defer r.g.rlock()()
	n := 0
	for _, p := range r.s.purchases {
		if p.ProductID == productID {
			n++
		}
	}
	return n, nil
}

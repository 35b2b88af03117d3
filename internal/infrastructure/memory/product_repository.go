package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/inventory-dashboard/internal/domain"
	"github.com/jhoicas/inventory-dashboard/internal/domain/entity"
	"github.com/jhoicas/inventory-dashboard/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación en memoria de ProductRepository.
type ProductRepo struct {
	s *Store
	g guard
}

// Create guarda una copia del producto. El código es único sin distinguir mayúsculas.
func (r *ProductRepo) Create(_ context.Context, product *entity.Product) error {
	defer r.g.lock()()
	if r.codeTaken(product.Code, "") {
		return domain.ErrDuplicate
	}
	cp := *product
	r.s.products[cp.ID] = &cp
	return nil
}

// GetByID obtiene un producto por ID; (nil, nil) si no existe.
func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	defer r.g.rlock()()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

// GetByCode obtiene un producto por código (sin distinguir mayúsculas).
func (r *ProductRepo) GetByCode(_ context.Context, code string) (*entity.Product, error) {
	defer r.g.rlock()()
	for _, p := range r.s.products {
		if strings.EqualFold(p.Code, code) {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

// GetForUpdate equivale a GetByID: dentro de Run el almacén ya está bloqueado.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

// Update reemplaza el producto existente; sin efecto si no existe.
func (r *ProductRepo) Update(_ context.Context, product *entity.Product) error {
	defer r.g.lock()()
	if _, ok := r.s.products[product.ID]; !ok {
		return nil
	}
	if r.codeTaken(product.Code, product.ID) {
		return domain.ErrDuplicate
	}
	cp := *product
	r.s.products[cp.ID] = &cp
	return nil
}

// List devuelve todos los productos ordenados por nombre.
func (r *ProductRepo) List(_ context.Context) ([]*entity.Product, error) {
	defer r.g.rlock()()
	list := make([]*entity.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		cp := *p
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Name != list[j].Name {
			return list[i].Name < list[j].Name
		}
		return list[i].ID < list[j].ID
	})
	return list, nil
}

// Delete elimina un producto por ID. Como ON DELETE RESTRICT en PostgreSQL,
// devuelve domain.ErrProductInUse si alguna compra o venta lo referencia.
func (r *ProductRepo) Delete(_ context.Context, id string) error {
	defer r.g.lock()()
	for _, p := range r.s.purchases {
		if p.ProductID == id {
			return domain.ErrProductInUse
		}
	}
	for _, s := range r.s.sales {
		if s.ProductID == id {
			return domain.ErrProductInUse
		}
	}
	delete(r.s.products, id)
	return nil
}

func (r *ProductRepo) codeTaken(code, exceptID string) bool {
	for id, p := range r.s.products {
		if id != exceptID && strings.EqualFold(p.Code, code) {
			return true
		}
	}
	return false
}

// Package memory implementa los puertos de persistencia en memoria.
// Es el driver por defecto (STORAGE_DRIVER=memory) y el que usan los tests.
package memory

import (
	"sync"

	"github.com/jhoicas/inventory-dashboard/internal/domain/entity"
)

// Store datos compartidos por los repositorios en memoria.
type Store struct {
	mu        sync.RWMutex
	products  map[string]*entity.Product
	purchases map[string]*entity.Purchase
	sales     map[string]*entity.Sale
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		products:  map[string]*entity.Product{},
		purchases: map[string]*entity.Purchase{},
		sales:     map[string]*entity.Sale{},
	}
}

// Products repositorio de productos sobre el almacén.
func (s *Store) Products() *ProductRepo { return &ProductRepo{s: s, g: guard{s: s}} }

// Purchases repositorio de compras sobre el almacén.
func (s *Store) Purchases() *PurchaseRepo { return &PurchaseRepo{s: s, g: guard{s: s}} }

// Sales repositorio de ventas sobre el almacén.
func (s *Store) Sales() *SaleRepo { return &SaleRepo{s: s, g: guard{s: s}} }

// snapshot copia superficial de los mapas (las entidades se guardan como copias propias).
type snapshot struct {
	products  map[string]*entity.Product
	purchases map[string]*entity.Purchase
	sales     map[string]*entity.Sale
}

func (s *Store) snapshot() snapshot {
	snap := snapshot{
		products:  make(map[string]*entity.Product, len(s.products)),
		purchases: make(map[string]*entity.Purchase, len(s.purchases)),
		sales:     make(map[string]*entity.Sale, len(s.sales)),
	}
	for k, v := range s.products {
		snap.products[k] = v
	}
	for k, v := range s.purchases {
		snap.purchases[k] = v
	}
	for k, v := range s.sales {
		snap.sales[k] = v
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.products = snap.products
	s.purchases = snap.purchases
	s.sales = snap.sales
}

// guard bloquea el almacén salvo cuando el repo ya corre dentro de Run (que tiene el lock).
type guard struct {
	s    *Store
	inTx bool
}

func (g guard) lock() func() {
	if g.inTx {
		return func() {}
	}
	g.s.mu.Lock()
	return g.s.mu.Unlock
}

func (g guard) rlock() func() {
	if g.inTx {
		return func() {}
	}
	g.s.mu.RLock()
	return g.s.mu.RUnlock
}

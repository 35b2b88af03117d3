package memory

import (
	"context"

	"github.com/jhoicas/inventory-dashboard/internal/application/ports"
	"github.com/jhoicas/inventory-dashboard/internal/domain/repository"
)

var _ ports.TxRunner = (*TxRunner)(nil)

// TxRunner serializa las escrituras sobre el almacén y revierte los cambios si fn falla.
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el runner sobre el almacén.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

// Run toma el lock exclusivo, ejecuta fn con repos atados a la "transacción" y
// restaura el estado previo si fn devuelve error.
func (r *TxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	purchaseRepo repository.PurchaseRepository,
	saleRepo repository.SaleRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	before := r.s.snapshot()
	g := guard{s: r.s, inTx: true}
	if err := fn(&ProductRepo{s: r.s, g: g}, &PurchaseRepo{s: r.s, g: g}, &SaleRepo{s: r.s, g: g}); err != nil {
		r.s.restore(before)
		return err
	}
	return nil
}

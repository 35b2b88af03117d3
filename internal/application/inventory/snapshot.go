package inventory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/inventory-dashboard/internal/domain/entity"
	"github.com/jhoicas/inventory-dashboard/internal/domain/repository"
)

// Snapshot lote inmutable de productos y movimientos leído en una sola pasada.
// Purchases y Sales quedan en orden cronológico ascendente.
type Snapshot struct {
	Products  []*entity.Product
	Purchases []*entity.Purchase
	Sales     []*entity.Sale
}

// LoadSnapshot lee productos, compras y ventas en paralelo.
// El filtro se aplica a compras y ventas; los productos se leen completos.
func LoadSnapshot(
	ctx context.Context,
	productRepo repository.ProductRepository,
	purchaseRepo repository.PurchaseRepository,
	saleRepo repository.SaleRepository,
	filter repository.MovementFilter,
) (*Snapshot, error) {
	snap := &Snapshot{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		list, err := productRepo.List(gctx)
		if err != nil {
			return fmt.Errorf("listar productos: %w", err)
		}
		snap.Products = list
		return nil
	})
	g.Go(func() error {
		list, err := purchaseRepo.List(gctx, filter)
		if err != nil {
			return fmt.Errorf("listar compras: %w", err)
		}
		snap.Purchases = list
		return nil
	})
	g.Go(func() error {
		list, err := saleRepo.List(gctx, filter)
		if err != nil {
			return fmt.Errorf("listar ventas: %w", err)
		}
		snap.Sales = list
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	SortPurchases(snap.Purchases)
	SortSales(snap.Sales)
	return snap, nil
}

// SortPurchases ordena compras cronológicamente (fecha, alta, ID).
func SortPurchases(list []*entity.Purchase) {
	sort.SliceStable(list, func(i, j int) bool {
		a, b := list[i], list[j]
		return chronological(a.PurchasedAt, b.PurchasedAt, a.CreatedAt, b.CreatedAt, a.ID, b.ID)
	})
}

// SortSales ordena ventas cronológicamente (fecha, alta, ID).
func SortSales(list []*entity.Sale) {
	sort.SliceStable(list, func(i, j int) bool {
		a, b := list[i], list[j]
		return chronological(a.SoldAt, b.SoldAt, a.CreatedAt, b.CreatedAt, a.ID, b.ID)
	})
}

// chronological ordena por fecha del movimiento, luego por alta y por ID.
func chronological(dateA, dateB, createdA, createdB time.Time, idA, idB string) bool {
	if !dateA.Equal(dateB) {
		return dateA.Before(dateB)
	}
	if !createdA.Equal(createdB) {
		return createdA.Before(createdB)
	}
	return idA < idB
}

// Codes mapa productID → código del snapshot.
func (s *Snapshot) Codes() map[string]string {
	return CodeIndex(s.Products)
}

package inventory

import (
	"context"
	"errors"

	"github.com/jhoicas/inventory-dashboard/internal/application/dto"
	"github.com/jhoicas/inventory-dashboard/internal/domain"
	ledger "github.com/jhoicas/inventory-dashboard/internal/domain/inventory"
	"github.com/jhoicas/inventory-dashboard/internal/domain/repository"
	"github.com/jhoicas/inventory-dashboard/pkg/logger"
)

// StockUseCase consultas de existencias sobre el motor de stock.
// No guarda estado: cada consulta recalcula desde las compras y ventas persistidas.
type StockUseCase struct {
	productRepo  repository.ProductRepository
	purchaseRepo repository.PurchaseRepository
	saleRepo     repository.SaleRepository
	log          *logger.Logger
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(
	productRepo repository.ProductRepository,
	purchaseRepo repository.PurchaseRepository,
	saleRepo repository.SaleRepository,
	log *logger.Logger,
) *StockUseCase {
	return &StockUseCase{
		productRepo:  productRepo,
		purchaseRepo: purchaseRepo,
		saleRepo:     saleRepo,
		log:          log,
	}
}

// GetStock devuelve las existencias de todos los productos (ordenados por nombre)
// con el agregador de saldos y el costo promedio ponderado de sus compras.
func (uc *StockUseCase) GetStock(ctx context.Context) ([]dto.StockItemDTO, error) {
	snap, err := LoadSnapshot(ctx, uc.productRepo, uc.purchaseRepo, uc.saleRepo, repository.MovementFilter{})
	if err != nil {
		return nil, err
	}
	codes := snap.Codes()
	balances, err := ledger.CalculateStockBalances(PurchaseRecords(codes, snap.Purchases), SaleRecords(codes, snap.Sales))
	if err != nil {
		uc.logRejection(err, "stock: saldos rechazados por el motor")
		return nil, err
	}

	lots := CostLots(snap.Purchases)
	items := make([]dto.StockItemDTO, 0, len(snap.Products))
	for _, p := range snap.Products {
		b := balances[p.Code]
		items = append(items, dto.StockItemDTO{
			ID:          p.ID,
			Code:        p.Code,
			Name:        p.Name,
			Description: p.Description,
			Price:       p.Price,
			Purchased:   b.Purchased,
			Sold:        b.Sold,
			OnHand:      b.Balance,
			AverageCost: ledger.WeightedAverageCost(lots[p.ID]),
		})
	}
	return items, nil
}

// GetMonthly devuelve el libro mensual por código de producto.
// productID vacío incluye todos los productos.
func (uc *StockUseCase) GetMonthly(ctx context.Context, productID string) (*dto.MonthlyStockResponse, error) {
	if productID != "" {
		p, err := uc.productRepo.GetByID(ctx, productID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, domain.ErrNotFound
		}
	}
	snap, err := LoadSnapshot(ctx, uc.productRepo, uc.purchaseRepo, uc.saleRepo, repository.MovementFilter{ProductID: productID})
	if err != nil {
		return nil, err
	}
	codes := snap.Codes()
	report, err := ledger.BuildMonthlyStockReport(PurchaseRecords(codes, snap.Purchases), SaleRecords(codes, snap.Sales))
	if err != nil {
		uc.logRejection(err, "stock: libro mensual rechazado por el motor")
		return nil, err
	}
	closing := make(map[string]float64, len(report))
	for sku := range report {
		closing[sku] = report.FinalBalance(sku)
	}
	return &dto.MonthlyStockResponse{Report: report, Closing: closing}, nil
}

func (uc *StockUseCase) logRejection(err error, msg string) {
	ev := uc.log.Warn().Err(err)
	var neg *ledger.NegativeStockError
	if errors.As(err, &neg) {
		ev = ev.Str("sku", neg.SKU).Time("date", neg.Date).Float64("balance", neg.Balance)
	}
	var inv *ledger.InvalidQuantityError
	if errors.As(err, &inv) {
		ev = ev.Str("sku", inv.SKU).Str("kind", string(inv.Kind)).Int("index", inv.Index)
	}
	ev.Msg(msg)
}

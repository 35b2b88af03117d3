package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/inventory-dashboard/internal/domain"
	"github.com/jhoicas/inventory-dashboard/internal/domain/entity"
	ledger "github.com/jhoicas/inventory-dashboard/internal/domain/inventory"
	"github.com/jhoicas/inventory-dashboard/internal/domain/repository"
)

// CheckSale reconstruye el libro mensual del producto incluyendo la venta candidata.
// Si el saldo queda negativo devuelve *domain.InsufficientStockError con la cantidad
// que aún podría venderse en esa fecha. Una venta ya persistida con el mismo ID se
// reemplaza por la candidata (edición).
// Debe llamarse dentro de TxRunner.Run con los repos de la transacción.
func CheckSale(
	ctx context.Context,
	product *entity.Product,
	purchaseRepo repository.PurchaseRepository,
	saleRepo repository.SaleRepository,
	candidate *entity.Sale,
) error {
	purchases, sales, err := productMovements(ctx, product.ID, purchaseRepo, saleRepo, "", candidate.ID)
	if err != nil {
		return err
	}
	codes := map[string]string{product.ID: product.Code}
	pr := PurchaseRecords(codes, purchases)
	sr := SaleRecords(codes, sales)
	next := SaleRecords(codes, []*entity.Sale{candidate})

	_, err = ledger.BuildMonthlyStockReport(pr, append(sr, next...))
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrNegativeStock) {
		return err
	}
	available, aerr := ledger.AvailableAt(pr, sr, product.Code, candidate.SoldAt)
	if aerr != nil {
		return aerr
	}
	return &domain.InsufficientStockError{
		ProductID: product.ID,
		Requested: candidate.Quantity,
		Available: available,
	}
}

// CheckProduct verifica que el libro del producto, tal como quedó en la transacción,
// no tenga saldos negativos (tras editar o borrar una compra).
func CheckProduct(
	ctx context.Context,
	product *entity.Product,
	purchaseRepo repository.PurchaseRepository,
	saleRepo repository.SaleRepository,
) error {
	purchases, sales, err := productMovements(ctx, product.ID, purchaseRepo, saleRepo, "", "")
	if err != nil {
		return err
	}
	codes := map[string]string{product.ID: product.Code}
	if _, err := ledger.BuildMonthlyStockReport(PurchaseRecords(codes, purchases), SaleRecords(codes, sales)); err != nil {
		return fmt.Errorf("producto %s: %w", product.Code, err)
	}
	return nil
}

func productMovements(
	ctx context.Context,
	productID string,
	purchaseRepo repository.PurchaseRepository,
	saleRepo repository.SaleRepository,
	excludePurchaseID, excludeSaleID string,
) ([]*entity.Purchase, []*entity.Sale, error) {
	purchases, err := purchaseRepo.List(ctx, repository.MovementFilter{ProductID: productID, ExcludeID: excludePurchaseID})
	if err != nil {
		return nil, nil, fmt.Errorf("listar compras: %w", err)
	}
	sales, err := saleRepo.List(ctx, repository.MovementFilter{ProductID: productID, ExcludeID: excludeSaleID})
	if err != nil {
		return nil, nil, fmt.Errorf("listar ventas: %w", err)
	}
	SortPurchases(purchases)
	SortSales(sales)
	return purchases, sales, nil
}

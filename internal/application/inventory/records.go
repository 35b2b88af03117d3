package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-dashboard/internal/domain/entity"
	ledger "github.com/jhoicas/inventory-dashboard/internal/domain/inventory"
)

// CodeIndex mapa productID → código (el SKU del motor de stock).
func CodeIndex(products []*entity.Product) map[string]string {
	idx := make(map[string]string, len(products))
	for _, p := range products {
		idx[p.ID] = p.Code
	}
	return idx
}

// skuOf devuelve el código del producto; si el producto ya no existe usa su ID.
func skuOf(codes map[string]string, productID string) string {
	if code, ok := codes[productID]; ok {
		return code
	}
	return productID
}

// PurchaseRecords convierte compras en movimientos de entrada, en el mismo orden.
func PurchaseRecords(codes map[string]string, purchases []*entity.Purchase) []ledger.MovementRecord {
	out := make([]ledger.MovementRecord, 0, len(purchases))
	for _, p := range purchases {
		out = append(out, ledger.MovementRecord{SKU: skuOf(codes, p.ProductID), Quantity: p.Quantity, Date: p.PurchasedAt})
	}
	return out
}

// SaleRecords convierte ventas en movimientos de salida, en el mismo orden.
func SaleRecords(codes map[string]string, sales []*entity.Sale) []ledger.MovementRecord {
	out := make([]ledger.MovementRecord, 0, len(sales))
	for _, s := range sales {
		out = append(out, ledger.MovementRecord{SKU: skuOf(codes, s.ProductID), Quantity: s.Quantity, Date: s.SoldAt})
	}
	return out
}

// CostLots lotes de costo por producto para el costo promedio ponderado.
func CostLots(purchases []*entity.Purchase) map[string][]ledger.CostLot {
	lots := make(map[string][]ledger.CostLot)
	for _, p := range purchases {
		lots[p.ProductID] = append(lots[p.ProductID], ledger.CostLot{
			Quantity: decimal.NewFromFloat(p.Quantity),
			UnitCost: p.UnitCost,
		})
	}
	return lots
}

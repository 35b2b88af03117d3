// Package seed carga el catálogo de demostración a través de los puertos de repositorio,
// de modo que sirve igual para el almacén en memoria y para PostgreSQL.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-dashboard/internal/domain/entity"
	"github.com/jhoicas/inventory-dashboard/internal/domain/repository"
)

type demoProduct struct {
	code, name, description string
	price                   string
}

type demoMovement struct {
	code     string
	quantity float64
	value    string // costo o precio unitario
	date     string
}

var demoProducts = []demoProduct{
	{"bk-001", "Notebook - Dot Grid", "Cuaderno A5 punteado", "14.50"},
	{"pn-002", "Gel Pen - 0.5mm", "Bolígrafo de gel negro", "2.20"},
	{"er-003", "Soft Eraser", "Borrador blando", "1.10"},
}

var demoPurchases = []demoMovement{
	{"bk-001", 120, "7.80", "2024-01-10"},
	{"pn-002", 400, "1.10", "2024-02-05"},
	{"er-003", 200, "0.35", "2024-03-02"},
}

var demoSales = []demoMovement{
	{"bk-001", 40, "16.50", "2024-02-20"},
	{"pn-002", 150, "2.50", "2024-03-12"},
}

// Result cuántos registros se crearon.
type Result struct {
	Products  int
	Purchases int
	Sales     int
}

// Demo inserta el catálogo de demostración. Es idempotente: los productos cuyo
// código ya existe se omiten junto con sus movimientos.
func Demo(
	ctx context.Context,
	productRepo repository.ProductRepository,
	purchaseRepo repository.PurchaseRepository,
	saleRepo repository.SaleRepository,
) (Result, error) {
	var res Result
	now := time.Now().UTC()
	ids := make(map[string]string, len(demoProducts))

	for _, dp := range demoProducts {
		existing, err := productRepo.GetByCode(ctx, dp.code)
		if err != nil {
			return res, fmt.Errorf("seed: buscar producto %s: %w", dp.code, err)
		}
		if existing != nil {
			continue
		}
		p := &entity.Product{
			ID:          uuid.New().String(),
			Code:        dp.code,
			Name:        dp.name,
			Description: dp.description,
			Price:       decimal.RequireFromString(dp.price),
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := productRepo.Create(ctx, p); err != nil {
			return res, fmt.Errorf("seed: crear producto %s: %w", dp.code, err)
		}
		ids[dp.code] = p.ID
		res.Products++
	}

	for _, m := range demoPurchases {
		productID, ok := ids[m.code]
		if !ok {
			continue
		}
		date := mustDate(m.date)
		p := &entity.Purchase{
			ID:          uuid.New().String(),
			ProductID:   productID,
			Quantity:    m.quantity,
			UnitCost:    decimal.RequireFromString(m.value),
			PurchasedAt: date,
			CreatedAt:   date,
			UpdatedAt:   date,
		}
		if err := purchaseRepo.Create(ctx, p); err != nil {
			return res, fmt.Errorf("seed: crear compra %s: %w", m.code, err)
		}
		res.Purchases++
	}

	for _, m := range demoSales {
		productID, ok := ids[m.code]
		if !ok {
			continue
		}
		date := mustDate(m.date)
		s := &entity.Sale{
			ID:        uuid.New().String(),
			ProductID: productID,
			Quantity:  m.quantity,
			UnitPrice: decimal.RequireFromString(m.value),
			SoldAt:    date,
			CreatedAt: date,
			UpdatedAt: date,
		}
		if err := saleRepo.Create(ctx, s); err != nil {
			return res, fmt.Errorf("seed: crear venta %s: %w", m.code, err)
		}
		res.Sales++
	}
	return res, nil
}

func mustDate(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(fmt.Sprintf("seed: fecha inválida %q", s))
	}
	return t
}

package usecase_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-dashboard/internal/application/dto"
	"github.com/jhoicas/inventory-dashboard/internal/application/usecase"
	"github.com/jhoicas/inventory-dashboard/internal/infrastructure/memory"
	"github.com/jhoicas/inventory-dashboard/pkg/logger"
)

// countingCache registra cuántas veces se invalidó.
type countingCache struct {
	mu          sync.Mutex
	invalidated int
}

func (c *countingCache) Get(context.Context, string) ([]byte, int64, bool, error) {
	return nil, 0, false, nil
}
func (c *countingCache) Set(context.Context, string, int64, []byte, time.Duration) error {
	return nil
}
func (c *countingCache) Invalidate(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated++
	return nil
}

func (c *countingCache) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.invalidated
}

type env struct {
	store     *memory.Store
	cache     *countingCache
	products  *usecase.ProductUseCase
	purchases *usecase.PurchaseUseCase
	sales     *usecase.SaleUseCase
}

func newEnv(t *testing.T) *env {
	t.Helper()
	store := memory.NewStore()
	runner := memory.NewTxRunner(store)
	cache := &countingCache{}
	log := logger.Nop()
	return &env{
		store:     store,
		cache:     cache,
		products:  usecase.NewProductUseCase(runner, store.Products(), cache, log),
		purchases: usecase.NewPurchaseUseCase(runner, store.Products(), store.Purchases(), cache, log),
		sales:     usecase.NewSaleUseCase(runner, store.Products(), store.Sales(), cache, log),
	}
}

func day(t *testing.T, s string) *time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return &d
}

func (e *env) product(t *testing.T, code string) *dto.ProductResponse {
	t.Helper()
	p, err := e.products.Create(context.Background(), dto.CreateProductRequest{
		Code: code, Name: "Producto " + code, Price: decimal.NewFromFloat(10),
	})
	require.NoError(t, err)
	return p
}

func (e *env) buy(t *testing.T, productID string, qty float64, date string) *dto.PurchaseResponse {
	t.Helper()
	p, err := e.purchases.Create(context.Background(), dto.CreatePurchaseRequest{
		ProductID: productID, Quantity: qty, UnitCost: decimal.NewFromFloat(2), PurchasedAt: day(t, date),
	})
	require.NoError(t, err)
	return p
}

func (e *env) sell(t *testing.T, productID string, qty float64, date string) *dto.SaleResponse {
	t.Helper()
	s, err := e.sales.Create(context.Background(), dto.CreateSaleRequest{
		ProductID: productID, Quantity: qty, UnitPrice: decimal.NewFromFloat(5), SoldAt: day(t, date),
	})
	require.NoError(t, err)
	return s
}

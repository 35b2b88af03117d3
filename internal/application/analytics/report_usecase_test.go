package analytics_test

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-dashboard/internal/application/analytics"
	"github.com/jhoicas/inventory-dashboard/internal/application/dto"
	"github.com/jhoicas/inventory-dashboard/internal/domain"
	"github.com/jhoicas/inventory-dashboard/internal/domain/entity"
	ledger "github.com/jhoicas/inventory-dashboard/internal/domain/inventory"
	"github.com/jhoicas/inventory-dashboard/internal/infrastructure/memory"
	"github.com/jhoicas/inventory-dashboard/internal/infrastructure/seed"
	"github.com/jhoicas/inventory-dashboard/pkg/logger"
)

// mapCache caché en memoria con generaciones, como el adaptador de Redis.
type mapCache struct {
	mu        sync.Mutex
	gen       int64
	data      map[string][]byte
	hits      int
	beforeSet func() // se ejecuta antes de cada Set, fuera del lock
}

func newMapCache() *mapCache { return &mapCache{data: map[string][]byte{}} }

func genKey(gen int64, key string) string { return strconv.FormatInt(gen, 10) + ":" + key }

func (c *mapCache) Get(_ context.Context, key string) ([]byte, int64, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[genKey(c.gen, key)]
	if ok {
		c.hits++
	}
	return v, c.gen, ok, nil
}

func (c *mapCache) Set(_ context.Context, key string, gen int64, value []byte, _ time.Duration) error {
	if c.beforeSet != nil {
		c.beforeSet()
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[genKey(gen, key)] = value
	return nil
}

func (c *mapCache) Invalidate(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	return nil
}

func newReport(t *testing.T, cache *mapCache) (*analytics.ReportUseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	_, err := seed.Demo(context.Background(), store.Products(), store.Purchases(), store.Sales())
	require.NoError(t, err)
	var uc *analytics.ReportUseCase
	if cache == nil {
		uc = analytics.NewReportUseCase(store.Products(), store.Purchases(), store.Sales(), nil, 0, logger.Nop())
	} else {
		uc = analytics.NewReportUseCase(store.Products(), store.Purchases(), store.Sales(), cache, time.Minute, logger.Nop())
	}
	return uc, store
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestReport_SinRango(t *testing.T) {
	uc, _ := newReport(t, nil)

	r, err := uc.Generate(context.Background(), dto.ReportRequest{})
	require.NoError(t, err)

	assert.Nil(t, r.Period.Start)
	assert.Nil(t, r.Period.End)

	s := r.Summary
	assert.Equal(t, 3, s.TotalProducts)
	assert.Equal(t, 720.0, s.TotalPurchases)
	assert.Equal(t, 190.0, s.TotalSales)
	assert.True(t, s.TotalCost.Equal(dec("1446")), s.TotalCost.String())
	assert.True(t, s.TotalRevenue.Equal(dec("1035")), s.TotalRevenue.String())
	assert.True(t, s.Net.Equal(dec("-411")), s.Net.String())

	require.Len(t, r.Rows, 3)
	assert.Equal(t, ledger.Month{Year: 2024, Month: time.January}, r.Rows[0].Month)
	assert.Equal(t, 120.0, r.Rows[0].UnitsPurchased)
	assert.True(t, r.Rows[0].Cost.Equal(dec("936")))
	assert.True(t, r.Rows[1].Revenue.Equal(dec("660")))
	assert.True(t, r.Rows[1].Net.Equal(dec("220")))
	assert.Equal(t, 150.0, r.Rows[2].UnitsSold)
	assert.True(t, r.Rows[2].Net.Equal(dec("305")))

	require.Len(t, r.Details, 5)
	assert.Equal(t, dto.DetailTypeSale, r.Details[0].Type)
	assert.Equal(t, "pn-002", r.Details[0].ProductCode)
	assert.True(t, r.Details[0].Total.Equal(dec("375")))
	for i := 1; i < len(r.Details); i++ {
		assert.False(t, r.Details[i].Date.After(r.Details[i-1].Date), "detalle no ordenado")
	}

	require.Len(t, r.Products, 3)
	assert.Equal(t, "pn-002", r.Products[0].Code)
	assert.Equal(t, 250.0, r.Products[0].Stock)
	assert.True(t, r.Products[0].StockValue.Equal(dec("550")))
	assert.Equal(t, "bk-001", r.Products[1].Code)
	assert.Equal(t, 80.0, r.Products[1].Stock)
	assert.True(t, r.Products[1].StockValue.Equal(dec("1160")))
	assert.True(t, r.Products[1].TotalSalesValue.Equal(dec("660")))
}

func TestReport_RangoFiltraMovimientos(t *testing.T) {
	uc, _ := newReport(t, nil)

	r, err := uc.Generate(context.Background(), dto.ReportRequest{Start: "2024-02-01", End: "2024-02-29"})
	require.NoError(t, err)

	require.NotNil(t, r.Period.Start)
	require.NotNil(t, r.Period.End)
	assert.Equal(t, 3, r.Summary.TotalProducts)
	assert.Equal(t, 400.0, r.Summary.TotalPurchases)
	assert.Equal(t, 40.0, r.Summary.TotalSales)
	require.Len(t, r.Rows, 1)
	assert.Equal(t, "2024-02", r.Rows[0].Month.String())
	assert.Len(t, r.Details, 2)

	// el stock por producto es el neto del período y puede ser negativo
	byCode := map[string]float64{}
	for _, p := range r.Products {
		byCode[p.Code] = p.Stock
	}
	assert.Equal(t, map[string]float64{"bk-001": -40, "pn-002": 400, "er-003": 0}, byCode)
}

func TestReport_RangoInvalido(t *testing.T) {
	uc, _ := newReport(t, nil)

	_, err := uc.Generate(context.Background(), dto.ReportRequest{Start: "2024-03-01", End: "2024-02-01"})
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "general")

	_, err = uc.Generate(context.Background(), dto.ReportRequest{Start: "ayer"})
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "start")
}

func TestReport_UsaCache(t *testing.T) {
	cache := newMapCache()
	uc, store := newReport(t, cache)
	ctx := context.Background()

	first, err := uc.Generate(ctx, dto.ReportRequest{})
	require.NoError(t, err)
	assert.Len(t, cache.data, 1)

	// una escritura directa al repositorio no invalida: la segunda lectura viene del caché
	require.NoError(t, store.Products().Create(ctx, &entity.Product{
		ID: uuid.NewString(), Code: "zz-900", Name: "Zeta", Price: decimal.NewFromInt(1),
	}))

	second, err := uc.Generate(ctx, dto.ReportRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, cache.hits)
	assert.Equal(t, first.Summary.TotalProducts, second.Summary.TotalProducts)
	assert.True(t, first.Summary.Net.Equal(second.Summary.Net))
	assert.Equal(t, first.Rows[0].Month, second.Rows[0].Month)

	require.NoError(t, cache.Invalidate(ctx))
	third, err := uc.Generate(ctx, dto.ReportRequest{})
	require.NoError(t, err)
	assert.Equal(t, 4, third.Summary.TotalProducts)
}

func TestReport_InvalidacionDuranteElCalculoNoDejaReporteViejo(t *testing.T) {
	cache := newMapCache()
	uc, store := newReport(t, cache)
	ctx := context.Background()

	// la escritura confirma e invalida después de leer el snapshot y antes de guardar
	cache.beforeSet = func() {
		cache.beforeSet = nil
		require.NoError(t, store.Products().Create(ctx, &entity.Product{
			ID: uuid.NewString(), Code: "zz-900", Name: "Zeta", Price: decimal.NewFromInt(1),
		}))
		require.NoError(t, cache.Invalidate(ctx))
	}

	stale, err := uc.Generate(ctx, dto.ReportRequest{})
	require.NoError(t, err)
	assert.Equal(t, 3, stale.Summary.TotalProducts)

	fresh, err := uc.Generate(ctx, dto.ReportRequest{})
	require.NoError(t, err)
	assert.Equal(t, 0, cache.hits)
	assert.Equal(t, 4, fresh.Summary.TotalProducts)

	again, err := uc.Generate(ctx, dto.ReportRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, cache.hits)
	assert.Equal(t, 4, again.Summary.TotalProducts)
}

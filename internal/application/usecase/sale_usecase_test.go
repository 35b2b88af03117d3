package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-dashboard/internal/application/dto"
	"github.com/jhoicas/inventory-dashboard/internal/domain"
	"github.com/jhoicas/inventory-dashboard/internal/domain/repository"
)

func TestSaleUseCase_CreateDentroDelStock(t *testing.T) {
	e := newEnv(t)
	p := e.product(t, "bk-001")
	e.buy(t, p.ID, 10, "2024-01-01")

	s := e.sell(t, p.ID, 10, "2024-01-05")
	assert.Equal(t, 10.0, s.Quantity)
	require.NotNil(t, s.Product)
	assert.Equal(t, "bk-001", s.Product.Code)
}

func TestSaleUseCase_StockInsuficienteInformaDisponible(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	p := e.product(t, "bk-001")
	e.buy(t, p.ID, 10, "2024-01-01")
	e.sell(t, p.ID, 4, "2024-01-02")
	before := e.cache.count()

	_, err := e.sales.Create(ctx, dto.CreateSaleRequest{
		ProductID: p.ID, Quantity: 7, UnitPrice: decimal.NewFromInt(5), SoldAt: day(t, "2024-01-03"),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	var insufficient *domain.InsufficientStockError
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, 6.0, insufficient.Available)
	assert.Equal(t, 7.0, insufficient.Requested)

	sales, err := e.store.Sales().List(ctx, repository.MovementFilter{})
	require.NoError(t, err)
	assert.Len(t, sales, 1, "la venta rechazada no se persiste")
	assert.Equal(t, before, e.cache.count(), "sin escritura no se invalida el caché")
}

func TestSaleUseCase_VentaAnteriorALaCompraSeRechaza(t *testing.T) {
	e := newEnv(t)
	p := e.product(t, "bk-001")
	e.buy(t, p.ID, 10, "2024-03-01")

	_, err := e.sales.Create(context.Background(), dto.CreateSaleRequest{
		ProductID: p.ID, Quantity: 1, SoldAt: day(t, "2024-02-01"),
	})
	var insufficient *domain.InsufficientStockError
	require.True(t, errors.As(err, &insufficient))
	assert.Zero(t, insufficient.Available)
}

func TestSaleUseCase_VentaRetroactivaNoPuedeDejarSinStockVentasPosteriores(t *testing.T) {
	e := newEnv(t)
	p := e.product(t, "bk-001")
	e.buy(t, p.ID, 10, "2024-01-01")
	e.sell(t, p.ID, 7, "2024-01-20")
	e.buy(t, p.ID, 5, "2024-01-25")

	// el saldo final es 8, pero al 2024-01-10 solo pueden salir 3
	_, err := e.sales.Create(context.Background(), dto.CreateSaleRequest{
		ProductID: p.ID, Quantity: 4, SoldAt: day(t, "2024-01-10"),
	})
	var insufficient *domain.InsufficientStockError
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, 3.0, insufficient.Available)

	e.sell(t, p.ID, 3, "2024-01-10")
}

func TestSaleUseCase_UpdateExcluyeLaVentaEditada(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	p := e.product(t, "bk-001")
	e.buy(t, p.ID, 10, "2024-01-01")
	s := e.sell(t, p.ID, 8, "2024-01-02")

	qty := 10.0
	got, err := e.sales.Update(ctx, s.ID, dto.UpdateSaleRequest{Quantity: &qty})
	require.NoError(t, err)
	assert.Equal(t, 10.0, got.Quantity)

	qty = 11
	_, err = e.sales.Update(ctx, s.ID, dto.UpdateSaleRequest{Quantity: &qty})
	var insufficient *domain.InsufficientStockError
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, 10.0, insufficient.Available)

	stored, err := e.store.Sales().GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, 10.0, stored.Quantity, "el rechazo revierte la edición")
}

func TestSaleUseCase_UpdateCambiaDeProducto(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	a := e.product(t, "a")
	b := e.product(t, "b")
	e.buy(t, a.ID, 5, "2024-01-01")
	s := e.sell(t, a.ID, 5, "2024-01-02")

	_, err := e.sales.Update(ctx, s.ID, dto.UpdateSaleRequest{ProductID: &b.ID})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	missing := "nope"
	_, err = e.sales.Update(ctx, s.ID, dto.UpdateSaleRequest{ProductID: &missing})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSaleUseCase_Validaciones(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.sales.Create(ctx, dto.CreateSaleRequest{Quantity: 0, UnitPrice: decimal.NewFromInt(-1)})
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "productId")
	assert.Contains(t, verr.Fields, "quantity")
	assert.Contains(t, verr.Fields, "unitPrice")

	_, err = e.sales.Create(ctx, dto.CreateSaleRequest{ProductID: "nope", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = e.sales.Update(ctx, "nope", dto.UpdateSaleRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSaleUseCase_ListFiltraPorFechas(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	p := e.product(t, "bk-001")
	e.buy(t, p.ID, 10, "2024-01-01")
	e.sell(t, p.ID, 1, "2024-01-10")
	e.sell(t, p.ID, 1, "2024-02-10")
	e.sell(t, p.ID, 1, "2024-03-10")

	list, err := e.sales.List(ctx, dto.MovementListQuery{From: "2024-02-01", To: "2024-03-10"})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.True(t, list[0].SoldAt.After(list[1].SoldAt), "más recientes primero")
	assert.Equal(t, "bk-001", list[0].Product.Code)

	_, err = e.sales.List(ctx, dto.MovementListQuery{From: "ayer"})
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "from")
}

func TestSaleUseCase_Delete(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	p := e.product(t, "bk-001")
	e.buy(t, p.ID, 10, "2024-01-01")
	s := e.sell(t, p.ID, 3, "2024-01-02")

	require.NoError(t, e.sales.Delete(ctx, s.ID))
	assert.ErrorIs(t, e.sales.Delete(ctx, s.ID), domain.ErrNotFound)
}

func TestSaleUseCase_VentasAgotanElStockExacto(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	p := e.product(t, "bk-001")
	e.buy(t, p.ID, 3, "2024-01-01")
	e.sell(t, p.ID, 1, "2024-01-02")
	e.sell(t, p.ID, 2, "2024-01-03")

	_, err := e.sales.Create(ctx, dto.CreateSaleRequest{
		ProductID: p.ID, Quantity: 1, UnitPrice: decimal.NewFromInt(5), SoldAt: day(t, "2024-01-04"),
	})
	var insufficient *domain.InsufficientStockError
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, 0.0, insufficient.Available)
}

func TestSaleUseCase_CantidadesFraccionariasSeRechazan(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	p := e.product(t, "bk-001")
	c := e.buy(t, p.ID, 3, "2024-01-01")
	s := e.sell(t, p.ID, 1, "2024-01-02")

	cases := []struct {
		name string
		run  func() error
	}{
		{"compra", func() error {
			_, err := e.purchases.Create(ctx, dto.CreatePurchaseRequest{ProductID: p.ID, Quantity: 0.3})
			return err
		}},
		{"venta", func() error {
			_, err := e.sales.Create(ctx, dto.CreateSaleRequest{ProductID: p.ID, Quantity: 0.1})
			return err
		}},
		{"editar compra", func() error {
			qty := 2.5
			_, err := e.purchases.Update(ctx, c.ID, dto.UpdatePurchaseRequest{Quantity: &qty})
			return err
		}},
		{"editar venta", func() error {
			qty := 0.2
			_, err := e.sales.Update(ctx, s.ID, dto.UpdateSaleRequest{Quantity: &qty})
			return err
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var verr *domain.ValidationError
			require.True(t, errors.As(tc.run(), &verr))
			assert.Contains(t, verr.Fields, "quantity")
		})
	}
}

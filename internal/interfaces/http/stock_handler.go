package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventory-dashboard/internal/application/inventory"
)

// StockHandler expone los saldos calculados por el libro de stock.
type StockHandler struct {
	uc *inventory.StockUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *inventory.StockUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// GetStock godoc
// @Summary      Stock actual por producto
// @Description  Comprado, vendido, disponible y costo promedio ponderado por producto.
// @Tags         stock
// @Produce      json
// @Success      200  {array}   dto.StockItemDTO
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/stock [get]
func (h *StockHandler) GetStock(c *fiber.Ctx) error {
	out, err := h.uc.GetStock(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetMonthly godoc
// @Summary      Resumen mensual de stock
// @Description  Compras, ventas y saldo de cierre por mes, agrupado por código de producto.
// @Tags         stock
// @Produce      json
// @Param        productId  query  string  false  "Limitar a un producto"
// @Success      200  {object}  dto.MonthlyStockResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/stock/monthly [get]
func (h *StockHandler) GetMonthly(c *fiber.Ctx) error {
	out, err := h.uc.GetMonthly(c.UserContext(), c.Query("productId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventory-dashboard/internal/application/analytics"
	"github.com/jhoicas/inventory-dashboard/internal/application/inventory"
	"github.com/jhoicas/inventory-dashboard/internal/application/usecase"
	"github.com/jhoicas/inventory-dashboard/internal/infrastructure/export"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC  *usecase.ProductUseCase
	PurchaseUC *usecase.PurchaseUseCase
	SaleUC     *usecase.SaleUseCase
	StockUC    *inventory.StockUseCase
	ReportUC   *analytics.ReportUseCase
	Renderer   *export.Renderer
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Products
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Purchases
	purchases := api.Group("/purchases")
	purchaseHandler := NewPurchaseHandler(deps.PurchaseUC)
	purchases.Get("/", purchaseHandler.List)
	purchases.Post("/", purchaseHandler.Create)
	purchases.Put("/:id", purchaseHandler.Update)
	purchases.Delete("/:id", purchaseHandler.Delete)

	// Sales
	sales := api.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC)
	sales.Get("/", saleHandler.List)
	sales.Post("/", saleHandler.Create)
	sales.Put("/:id", saleHandler.Update)
	sales.Delete("/:id", saleHandler.Delete)

	// Stock
	stock := api.Group("/stock")
	stockHandler := NewStockHandler(deps.StockUC)
	stock.Get("/", stockHandler.GetStock)
	stock.Get("/monthly", stockHandler.GetMonthly)

	// Reports
	reportHandler := NewReportHandler(deps.ReportUC, deps.Renderer)
	api.Get("/reports", reportHandler.GetReport)
}

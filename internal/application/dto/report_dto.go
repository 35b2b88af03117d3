package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-dashboard/internal/domain/inventory"
)

// Formatos de exportación del reporte.
const (
	ReportFormatJSON = "json"
	ReportFormatCSV  = "csv"
	ReportFormatXLSX = "xlsx"
	ReportFormatPDF  = "pdf"
)

// ReportRequest parámetros de GET /api/reports.
type ReportRequest struct {
	Start  string `query:"start"`  // inclusivo; vacío = sin límite
	End    string `query:"end"`    // inclusivo; vacío = sin límite
	Format string `query:"format"` // json|csv|xlsx|pdf (default json)
}

// PeriodDTO rango de fechas aplicado.
type PeriodDTO struct {
	Start *time.Time `json:"start"`
	End   *time.Time `json:"end"`
}

// ReportSummaryDTO totales del período.
type ReportSummaryDTO struct {
	TotalProducts  int             `json:"totalProducts"`
	TotalPurchases float64         `json:"totalPurchases"` // unidades compradas
	TotalSales     float64         `json:"totalSales"`     // unidades vendidas
	TotalRevenue   decimal.Decimal `json:"totalRevenue"`   // Σ qty * unitPrice
	TotalCost      decimal.Decimal `json:"totalCost"`      // Σ qty * unitCost
	Net            decimal.Decimal `json:"net"`            // revenue - cost
}

// ReportRowDTO fila mensual (todos los productos).
type ReportRowDTO struct {
	Month          inventory.Month `json:"month"`
	UnitsPurchased float64         `json:"unitsPurchased"`
	UnitsSold      float64         `json:"unitsSold"`
	Revenue        decimal.Decimal `json:"revenue"`
	Cost           decimal.Decimal `json:"cost"`
	Net            decimal.Decimal `json:"net"`
}

// Tipos de línea del detalle.
const (
	DetailTypePurchase = "purchase"
	DetailTypeSale     = "sale"
)

// ReportDetailDTO línea de detalle (una compra o una venta).
type ReportDetailDTO struct {
	ID                 string          `json:"id"`
	Type               string          `json:"type"` // purchase|sale
	ProductID          string          `json:"productId"`
	ProductCode        string          `json:"productCode"`
	ProductDescription string          `json:"productDescription"`
	Quantity           float64         `json:"quantity"`
	UnitValue          decimal.Decimal `json:"unitValue"`
	Total              decimal.Decimal `json:"total"`
	Date               time.Time       `json:"date"`
}

// ProductReportDTO totales por producto en el período.
type ProductReportDTO struct {
	ProductID          string          `json:"productId"`
	Code               string          `json:"code"`
	Name               string          `json:"name"`
	Price              decimal.Decimal `json:"price"`
	TotalPurchased     float64         `json:"totalPurchased"`
	TotalPurchaseValue decimal.Decimal `json:"totalPurchaseValue"`
	TotalSold          float64         `json:"totalSold"`
	TotalSalesValue    decimal.Decimal `json:"totalSalesValue"`
	Stock              float64         `json:"stock"`
	StockValue         decimal.Decimal `json:"stockValue"` // stock * price
}

// ReportDTO respuesta completa de GET /api/reports.
type ReportDTO struct {
	Period   PeriodDTO          `json:"period"`
	Summary  ReportSummaryDTO   `json:"summary"`
	Rows     []ReportRowDTO     `json:"rows"`
	Details  []ReportDetailDTO  `json:"details"`
	Products []ProductReportDTO `json:"products"`
}

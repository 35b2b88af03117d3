package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/inventory-dashboard/internal/application/dto"
	"github.com/jhoicas/inventory-dashboard/pkg/format"
)

// Nombres de las hojas del libro.
const (
	SheetSummary  = "Resumen"
	SheetMonths   = "Meses"
	SheetDetails  = "Detalle"
	SheetProducts = "Productos"
)

// XLSX libro con cuatro hojas: resumen, filas mensuales, detalle y productos.
// Los montos se guardan como números; la moneda se indica en el resumen.
func XLSX(report *dto.ReportDTO, currency string) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return nil, err
	}
	for _, name := range []string{SheetMonths, SheetDetails, SheetProducts} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, err
		}
	}

	// ── Resumen ───────────────────────────────────────────────────────────────
	s := report.Summary
	summary := [][2]any{
		{"Reporte de inventario", ""},
		{"Desde", periodBound(report.Period.Start)},
		{"Hasta", periodBound(report.Period.End)},
		{"Moneda", currency},
		{"Productos", s.TotalProducts},
		{"Unidades compradas", s.TotalPurchases},
		{"Unidades vendidas", s.TotalSales},
		{"Ingresos", s.TotalRevenue.InexactFloat64()},
		{"Costos", s.TotalCost.InexactFloat64()},
		{"Neto", s.Net.InexactFloat64()},
	}
	for i, kv := range summary {
		row := i + 1
		_ = f.SetCellValue(SheetSummary, fmt.Sprintf("A%d", row), kv[0])
		_ = f.SetCellValue(SheetSummary, fmt.Sprintf("B%d", row), kv[1])
	}

	// ── Meses ─────────────────────────────────────────────────────────────────
	writeRow(f, SheetMonths, 1, "Mes", "Etiqueta", "Desde", "Unidades compradas", "Unidades vendidas", "Ingresos", "Costos", "Neto")
	for i, r := range report.Rows {
		writeRow(f, SheetMonths, i+2,
			r.Month.String(),
			format.MonthLabel(r.Month.Year, r.Month.Month),
			format.Date(r.Month.Start()),
			r.UnitsPurchased,
			r.UnitsSold,
			r.Revenue.InexactFloat64(),
			r.Cost.InexactFloat64(),
			r.Net.InexactFloat64(),
		)
	}

	// ── Detalle ───────────────────────────────────────────────────────────────
	writeRow(f, SheetDetails, 1, "Tipo", "Fecha", "Código", "Producto", "Cantidad", "Valor unitario", "Total")
	for i, d := range report.Details {
		writeRow(f, SheetDetails, i+2,
			d.Type,
			format.Date(d.Date),
			d.ProductCode,
			d.ProductDescription,
			d.Quantity,
			d.UnitValue.InexactFloat64(),
			d.Total.InexactFloat64(),
		)
	}

	// ── Productos ─────────────────────────────────────────────────────────────
	writeRow(f, SheetProducts, 1, "Código", "Nombre", "Precio", "Comprado", "Valor compras",
		"Vendido", "Valor ventas", "Stock", "Valor stock")
	for i, p := range report.Products {
		writeRow(f, SheetProducts, i+2,
			p.Code,
			p.Name,
			p.Price.InexactFloat64(),
			p.TotalPurchased,
			p.TotalPurchaseValue.InexactFloat64(),
			p.TotalSold,
			p.TotalSalesValue.InexactFloat64(),
			p.Stock,
			p.StockValue.InexactFloat64(),
		)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeRow escribe values desde la columna A de la fila indicada.
func writeRow(f *excelize.File, sheet string, row int, values ...any) {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			continue
		}
		_ = f.SetCellValue(sheet, cell, v)
	}
}

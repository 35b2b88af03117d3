package export

import (
	"bytes"
	"encoding/csv"
	"time"

	"github.com/jhoicas/inventory-dashboard/internal/application/dto"
	"github.com/jhoicas/inventory-dashboard/pkg/format"
)

var csvHeader = []string{
	"productId", "code", "name", "price",
	"totalPurchased", "totalPurchaseValue", "totalSold", "totalSalesValue",
	"stock", "stockValue", "periodStart", "periodEnd",
}

// CSV una fila por producto con sus totales del período y los límites del rango.
// Los montos van sin símbolo de moneda para que la hoja de cálculo los lea como números.
func CSV(report *dto.ReportDTO) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	start, end := periodBound(report.Period.Start), periodBound(report.Period.End)
	for _, p := range report.Products {
		rec := []string{
			p.ProductID,
			p.Code,
			p.Name,
			p.Price.StringFixed(2),
			format.Quantity(p.TotalPurchased),
			p.TotalPurchaseValue.StringFixed(2),
			format.Quantity(p.TotalSold),
			p.TotalSalesValue.StringFixed(2),
			format.Quantity(p.Stock),
			p.StockValue.StringFixed(2),
			start,
			end,
		}
		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func periodBound(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

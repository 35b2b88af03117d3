package export_test

import (
	"bytes"
	"encoding/csv"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/inventory-dashboard/internal/application/dto"
	"github.com/jhoicas/inventory-dashboard/internal/domain"
	ledger "github.com/jhoicas/inventory-dashboard/internal/domain/inventory"
	"github.com/jhoicas/inventory-dashboard/internal/infrastructure/export"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func sampleReport() *dto.ReportDTO {
	start := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	return &dto.ReportDTO{
		Period: dto.PeriodDTO{Start: &start},
		Summary: dto.ReportSummaryDTO{
			TotalProducts:  2,
			TotalPurchases: 400,
			TotalSales:     40,
			TotalRevenue:   dec("660"),
			TotalCost:      dec("440"),
			Net:            dec("220"),
		},
		Rows: []dto.ReportRowDTO{{
			Month:          ledger.Month{Year: 2024, Month: time.February},
			UnitsPurchased: 400,
			UnitsSold:      40,
			Revenue:        dec("660"),
			Cost:           dec("440"),
			Net:            dec("220"),
		}},
		Details: []dto.ReportDetailDTO{{
			ID: "s1", Type: dto.DetailTypeSale, ProductID: "p1", ProductCode: "bk-001",
			ProductDescription: "Notebook, dot grid", Quantity: 40,
			UnitValue: dec("16.5"), Total: dec("660"),
			Date: time.Date(2024, 2, 20, 0, 0, 0, 0, time.UTC),
		}},
		Products: []dto.ProductReportDTO{
			{
				ProductID: "p1", Code: "bk-001", Name: "Notebook, dot grid", Price: dec("14.5"),
				TotalSold: 40, TotalSalesValue: dec("660"), Stock: -40, StockValue: dec("-580"),
				TotalPurchaseValue: decimal.Zero,
			},
			{
				ProductID: "p2", Code: "pn-002", Name: "Gel Pen", Price: dec("2.2"),
				TotalPurchased: 400, TotalPurchaseValue: dec("440"), Stock: 400, StockValue: dec("880"),
				TotalSalesValue: decimal.Zero,
			},
		},
	}
}

func TestCSV_FilaPorProducto(t *testing.T) {
	body, err := export.CSV(sampleReport())
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(body)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "productId", records[0][0])
	assert.Equal(t, "periodEnd", records[0][11])

	// el nombre con coma queda entrecomillado y se lee completo
	assert.Equal(t, "Notebook, dot grid", records[1][2])
	assert.Equal(t, "14.50", records[1][3])
	assert.Equal(t, "-40", records[1][8])
	assert.Equal(t, "2024-02-01T00:00:00Z", records[1][10])
	assert.Equal(t, "", records[1][11])
	assert.Equal(t, "880.00", records[2][9])
}

func TestXLSX_Hojas(t *testing.T) {
	body, err := export.XLSX(sampleReport(), "USD")
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(body))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{export.SheetSummary, export.SheetMonths, export.SheetDetails, export.SheetProducts}, f.GetSheetList())

	v, err := f.GetCellValue(export.SheetSummary, "B4")
	require.NoError(t, err)
	assert.Equal(t, "USD", v)

	v, err = f.GetCellValue(export.SheetMonths, "A2")
	require.NoError(t, err)
	assert.Equal(t, "2024-02", v)
	v, err = f.GetCellValue(export.SheetMonths, "B2")
	require.NoError(t, err)
	assert.Equal(t, "Febrero 2024", v)
	v, err = f.GetCellValue(export.SheetMonths, "C2")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-01", v)

	v, err = f.GetCellValue(export.SheetDetails, "C2")
	require.NoError(t, err)
	assert.Equal(t, "bk-001", v)

	rows, err := f.GetRows(export.SheetProducts)
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestPDF_GeneraDocumento(t *testing.T) {
	body, err := export.PDF(sampleReport(), "USD")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))
}

func TestRender_Formatos(t *testing.T) {
	r := export.NewRenderer("usd")

	doc, err := r.Render(dto.ReportFormatCSV, sampleReport())
	require.NoError(t, err)
	assert.Equal(t, "inventory-report.csv", doc.Filename)
	assert.Contains(t, doc.ContentType, "text/csv")

	doc, err = r.Render(dto.ReportFormatXLSX, sampleReport())
	require.NoError(t, err)
	assert.Equal(t, "inventory-report.xlsx", doc.Filename)

	_, err = r.Render("docx", sampleReport())
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	assert.True(t, export.Supported("pdf"))
	assert.False(t, export.Supported("json"))
}

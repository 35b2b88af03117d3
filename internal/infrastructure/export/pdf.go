package export

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-dashboard/internal/application/dto"
	"github.com/jhoicas/inventory-dashboard/pkg/format"
)

// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: título + período                                   │
//	│  RESUMEN: productos / unidades / ingresos / costos / neto   │
//	│  TABLA MENSUAL: Mes | Compradas | Vendidas | Ingreso | ...  │
//	│  TABLA PRODUCTOS: Código | Nombre | Stock | Valor stock     │
//	└─────────────────────────────────────────────────────────────┘

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorRed     = &props.Color{Red: 170, Green: 30, Blue: 30}
)

// PDF genera el reporte en A4 con Maroto v2.
func PDF(report *dto.ReportDTO, currency string) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de inventario", true).
		Build()

	m := maroto.New(cfg)
	money := func(d decimal.Decimal) string { return format.Money(d, currency) }

	m.AddRows(headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(report.Summary, money))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitle("MOVIMIENTO MENSUAL"))
	m.AddRows(tableHeaderRow([]column{
		{"Mes", 3, align.Left},
		{"Compradas", 2, align.Right},
		{"Vendidas", 2, align.Right},
		{"Ingresos", 2, align.Right},
		{"Costos", 2, align.Right},
		{"Neto", 1, align.Right},
	}))
	if len(report.Rows) == 0 {
		m.AddRows(emptyRow("Sin movimientos en el período"))
	}
	for _, r := range report.Rows {
		m.AddRows(tableRow([]cell{
			{format.MonthLabel(r.Month.Year, r.Month.Month), 3, align.Left, nil},
			{format.Quantity(r.UnitsPurchased), 2, align.Right, nil},
			{format.Quantity(r.UnitsSold), 2, align.Right, nil},
			{money(r.Revenue), 2, align.Right, nil},
			{money(r.Cost), 2, align.Right, nil},
			{money(r.Net), 1, align.Right, signColor(r.Net)},
		}))
	}

	m.AddRows(line.NewRow(4))
	m.AddRows(sectionTitle("PRODUCTOS"))
	m.AddRows(tableHeaderRow([]column{
		{"Código", 2, align.Left},
		{"Nombre", 4, align.Left},
		{"Comprado", 1, align.Right},
		{"Vendido", 1, align.Right},
		{"Stock", 1, align.Right},
		{"Valor stock", 3, align.Right},
	}))
	for _, p := range report.Products {
		m.AddRows(tableRow([]cell{
			{p.Code, 2, align.Left, nil},
			{p.Name, 4, align.Left, nil},
			{format.Quantity(p.TotalPurchased), 1, align.Right, nil},
			{format.Quantity(p.TotalSold), 1, align.Right, nil},
			{format.Quantity(p.Stock), 1, align.Right, nil},
			{money(p.StockValue), 3, align.Right, nil},
		}))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y período (der).
func headerRow(report *dto.ReportDTO) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New("REPORTE DE INVENTARIO", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New("Período", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(periodLabel(report.Period), props.Text{
				Size: 9, Align: align.Right, Top: 7,
			}),
		),
	)
}

// summaryRow: totales del período en dos columnas de etiquetas y valores.
func summaryRow(s dto.ReportSummaryDTO, money func(decimal.Decimal) string) core.Row {
	label := func(v string) core.Component {
		return text.New(v, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(v string) core.Component {
		return text.New(v, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	return row.New(24).Add(
		col.New(3).Add(
			label("Productos:"),
			label("Unidades compradas:"),
			label("Unidades vendidas:"),
		),
		col.New(3).Add(
			value(fmt.Sprintf("%d", s.TotalProducts)),
			value(format.Quantity(s.TotalPurchases)),
			value(format.Quantity(s.TotalSales)),
		),
		col.New(3).Add(
			label("Ingresos:"),
			label("Costos:"),
			label("NETO:"),
		),
		col.New(3).Add(
			value(money(s.TotalRevenue)),
			value(money(s.TotalCost)),
			text.New(money(s.Net), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Right: 1, Color: signColor(s.Net),
			}),
		),
	)
}

func sectionTitle(title string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2}),
	))
}

type column struct {
	label string
	size  int
	align align.Type
}

type cell struct {
	value string
	size  int
	align align.Type
	color *props.Color
}

func tableHeaderRow(cols []column) core.Row {
	r := row.New(7)
	for _, c := range cols {
		r.Add(col.New(c.size).Add(text.New(c.label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: c.align, Color: colorGray, Top: 1, Left: 1, Right: 1,
		})))
	}
	return r
}

func tableRow(cells []cell) core.Row {
	r := row.New(6)
	for _, c := range cells {
		r.Add(col.New(c.size).Add(text.New(c.value, props.Text{
			Size: 8, Align: c.align, Top: 1, Left: 1, Right: 1, Color: c.color,
		})))
	}
	return r
}

func emptyRow(msg string) core.Row {
	return row.New(6).Add(col.New(12).Add(
		text.New(msg, props.Text{Size: 8, Align: align.Center, Color: colorGray, Top: 1}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func signColor(d decimal.Decimal) *props.Color {
	if d.IsNegative() {
		return colorRed
	}
	return nil
}

func periodLabel(p dto.PeriodDTO) string {
	from, to := "inicio", "hoy"
	if p.Start != nil {
		from = format.Date(*p.Start)
	}
	if p.End != nil {
		to = format.Date(*p.End)
	}
	return from + " a " + to
}

// Package analytics contiene el reporte financiero del período: resumen,
// filas por mes, detalle de movimientos y totales por producto.
package analytics

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-dashboard/internal/application/dto"
	"github.com/jhoicas/inventory-dashboard/internal/application/inventory"
	"github.com/jhoicas/inventory-dashboard/internal/application/ports"
	"github.com/jhoicas/inventory-dashboard/internal/application/usecase"
	"github.com/jhoicas/inventory-dashboard/internal/domain/entity"
	ledger "github.com/jhoicas/inventory-dashboard/internal/domain/inventory"
	"github.com/jhoicas/inventory-dashboard/internal/domain/repository"
	"github.com/jhoicas/inventory-dashboard/pkg/logger"
)

const cacheKeyPrefix = "report:"

// ReportUseCase genera el reporte financiero a partir de compras y ventas.
//
// Fuente de datos: repositorios de productos, compras y ventas (lecturas en paralelo).
// Si hay caché configurado, el resultado se guarda por rango (start, end) y
// cualquier escritura lo invalida.
type ReportUseCase struct {
	productRepo  repository.ProductRepository
	purchaseRepo repository.PurchaseRepository
	saleRepo     repository.SaleRepository
	cache        ports.ReportCache
	ttl          time.Duration
	log          *logger.Logger
}

// NewReportUseCase construye el caso de uso. cache puede ser nil.
func NewReportUseCase(
	productRepo repository.ProductRepository,
	purchaseRepo repository.PurchaseRepository,
	saleRepo repository.SaleRepository,
	cache ports.ReportCache,
	ttl time.Duration,
	log *logger.Logger,
) *ReportUseCase {
	return &ReportUseCase{
		productRepo:  productRepo,
		purchaseRepo: purchaseRepo,
		saleRepo:     saleRepo,
		cache:        cache,
		ttl:          ttl,
		log:          log,
	}
}

// Generate construye el ReportDTO del rango [start, end] (ambos opcionales e inclusivos).
func (uc *ReportUseCase) Generate(ctx context.Context, req dto.ReportRequest) (*dto.ReportDTO, error) {
	from, to, err := usecase.ParseDateRange(req.Start, req.End, "start", "end")
	if err != nil {
		return nil, err
	}

	key := cacheKey(from, to)
	cached, gen, ok := uc.fromCache(ctx, key)
	if ok {
		return cached, nil
	}

	snap, err := inventory.LoadSnapshot(ctx, uc.productRepo, uc.purchaseRepo, uc.saleRepo,
		repository.MovementFilter{From: from, To: to})
	if err != nil {
		return nil, err
	}
	report := BuildReport(snap, from, to)
	uc.toCache(ctx, key, gen, report)
	return report, nil
}

// fromCache devuelve el reporte cacheado o la generación en la que guardar el
// que se va a calcular. gen < 0 indica que no hay que escribir en caché.
func (uc *ReportUseCase) fromCache(ctx context.Context, key string) (*dto.ReportDTO, int64, bool) {
	if uc.cache == nil {
		return nil, -1, false
	}
	raw, gen, ok, err := uc.cache.Get(ctx, key)
	if err != nil {
		uc.log.Warn().Err(err).Str("key", key).Msg("reporte: lectura de caché fallida")
		return nil, -1, false
	}
	if !ok {
		return nil, gen, false
	}
	var report dto.ReportDTO
	if err := json.Unmarshal(raw, &report); err != nil {
		uc.log.Warn().Err(err).Str("key", key).Msg("reporte: entrada de caché ilegible")
		return nil, gen, false
	}
	return &report, gen, true
}

func (uc *ReportUseCase) toCache(ctx context.Context, key string, gen int64, report *dto.ReportDTO) {
	if uc.cache == nil || uc.ttl <= 0 || gen < 0 {
		return
	}
	raw, err := json.Marshal(report)
	if err != nil {
		uc.log.Warn().Err(err).Msg("reporte: no se pudo serializar para caché")
		return
	}
	if err := uc.cache.Set(ctx, key, gen, raw, uc.ttl); err != nil {
		uc.log.Warn().Err(err).Str("key", key).Msg("reporte: escritura de caché fallida")
	}
}

func cacheKey(from, to *time.Time) string {
	bound := func(t *time.Time) string {
		if t == nil {
			return "-"
		}
		return t.UTC().Format(time.RFC3339Nano)
	}
	return cacheKeyPrefix + bound(from) + ":" + bound(to)
}

// BuildReport agrega un snapshot ya filtrado por fechas. Es cálculo puro.
// Los meses se agrupan en UTC igual que el libro de stock.
func BuildReport(snap *inventory.Snapshot, from, to *time.Time) *dto.ReportDTO {
	products := make(map[string]*entity.Product, len(snap.Products))
	for _, p := range snap.Products {
		products[p.ID] = p
	}

	summary := dto.ReportSummaryDTO{
		TotalProducts: len(snap.Products),
		TotalRevenue:  decimal.Zero,
		TotalCost:     decimal.Zero,
	}
	rows := make(map[ledger.Month]*dto.ReportRowDTO)
	row := func(t time.Time) *dto.ReportRowDTO {
		m := ledger.MonthOf(t)
		r, ok := rows[m]
		if !ok {
			r = &dto.ReportRowDTO{Month: m, Revenue: decimal.Zero, Cost: decimal.Zero}
			rows[m] = r
		}
		return r
	}
	perProduct := make(map[string]*dto.ProductReportDTO, len(snap.Products))
	for _, p := range snap.Products {
		perProduct[p.ID] = &dto.ProductReportDTO{
			ProductID:          p.ID,
			Code:               p.Code,
			Name:               p.Name,
			Price:              p.Price,
			TotalPurchaseValue: decimal.Zero,
			TotalSalesValue:    decimal.Zero,
		}
	}
	details := make([]dto.ReportDetailDTO, 0, len(snap.Purchases)+len(snap.Sales))

	// ── Compras: costo ─────────────────────────────────────────────────────────
	for _, p := range snap.Purchases {
		total := p.Total()
		summary.TotalPurchases += p.Quantity
		summary.TotalCost = summary.TotalCost.Add(total)

		r := row(p.PurchasedAt)
		r.UnitsPurchased += p.Quantity
		r.Cost = r.Cost.Add(total)

		if pr, ok := perProduct[p.ProductID]; ok {
			pr.TotalPurchased += p.Quantity
			pr.TotalPurchaseValue = pr.TotalPurchaseValue.Add(total)
		}
		details = append(details, detail(dto.DetailTypePurchase, p.ID, p.ProductID, products[p.ProductID],
			p.Quantity, p.UnitCost, total, p.PurchasedAt))
	}

	// ── Ventas: ingreso ────────────────────────────────────────────────────────
	for _, s := range snap.Sales {
		total := s.Total()
		summary.TotalSales += s.Quantity
		summary.TotalRevenue = summary.TotalRevenue.Add(total)

		r := row(s.SoldAt)
		r.UnitsSold += s.Quantity
		r.Revenue = r.Revenue.Add(total)

		if pr, ok := perProduct[s.ProductID]; ok {
			pr.TotalSold += s.Quantity
			pr.TotalSalesValue = pr.TotalSalesValue.Add(total)
		}
		details = append(details, detail(dto.DetailTypeSale, s.ID, s.ProductID, products[s.ProductID],
			s.Quantity, s.UnitPrice, total, s.SoldAt))
	}

	summary.TotalRevenue = summary.TotalRevenue.Round(2)
	summary.TotalCost = summary.TotalCost.Round(2)
	summary.Net = summary.TotalRevenue.Sub(summary.TotalCost)

	out := &dto.ReportDTO{
		Period:   dto.PeriodDTO{Start: from, End: to},
		Summary:  summary,
		Rows:     make([]dto.ReportRowDTO, 0, len(rows)),
		Details:  details,
		Products: make([]dto.ProductReportDTO, 0, len(snap.Products)),
	}
	for _, r := range rows {
		r.Revenue = r.Revenue.Round(2)
		r.Cost = r.Cost.Round(2)
		r.Net = r.Revenue.Sub(r.Cost)
		out.Rows = append(out.Rows, *r)
	}
	sort.Slice(out.Rows, func(i, j int) bool { return out.Rows[i].Month.Before(out.Rows[j].Month) })

	sort.SliceStable(out.Details, func(i, j int) bool {
		a, b := out.Details[i], out.Details[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.After(b.Date)
		}
		return a.ID < b.ID
	})

	// productos en el orden del repositorio (por nombre)
	for _, p := range snap.Products {
		pr := perProduct[p.ID]
		pr.TotalPurchaseValue = pr.TotalPurchaseValue.Round(2)
		pr.TotalSalesValue = pr.TotalSalesValue.Round(2)
		pr.Stock = pr.TotalPurchased - pr.TotalSold
		pr.StockValue = decimal.NewFromFloat(pr.Stock).Mul(p.Price).Round(2)
		out.Products = append(out.Products, *pr)
	}
	return out
}

func detail(kind, id, productID string, p *entity.Product, qty float64, unit, total decimal.Decimal, date time.Time) dto.ReportDetailDTO {
	d := dto.ReportDetailDTO{
		ID:        id,
		Type:      kind,
		ProductID: productID,
		Quantity:  qty,
		UnitValue: unit,
		Total:     total.Round(2),
		Date:      date,
	}
	if p != nil {
		d.ProductCode = p.Code
		d.ProductDescription = p.Name
		if p.Description != "" {
			d.ProductDescription = p.Description
		}
	}
	return d
}

package usecase

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-dashboard/internal/application/dto"
	"github.com/jhoicas/inventory-dashboard/internal/application/ports"
	"github.com/jhoicas/inventory-dashboard/internal/domain"
	"github.com/jhoicas/inventory-dashboard/internal/domain/entity"
	"github.com/jhoicas/inventory-dashboard/pkg/logger"
)

const dateLayout = "2006-01-02"

// normalizeCode los códigos se guardan sin espacios y en minúsculas.
func normalizeCode(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}

// maxQuantity mayor entero que float64 representa sin pérdida.
const maxQuantity = 1 << 53

// checkQuantity cantidad de movimiento: entero positivo. Con unidades enteras
// las sumas del libro en float64 son exactas y una venta puede agotar el stock.
func checkQuantity(verr *domain.ValidationError, field string, q float64) {
	if !(q > 0) || q > maxQuantity || q != math.Trunc(q) {
		verr.Add(field, "la cantidad debe ser un entero positivo")
	}
}

// checkAmount montos (precio, costo): cero o mayor.
func checkAmount(verr *domain.ValidationError, field string, d decimal.Decimal) {
	if d.IsNegative() {
		verr.Add(field, "el valor debe ser cero o mayor")
	}
}

// invalidateReports descarta los reportes cacheados; un fallo del caché no aborta la escritura.
func invalidateReports(ctx context.Context, cache ports.ReportCache, log *logger.Logger) {
	if cache == nil {
		return
	}
	if err := cache.Invalidate(ctx); err != nil {
		log.Warn().Err(err).Msg("cache: no se pudo invalidar reportes")
	}
}

func toProductRef(p *entity.Product) *dto.ProductRef {
	if p == nil {
		return nil
	}
	return &dto.ProductRef{ID: p.ID, Code: p.Code, Name: p.Name}
}

// productIndex mapa ID → producto para embeber referencias en listados.
func productIndex(list []*entity.Product) map[string]*entity.Product {
	idx := make(map[string]*entity.Product, len(list))
	for _, p := range list {
		idx[p.ID] = p
	}
	return idx
}

// ParseDateRange interpreta un rango opcional de fechas (YYYY-MM-DD o RFC3339).
// Una fecha final sin hora incluye el día completo. Los errores se devuelven
// como *domain.ValidationError con las claves fromField / toField.
func ParseDateRange(fromStr, toStr, fromField, toField string) (from, to *time.Time, err error) {
	verr := domain.NewValidationError()
	if fromStr != "" {
		t, ok := parseDate(fromStr, false)
		if !ok {
			verr.Add(fromField, "fecha inválida")
		} else {
			from = &t
		}
	}
	if toStr != "" {
		t, ok := parseDate(toStr, true)
		if !ok {
			verr.Add(toField, "fecha inválida")
		} else {
			to = &t
		}
	}
	if from != nil && to != nil && from.After(*to) {
		verr.Add("general", fromField+" no puede ser posterior a "+toField)
	}
	if err := verr.OrNil(); err != nil {
		return nil, nil, err
	}
	return from, to, nil
}

func parseDate(s string, endOfDay bool) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, true
}

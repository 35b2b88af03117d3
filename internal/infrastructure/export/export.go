// Package export serializa el reporte financiero en CSV, XLSX y PDF.
package export

import (
	"fmt"
	"strings"

	"github.com/jhoicas/inventory-dashboard/internal/application/dto"
	"github.com/jhoicas/inventory-dashboard/internal/domain"
)

const filenameBase = "inventory-report"

// Document archivo listo para descargar.
type Document struct {
	Body        []byte
	ContentType string
	Filename    string
}

// Renderer produce documentos del reporte en la moneda configurada.
type Renderer struct {
	currency string
}

// NewRenderer construye el renderer; currency es un código ISO 4217.
func NewRenderer(currency string) *Renderer {
	return &Renderer{currency: strings.ToUpper(currency)}
}

// Supported indica si el formato se exporta como archivo.
func Supported(format string) bool {
	switch format {
	case dto.ReportFormatCSV, dto.ReportFormatXLSX, dto.ReportFormatPDF:
		return true
	}
	return false
}

// Render genera el documento en el formato pedido (csv, xlsx o pdf).
func (r *Renderer) Render(format string, report *dto.ReportDTO) (*Document, error) {
	var (
		body []byte
		err  error
		ct   string
	)
	switch format {
	case dto.ReportFormatCSV:
		body, err = CSV(report)
		ct = "text/csv; charset=utf-8"
	case dto.ReportFormatXLSX:
		body, err = XLSX(report, r.currency)
		ct = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case dto.ReportFormatPDF:
		body, err = PDF(report, r.currency)
		ct = "application/pdf"
	default:
		return nil, fmt.Errorf("formato %q: %w", format, domain.ErrInvalidInput)
	}
	if err != nil {
		return nil, fmt.Errorf("exportar %s: %w", format, err)
	}
	return &Document{Body: body, ContentType: ct, Filename: filenameBase + "." + format}, nil
}

package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventory-dashboard/internal/application/analytics"
	"github.com/jhoicas/inventory-dashboard/internal/application/dto"
	"github.com/jhoicas/inventory-dashboard/internal/domain"
	"github.com/jhoicas/inventory-dashboard/internal/infrastructure/export"
	"github.com/jhoicas/inventory-dashboard/internal/infrastructure/metrics"
)

// ReportHandler sirve el reporte financiero en JSON o como archivo.
type ReportHandler struct {
	uc       *analytics.ReportUseCase
	renderer *export.Renderer
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *analytics.ReportUseCase, renderer *export.Renderer) *ReportHandler {
	return &ReportHandler{uc: uc, renderer: renderer}
}

// GetReport godoc
// @Summary      Reporte financiero del período
// @Description  Resumen, filas mensuales, detalle de movimientos y totales por producto.
//
//	format=csv|xlsx|pdf devuelve un archivo adjunto.
//
// @Tags         reports
// @Produce      json
// @Produce      text/csv
// @Produce      application/pdf
// @Param        start   query  string  false  "Inicio (YYYY-MM-DD o RFC3339), inclusivo"
// @Param        end     query  string  false  "Fin (YYYY-MM-DD o RFC3339), inclusivo"
// @Param        format  query  string  false  "json (default), csv, xlsx o pdf"
// @Success      200  {object}  dto.ReportDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports [get]
func (h *ReportHandler) GetReport(c *fiber.Ctx) error {
	var req dto.ReportRequest
	if err := c.QueryParser(&req); err != nil {
		return invalidParams(c)
	}
	format := strings.ToLower(strings.TrimSpace(req.Format))
	if format == "" {
		format = dto.ReportFormatJSON
	}
	if format != dto.ReportFormatJSON && !export.Supported(format) {
		verr := domain.NewValidationError()
		verr.Add("format", "formato no soportado (json, csv, xlsx, pdf)")
		return respondError(c, verr)
	}

	report, err := h.uc.Generate(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}
	if format == dto.ReportFormatJSON {
		return c.JSON(report)
	}

	start := time.Now()
	doc, err := h.renderer.Render(format, report)
	if err != nil {
		metrics.ObserveReportExport(format, metrics.ResultError, time.Since(start))
		return respondError(c, err)
	}
	metrics.ObserveReportExport(format, metrics.ResultSuccess, time.Since(start))

	c.Set(fiber.HeaderContentType, doc.ContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+doc.Filename+`"`)
	return c.Send(doc.Body)
}

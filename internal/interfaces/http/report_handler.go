package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/stocktrack-api/internal/application/report"
	"github.com/tu-usuario/stocktrack-api/internal/infrastructure/excel"
	"github.com/tu-usuario/stocktrack-api/internal/infrastructure/metrics"
	"github.com/tu-usuario/stocktrack-api/internal/infrastructure/pdf"
)

// ReportHandler genera reportes de inventario en JSON, Excel y PDF.
// El motor produce el resultado estructurado; este handler elige el sink.
type ReportHandler struct {
	uc          *report.ReportUseCase
	excelWriter *excel.ReportWriter
	pdfGen      *pdf.ReportGenerator
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.ReportUseCase, excelWriter *excel.ReportWriter, pdfGen *pdf.ReportGenerator) *ReportHandler {
	return &ReportHandler{uc: uc, excelWriter: excelWriter, pdfGen: pdfGen}
}

// reportFilter lee los query params del reporte.
func reportFilter(c *fiber.Ctx) report.Filter {
	return report.Filter{
		CategoryID: c.Query("category_id"),
		StartDate:  c.Query("start_date"),
		EndDate:    c.Query("end_date"),
	}
}

// Generate godoc
// @Summary      Generar reporte en JSON
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        category_id  query  int     false  "Categoría (0 o ausente = todas)"
// @Param        start_date   query  string  false  "Fecha inicial YYYY-MM-DD (va junto a end_date)"
// @Param        end_date     query  string  false  "Fecha final YYYY-MM-DD, inclusiva"
// @Success      200  {object}  dto.ReportResult
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports [get]
func (h *ReportHandler) Generate(c *fiber.Ctx) error {
	out, err := h.uc.Generate(c.Context(), reportFilter(c))
	if err != nil {
		return respondError(c, err)
	}
	metrics.ReportsGeneratedTotal.WithLabelValues("json").Inc()
	return c.JSON(out)
}

// ExportExcel godoc
// @Summary      Exportar reporte a Excel
// @Tags         reports
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        category_id  query  int     false  "Categoría (0 o ausente = todas)"
// @Param        start_date   query  string  false  "Fecha inicial YYYY-MM-DD"
// @Param        end_date     query  string  false  "Fecha final YYYY-MM-DD, inclusiva"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/export/excel [get]
func (h *ReportHandler) ExportExcel(c *fiber.Ctx) error {
	out, err := h.uc.Generate(c.Context(), reportFilter(c))
	if err != nil {
		return respondError(c, err)
	}
	data, err := h.excelWriter.Build(out)
	if err != nil {
		return respondError(c, err)
	}
	metrics.ReportsGeneratedTotal.WithLabelValues("excel").Inc()
	filename := "inventory_report_" + time.Now().UTC().Format("20060102_150405") + ".xlsx"
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}

// ExportPDF godoc
// @Summary      Exportar reporte a PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        category_id  query  int     false  "Categoría (0 o ausente = todas)"
// @Param        start_date   query  string  false  "Fecha inicial YYYY-MM-DD"
// @Param        end_date     query  string  false  "Fecha final YYYY-MM-DD, inclusiva"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/export/pdf [get]
func (h *ReportHandler) ExportPDF(c *fiber.Ctx) error {
	out, err := h.uc.Generate(c.Context(), reportFilter(c))
	if err != nil {
		return respondError(c, err)
	}
	data, err := h.pdfGen.Generate(out)
	if err != nil {
		return respondError(c, err)
	}
	metrics.ReportsGeneratedTotal.WithLabelValues("pdf").Inc()
	filename := "inventory_report_" + time.Now().UTC().Format("20060102_150405") + ".pdf"
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventorypro-api/internal/application/dto"
	"github.com/jhoicas/inventorypro-api/internal/application/report"
)

// ReportHandler resúmenes JSON y PDFs de reportes.
type ReportHandler struct {
	uc *report.UseCase
}

func NewReportHandler(uc *report.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Summary godoc
// @Summary      Agregados del reporte por rango
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        type   query  string  false  "inventory o shipment"  default(inventory)
// @Param        range  query  string  false  "7d, 30d, 90d o 1y"       default(30d)
// @Success      200  {object}  dto.ReportSummaryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/summary [get]
func (h *ReportHandler) Summary(c *fiber.Ctx) error {
	kind, err := report.ParseKind(c.Query("type"))
	if err != nil {
		return writeError(c, err)
	}
	rep, err := h.uc.Summary(c.UserContext(), kind, c.Query("range", "30d"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ReportSummaryFrom(rep))
}

// Export godoc
// @Summary      Descargar reporte PDF por rango
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        type   query  string  false  "inventory o shipment"  default(inventory)
// @Param        range  query  string  false  "7d, 30d, 90d o 1y"       default(30d)
// @Success      200  {file}    binary
// @Failure      422  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reports/export [get]
func (h *ReportHandler) Export(c *fiber.Ctx) error {
	kind, err := report.ParseKind(c.Query("type"))
	if err != nil {
		return writeError(c, err)
	}
	f, err := h.uc.Export(c.UserContext(), kind, c.Query("range", "30d"))
	if err != nil {
		return writeError(c, err)
	}
	return sendPDF(c, f)
}

// Daily godoc
// @Summary      Reporte diario (JSON o PDF)
// @Description  Con format=pdf descarga el PDF; sin actividad hoy responde 422.
// @Tags         reports
// @Security     Bearer
// @Produce      json,application/pdf
// @Param        format  query  string  false  "json o pdf"  default(json)
// @Success      200  {object}  dto.DailyReportResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/reports/daily [get]
func (h *ReportHandler) Daily(c *fiber.Ctx) error {
	if c.Query("format") == "pdf" {
		f, err := h.uc.ExportDaily(c.UserContext())
		if err != nil {
			return writeError(c, err)
		}
		return sendPDF(c, f)
	}
	rep, err := h.uc.Daily(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.DailyReportFrom(rep))
}

func sendPDF(c *fiber.Ctx, f *report.File) error {
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+f.Name+`"`)
	return c.Send(f.Content)
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventorypro-api/internal/application/dto"
	"github.com/jhoicas/inventorypro-api/internal/application/ledger"
)

// LogHandler logs de stock y de despachos (solo lectura).
type LogHandler struct {
	uc *ledger.LedgerUseCase
}

func NewLogHandler(uc *ledger.LedgerUseCase) *LogHandler {
	return &LogHandler{uc: uc}
}

func logFilter(c *fiber.Ctx) ledger.LogFilter {
	return ledger.LogFilter{Search: c.Query("search"), Action: c.Query("action"), User: c.Query("user")}
}

// StockLogs godoc
// @Summary      Logs de stock
// @Tags         logs
// @Security     Bearer
// @Produce      json
// @Param        search  query  string  false  "Producto, notas o usuario"
// @Param        action  query  string  false  "add, remove, set o all"
// @Param        user    query  string  false  "Usuario o all"
// @Success      200  {object}  dto.ListResponse[dto.StockLogResponse]
// @Router       /api/logs [get]
func (h *LogHandler) StockLogs(c *fiber.Ctx) error {
	ls, err := h.uc.ListStockLogs(c.UserContext(), logFilter(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewList(dto.StockLogsFromEntities(ls)))
}

// ShipmentLogs godoc
// @Summary      Logs de despachos
// @Tags         logs
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ListResponse[dto.ShipmentLogResponse]
// @Router       /api/shipment-logs [get]
func (h *LogHandler) ShipmentLogs(c *fiber.Ctx) error {
	ls, err := h.uc.ListShipmentLogs(c.UserContext(), logFilter(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewList(dto.ShipmentLogsFromEntities(ls)))
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventorypro-api/internal/application/alerts"
	"github.com/jhoicas/inventorypro-api/internal/application/dto"
)

// AlertHandler alertas de stock.
type AlertHandler struct {
	svc *alerts.Service
}

func NewAlertHandler(svc *alerts.Service) *AlertHandler {
	return &AlertHandler{svc: svc}
}

// List godoc
// @Summary      Listar alertas
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Param        include_acknowledged  query  bool  false  "Incluir reconocidas"
// @Success      200  {object}  dto.AlertListResponse
// @Router       /api/alerts [get]
func (h *AlertHandler) List(c *fiber.Ctx) error {
	as, err := h.svc.List(c.UserContext(), c.QueryBool("include_acknowledged", false))
	if err != nil {
		return writeError(c, err)
	}
	p, err := h.svc.Priorities(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.AlertListFrom(as, p))
}

// Acknowledge godoc
// @Summary      Reconocer alerta
// @Description  Solo marca la alerta; devuelve el producto a reabastecer.
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la alerta"
// @Success      200  {object}  dto.AcknowledgeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/alerts/{id}/acknowledge [post]
func (h *AlertHandler) Acknowledge(c *fiber.Ctx) error {
	res, err := h.svc.Acknowledge(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.AcknowledgeResponse{
		Alert:            dto.AlertFromEntity(res.Alert),
		RestockProductID: res.RestockProductID,
	})
}

// Dismiss godoc
// @Summary      Descartar alerta
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la alerta"
// @Success      200  {object}  dto.AlertResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/alerts/{id}/dismiss [post]
func (h *AlertHandler) Dismiss(c *fiber.Ctx) error {
	a, err := h.svc.Dismiss(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.AlertFromEntity(a))
}

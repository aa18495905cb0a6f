package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventorypro-api/internal/application/dto"
	"github.com/jhoicas/inventorypro-api/internal/application/ledger"
)

// ShipmentHandler líneas de despacho.
type ShipmentHandler struct {
	uc *ledger.LedgerUseCase
}

func NewShipmentHandler(uc *ledger.LedgerUseCase) *ShipmentHandler {
	return &ShipmentHandler{uc: uc}
}

// Create godoc
// @Summary      Marcar producto para despacho
// @Tags         shipments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateShipmentRequest  true  "Producto, cantidad, flete% y GST%"
// @Success      201   {object}  dto.CreateShipmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/shipments [post]
func (h *ShipmentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateShipmentRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.ProductID == "" {
		return validation(c, "product_id es requerido")
	}
	if in.Quantity <= 0 {
		return validation(c, "quantity debe ser mayor a cero")
	}
	res, err := h.uc.AddToShipment(c.UserContext(), GetUser(c), ledger.ShipmentInput{
		ProductID:      in.ProductID,
		Quantity:       in.Quantity,
		ShippingFeePct: in.ShippingFeePercentage,
		GSTPct:         in.GSTPercentage,
		Notes:          in.Notes,
	})
	if err != nil {
		return writeError(c, err)
	}
	if res == nil {
		return notFound(c, "producto no encontrado")
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CreateShipmentResponse{
		Shipment: dto.ShipmentFromEntity(res.Item),
		Log:      dto.ShipmentLogFromEntity(res.Log),
		Product:  dto.ProductFromEntity(res.Product),
	})
}

// List godoc
// @Summary      Listar líneas de despacho
// @Tags         shipments
// @Security     Bearer
// @Produce      json
// @Param        search    query  string  false  "Producto o categoría"
// @Param        category  query  string  false  "Categoría exacta o all"
// @Success      200  {object}  dto.ListResponse[dto.ShipmentResponse]
// @Router       /api/shipments [get]
func (h *ShipmentHandler) List(c *fiber.Ctx) error {
	ss, err := h.uc.ListShipments(c.UserContext(), ledger.ProductFilter{
		Search:   c.Query("search"),
		Category: c.Query("category"),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewList(dto.ShipmentsFromEntities(ss)))
}

// Summary godoc
// @Summary      Totales de despachos
// @Tags         shipments
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ShipmentTotalsResponse
// @Router       /api/shipments/summary [get]
func (h *ShipmentHandler) Summary(c *fiber.Ctx) error {
	t, err := h.uc.ShipmentTotals(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ShipmentTotalsFrom(t))
}

// Remove godoc
// @Summary      Quitar línea de despacho y devolver el stock
// @Tags         shipments
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la línea"
// @Success      200  {object}  dto.RemoveShipmentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/shipments/{id} [delete]
func (h *ShipmentHandler) Remove(c *fiber.Ctx) error {
	res, err := h.uc.RemoveFromShipment(c.UserContext(), GetUser(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	if res == nil {
		return notFound(c, "línea de despacho no encontrada")
	}
	out := dto.RemoveShipmentResponse{Shipment: dto.ShipmentFromEntity(res.Item)}
	if res.Product != nil {
		p := dto.ProductFromEntity(res.Product)
		out.Product = &p
	}
	return c.JSON(out)
}

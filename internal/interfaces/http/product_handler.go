package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventorypro-api/internal/application/dto"
	"github.com/jhoicas/inventorypro-api/internal/application/ledger"
	"github.com/jhoicas/inventorypro-api/internal/domain/entity"
)

// ProductHandler productos, stock y categorías (protegido).
type ProductHandler struct {
	uc *ledger.LedgerUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *ledger.LedgerUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// Create godoc
// @Summary      Crear producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Category) == "" {
		return validation(c, "name y category son requeridos")
	}
	p, err := h.uc.AddProduct(c.UserContext(), GetUser(c), ledger.AddProductInput{
		Name:         in.Name,
		Category:     in.Category,
		CurrentStock: in.CurrentStock,
		MinThreshold: in.MinThreshold,
		MaxThreshold: in.MaxThreshold,
		Price:        in.Price,
		Supplier:     in.Supplier,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ProductFromEntity(p))
}

// List godoc
// @Summary      Listar productos
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        search    query  string  false  "Nombre o categoría"
// @Param        category  query  string  false  "Categoría exacta o all"
// @Success      200  {object}  dto.ListResponse[dto.ProductResponse]
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	ps, err := h.uc.ListProducts(c.UserContext(), ledger.ProductFilter{
		Search:   c.Query("search"),
		Category: c.Query("category"),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewList(dto.ProductsFromEntities(ps)))
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	p, err := h.uc.GetProduct(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	if p == nil {
		return notFound(c, "producto no encontrado")
	}
	return c.JSON(dto.ProductFromEntity(p))
}

// Stats godoc
// @Summary      Totales del inventario
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.InventoryStatsResponse
// @Router       /api/products/stats [get]
func (h *ProductHandler) Stats(c *fiber.Ctx) error {
	s, err := h.uc.InventoryStats(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.InventoryStatsResponse{
		TotalProducts: s.TotalProducts,
		LowStockCount: s.LowStockCount,
		TotalValue:    dto.Money(s.TotalValue),
	})
}

// UpdateStock godoc
// @Summary      Actualizar stock, precio y proveedor
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.UpdateStockRequest  true  "Nuevo stock y acción"
// @Success      200   {object}  dto.StockUpdateResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/stock [put]
func (h *ProductHandler) UpdateStock(c *fiber.Ctx) error {
	var in dto.UpdateStockRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if !entity.IsValidStockAction(in.Action) {
		return validation(c, "action debe ser add, remove o set")
	}
	if in.NewStock < 0 {
		return validation(c, "new_stock no puede ser negativo")
	}
	if in.Price != nil && in.Price.LessThan(decimal.Zero) {
		return validation(c, "price no puede ser negativo")
	}
	res, err := h.uc.UpdateStock(c.UserContext(), GetUser(c), ledger.StockUpdateInput{
		ProductID:   c.Params("id"),
		NewStock:    in.NewStock,
		Action:      in.Action,
		Notes:       in.Notes,
		NewPrice:    in.Price,
		NewSupplier: in.Supplier,
	})
	if err != nil {
		return writeError(c, err)
	}
	if res == nil {
		return notFound(c, "producto no encontrado")
	}
	return c.JSON(dto.StockUpdateResponse{
		Product: dto.ProductFromEntity(res.Product),
		Log:     dto.StockLogFromEntity(res.Log),
	})
}

// ListCategories godoc
// @Summary      Listar categorías
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ListResponse[string]
// @Router       /api/categories [get]
func (h *ProductHandler) ListCategories(c *fiber.Ctx) error {
	cs, err := h.uc.ListCategories(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewList(cs))
}

// CreateCategory godoc
// @Summary      Registrar categoría
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCategoryRequest  true  "Nombre"
// @Success      201   {object}  dto.ListResponse[string]
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/categories [post]
func (h *ProductHandler) CreateCategory(c *fiber.Ctx) error {
	var in dto.CreateCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if strings.TrimSpace(in.Name) == "" {
		return validation(c, "name es requerido")
	}
	if err := h.uc.AddCategory(c.UserContext(), in.Name); err != nil {
		return writeError(c, err)
	}
	cs, err := h.uc.ListCategories(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewList(cs))
}

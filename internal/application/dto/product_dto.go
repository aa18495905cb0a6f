package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventorypro-api/internal/domain/entity"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name         string          `json:"name" validate:"required,min=1,max=200"`
	Category     string          `json:"category" validate:"required"`
	CurrentStock int             `json:"current_stock" validate:"min=0"`
	MinThreshold int             `json:"min_threshold" validate:"min=0"`
	MaxThreshold int             `json:"max_threshold" validate:"min=0"`
	Price        decimal.Decimal `json:"price"`
	Supplier     string          `json:"supplier"`
}

// UpdateStockRequest entrada de PUT /products/:id/stock. Price y Supplier son opcionales.
type UpdateStockRequest struct {
	NewStock int              `json:"new_stock" validate:"min=0"`
	Action   string           `json:"action" validate:"required,oneof=add remove set"`
	Notes    string           `json:"notes"`
	Price    *decimal.Decimal `json:"price"`
	Supplier *string          `json:"supplier"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	CurrentStock int             `json:"current_stock"`
	MinThreshold int             `json:"min_threshold"`
	MaxThreshold int             `json:"max_threshold"`
	Price        decimal.Decimal `json:"price"`
	Supplier     string          `json:"supplier"`
	LastUpdated  string          `json:"last_updated"`
	StockStatus  string          `json:"stock_status"` // low | normal | high
	StockValue   decimal.Decimal `json:"stock_value"`
	CreatedAt    time.Time       `json:"created_at"`
}

func ProductFromEntity(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Category:     p.Category,
		CurrentStock: p.CurrentStock,
		MinThreshold: p.MinThreshold,
		MaxThreshold: p.MaxThreshold,
		Price:        Money(p.Price),
		Supplier:     p.Supplier,
		LastUpdated:  p.LastUpdated,
		StockStatus:  p.StockStatus(),
		StockValue:   Money(p.StockValue()),
		CreatedAt:    p.CreatedAt,
	}
}

func ProductsFromEntities(ps []*entity.Product) []ProductResponse {
	out := make([]ProductResponse, len(ps))
	for i, p := range ps {
		out[i] = ProductFromEntity(p)
	}
	return out
}

// StockUpdateResponse producto actualizado y el log generado.
type StockUpdateResponse struct {
	Product ProductResponse  `json:"product"`
	Log     StockLogResponse `json:"log"`
}

// InventoryStatsResponse tarjetas del tablero de productos.
type InventoryStatsResponse struct {
	TotalProducts int             `json:"total_products"`
	LowStockCount int             `json:"low_stock_count"`
	TotalValue    decimal.Decimal `json:"total_value"`
}

// CreateCategoryRequest entrada para registrar una categoría.
type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required"`
}

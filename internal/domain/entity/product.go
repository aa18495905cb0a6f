package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout formato de LastUpdated (solo fecha, sin hora).
const DateLayout = "2006-01-02"

// Product representa un producto del inventario.
// CurrentStock nunca es negativo; solo cambia vía operaciones del ledger.
type Product struct {
	ID           string
	Name         string
	Category     string
	CurrentStock int
	MinThreshold int
	MaxThreshold int
	Price        decimal.Decimal // precio unitario, no negativo
	Supplier     string
	LastUpdated  string // YYYY-MM-DD
	CreatedAt    time.Time
}

// Estados de stock de un producto respecto a sus umbrales.
const (
	StockStatusLow    = "low"
	StockStatusNormal = "normal"
	StockStatusHigh   = "high"
)

// StockStatus clasifica el producto: low si stock <= min, high si stock >= max.
func (p *Product) StockStatus() string {
	if p.CurrentStock <= p.MinThreshold {
		return StockStatusLow
	}
	if p.CurrentStock >= p.MaxThreshold {
		return StockStatusHigh
	}
	return StockStatusNormal
}

// StockValue devuelve CurrentStock * Price.
func (p *Product) StockValue() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(p.CurrentStock)))
}

// Clone devuelve una copia independiente del producto.
func (p *Product) Clone() *Product {
	if p == nil {
		return nil
	}
	cp := *p
	return &cp
}

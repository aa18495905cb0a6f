package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ShipmentItem línea de producto marcada para despacho.
// ShippingFee, GSTAmount y TotalValue son derivados (ver inventory.CalcShipment).
// ProductID es una referencia débil: el producto puede no existir al devolver stock.
type ShipmentItem struct {
	ID                    string
	ProductID             string
	ProductName           string
	Category              string
	Quantity              int
	PricePerUnit          decimal.Decimal
	ShippingFeePercentage decimal.Decimal
	ShippingFee           decimal.Decimal // por unidad
	GSTPercentage         decimal.Decimal
	GSTAmount             decimal.Decimal // por unidad
	TotalValue            decimal.Decimal
	Notes                 string
	LastUpdated           time.Time
}

// TotalShippingFee devuelve ShippingFee * Quantity.
func (s *ShipmentItem) TotalShippingFee() decimal.Decimal {
	return s.ShippingFee.Mul(decimal.NewFromInt(int64(s.Quantity)))
}

// TotalGST devuelve GSTAmount * Quantity.
func (s *ShipmentItem) TotalGST() decimal.Decimal {
	return s.GSTAmount.Mul(decimal.NewFromInt(int64(s.Quantity)))
}

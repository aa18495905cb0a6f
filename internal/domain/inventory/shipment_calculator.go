package inventory

import (
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ShipmentAmounts montos derivados de una línea de despacho.
// ShippingFee y GSTAmount son por unidad; TotalValue ya incluye la cantidad.
type ShipmentAmounts struct {
	ShippingFee decimal.Decimal
	GSTAmount   decimal.Decimal
	TotalValue  decimal.Decimal
}

// CalcShipment calcula flete, GST y total de una línea (servicio de dominio, sin redondeo).
//
//	ShippingFee = Precio * Flete% / 100
//	GSTAmount   = Precio * GST% / 100
//	TotalValue  = (Precio + ShippingFee + GSTAmount) * Cantidad
func CalcShipment(pricePerUnit, feePct, gstPct decimal.Decimal, qty int) ShipmentAmounts {
	fee := pricePerUnit.Mul(feePct).Div(hundred)
	gst := pricePerUnit.Mul(gstPct).Div(hundred)
	total := pricePerUnit.Add(fee).Add(gst).Mul(decimal.NewFromInt(int64(qty)))
	return ShipmentAmounts{ShippingFee: fee, GSTAmount: gst, TotalValue: total}
}

// ValidPercentage indica si p está en [0, 100].
func ValidPercentage(p decimal.Decimal) bool {
	return !p.IsNegative() && p.LessThanOrEqual(hundred)
}

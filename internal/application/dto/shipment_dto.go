package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventorypro-api/internal/application/ledger"
	"github.com/jhoicas/inventorypro-api/internal/domain/entity"
)

// CreateShipmentRequest entrada de POST /shipments. Los porcentajes van en [0,100].
type CreateShipmentRequest struct {
	ProductID             string          `json:"product_id" validate:"required"`
	Quantity              int             `json:"quantity" validate:"min=1"`
	ShippingFeePercentage decimal.Decimal `json:"shipping_fee_percentage"`
	GSTPercentage         decimal.Decimal `json:"gst_percentage"`
	Notes                 string          `json:"notes"`
}

// ShipmentResponse salida de una línea de despacho. Montos redondeados a dos decimales.
type ShipmentResponse struct {
	ID                    string          `json:"id"`
	ProductID             string          `json:"product_id"`
	ProductName           string          `json:"product_name"`
	Category              string          `json:"category"`
	Quantity              int             `json:"quantity"`
	PricePerUnit          decimal.Decimal `json:"price_per_unit"`
	ShippingFeePercentage decimal.Decimal `json:"shipping_fee_percentage"`
	ShippingFee           decimal.Decimal `json:"shipping_fee"`
	GSTPercentage         decimal.Decimal `json:"gst_percentage"`
	GSTAmount             decimal.Decimal `json:"gst_amount"`
	TotalValue            decimal.Decimal `json:"total_value"`
	Notes                 string          `json:"notes,omitempty"`
	LastUpdated           time.Time       `json:"last_updated"`
}

func ShipmentFromEntity(s *entity.ShipmentItem) ShipmentResponse {
	return ShipmentResponse{
		ID:                    s.ID,
		ProductID:             s.ProductID,
		ProductName:           s.ProductName,
		Category:              s.Category,
		Quantity:              s.Quantity,
		PricePerUnit:          Money(s.PricePerUnit),
		ShippingFeePercentage: s.ShippingFeePercentage,
		ShippingFee:           Money(s.ShippingFee),
		GSTPercentage:         s.GSTPercentage,
		GSTAmount:             Money(s.GSTAmount),
		TotalValue:            Money(s.TotalValue),
		Notes:                 s.Notes,
		LastUpdated:           s.LastUpdated,
	}
}

func ShipmentsFromEntities(ss []*entity.ShipmentItem) []ShipmentResponse {
	out := make([]ShipmentResponse, len(ss))
	for i, s := range ss {
		out[i] = ShipmentFromEntity(s)
	}
	return out
}

// CreateShipmentResponse línea creada, log de despacho y producto con el stock reducido.
type CreateShipmentResponse struct {
	Shipment ShipmentResponse    `json:"shipment"`
	Log      ShipmentLogResponse `json:"log"`
	Product  ProductResponse     `json:"product"`
}

// RemoveShipmentResponse línea eliminada y producto repuesto (nil si ya no existe).
type RemoveShipmentResponse struct {
	Shipment ShipmentResponse `json:"shipment"`
	Product  *ProductResponse `json:"product,omitempty"`
}

// ShipmentTotalsResponse tarjetas del panel de despachos.
type ShipmentTotalsResponse struct {
	Count         int             `json:"count"`
	TotalQuantity int             `json:"total_quantity"`
	TotalValue    decimal.Decimal `json:"total_value"`
	ShippingFees  decimal.Decimal `json:"shipping_fees"`
	GSTAmount     decimal.Decimal `json:"gst_amount"`
}

func ShipmentTotalsFrom(t ledger.ShipmentTotals) ShipmentTotalsResponse {
	return ShipmentTotalsResponse{
		Count:         t.Count,
		TotalQuantity: t.TotalQuantity,
		TotalValue:    Money(t.TotalValue),
		ShippingFees:  Money(t.ShippingFees),
		GSTAmount:     Money(t.GSTAmount),
	}
}

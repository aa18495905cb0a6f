package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventorypro-api/internal/domain/entity"
)

// PriceChangeResponse cambio de precio de un log.
type PriceChangeResponse struct {
	From decimal.Decimal `json:"from"`
	To   decimal.Decimal `json:"to"`
}

// SupplierChangeResponse cambio de proveedor de un log.
type SupplierChangeResponse struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// StockLogResponse salida de un log de stock.
type StockLogResponse struct {
	ID             string                  `json:"id"`
	ProductID      string                  `json:"product_id"`
	ProductName    string                  `json:"product_name"`
	Action         string                  `json:"action"`
	Quantity       int                     `json:"quantity"`
	PreviousStock  int                     `json:"previous_stock"`
	NewStock       int                     `json:"new_stock"`
	User           string                  `json:"user"`
	Timestamp      time.Time               `json:"timestamp"`
	Notes          string                  `json:"notes,omitempty"`
	PriceChange    *PriceChangeResponse    `json:"price_change,omitempty"`
	SupplierChange *SupplierChangeResponse `json:"supplier_change,omitempty"`
}

func StockLogFromEntity(l *entity.StockLog) StockLogResponse {
	r := StockLogResponse{
		ID:            l.ID,
		ProductID:     l.ProductID,
		ProductName:   l.ProductName,
		Action:        l.Action,
		Quantity:      l.Quantity,
		PreviousStock: l.PreviousStock,
		NewStock:      l.NewStock,
		User:          l.User,
		Timestamp:     l.Timestamp,
		Notes:         l.Notes,
	}
	if l.PriceChange != nil {
		r.PriceChange = &PriceChangeResponse{From: Money(l.PriceChange.From), To: Money(l.PriceChange.To)}
	}
	if l.SupplierChange != nil {
		r.SupplierChange = &SupplierChangeResponse{From: l.SupplierChange.From, To: l.SupplierChange.To}
	}
	return r
}

func StockLogsFromEntities(ls []*entity.StockLog) []StockLogResponse {
	out := make([]StockLogResponse, len(ls))
	for i, l := range ls {
		out[i] = StockLogFromEntity(l)
	}
	return out
}

// ShipmentLogResponse salida de un log de despacho.
type ShipmentLogResponse struct {
	ID          string          `json:"id"`
	ShipmentID  string          `json:"shipment_id,omitempty"`
	ProductName string          `json:"product_name"`
	Action      string          `json:"action"`
	Quantity    int             `json:"quantity"`
	StockChange int             `json:"stock_change"`
	User        string          `json:"user"`
	Timestamp   time.Time       `json:"timestamp"`
	Notes       string          `json:"notes,omitempty"`
	ShippingFee decimal.Decimal `json:"shipping_fee"`
	GSTAmount   decimal.Decimal `json:"gst_amount"`
}

func ShipmentLogFromEntity(l *entity.ShipmentLog) ShipmentLogResponse {
	return ShipmentLogResponse{
		ID:          l.ID,
		ShipmentID:  l.ShipmentID,
		ProductName: l.ProductName,
		Action:      l.Action,
		Quantity:    l.Quantity,
		StockChange: l.StockChange,
		User:        l.User,
		Timestamp:   l.Timestamp,
		Notes:       l.Notes,
		ShippingFee: Money(l.ShippingFee),
		GSTAmount:   Money(l.GSTAmount),
	}
}

func ShipmentLogsFromEntities(ls []*entity.ShipmentLog) []ShipmentLogResponse {
	out := make([]ShipmentLogResponse, len(ls))
	for i, l := range ls {
		out[i] = ShipmentLogFromEntity(l)
	}
	return out
}

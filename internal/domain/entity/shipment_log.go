package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Acciones de un ShipmentLog.
const (
	ShipmentActionMarked  = "marked_for_shipment"
	ShipmentActionReduced = "stock_reduced"
	ShipmentActionCreated = "shipment_created"
)

// ShipmentLog registro append-only de acciones sobre despachos.
type ShipmentLog struct {
	ID          string
	ShipmentID  string
	ProductName string
	Action      string
	Quantity    int
	StockChange int // negativo cuando sale stock
	User        string
	Timestamp   time.Time
	Notes       string
	ShippingFee decimal.Decimal
	GSTAmount   decimal.Decimal
}

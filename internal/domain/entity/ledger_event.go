package entity

import "time"

// Tipos de evento publicados por el ledger.
const (
	EventTypeStockChanged    = "inventory.stock_changed"
	EventTypeProductCreated  = "inventory.product_created"
	EventTypeShipmentMarked  = "inventory.shipment_marked"
	EventTypeShipmentRemoved = "inventory.shipment_removed"
	EventTypeAlertRaised     = "inventory.alert_raised"
)

// LedgerEvent evento de dominio emitido después de un commit del ledger.
type LedgerEvent struct {
	EventID       string    `json:"event_id"`
	EventType     string    `json:"event_type"`
	ProductID     string    `json:"product_id"`
	ProductName   string    `json:"product_name"`
	Quantity      int       `json:"quantity"`
	PreviousStock int       `json:"previous_stock"`
	NewStock      int       `json:"new_stock"`
	ShipmentID    string    `json:"shipment_id,omitempty"`
	AlertID       string    `json:"alert_id,omitempty"`
	Severity      string    `json:"severity,omitempty"`
	Actor         string    `json:"actor"`
	Timestamp     time.Time `json:"timestamp"`
}

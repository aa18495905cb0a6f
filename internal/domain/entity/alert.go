package entity

import "time"

// Tipos de alerta.
const (
	AlertTypeLowStock   = "low_stock"
	AlertTypeOutOfStock = "out_of_stock"
	AlertTypeReorder    = "reorder"
	AlertTypeExpiry     = "expiry"
)

// Severidades de alerta.
const (
	SeverityHigh   = "high"
	SeverityMedium = "medium"
	SeverityLow    = "low"
)

// Alert alerta de stock generada por el deriver. Acknowledged es estado local
// de la alerta; nunca modifica el producto.
type Alert struct {
	ID           string
	Type         string
	ProductID    string
	ProductName  string
	Message      string
	Severity     string
	Timestamp    time.Time
	Acknowledged bool
}

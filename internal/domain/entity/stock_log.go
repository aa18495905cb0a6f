package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Acciones de un StockLog.
const (
	StockActionAdd    = "add"
	StockActionRemove = "remove"
	StockActionSet    = "set"
)

// IsValidStockAction indica si la acción es add, remove o set.
func IsValidStockAction(action string) bool {
	switch action {
	case StockActionAdd, StockActionRemove, StockActionSet:
		return true
	}
	return false
}

// ActionMatchesChange indica si la acción es coherente con el paso de previous a next:
// add no reduce stock, remove no lo aumenta, set acepta cualquier valor.
func ActionMatchesChange(action string, previous, next int) bool {
	switch action {
	case StockActionAdd:
		return next >= previous
	case StockActionRemove:
		return next <= previous
	case StockActionSet:
		return true
	}
	return false
}

// PriceChange registra el cambio de precio dentro de un StockLog.
type PriceChange struct {
	From decimal.Decimal
	To   decimal.Decimal
}

// SupplierChange registra el cambio de proveedor dentro de un StockLog.
type SupplierChange struct {
	From string
	To   string
}

// StockLog es un registro inmutable de un cambio de stock (append-only).
// Quantity es siempre la magnitud |NewStock - PreviousStock|.
type StockLog struct {
	ID             string
	ProductID      string
	ProductName    string
	Action         string
	Quantity       int
	PreviousStock  int
	NewStock       int
	User           string
	Timestamp      time.Time
	Notes          string
	PriceChange    *PriceChange
	SupplierChange *SupplierChange
}

package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrSessionExpired     = errors.New("sesión expirada o cerrada")
	ErrNoReportData       = errors.New("no hay datos para el reporte")
	ErrExportFailed       = errors.New("falló la generación del reporte")
	ErrPermissionRequired = errors.New("permiso de notificaciones del navegador requerido")
)

// InsufficientStockError detalle de un despacho rechazado por falta de stock.
// errors.Is(err, ErrInsufficientStock) es true.
type InsufficientStockError struct {
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Only %d units are available in stock. Cannot mark %d units for shipment.", e.Available, e.Requested)
}

func (e *InsufficientStockError) Is(target error) bool { return target == ErrInsufficientStock }

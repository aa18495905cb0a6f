// Package notification reparte las alertas a los canales habilitados en las preferencias.
package notification

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/inventorypro-api/internal/domain/entity"
)

// Nombres de canal; coinciden con las claves de NotificationSettings.
const (
	ChannelBrowser = "browser"
	ChannelEmail   = "email"
	ChannelSlack   = "slack"
)

// Estados del permiso del canal browser.
const (
	PermissionDefault = "default"
	PermissionGranted = "granted"
	PermissionDenied  = "denied"
)

// ErrDropped el canal descartó la notificación sin fallar (ej. permiso browser pendiente).
var ErrDropped = errors.New("notificación descartada")

// Notification contenido común a todos los canales.
type Notification struct {
	AlertID            string
	AlertType          string
	ProductName        string
	Title              string
	Message            string
	Severity           string
	Tag                string
	RequireInteraction bool
	Silent             bool
	AssignedTo         entity.User
	Timestamp          time.Time
}

// FromAlert arma la notificación de una alerta para el usuario dado.
func FromAlert(a *entity.Alert, user entity.User) Notification {
	return Notification{
		AlertID:            a.ID,
		AlertType:          a.Type,
		ProductName:        a.ProductName,
		Title:              fmt.Sprintf("InventoryPro Alert - %s", a.ProductName),
		Message:            a.Message,
		Severity:           a.Severity,
		Tag:                "inventory-" + a.ProductName,
		RequireInteraction: a.Severity == entity.SeverityHigh,
		Silent:             a.Severity == entity.SeverityLow,
		AssignedTo:         user,
		Timestamp:          a.Timestamp,
	}
}

// AlertTypeLabel "low_stock" → "LOW STOCK".
func AlertTypeLabel(alertType string) string {
	return strings.ToUpper(strings.Replace(alertType, "_", " ", 1))
}

// Channel canal de entrega.
type Channel interface {
	Name() string
	Send(ctx context.Context, n Notification) error
}

// Permission permiso del canal browser. RequestAsync no bloquea: el resultado
// solo afecta envíos futuros.
type Permission interface {
	State() string
	RequestAsync()
	Resolve(granted bool) error
}

// Metrics contador de notificaciones por canal y resultado.
type Metrics interface {
	RecordNotification(channel, result string)
}

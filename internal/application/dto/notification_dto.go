package dto

import (
	"time"

	"github.com/jhoicas/inventorypro-api/internal/application/notification"
)

// UpdateNotificationSettingRequest cambia un canal: browser, email o slack.
type UpdateNotificationSettingRequest struct {
	Key   string `json:"key" validate:"required,oneof=browser email slack"`
	Value bool   `json:"value"`
}

// PermissionRequest respuesta del cliente a la solicitud de permiso del navegador.
type PermissionRequest struct {
	Granted bool `json:"granted"`
}

// BrowserNotificationResponse notificación entregada al feed del navegador.
type BrowserNotificationResponse struct {
	AlertID            string    `json:"alert_id"`
	Title              string    `json:"title"`
	Body               string    `json:"body"`
	Tag                string    `json:"tag"`
	Severity           string    `json:"severity"`
	RequireInteraction bool      `json:"require_interaction"`
	Silent             bool      `json:"silent"`
	Timestamp          time.Time `json:"timestamp"`
}

// BrowserFeedResponse estado del permiso y notificaciones entregadas.
type BrowserFeedResponse struct {
	Permission    string                        `json:"permission"`
	Pending       bool                          `json:"pending"`
	Notifications []BrowserNotificationResponse `json:"notifications"`
}

func BrowserFeedFrom(permission string, pending bool, feed []notification.Notification) BrowserFeedResponse {
	out := make([]BrowserNotificationResponse, len(feed))
	for i, n := range feed {
		out[i] = BrowserNotificationResponse{
			AlertID:            n.AlertID,
			Title:              n.Title,
			Body:               n.Message,
			Tag:                n.Tag,
			Severity:           n.Severity,
			RequireInteraction: n.RequireInteraction,
			Silent:             n.Silent,
			Timestamp:          n.Timestamp,
		}
	}
	return BrowserFeedResponse{Permission: permission, Pending: pending, Notifications: out}
}

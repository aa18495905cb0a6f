package dto

import (
	"time"

	"github.com/jhoicas/inventorypro-api/internal/application/alerts"
	"github.com/jhoicas/inventorypro-api/internal/domain/entity"
)

// AlertResponse salida de una alerta.
type AlertResponse struct {
	ID           string    `json:"id"`
	Type         string    `json:"type"`
	ProductID    string    `json:"product_id"`
	ProductName  string    `json:"product_name"`
	Message      string    `json:"message"`
	Severity     string    `json:"severity"`
	Timestamp    time.Time `json:"timestamp"`
	Acknowledged bool      `json:"acknowledged"`
}

func AlertFromEntity(a *entity.Alert) AlertResponse {
	return AlertResponse{
		ID:           a.ID,
		Type:         a.Type,
		ProductID:    a.ProductID,
		ProductName:  a.ProductName,
		Message:      a.Message,
		Severity:     a.Severity,
		Timestamp:    a.Timestamp,
		Acknowledged: a.Acknowledged,
	}
}

// AlertListResponse alertas más los contadores por prioridad.
type AlertListResponse struct {
	Items      []AlertResponse       `json:"items"`
	Total      int                   `json:"total"`
	Priorities alerts.PriorityCounts `json:"priorities"`
}

func AlertListFrom(as []*entity.Alert, p alerts.PriorityCounts) AlertListResponse {
	items := make([]AlertResponse, len(as))
	for i, a := range as {
		items[i] = AlertFromEntity(a)
	}
	return AlertListResponse{Items: items, Total: len(items), Priorities: p}
}

// AcknowledgeResponse alerta reconocida y el producto cuyo formulario de stock abrir.
type AcknowledgeResponse struct {
	Alert            AlertResponse `json:"alert"`
	RestockProductID string        `json:"restock_product_id,omitempty"`
}

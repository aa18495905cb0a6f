package repository

import (
	"context"

	"github.com/jhoicas/inventorypro-api/internal/domain/entity"
)

// AlertRepository alertas derivadas del stock.
type AlertRepository interface {
	Save(ctx context.Context, alerts ...*entity.Alert) error
	GetByID(ctx context.Context, id string) (*entity.Alert, error)
	SetAcknowledged(ctx context.Context, id string, acknowledged bool) error
	// List devuelve las alertas en orden de creación.
	List(ctx context.Context) ([]*entity.Alert, error)
}

package repository

import (
	"context"

	"github.com/jhoicas/inventorypro-api/internal/domain/entity"
)

// ShipmentRepository líneas marcadas para despacho.
type ShipmentRepository interface {
	Create(ctx context.Context, item *entity.ShipmentItem) error
	GetByID(ctx context.Context, id string) (*entity.ShipmentItem, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*entity.ShipmentItem, error)
}

// ShipmentLogRepository log append-only de acciones de despacho.
type ShipmentLogRepository interface {
	Append(ctx context.Context, log *entity.ShipmentLog) error
	// List devuelve los logs del más reciente al más antiguo.
	List(ctx context.Context) ([]*entity.ShipmentLog, error)
}

package repository

import (
	"context"

	"github.com/jhoicas/inventorypro-api/internal/domain/entity"
)

// StockLogRepository log append-only de cambios de stock.
type StockLogRepository interface {
	Append(ctx context.Context, log *entity.StockLog) error
	// List devuelve los logs del más reciente al más antiguo.
	List(ctx context.Context) ([]*entity.StockLog, error)
}

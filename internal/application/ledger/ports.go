package ledger

import (
	"context"

	"github.com/jhoicas/inventorypro-api/internal/domain/entity"
	"github.com/jhoicas/inventorypro-api/internal/domain/repository"
)

// Repos conjunto de repositorios del ledger. Dentro de TxRunner.Run están atados a la transacción.
type Repos struct {
	Products     repository.ProductRepository
	Categories   repository.CategoryRepository
	StockLogs    repository.StockLogRepository
	Shipments    repository.ShipmentRepository
	ShipmentLogs repository.ShipmentLogRepository
}

// TxRunner ejecuta fn dentro de una transacción. Si fn devuelve error no queda ningún cambio aplicado.
type TxRunner interface {
	Run(ctx context.Context, fn func(r Repos) error) error
}

// ProductsObserver hook invocado después de cada commit que cambia stock.
// Recibe la colección completa de productos.
type ProductsObserver interface {
	ProductsChanged(ctx context.Context, products []*entity.Product, actor entity.User) error
}

// EventPublisher publica eventos del ledger hacia el exterior (Kafka o noop).
type EventPublisher interface {
	Publish(ctx context.Context, event entity.LedgerEvent) error
}

// Metrics contadores del ledger.
type Metrics interface {
	RecordLedgerOperation(operation, result string)
	SetProductStock(p *entity.Product)
}

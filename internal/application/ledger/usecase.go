package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventorypro-api/internal/domain/entity"
	"github.com/jhoicas/inventorypro-api/pkg/logger"
)

// Resultados de operación para métricas.
const (
	resultOK     = "ok"
	resultNoop   = "noop"
	resultFailed = "failed"
)

// LedgerUseCase es el único punto de mutación de productos, logs y despachos.
// Toda mutación corre dentro de TxRunner; después del commit invoca el observer
// de productos, publica el evento y actualiza métricas.
type LedgerUseCase struct {
	txRunner  TxRunner
	repos     Repos
	observer  ProductsObserver
	publisher EventPublisher
	metrics   Metrics
	log       *logger.Logger
	now       func() time.Time
}

// NewLedgerUseCase construye el caso de uso. observer, publisher y metrics pueden ser nil.
func NewLedgerUseCase(
	txRunner TxRunner,
	repos Repos,
	observer ProductsObserver,
	publisher EventPublisher,
	metrics Metrics,
	log *logger.Logger,
) *LedgerUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &LedgerUseCase{
		txRunner:  txRunner,
		repos:     repos,
		observer:  observer,
		publisher: publisher,
		metrics:   metrics,
		log:       log,
		now:       time.Now,
	}
}

// WithClock reemplaza el reloj (tests y seed).
func (uc *LedgerUseCase) WithClock(now func() time.Time) *LedgerUseCase {
	uc.now = now
	return uc
}

func (uc *LedgerUseCase) record(operation, result string) {
	if uc.metrics != nil {
		uc.metrics.RecordLedgerOperation(operation, result)
	}
}

// afterCommit corre el hook de productos y publica los eventos. Sus errores se registran
// pero no revierten la operación: el commit ya ocurrió.
func (uc *LedgerUseCase) afterCommit(ctx context.Context, actor entity.User, operation string, events ...entity.LedgerEvent) {
	uc.record(operation, resultOK)

	products, err := uc.repos.Products.List(ctx)
	if err != nil {
		uc.log.Error().Err(err).Str("operation", operation).Msg("listar productos después del commit")
		return
	}
	if uc.metrics != nil {
		for _, p := range products {
			uc.metrics.SetProductStock(p)
		}
	}
	if uc.observer != nil {
		if err := uc.observer.ProductsChanged(ctx, products, actor); err != nil {
			uc.log.Error().Err(err).Str("operation", operation).Msg("derivar alertas")
		}
	}
	if uc.publisher == nil {
		return
	}
	for _, ev := range events {
		ev.EventID = uuid.New().String()
		ev.Actor = actor.Name
		if ev.Timestamp.IsZero() {
			ev.Timestamp = uc.now()
		}
		if err := uc.publisher.Publish(ctx, ev); err != nil {
			uc.log.Warn().Err(err).Str("event_type", ev.EventType).Str("product_id", ev.ProductID).Msg("publicar evento del ledger")
		}
	}
}

func stockEvent(eventType string, l *entity.StockLog) entity.LedgerEvent {
	return entity.LedgerEvent{
		EventType:     eventType,
		ProductID:     l.ProductID,
		ProductName:   l.ProductName,
		Quantity:      l.Quantity,
		PreviousStock: l.PreviousStock,
		NewStock:      l.NewStock,
		Timestamp:     l.Timestamp,
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

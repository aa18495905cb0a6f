// Package alerts persiste y despacha las alertas que deriva la regla de stock.
package alerts

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventorypro-api/internal/domain"
	"github.com/jhoicas/inventorypro-api/internal/domain/entity"
	"github.com/jhoicas/inventorypro-api/internal/domain/inventory"
	"github.com/jhoicas/inventorypro-api/internal/domain/repository"
	"github.com/jhoicas/inventorypro-api/pkg/logger"
)

// Dispatcher envía una alerta por los canales habilitados.
type Dispatcher interface {
	Dispatch(ctx context.Context, alert *entity.Alert, user entity.User) error
}

// Publisher publica el evento inventory.alert_raised.
type Publisher interface {
	Publish(ctx context.Context, event entity.LedgerEvent) error
}

// Metrics contador de alertas emitidas.
type Metrics interface {
	RecordAlertRaised(alertType, severity string)
}

// PriorityCounts alertas sin reconocer por severidad.
type PriorityCounts struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

// AcknowledgeResult alerta reconocida y el producto a reabastecer.
type AcknowledgeResult struct {
	Alert            *entity.Alert
	RestockProductID string
}

// Service implementa ledger.ProductsObserver.
type Service struct {
	repo       repository.AlertRepository
	dispatcher Dispatcher
	publisher  Publisher
	metrics    Metrics
	log        *logger.Logger
	now        func() time.Time

	// mu hace atómico derivar + guardar: dos commits concurrentes no duplican alertas.
	mu sync.Mutex
}

// NewService construye el servicio. dispatcher, publisher y metrics pueden ser nil.
func NewService(repo repository.AlertRepository, dispatcher Dispatcher, publisher Publisher, metrics Metrics, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo:       repo,
		dispatcher: dispatcher,
		publisher:  publisher,
		metrics:    metrics,
		log:        log,
		now:        time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// ProductsChanged deriva las alertas nuevas, las guarda y las despacha.
// Un fallo de despacho o publicación se registra y no se propaga.
func (s *Service) ProductsChanged(ctx context.Context, products []*entity.Product, actor entity.User) error {
	raised, err := s.derive(ctx, products)
	if err != nil {
		return err
	}
	for _, a := range raised {
		s.log.Info().Str("alert_id", a.ID).Str("type", a.Type).Str("severity", a.Severity).Str("product", a.ProductName).Msg("alerta generada")
		if s.metrics != nil {
			s.metrics.RecordAlertRaised(a.Type, a.Severity)
		}
		if s.dispatcher != nil {
			if err := s.dispatcher.Dispatch(ctx, a, actor); err != nil {
				s.log.Warn().Err(err).Str("alert_id", a.ID).Msg("despacho de alerta incompleto")
			}
		}
		if s.publisher != nil {
			ev := entity.LedgerEvent{
				EventID:     uuid.New().String(),
				EventType:   entity.EventTypeAlertRaised,
				ProductID:   a.ProductID,
				ProductName: a.ProductName,
				AlertID:     a.ID,
				Severity:    a.Severity,
				Actor:       actor.Name,
				Timestamp:   a.Timestamp,
			}
			if err := s.publisher.Publish(ctx, ev); err != nil {
				s.log.Warn().Err(err).Str("alert_id", a.ID).Msg("publicar alerta")
			}
		}
	}
	return nil
}

func (s *Service) derive(ctx context.Context, products []*entity.Product) ([]*entity.Alert, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}
	raised := inventory.DeriveAlerts(products, existing, s.now())
	if len(raised) == 0 {
		return nil, nil
	}
	if err := s.repo.Save(ctx, raised...); err != nil {
		return nil, fmt.Errorf("save alerts: %w", err)
	}
	return raised, nil
}

// List devuelve las alertas en orden de creación; sin includeAcknowledged solo las activas.
func (s *Service) List(ctx context.Context, includeAcknowledged bool) ([]*entity.Alert, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}
	if includeAcknowledged {
		return all, nil
	}
	out := make([]*entity.Alert, 0, len(all))
	for _, a := range all {
		if !a.Acknowledged {
			out = append(out, a)
		}
	}
	return out, nil
}

// Acknowledge marca la alerta como reconocida. No toca el producto: devuelve su ID
// para que el cliente abra el formulario de reabastecimiento.
func (s *Service) Acknowledge(ctx context.Context, id string) (*AcknowledgeResult, error) {
	a, err := s.flag(ctx, id)
	if err != nil {
		return nil, err
	}
	return &AcknowledgeResult{Alert: a, RestockProductID: a.ProductID}, nil
}

// Dismiss descarta la alerta (solo cambia su flag).
func (s *Service) Dismiss(ctx context.Context, id string) (*entity.Alert, error) {
	return s.flag(ctx, id)
}

func (s *Service) flag(ctx context.Context, id string) (*entity.Alert, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get alert: %w", err)
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	if err := s.repo.SetAcknowledged(ctx, id, true); err != nil {
		return nil, fmt.Errorf("acknowledge alert: %w", err)
	}
	a.Acknowledged = true
	return a, nil
}

// Priorities cuenta las alertas activas por severidad.
func (s *Service) Priorities(ctx context.Context) (PriorityCounts, error) {
	active, err := s.List(ctx, false)
	if err != nil {
		return PriorityCounts{}, err
	}
	var c PriorityCounts
	for _, a := range active {
		switch a.Severity {
		case entity.SeverityHigh:
			c.High++
		case entity.SeverityMedium:
			c.Medium++
		case entity.SeverityLow:
			c.Low++
		}
	}
	return c, nil
}

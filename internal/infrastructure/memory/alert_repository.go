package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/inventorypro-api/internal/domain"
	"github.com/jhoicas/inventorypro-api/internal/domain/entity"
	"github.com/jhoicas/inventorypro-api/internal/domain/repository"
)

var _ repository.AlertRepository = (*AlertRepo)(nil)

// AlertRepo alertas en memoria, en orden de creación.
type AlertRepo struct {
	mu     sync.RWMutex
	alerts []*entity.Alert
	byID   map[string]int
}

// NewAlertRepository crea el repositorio vacío.
func NewAlertRepository() *AlertRepo {
	return &AlertRepo{byID: make(map[string]int)}
}

func (r *AlertRepo) Save(_ context.Context, alerts ...*entity.Alert) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range alerts {
		if _, ok := r.byID[a.ID]; ok {
			return domain.ErrDuplicate
		}
	}
	for _, a := range alerts {
		cp := *a
		r.byID[a.ID] = len(r.alerts)
		r.alerts = append(r.alerts, &cp)
	}
	return nil
}

func (r *AlertRepo) GetByID(_ context.Context, id string) (*entity.Alert, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *r.alerts[i]
	return &cp, nil
}

func (r *AlertRepo) SetAcknowledged(_ context.Context, id string, acknowledged bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	cp := *r.alerts[i]
	cp.Acknowledged = acknowledged
	r.alerts[i] = &cp
	return nil
}

func (r *AlertRepo) List(_ context.Context) ([]*entity.Alert, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entity.Alert, 0, len(r.alerts))
	for _, a := range r.alerts {
		cp := *a
		out = append(out, &cp)
	}
	return out, nil
}

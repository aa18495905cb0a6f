package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/inventorypro-api/internal/domain/repository"
)

var _ repository.PreferenceStore = (*PreferenceStore)(nil)

// PreferenceStore clave/valor en memoria (driver PREFS_DRIVER=memory).
type PreferenceStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewPreferenceStore crea el store vacío.
func NewPreferenceStore() *PreferenceStore {
	return &PreferenceStore{values: make(map[string]string)}
}

func (s *PreferenceStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *PreferenceStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *PreferenceStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

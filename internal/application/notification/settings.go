package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/jhoicas/inventorypro-api/internal/domain"
	"github.com/jhoicas/inventorypro-api/internal/domain/entity"
	"github.com/jhoicas/inventorypro-api/internal/domain/repository"
	"github.com/jhoicas/inventorypro-api/pkg/logger"
)

// SettingsKey clave de las preferencias en el PreferenceStore.
const SettingsKey = "inventory-notification-settings"

// SettingsUseCase lee y escribe las preferencias de notificación.
// Update y Reset se serializan: el read-modify-write sobre SettingsKey no pierde cambios concurrentes.
type SettingsUseCase struct {
	mu         sync.Mutex
	store      repository.PreferenceStore
	permission Permission
	log        *logger.Logger
}

// NewSettingsUseCase construye el caso de uso. permission puede ser nil.
func NewSettingsUseCase(store repository.PreferenceStore, permission Permission, log *logger.Logger) *SettingsUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &SettingsUseCase{store: store, permission: permission, log: log}
}

// Get devuelve las preferencias guardadas; sin valor o con JSON corrupto, los defaults.
func (uc *SettingsUseCase) Get(ctx context.Context) (entity.NotificationSettings, error) {
	raw, ok, err := uc.store.Get(ctx, SettingsKey)
	if err != nil {
		return entity.NotificationSettings{}, fmt.Errorf("get notification settings: %w", err)
	}
	if !ok {
		return entity.DefaultNotificationSettings(), nil
	}
	var s entity.NotificationSettings
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		uc.log.Warn().Err(err).Str("key", SettingsKey).Msg("preferencias de notificación corruptas, se usan los valores por defecto")
		return entity.DefaultNotificationSettings(), nil
	}
	return s, nil
}

// Update cambia un canal. key debe ser browser, email o slack.
// Activar browser con el permiso en estado default dispara la solicitud de permiso.
func (uc *SettingsUseCase) Update(ctx context.Context, key string, value bool) (entity.NotificationSettings, error) {
	s, err := uc.apply(ctx, key, value)
	if err != nil {
		return s, err
	}
	if key == ChannelBrowser && value && uc.permission != nil && uc.permission.State() == PermissionDefault {
		uc.permission.RequestAsync()
	}
	return s, nil
}

func (uc *SettingsUseCase) apply(ctx context.Context, key string, value bool) (entity.NotificationSettings, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	s, err := uc.Get(ctx)
	if err != nil {
		return s, err
	}
	switch key {
	case ChannelBrowser:
		s.Browser = value
	case ChannelEmail:
		s.Email = value
	case ChannelSlack:
		s.Slack = value
	default:
		return s, domain.ErrInvalidInput
	}
	return s, uc.save(ctx, s)
}

// Reset vuelve a los valores por defecto.
func (uc *SettingsUseCase) Reset(ctx context.Context) (entity.NotificationSettings, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	s := entity.DefaultNotificationSettings()
	return s, uc.save(ctx, s)
}

func (uc *SettingsUseCase) save(ctx context.Context, s entity.NotificationSettings) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode notification settings: %w", err)
	}
	if err := uc.store.Set(ctx, SettingsKey, string(raw)); err != nil {
		return fmt.Errorf("save notification settings: %w", err)
	}
	return nil
}

package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventorypro-api/internal/domain"
	"github.com/jhoicas/inventorypro-api/internal/domain/entity"
	"github.com/jhoicas/inventorypro-api/pkg/logger"
)

// Dispatcher implementa alerts.Dispatcher: envía a cada canal habilitado de forma independiente.
type Dispatcher struct {
	settings   *SettingsUseCase
	channels   []Channel
	permission Permission
	metrics    Metrics
	log        *logger.Logger
}

// NewDispatcher construye el dispatcher. permission y metrics pueden ser nil.
func NewDispatcher(settings *SettingsUseCase, channels []Channel, permission Permission, metrics Metrics, log *logger.Logger) *Dispatcher {
	if log == nil {
		log = logger.Nop()
	}
	return &Dispatcher{
		settings:   settings,
		channels:   channels,
		permission: permission,
		metrics:    metrics,
		log:        log,
	}
}

func enabled(s entity.NotificationSettings, channel string) bool {
	switch channel {
	case ChannelBrowser:
		return s.Browser
	case ChannelEmail:
		return s.Email
	case ChannelSlack:
		return s.Slack
	}
	return false
}

// Dispatch envía la alerta. Un fallo en un canal no detiene a los demás; los errores
// se devuelven unidos. Un descarte (ErrDropped) no cuenta como error.
func (d *Dispatcher) Dispatch(ctx context.Context, alert *entity.Alert, user entity.User) error {
	settings, err := d.settings.Get(ctx)
	if err != nil {
		return err
	}
	n := FromAlert(alert, user)

	var errs []error
	for _, ch := range d.channels {
		if !enabled(settings, ch.Name()) {
			continue
		}
		err := ch.Send(ctx, n)
		switch {
		case err == nil:
			d.record(ch.Name(), "sent")
		case errors.Is(err, ErrDropped):
			d.record(ch.Name(), "dropped")
			d.log.Debug().Str("channel", ch.Name()).Str("alert_id", alert.ID).Msg("notificación descartada")
		default:
			d.record(ch.Name(), "failed")
			d.log.Error().Err(err).Str("channel", ch.Name()).Str("alert_id", alert.ID).Msg("fallo al enviar notificación")
			errs = append(errs, fmt.Errorf("%s: %w", ch.Name(), err))
		}
	}
	return errors.Join(errs...)
}

// SendTest envía una notificación de prueba por el canal browser.
// Requiere browser habilitado y permiso concedido.
func (d *Dispatcher) SendTest(ctx context.Context, user entity.User) error {
	settings, err := d.settings.Get(ctx)
	if err != nil {
		return err
	}
	if !settings.Browser || d.permission == nil || d.permission.State() != PermissionGranted {
		return domain.ErrPermissionRequired
	}
	test := &entity.Alert{
		ID:          uuid.New().String(),
		Type:        entity.AlertTypeLowStock,
		ProductName: "Test Product",
		Message:     "This is a test notification from InventoryPro",
		Severity:    entity.SeverityMedium,
		Timestamp:   time.Now(),
	}
	for _, ch := range d.channels {
		if ch.Name() != ChannelBrowser {
			continue
		}
		if err := ch.Send(ctx, FromAlert(test, user)); err != nil {
			return fmt.Errorf("send test notification: %w", err)
		}
		d.record(ChannelBrowser, "sent")
		return nil
	}
	return domain.ErrPermissionRequired
}

func (d *Dispatcher) record(channel, result string) {
	if d.metrics != nil {
		d.metrics.RecordNotification(channel, result)
	}
}

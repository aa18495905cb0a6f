package notification_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventorypro-api/internal/application/notification"
	"github.com/jhoicas/inventorypro-api/internal/domain"
	"github.com/jhoicas/inventorypro-api/internal/domain/entity"
	"github.com/jhoicas/inventorypro-api/internal/infrastructure/memory"
)

type stubChannel struct {
	name string
	err  error
	sent []notification.Notification
}

func (c *stubChannel) Name() string { return c.name }

func (c *stubChannel) Send(_ context.Context, n notification.Notification) error {
	c.sent = append(c.sent, n)
	return c.err
}

type stubPermission struct {
	state    string
	requests int
}

func (p *stubPermission) State() string { return p.state }
func (p *stubPermission) RequestAsync() { p.requests++ }
func (p *stubPermission) Resolve(granted bool) error {
	if granted {
		p.state = notification.PermissionGranted
	} else {
		p.state = notification.PermissionDenied
	}
	return nil
}

var (
	user  = entity.User{ID: "1", Name: "Admin User", Email: "admin@company.com", Role: entity.RoleAdmin}
	alert = &entity.Alert{
		ID: "a1", Type: entity.AlertTypeLowStock, ProductName: "Samsung Galaxy S24",
		Message: "Stock level is below minimum threshold (8/15 units)", Severity: entity.SeverityHigh,
		Timestamp: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
	}
)

func setup(t *testing.T, s entity.NotificationSettings, perm *stubPermission, channels ...notification.Channel) *notification.Dispatcher {
	t.Helper()
	settings := notification.NewSettingsUseCase(memory.NewPreferenceStore(), perm, nil)
	_, err := settings.Update(context.Background(), notification.ChannelBrowser, s.Browser)
	require.NoError(t, err)
	_, err = settings.Update(context.Background(), notification.ChannelEmail, s.Email)
	require.NoError(t, err)
	_, err = settings.Update(context.Background(), notification.ChannelSlack, s.Slack)
	require.NoError(t, err)
	return notification.NewDispatcher(settings, channels, perm, nil, nil)
}

func TestDispatch_SoloCanalesHabilitados(t *testing.T) {
	browser := &stubChannel{name: notification.ChannelBrowser}
	email := &stubChannel{name: notification.ChannelEmail}
	slack := &stubChannel{name: notification.ChannelSlack}
	d := setup(t, entity.NotificationSettings{Browser: true, Email: true}, &stubPermission{state: notification.PermissionGranted}, browser, email, slack)

	require.NoError(t, d.Dispatch(context.Background(), alert, user))
	assert.Len(t, browser.sent, 1)
	assert.Len(t, email.sent, 1)
	assert.Empty(t, slack.sent)

	n := browser.sent[0]
	assert.Equal(t, "InventoryPro Alert - Samsung Galaxy S24", n.Title)
	assert.True(t, n.RequireInteraction)
	assert.False(t, n.Silent)
	assert.Equal(t, "inventory-Samsung Galaxy S24", n.Tag)
}

// Un canal que falla no bloquea a los demás; el error se devuelve unido.
func TestDispatch_FalloIndependiente(t *testing.T) {
	email := &stubChannel{name: notification.ChannelEmail, err: errors.New("smtp timeout")}
	slack := &stubChannel{name: notification.ChannelSlack}
	browser := &stubChannel{name: notification.ChannelBrowser}
	d := setup(t, entity.NotificationSettings{Browser: true, Email: true, Slack: true}, &stubPermission{state: notification.PermissionGranted}, email, slack, browser)

	err := d.Dispatch(context.Background(), alert, user)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email")
	assert.Len(t, slack.sent, 1)
	assert.Len(t, browser.sent, 1)
}

func TestDispatch_DescarteNoEsError(t *testing.T) {
	browser := &stubChannel{name: notification.ChannelBrowser, err: notification.ErrDropped}
	d := setup(t, entity.NotificationSettings{Browser: true}, &stubPermission{state: notification.PermissionDefault}, browser)

	assert.NoError(t, d.Dispatch(context.Background(), alert, user))
}

func TestSendTest_RequierePermiso(t *testing.T) {
	browser := &stubChannel{name: notification.ChannelBrowser}
	perm := &stubPermission{state: notification.PermissionDenied}
	d := setup(t, entity.NotificationSettings{Browser: true}, perm, browser)

	assert.ErrorIs(t, d.SendTest(context.Background(), user), domain.ErrPermissionRequired)

	require.NoError(t, perm.Resolve(true))
	require.NoError(t, d.SendTest(context.Background(), user))
	require.Len(t, browser.sent, 1)
	assert.Equal(t, "InventoryPro Alert - Test Product", browser.sent[0].Title)
}

func TestSendTest_BrowserDeshabilitado(t *testing.T) {
	d := setup(t, entity.NotificationSettings{}, &stubPermission{state: notification.PermissionGranted}, &stubChannel{name: notification.ChannelBrowser})
	assert.ErrorIs(t, d.SendTest(context.Background(), user), domain.ErrPermissionRequired)
}

func TestAlertTypeLabel(t *testing.T) {
	assert.Equal(t, "LOW STOCK", notification.AlertTypeLabel("low_stock"))
	assert.Equal(t, "OUT OF_STOCK", notification.AlertTypeLabel("out_of_stock"))
}

package notification_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventorypro-api/internal/application/notification"
	"github.com/jhoicas/inventorypro-api/internal/domain"
	"github.com/jhoicas/inventorypro-api/internal/domain/entity"
	"github.com/jhoicas/inventorypro-api/internal/infrastructure/memory"
)

func TestSettings_DefaultsSinValor(t *testing.T) {
	uc := notification.NewSettingsUseCase(memory.NewPreferenceStore(), nil, nil)
	s, err := uc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultNotificationSettings(), s)
}

func TestSettings_ValorCorruptoVuelveADefaults(t *testing.T) {
	store := memory.NewPreferenceStore()
	require.NoError(t, store.Set(context.Background(), notification.SettingsKey, "{not json"))
	uc := notification.NewSettingsUseCase(store, nil, nil)

	s, err := uc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultNotificationSettings(), s)
}

func TestSettings_UpdatePersisteYReset(t *testing.T) {
	store := memory.NewPreferenceStore()
	uc := notification.NewSettingsUseCase(store, nil, nil)
	ctx := context.Background()

	s, err := uc.Update(ctx, notification.ChannelSlack, true)
	require.NoError(t, err)
	assert.True(t, s.Slack)

	raw, ok, _ := store.Get(ctx, notification.SettingsKey)
	require.True(t, ok)
	assert.JSONEq(t, `{"browser":true,"email":true,"slack":true}`, raw)

	_, err = uc.Update(ctx, "pager", true)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	s, err = uc.Reset(ctx)
	require.NoError(t, err)
	assert.False(t, s.Slack)
}

func TestSettings_UpdatesConcurrentesNoSePierden(t *testing.T) {
	uc := notification.NewSettingsUseCase(memory.NewPreferenceStore(), nil, nil)
	ctx := context.Background()

	for round := 0; round < 50; round++ {
		_, err := uc.Reset(ctx)
		require.NoError(t, err)

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = uc.Update(ctx, notification.ChannelEmail, false)
		}()
		go func() {
			defer wg.Done()
			_, _ = uc.Update(ctx, notification.ChannelSlack, true)
		}()
		wg.Wait()

		s, err := uc.Get(ctx)
		require.NoError(t, err)
		assert.False(t, s.Email, "ronda %d", round)
		assert.True(t, s.Slack, "ronda %d", round)
		assert.True(t, s.Browser, "ronda %d", round)
	}
}

func TestSettings_ActivarBrowserPidePermiso(t *testing.T) {
	perm := &stubPermission{state: notification.PermissionDefault}
	uc := notification.NewSettingsUseCase(memory.NewPreferenceStore(), perm, nil)
	ctx := context.Background()

	_, err := uc.Update(ctx, notification.ChannelBrowser, false)
	require.NoError(t, err)
	assert.Equal(t, 0, perm.requests)

	_, err = uc.Update(ctx, notification.ChannelBrowser, true)
	require.NoError(t, err)
	assert.Equal(t, 1, perm.requests)

	perm.state = notification.PermissionDenied
	_, err = uc.Update(ctx, notification.ChannelBrowser, true)
	require.NoError(t, err)
	assert.Equal(t, 1, perm.requests, "solo se pide en estado default")
}

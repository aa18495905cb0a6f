package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventorypro-api/internal/application/auth"
	"github.com/jhoicas/inventorypro-api/internal/application/dto"
	"github.com/jhoicas/inventorypro-api/internal/domain"
	"github.com/jhoicas/inventorypro-api/internal/domain/entity"
	"github.com/jhoicas/inventorypro-api/internal/infrastructure/memory"
	"github.com/jhoicas/inventorypro-api/pkg/jwt"
)

const secret = "test-secret"

func newAuth(t *testing.T) (*auth.AuthUseCase, *memory.PreferenceStore) {
	t.Helper()
	store := memory.NewPreferenceStore()
	uc, err := auth.NewAuthUseCase(store, auth.JWTConfig{Secret: secret, ExpMinutes: 60, Issuer: "inventorypro"}, auth.DemoCredentials, nil)
	require.NoError(t, err)
	return uc, store
}

func TestLogin_AdminYStaff(t *testing.T) {
	uc, store := newAuth(t)
	ctx := context.Background()

	res, err := uc.Login(ctx, dto.LoginRequest{Email: "admin@company.com", Password: "admin123"})
	require.NoError(t, err)
	assert.Equal(t, dto.UserResponse{ID: "1", Name: "Admin User", Email: "admin@company.com", Role: entity.RoleAdmin}, res.User)

	id, err := jwt.Parse(secret, res.Token)
	require.NoError(t, err)
	assert.Equal(t, "1", id.UserID)
	assert.Equal(t, entity.RoleAdmin, id.Role)

	_, ok, err := store.Get(ctx, "inventory-user:1")
	require.NoError(t, err)
	assert.True(t, ok)

	res, err = uc.Login(ctx, dto.LoginRequest{Email: " Staff@Company.com ", Password: "staff123"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleStaff, res.User.Role)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc, _ := newAuth(t)
	ctx := context.Background()

	_, err := uc.Login(ctx, dto.LoginRequest{Email: "admin@company.com", Password: "staff123"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nobody@company.com", Password: "admin123"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogout_CierraSesion(t *testing.T) {
	uc, _ := newAuth(t)
	ctx := context.Background()

	_, err := uc.Login(ctx, dto.LoginRequest{Email: "admin@company.com", Password: "admin123"})
	require.NoError(t, err)
	u, err := uc.Session(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "Admin User", u.Name)

	require.NoError(t, uc.Logout(ctx, "1"))
	_, err = uc.Session(ctx, "1")
	assert.ErrorIs(t, err, domain.ErrSessionExpired)
}

package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/inventorypro-api/internal/application/dto"
	"github.com/jhoicas/inventorypro-api/internal/domain"
	"github.com/jhoicas/inventorypro-api/internal/domain/entity"
	"github.com/jhoicas/inventorypro-api/internal/domain/repository"
	"github.com/jhoicas/inventorypro-api/pkg/jwt"
	"github.com/jhoicas/inventorypro-api/pkg/logger"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// SessionKeyPrefix prefijo de la clave de sesión en el PreferenceStore.
const SessionKeyPrefix = "inventory-user:"

// SessionKey clave de la sesión de un usuario.
func SessionKey(userID string) string { return SessionKeyPrefix + userID }

// Credential cuenta fija del login simulado.
type Credential struct {
	User     entity.User
	Password string
}

// DemoCredentials cuentas de demostración del dashboard.
var DemoCredentials = []Credential{
	{User: entity.User{ID: "1", Name: "Admin User", Email: "admin@company.com", Role: entity.RoleAdmin}, Password: "admin123"},
	{User: entity.User{ID: "2", Name: "Staff User", Email: "staff@company.com", Role: entity.RoleStaff}, Password: "staff123"},
}

type account struct {
	user entity.User
	hash []byte
}

// AuthUseCase login simulado: cuentas fijas con bcrypt, JWT y sesión en el PreferenceStore.
type AuthUseCase struct {
	accounts map[string]account // por email
	sessions repository.PreferenceStore
	jwtCfg   JWTConfig
	log      *logger.Logger
}

// NewAuthUseCase hashea las credenciales al construir; no se guarda ninguna en texto plano.
func NewAuthUseCase(sessions repository.PreferenceStore, jwtCfg JWTConfig, creds []Credential, log *logger.Logger) (*AuthUseCase, error) {
	if log == nil {
		log = logger.Nop()
	}
	accounts := make(map[string]account, len(creds))
	for _, c := range creds {
		hash, err := bcrypt.GenerateFromPassword([]byte(c.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password %s: %w", c.User.Email, err)
		}
		accounts[strings.ToLower(c.User.Email)] = account{user: c.User, hash: hash}
	}
	return &AuthUseCase{accounts: accounts, sessions: sessions, jwtCfg: jwtCfg, log: log}, nil
}

// Login verifica email/password, genera JWT y guarda la sesión.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	acc, ok := uc.accounts[strings.ToLower(strings.TrimSpace(in.Email))]
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(acc.hash, []byte(in.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	token, exp, err := jwt.Generate(uc.jwtCfg.Secret, jwt.Identity{
		UserID: acc.user.ID, Name: acc.user.Name, Email: acc.user.Email, Role: acc.user.Role,
	}, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(acc.user)
	if err != nil {
		return nil, fmt.Errorf("encode session: %w", err)
	}
	if err := uc.sessions.Set(ctx, SessionKey(acc.user.ID), string(raw)); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	uc.log.Info().Str("user_id", acc.user.ID).Str("role", acc.user.Role).Msg("login")
	return &dto.LoginResponse{Token: token, ExpiresAt: exp, User: dto.UserFromEntity(acc.user)}, nil
}

// Logout elimina la sesión; los tokens emitidos dejan de ser aceptados.
func (uc *AuthUseCase) Logout(ctx context.Context, userID string) error {
	if err := uc.sessions.Delete(ctx, SessionKey(userID)); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	uc.log.Info().Str("user_id", userID).Msg("logout")
	return nil
}

// Session devuelve el usuario de la sesión activa o ErrSessionExpired.
func (uc *AuthUseCase) Session(ctx context.Context, userID string) (*entity.User, error) {
	raw, ok, err := uc.sessions.Get(ctx, SessionKey(userID))
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	if !ok {
		return nil, domain.ErrSessionExpired
	}
	var u entity.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		uc.log.Warn().Err(err).Str("user_id", userID).Msg("sesión corrupta")
		return nil, domain.ErrSessionExpired
	}
	return &u, nil
}

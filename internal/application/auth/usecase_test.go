package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/sauna-pos/internal/application/auth"
	"github.com/jhoicas/sauna-pos/internal/application/dto"
	"github.com/jhoicas/sauna-pos/internal/domain"
	"github.com/jhoicas/sauna-pos/internal/domain/entity"
	"github.com/jhoicas/sauna-pos/internal/infrastructure/memory"
	"github.com/jhoicas/sauna-pos/pkg/jwt"
)

const secret = "test-secret"

func newAuth(t *testing.T) *auth.AuthUseCase {
	t.Helper()
	s := memory.New()
	hash, err := bcrypt.GenerateFromPassword([]byte("clave123"), bcrypt.MinCost)
	require.NoError(t, err)
	s.AddUser(entity.User{ID: "u1", Email: "caja@spa.local", PasswordHash: string(hash), Role: entity.RoleCajero, Status: "active"})
	s.AddUser(entity.User{ID: "u2", Email: "baja@spa.local", PasswordHash: string(hash), Role: entity.RoleCajero, Status: "inactive"})
	return auth.NewAuthUseCase(s.Repos().Users, auth.JWTConfig{Secret: secret, ExpMinutes: 5, Issuer: "sauna-pos"})
}

func TestLogin_OK(t *testing.T) {
	uc := newAuth(t)
	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: " Caja@spa.local ", Password: "clave123"})
	require.NoError(t, err)
	assert.Equal(t, "u1", out.User.ID)

	userID, role, err := jwt.Parse(secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, "u1", userID)
	assert.Equal(t, entity.RoleCajero, role)
}

func TestLogin_Errores(t *testing.T) {
	uc := newAuth(t)
	ctx := context.Background()

	_, err := uc.Login(ctx, dto.LoginRequest{Email: "nadie@spa.local", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "caja@spa.local", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "baja@spa.local", Password: "clave123"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

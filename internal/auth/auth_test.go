package auth

import (
	"context"
	"testing"
	"time"

	"github.com/rogerio-castellano/warehouse-inventory/internal/apperrors"
	"github.com/rogerio-castellano/warehouse-inventory/internal/models"
	"github.com/rogerio-castellano/warehouse-inventory/internal/repo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Minute)

	token, err := issuer.GenerateToken(models.User{ID: 7, Username: "alice", Role: RoleAdmin})
	require.NoError(t, err)

	claims, err := issuer.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, RoleAdmin, claims.Role)
	assert.Equal(t, "7", claims.Subject)
}

func TestTokenIssuer_RejectsExpiredAndForeign(t *testing.T) {
	expired := NewTokenIssuer("test-secret", -time.Minute)
	token, err := expired.GenerateToken(models.User{Username: "alice"})
	require.NoError(t, err)

	_, err = NewTokenIssuer("test-secret", time.Minute).ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	other, err := NewTokenIssuer("other-secret", time.Minute).GenerateToken(models.User{Username: "alice"})
	require.NoError(t, err)
	_, err = NewTokenIssuer("test-secret", time.Minute).ParseToken(other)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(repo.NewInMemoryUserRepository(), NewTokenIssuer("test-secret", time.Minute))

	token, err := svc.Register(ctx, "alice", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	_, err = svc.Register(ctx, "alice", "secret123")
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))

	_, err = svc.Register(ctx, "", "123")
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	token, err = svc.Login(ctx, "alice", "secret123")
	require.NoError(t, err)
	claims, err := svc.Tokens().ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)

	_, err = svc.Login(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(ctx, "bob", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"electronics-store/models"
	"electronics-store/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAuth() (*memDB, *memRevoker, *AuthService) {
	db := newMemDB()
	revoker := &memRevoker{}
	tokens := utils.NewTokenIssuer("test-secret", time.Hour)
	return db, revoker, NewAuthService(memTx{db}, memUsers{db}, tokens, revoker, zap.NewNop())
}

func TestRegisterCreatesUserWithProfile(t *testing.T) {
	db, _, svc := newAuth()
	ctx := context.Background()

	resp, err := svc.Register(ctx, models.RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "s3cret!!"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "alice", resp.User.Username)
	assert.Equal(t, models.RoleCustomer, resp.User.Role)

	_, ok := db.profiles[resp.User.ID]
	assert.True(t, ok)
	assert.NotEqual(t, "s3cret!!", db.users[resp.User.ID].Password)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	_, _, svc := newAuth()
	ctx := context.Background()
	req := models.RegisterRequest{Username: "alice", Password: "s3cret!!"}

	_, err := svc.Register(ctx, req)
	require.NoError(t, err)

	_, err = svc.Register(ctx, req)
	require.ErrorIs(t, err, models.ErrValidation)
	var verr *models.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "username", verr.Field)
}

func TestLogin(t *testing.T) {
	_, _, svc := newAuth()
	ctx := context.Background()
	_, err := svc.Register(ctx, models.RegisterRequest{Username: "alice", Password: "s3cret!!"})
	require.NoError(t, err)

	resp, err := svc.Login(ctx, models.LoginRequest{Username: "alice", Password: "s3cret!!"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)

	_, err = svc.Login(ctx, models.LoginRequest{Username: "alice", Password: "wrong"})
	assert.ErrorIs(t, err, models.ErrValidation)
	assert.EqualError(t, err, "invalid username or password")

	_, err = svc.Login(ctx, models.LoginRequest{Username: "nobody", Password: "s3cret!!"})
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestLogoutRevokesToken(t *testing.T) {
	_, revoker, svc := newAuth()
	ctx := context.Background()

	resp, err := svc.Register(ctx, models.RegisterRequest{Username: "alice", Password: "s3cret!!"})
	require.NoError(t, err)

	ident, err := svc.Authenticate(ctx, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "alice", ident.Username)
	assert.NotEmpty(t, ident.TokenID)

	require.NoError(t, svc.Logout(ctx, ident))
	assert.Contains(t, revoker.revoked, ident.TokenID)
	assert.Greater(t, revoker.revoked[ident.TokenID], 50*time.Minute)

	_, err = svc.Authenticate(ctx, resp.Token)
	assert.ErrorIs(t, err, models.ErrUnauthorized)
}

func TestAuthenticateRejectsGarbage(t *testing.T) {
	_, _, svc := newAuth()
	_, err := svc.Authenticate(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, models.ErrUnauthorized)
}

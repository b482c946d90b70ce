package service

import (
	"context"
	"os"
	"testing"

	"ladder_zone/internal/common"
	"ladder_zone/internal/common/security"
	"ladder_zone/internal/platform/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	config.Load()
	security.InitJWT()
	os.Exit(m.Run())
}

func TestSignup(t *testing.T) {
	ctx := context.Background()

	t.Run("creates user and issues token", func(t *testing.T) {
		svc := NewAuthService(newFakeUserRepo())
		resp, err := svc.Signup(ctx, SignupRequest{
			Username: "alice",
			Email:    "alice@example.com",
			Password: "hunter22",
			Phone:    "555-0100",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, "alice", resp.User.Username)
		assert.Empty(t, resp.User.HashedPassword, "password material must not leak")
	})

	t.Run("missing fields", func(t *testing.T) {
		svc := NewAuthService(newFakeUserRepo())
		_, err := svc.Signup(ctx, SignupRequest{Username: "alice", Email: "a@example.com"})
		assert.ErrorIs(t, err, common.ErrBadRequest)
	})

	t.Run("duplicate username or email reported as bad request", func(t *testing.T) {
		users := newFakeUserRepo()
		svc := NewAuthService(users)
		_, err := svc.Signup(ctx, SignupRequest{Username: "alice", Email: "alice@example.com", Password: "pw"})
		require.NoError(t, err)

		_, err = svc.Signup(ctx, SignupRequest{Username: "alice", Email: "other@example.com", Password: "pw"})
		assert.ErrorIs(t, err, common.ErrBadRequest)

		_, err = svc.Signup(ctx, SignupRequest{Username: "alice2", Email: "alice@example.com", Password: "pw"})
		assert.ErrorIs(t, err, common.ErrBadRequest)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo()
	svc := NewAuthService(users)

	_, err := svc.Signup(ctx, SignupRequest{Username: "alice", Email: "alice@example.com", Password: "hunter22"})
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		resp, err := svc.Login(ctx, LoginRequest{Username: "alice", Password: "hunter22"})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, "alice", resp.User.Username)
	})

	t.Run("wrong password and unknown user share a generic failure", func(t *testing.T) {
		_, err := svc.Login(ctx, LoginRequest{Username: "alice", Password: "wrong"})
		assert.ErrorIs(t, err, common.ErrBadRequest)
		assert.Contains(t, err.Error(), "invalid username or password")

		_, err = svc.Login(ctx, LoginRequest{Username: "nobody", Password: "hunter22"})
		assert.ErrorIs(t, err, common.ErrBadRequest)
		assert.Contains(t, err.Error(), "invalid username or password")
	})

	t.Run("missing fields", func(t *testing.T) {
		_, err := svc.Login(ctx, LoginRequest{Username: "alice"})
		assert.ErrorIs(t, err, common.ErrBadRequest)
	})
}

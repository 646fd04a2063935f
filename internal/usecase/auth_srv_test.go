package usecase

import (
	"context"
	"testing"

	"room-booking/internal/data/entity"
	"room-booking/internal/dto/request"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRegisterAndLogin(t *testing.T) {
	repo := newTestRepository()
	svc := NewAuthService(repo, zap.NewNop())

	reg, err := svc.Register(context.Background(), &request.RegisterRequest{
		Username: "somchai",
		Email:    "somchai@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleUser, reg.Role)
	assert.Equal(t, entity.VerificationNone, reg.VerificationStatus)
	assert.NotEmpty(t, reg.Token)

	login, err := svc.Login(context.Background(), &request.LoginRequest{
		Username: "somchai",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	assert.Equal(t, reg.UserID, login.UserID)

	// Email works as the login identifier too.
	login, err = svc.Login(context.Background(), &request.LoginRequest{
		Username: "somchai@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	assert.Equal(t, reg.UserID, login.UserID)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	repo := newTestRepository()
	svc := NewAuthService(repo, zap.NewNop())

	_, err := svc.Register(context.Background(), &request.RegisterRequest{
		Username: "somchai",
		Email:    "somchai@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &request.LoginRequest{
		Username: "somchai",
		Password: "wrong",
	})
	assert.Error(t, err)

	_, err = svc.Login(context.Background(), &request.LoginRequest{
		Username: "nobody",
		Password: "s3cret-pass",
	})
	assert.Error(t, err)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	repo := newTestRepository()
	svc := NewAuthService(repo, zap.NewNop())

	_, err := svc.Register(context.Background(), &request.RegisterRequest{
		Username: "somchai",
		Email:    "somchai@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), &request.RegisterRequest{
		Username: "somchai",
		Email:    "other@example.com",
		Password: "s3cret-pass",
	})
	assert.Error(t, err)

	_, err = svc.Register(context.Background(), &request.RegisterRequest{
		Username: "somying",
		Email:    "somchai@example.com",
		Password: "s3cret-pass",
	})
	assert.Error(t, err)
}

func TestLogoutRevokesSession(t *testing.T) {
	repo := newTestRepository()
	svc := NewAuthService(repo, zap.NewNop())

	reg, err := svc.Register(context.Background(), &request.RegisterRequest{
		Username: "somchai",
		Email:    "somchai@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	session, err := repo.Session.FindValidSession(context.Background(), reg.Token)
	require.NoError(t, err)
	require.NotNil(t, session)

	require.NoError(t, svc.Logout(context.Background(), reg.Token))

	session, err = repo.Session.FindValidSession(context.Background(), reg.Token)
	require.NoError(t, err)
	assert.Nil(t, session)
}

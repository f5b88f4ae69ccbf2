package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"padel-api/internal/domain"
	"padel-api/pkg/errors"
)

func newTestAuthService(users *fakeUserRepo) AuthService {
	return NewAuthService(users, "test-secret", time.Hour, testLogger())
}

func TestAuthServiceRegister(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepo())

	resp, err := svc.Register(context.Background(), &domain.RegisterRequest{
		Name:     "Somchai",
		Email:    "somchai@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	assert.NotZero(t, resp.User.ID)
	assert.Equal(t, domain.RoleUser, resp.User.Role)
	assert.NotEmpty(t, resp.Token)
	assert.NotEqual(t, "password123", resp.User.PasswordHash)
}

func TestAuthServiceRegisterDuplicateEmail(t *testing.T) {
	users := newFakeUserRepo()
	svc := newTestAuthService(users)

	req := &domain.RegisterRequest{Name: "Somchai", Email: "somchai@example.com", Password: "password123"}
	_, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), req)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))
}

func TestAuthServiceLogin(t *testing.T) {
	users := newFakeUserRepo()
	svc := newTestAuthService(users)

	_, err := svc.Register(context.Background(), &domain.RegisterRequest{
		Name:     "Somchai",
		Email:    "somchai@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), &domain.LoginRequest{
		Email:    "somchai@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "somchai@example.com", resp.User.Email)
}

func TestAuthServiceLoginInvalidCredentials(t *testing.T) {
	users := newFakeUserRepo()
	svc := newTestAuthService(users)

	_, err := svc.Register(context.Background(), &domain.RegisterRequest{
		Name:     "Somchai",
		Email:    "somchai@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{name: "wrong password", email: "somchai@example.com", password: "wrong-password"},
		{name: "unknown email", email: "nobody@example.com", password: "password123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), &domain.LoginRequest{Email: tt.email, Password: tt.password})
			require.Error(t, err)
			assert.True(t, errors.IsType(err, errors.ErrorTypeAuthentication))
		})
	}
}

func TestAuthServiceValidateToken(t *testing.T) {
	users := newFakeUserRepo()
	svc := newTestAuthService(users)

	resp, err := svc.Register(context.Background(), &domain.RegisterRequest{
		Name:     "Somchai",
		Email:    "somchai@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	user, err := svc.ValidateToken(context.Background(), resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, user.ID)
	assert.Equal(t, resp.User.Email, user.Email)
}

func TestAuthServiceValidateTokenRejectsGarbage(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepo())

	_, err := svc.ValidateToken(context.Background(), "not-a-token")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeAuthentication))
}

func TestAuthServiceValidateTokenRejectsWrongSecret(t *testing.T) {
	users := newFakeUserRepo()
	issuer := NewAuthService(users, "secret-a", time.Hour, testLogger())
	verifier := NewAuthService(users, "secret-b", time.Hour, testLogger())

	resp, err := issuer.Register(context.Background(), &domain.RegisterRequest{
		Name:     "Somchai",
		Email:    "somchai@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	_, err = verifier.ValidateToken(context.Background(), resp.Token)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeAuthentication))
}

func TestAuthServiceGetUser(t *testing.T) {
	users := newFakeUserRepo()
	svc := newTestAuthService(users)

	resp, err := svc.Register(context.Background(), &domain.RegisterRequest{
		Name:     "Somchai",
		Email:    "somchai@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	user, err := svc.GetUser(context.Background(), resp.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "Somchai", user.Name)

	_, err = svc.GetUser(context.Background(), 9999)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeNotFound))
}

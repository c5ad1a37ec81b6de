package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRegisterInput() RegisterInput {
	return RegisterInput{
		Username:  "alice",
		Email:     "Alice@Example.com",
		Password:  "password123",
		FirstName: "Alice",
		LastName:  "Smith",
		Bio:       "hi",
	}
}

func TestAuthService_Register(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()

	res, err := env.svc.Auth.Register(ctx, validRegisterInput())
	require.NoError(t, err)

	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "alice", res.User.Username)
	assert.Equal(t, "alice@example.com", res.User.Email)
	assert.NotEqual(t, "password123", res.User.PasswordHash)
	assert.True(t, res.ExpiresAt.After(res.User.CreatedAt))

	// пароль хешируется ровно один раз
	assert.Equal(t, int32(1), env.hasher.hashes.Load())

	subject, ok := env.tokens.Validate(res.Token)
	require.True(t, ok)
	assert.Equal(t, "alice", subject)
}

func TestAuthService_Register_Conflicts(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()

	_, err := env.svc.Auth.Register(ctx, validRegisterInput())
	require.NoError(t, err)

	t.Run("same username", func(t *testing.T) {
		in := validRegisterInput()
		in.Email = "other@example.com"
		_, err := env.svc.Auth.Register(ctx, in)
		assertKind(t, err, KindConflict)
		assert.ErrorIs(t, err, ErrUsernameTaken)
	})

	t.Run("same email different case", func(t *testing.T) {
		in := validRegisterInput()
		in.Username = "alice2"
		in.Email = "ALICE@example.com"
		_, err := env.svc.Auth.Register(ctx, in)
		assertKind(t, err, KindConflict)
		assert.ErrorIs(t, err, ErrEmailTaken)
	})
}

func TestAuthService_Register_Invalid(t *testing.T) {
	tests := []struct {
		mutate func(*RegisterInput)
		name   string
	}{
		{name: "short username", mutate: func(in *RegisterInput) { in.Username = "ab" }},
		{name: "bad username chars", mutate: func(in *RegisterInput) { in.Username = "bad name" }},
		{name: "bad email", mutate: func(in *RegisterInput) { in.Email = "not-an-email" }},
		{name: "short password", mutate: func(in *RegisterInput) { in.Password = "123" }},
		{name: "password over 72 bytes", mutate: func(in *RegisterInput) { in.Password = strings.Repeat("ж", 40) }},
		{name: "missing first name", mutate: func(in *RegisterInput) { in.FirstName = "  " }},
		{name: "long bio", mutate: func(in *RegisterInput) { in.Bio = strings.Repeat("a", 501) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupServices(t)
			in := validRegisterInput()
			tt.mutate(&in)

			_, err := env.svc.Auth.Register(context.Background(), in)
			assertKind(t, err, KindInvalid)
			assert.Equal(t, int32(0), env.hasher.hashes.Load())
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()

	_, err := env.svc.Auth.Register(ctx, validRegisterInput())
	require.NoError(t, err)

	t.Run("by username", func(t *testing.T) {
		res, err := env.svc.Auth.Login(ctx, "alice", "password123")
		require.NoError(t, err)
		assert.Equal(t, "alice", res.User.Username)
		assert.NotEmpty(t, res.Token)
	})

	t.Run("by email", func(t *testing.T) {
		res, err := env.svc.Auth.Login(ctx, "ALICE@example.com", "password123")
		require.NoError(t, err)
		assert.Equal(t, "alice", res.User.Username)
	})

	failures := []struct {
		name     string
		login    string
		password string
	}{
		{name: "wrong password", login: "alice", password: "wrong-password"},
		{name: "unknown user", login: "nobody", password: "password123"},
		{name: "unknown email", login: "nobody@example.com", password: "password123"},
		{name: "empty login", login: "", password: "password123"},
		{name: "empty password", login: "alice", password: ""},
	}
	for _, tt := range failures {
		t.Run(tt.name, func(t *testing.T) {
			res, err := env.svc.Auth.Login(ctx, tt.login, tt.password)
			assert.Nil(t, res)
			assertKind(t, err, KindUnauthenticated)
			assert.Equal(t, "invalid credentials", err.Error())
		})
	}
}

func TestAuthService_Login_UnknownUserRunsVerify(t *testing.T) {
	env := setupServices(t)

	require.NotEmpty(t, env.svc.Auth.dummyDigest)

	before := env.hasher.verifys.Load()
	_, err := env.svc.Auth.Login(context.Background(), "ghost", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Equal(t, before+1, env.hasher.verifys.Load())
	// dummy-хеш посчитан в конструкторе, при логине Hash не вызывается
	assert.Equal(t, int32(0), env.hasher.hashes.Load())
}

// brokenHasher не умеет хешировать
type brokenHasher struct{}

func (brokenHasher) Hash(string) (string, error) { return "", errors.New("entropy exhausted") }
func (brokenHasher) Verify(string, string) bool { return false }

func TestNew_HasherFailure(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	svc, err := New(nil, brokenHasher{}, nil, logger)
	require.Error(t, err)
	assert.Nil(t, svc)
	assert.Contains(t, err.Error(), "entropy exhausted")
}

func TestAuthService_ValidateToken(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()

	res, err := env.svc.Auth.Register(ctx, validRegisterInput())
	require.NoError(t, err)

	username, ok := env.svc.Auth.ValidateToken(ctx, res.Token)
	assert.True(t, ok)
	assert.Equal(t, "alice", username)

	_, ok = env.svc.Auth.ValidateToken(ctx, "garbage")
	assert.False(t, ok)

	// токен пользователя, которого больше нет
	caller := env.register(t, "bob")
	token, _, err := env.tokens.Issue("bob")
	require.NoError(t, err)
	require.NoError(t, env.svc.Users.Delete(ctx, caller, caller.UserID))

	_, ok = env.svc.Auth.ValidateToken(ctx, token)
	assert.False(t, ok)
}

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignupAndLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user, err := env.auth.Signup(ctx, "vendor@example.com", "churn-the-curd", "Asha")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.NotEqual(t, "churn-the-curd", user.PasswordHash)

	got, err := env.auth.Login(ctx, "vendor@example.com", "churn-the-curd")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
}

func TestSignupRejectsDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.auth.Signup(ctx, "vendor@example.com", "secret", "Asha")
	require.NoError(t, err)

	_, err = env.auth.Signup(ctx, "Vendor@Example.COM", "other", "Ravi")
	assert.True(t, errors.Is(err, ErrEmailTaken))
}

func TestSignupRequiresAllFields(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for _, tc := range []struct{ email, password, name string }{
		{"", "secret", "Asha"},
		{"vendor@example.com", "", "Asha"},
		{"vendor@example.com", "secret", ""},
	} {
		_, err := env.auth.Signup(ctx, tc.email, tc.password, tc.name)
		assert.True(t, errors.Is(err, ErrInvalidInput))
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.auth.Signup(ctx, "vendor@example.com", "secret", "Asha")
	require.NoError(t, err)

	_, err = env.auth.Login(ctx, "vendor@example.com", "wrong")
	assert.True(t, errors.Is(err, ErrInvalidCredentials))

	_, err = env.auth.Login(ctx, "nobody@example.com", "secret")
	assert.True(t, errors.Is(err, ErrInvalidCredentials))
}

package services_test

import (
	"testing"

	"github.com/Rakhulsr/go-shop/app/models"
	"github.com/Rakhulsr/go-shop/app/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerInput(username string) services.RegisterInput {
	return services.RegisterInput{
		Username:  username,
		Email:     username + "@example.com",
		Password:  "s3cret-pass",
		Password2: "s3cret-pass",
	}
}

func TestAuthService_RegisterAndAuthenticate(t *testing.T) {
	f := newFixture(t)

	user, err := f.auth.Register(f.ctx, registerInput("ada"))
	require.NoError(t, err)
	assert.Equal(t, models.RoleCustomer, user.Role)
	assert.NotEqual(t, "s3cret-pass", user.Password)

	got, err := f.auth.Authenticate(f.ctx, "ada", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = f.auth.Authenticate(f.ctx, "ada", "wrong-pass")
	require.ErrorIs(t, err, services.ErrInvalidCredentials)

	_, err = f.auth.Authenticate(f.ctx, "nobody", "s3cret-pass")
	require.ErrorIs(t, err, services.ErrInvalidCredentials)

	me, err := f.auth.CurrentUser(f.ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", me.Email)
}

func TestAuthService_RegisterRejections(t *testing.T) {
	f := newFixture(t)
	_, err := f.auth.Register(f.ctx, registerInput("ada"))
	require.NoError(t, err)

	_, err = f.auth.Register(f.ctx, registerInput("ada"))
	require.ErrorIs(t, err, services.ErrAccountExists)

	sameEmail := registerInput("ada2")
	sameEmail.Email = "ADA@example.com"
	_, err = f.auth.Register(f.ctx, sameEmail)
	require.ErrorIs(t, err, services.ErrAccountExists)

	mismatch := registerInput("grace")
	mismatch.Password2 = "something-else"
	_, err = f.auth.Register(f.ctx, mismatch)
	var verr *services.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "eqfield", verr.Fields["password2"])

	short := registerInput("linus")
	short.Password, short.Password2 = "short", "short"
	_, err = f.auth.Register(f.ctx, short)
	require.ErrorIs(t, err, services.ErrInvalidRequest)
}

func TestAuthService_CreateAdmin(t *testing.T) {
	f := newFixture(t)

	admin, err := f.auth.CreateAdmin(f.ctx, registerInput("root"))
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin())
}

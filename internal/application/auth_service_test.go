package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medibook/medibook-api/internal/domain/entity"
	"github.com/medibook/medibook-api/pkg/helpers"
)

func newAuthService(ttl time.Duration) (*AuthService, *fakeAccountRepo) {
	repo := newFakeAccountRepo()
	jwt := helpers.NewJWTManager("test-secret", ttl)
	return NewAuthService(repo, jwt, nil, nil, false), repo
}

func TestSignupIssuesToken(t *testing.T) {
	t.Parallel()
	svc, _ := newAuthService(time.Hour)

	res, err := svc.Signup(context.Background(), "Asha@Example.com", "secret123", "Asha Rao", entity.RolePatient)
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.NotEmpty(t, res.Token)
	assert.NotEmpty(t, res.Account.ID)
	assert.Equal(t, "asha@example.com", res.Account.Email)
	assert.Equal(t, entity.RolePatient, res.Account.Role)
	assert.NotEqual(t, "secret123", res.Account.PasswordHash)

	uid, err := svc.JWT.Verify(res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.Account.ID, uid)
}

func TestSignupMissingFields(t *testing.T) {
	t.Parallel()
	svc, _ := newAuthService(time.Hour)
	ctx := context.Background()

	cases := []struct {
		name        string
		email       string
		password    string
		displayName string
		role        entity.Role
	}{
		{"no email", "", "secret123", "Asha", entity.RolePatient},
		{"no password", "a@b.com", "", "Asha", entity.RolePatient},
		{"no display name", "a@b.com", "secret123", "   ", entity.RolePatient},
		{"no role", "a@b.com", "secret123", "Asha", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Signup(ctx, tc.email, tc.password, tc.displayName, tc.role)
			assert.ErrorIs(t, err, ErrMissingField)
		})
	}
}

func TestSignupInvalidRole(t *testing.T) {
	t.Parallel()
	svc, _ := newAuthService(time.Hour)

	_, err := svc.Signup(context.Background(), "a@b.com", "secret123", "Asha", "admin")
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestSignupDuplicateEmailCaseInsensitive(t *testing.T) {
	t.Parallel()
	svc, _ := newAuthService(time.Hour)
	ctx := context.Background()

	_, err := svc.Signup(ctx, "asha@example.com", "secret123", "Asha", entity.RolePatient)
	require.NoError(t, err)

	_, err = svc.Signup(ctx, "ASHA@EXAMPLE.COM", "other456", "Imposter", entity.RolePatient)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	t.Parallel()
	svc, _ := newAuthService(time.Hour)
	ctx := context.Background()

	signed, err := svc.Signup(ctx, "asha@example.com", "secret123", "Asha", entity.RolePatient)
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		res, err := svc.Login(ctx, "Asha@Example.com", "secret123")
		require.NoError(t, err)
		assert.Equal(t, signed.Account.ID, res.Account.ID)
		assert.NotEmpty(t, res.Token)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "asha@example.com", "wrongpass")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, "nobody@example.com", "secret123")
		assert.ErrorIs(t, err, ErrAccountNotFound)
	})

	t.Run("missing fields", func(t *testing.T) {
		_, err := svc.Login(ctx, "", "")
		assert.ErrorIs(t, err, ErrMissingField)
	})
}

func TestCurrentAccount(t *testing.T) {
	t.Parallel()
	svc, repo := newAuthService(time.Hour)
	ctx := context.Background()

	signed, err := svc.Signup(ctx, "asha@example.com", "secret123", "Asha", entity.RolePatient)
	require.NoError(t, err)

	t.Run("resolves token", func(t *testing.T) {
		acct, err := svc.CurrentAccount(ctx, signed.Token)
		require.NoError(t, err)
		assert.Equal(t, signed.Account.ID, acct.ID)
		assert.Equal(t, "asha@example.com", acct.Email)
	})

	t.Run("tampered token", func(t *testing.T) {
		_, err := svc.CurrentAccount(ctx, signed.Token+"x")
		assert.ErrorIs(t, err, helpers.ErrTokenInvalid)
	})

	t.Run("account deleted after issuance", func(t *testing.T) {
		repo.delete(signed.Account.ID)
		_, err := svc.CurrentAccount(ctx, signed.Token)
		assert.ErrorIs(t, err, ErrAccountNotFound)
	})
}

func TestCurrentAccountExpiredToken(t *testing.T) {
	t.Parallel()
	svc, _ := newAuthService(-time.Minute)

	res, err := svc.Signup(context.Background(), "asha@example.com", "secret123", "Asha", entity.RolePatient)
	require.NoError(t, err)

	_, err = svc.CurrentAccount(context.Background(), res.Token)
	assert.ErrorIs(t, err, helpers.ErrTokenExpired)
}

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "asha@example.com", NormalizeEmail("  Asha@Example.COM "))
	assert.Equal(t, "", NormalizeEmail("   "))
}

package service

import (
	"context"
	"testing"

	"github.com/sweetsprouts/backend/internal/domain"
	"github.com/sweetsprouts/backend/internal/store/drivers/sqlite"
	"github.com/sweetsprouts/backend/pkg/cryptox"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestUserService(t *testing.T) *UserService {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())

	return &UserService{
		Store:  st,
		Hasher: cryptox.NewPasswordHasher(bcrypt.MinCost),
	}
}

func TestRegister(t *testing.T) {
	t.Parallel()

	svc := newTestUserService(t)
	ctx := context.Background()

	u, err := svc.Register(ctx, RegisterParams{
		Email:    "alice@example.com",
		Password: "Password123!",
		Name:     "Alice",
	})
	require.NoError(t, err)
	require.NotEmpty(t, u.ID)
	require.Equal(t, "alice@example.com", u.Email)
	require.Equal(t, "Alice", u.Name)
	require.Equal(t, domain.RoleUser, u.Role)
	require.False(t, u.CreatedAt.IsZero())

	// The stored credential is a hash, never the plaintext.
	require.NotEmpty(t, u.PasswordHash)
	require.NotEqual(t, "Password123!", u.PasswordHash)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	t.Parallel()

	svc := newTestUserService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterParams{Email: "alice@example.com", Password: "pw-one"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterParams{Email: "alice@example.com", Password: "pw-two"})
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	t.Parallel()

	svc := newTestUserService(t)
	ctx := context.Background()

	created, err := svc.Register(ctx, RegisterParams{Email: "alice@example.com", Password: "Password123!"})
	require.NoError(t, err)

	t.Run("correct credentials", func(t *testing.T) {
		u, err := svc.Login(ctx, "alice@example.com", "Password123!")
		require.NoError(t, err)
		require.Equal(t, created.ID, u.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "alice@example.com", "not-the-password")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		// Must be the same error as a wrong password so callers can't
		// probe which emails are registered.
		_, err := svc.Login(ctx, "nobody@example.com", "Password123!")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestGetByID(t *testing.T) {
	t.Parallel()

	svc := newTestUserService(t)
	ctx := context.Background()

	created, err := svc.Register(ctx, RegisterParams{Email: "alice@example.com", Password: "pw"})
	require.NoError(t, err)

	u, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created.Email, u.Email)

	_, err = svc.GetByID(ctx, "01K0000000000000000000000")
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdate(t *testing.T) {
	t.Parallel()

	svc := newTestUserService(t)
	ctx := context.Background()

	created, err := svc.Register(ctx, RegisterParams{Email: "alice@example.com", Password: "old-password", Name: "Alice"})
	require.NoError(t, err)

	t.Run("partial update leaves other fields alone", func(t *testing.T) {
		name := "Alice Cooper"
		u, err := svc.Update(ctx, created.ID, UpdateParams{Name: &name})
		require.NoError(t, err)
		require.Equal(t, "Alice Cooper", u.Name)
		require.Equal(t, "alice@example.com", u.Email)
	})

	t.Run("password change is re-hashed", func(t *testing.T) {
		password := "new-password"
		u, err := svc.Update(ctx, created.ID, UpdateParams{Password: &password})
		require.NoError(t, err)
		require.NotEqual(t, "new-password", u.PasswordHash)
		require.NotEqual(t, created.PasswordHash, u.PasswordHash)

		_, err = svc.Login(ctx, "alice@example.com", "new-password")
		require.NoError(t, err)
		_, err = svc.Login(ctx, "alice@example.com", "old-password")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("email conflict", func(t *testing.T) {
		_, err := svc.Register(ctx, RegisterParams{Email: "bob@example.com", Password: "pw"})
		require.NoError(t, err)

		email := "bob@example.com"
		_, err = svc.Update(ctx, created.ID, UpdateParams{Email: &email})
		require.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("unknown user", func(t *testing.T) {
		name := "Ghost"
		_, err := svc.Update(ctx, "01K0000000000000000000000", UpdateParams{Name: &name})
		require.ErrorIs(t, err, ErrUserNotFound)
	})
}

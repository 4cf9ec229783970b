package store

import (
	"context"
	"errors"

	"github.com/sweetsprouts/backend/internal/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite today,
// postgres if we ever need it) implement this. Every operation here is a
// single round trip; the one multi-step flow in the system (profile update)
// deliberately runs as sequential calls, so no transaction API is exposed.
type Store interface {
	Users() Users

	ApplyMigrations() error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

type Users interface {
	// CreateUser inserts a new user (id is provided by the app via ULID)
	// and returns the stored row. A duplicate email surfaces as
	// ErrAlreadyExists via the UNIQUE constraint, never as a pre-check.
	CreateUser(ctx context.Context, u domain.User) (domain.User, error)

	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail is used during login.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// UpdateUser writes email, name, password_hash and role for u.ID and
	// bumps updated_at. Returns ErrNotFound if the row vanished and
	// ErrAlreadyExists if the new email is taken.
	UpdateUser(ctx context.Context, u domain.User) (domain.User, error)
}

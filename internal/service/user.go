package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sweetsprouts/backend/internal/domain"
	"github.com/sweetsprouts/backend/internal/store"
	"github.com/sweetsprouts/backend/pkg/cryptox"
	"github.com/sweetsprouts/backend/pkg/idx"
)

var (
	// ErrInvalidCredentials collapses "unknown email" and "wrong password"
	// into one failure so login can't be used to probe for accounts.
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrEmailTaken   = errors.New("email already exists")
	ErrUserNotFound = errors.New("user not found")
)

type UserService struct {
	Store  store.Store
	Hasher cryptox.PasswordHasher
}

type RegisterParams struct {
	Email    string
	Password string
	Name     string
}

// Register hashes the password and persists a new user. Email uniqueness is
// delegated to the store's constraint; a duplicate comes back as
// ErrEmailTaken without any check-then-insert race.
func (s *UserService) Register(ctx context.Context, p RegisterParams) (domain.User, error) {
	hash, err := s.Hasher.Hash(p.Password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	u := domain.User{
		ID:           idx.New().String(),
		Email:        p.Email,
		PasswordHash: hash,
		Name:         p.Name,
		Role:         domain.RoleUser,
	}

	created, err := s.Store.Users().CreateUser(ctx, u)
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrEmailTaken
		}
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}

	return created, nil
}

// Login resolves the user by email and verifies the password. Both failure
// modes return ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, email, password string) (domain.User, error) {
	u, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrInvalidCredentials
		}
		return domain.User{}, fmt.Errorf("lookup user: %w", err)
	}

	if !s.Hasher.Verify(password, u.PasswordHash) {
		return domain.User{}, ErrInvalidCredentials
	}

	return u, nil
}

// GetByID fetches a user by id.
func (s *UserService) GetByID(ctx context.Context, id string) (domain.User, error) {
	u, err := s.Store.Users().GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, fmt.Errorf("lookup user: %w", err)
	}
	return u, nil
}

// UpdateParams carries the fields a profile update may change. Nil means
// "leave unchanged".
type UpdateParams struct {
	Email    *string
	Name     *string
	Password *string
}

// Update applies a partial update to the user's record. The read and the
// write are sequential round trips, not a transaction; the record changing
// in between is an accepted benign race.
func (s *UserService) Update(ctx context.Context, id string, p UpdateParams) (domain.User, error) {
	u, err := s.GetByID(ctx, id)
	if err != nil {
		return domain.User{}, err
	}

	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Password != nil {
		hash, err := s.Hasher.Hash(*p.Password)
		if err != nil {
			return domain.User{}, fmt.Errorf("hash password: %w", err)
		}
		u.PasswordHash = hash
	}

	updated, err := s.Store.Users().UpdateUser(ctx, u)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrAlreadyExists):
			return domain.User{}, ErrEmailTaken
		case errors.Is(err, store.ErrNotFound):
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, fmt.Errorf("update user: %w", err)
	}

	return updated, nil
}

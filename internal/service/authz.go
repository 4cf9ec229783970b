package service

import (
	"errors"

	"github.com/sweetsprouts/backend/internal/domain"
)

// ErrAccessDenied reports an authenticated caller who isn't permitted to
// touch the target record (maps to 403).
var ErrAccessDenied = errors.New("access to this resource is denied")

// Authorize applies the ownership-or-admin rule: the actor may access the
// target record iff it is their own or the actor holds the ADMIN role. It is
// a pure decision over already-resolved users and touches no state.
func Authorize(actor, target domain.User) error {
	if actor.ID == target.ID || actor.Role == domain.RoleAdmin {
		return nil
	}
	return ErrAccessDenied
}

package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sweetsprouts/backend/internal/domain"
	"github.com/sweetsprouts/backend/internal/service"
	"github.com/sweetsprouts/backend/pkg/api"
	"github.com/sweetsprouts/backend/pkg/httpx"
	"github.com/sweetsprouts/backend/pkg/idx"
	"github.com/sweetsprouts/backend/pkg/slogx"
)

type UsersHandler struct {
	UserService *service.UserService
}

// HandleGet returns a single user record.
//
//	@Summary	Get a user by id
//	@Tags		Users
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		string	true	"User id"
//	@Success	200	{object}	api.UserResponse
//	@Failure	401	{object}	api.ErrorResponse	"Missing or invalid token"
//	@Failure	403	{object}	api.ErrorResponse	"Access to this resource is denied"
//	@Failure	404	{object}	api.ErrorResponse	"User not found"
//	@Router		/users/{id} [get].
func (h *UsersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	target, ok := h.resolveAndAuthorize(w, r)
	if !ok {
		return
	}

	httpx.WriteJSON(w, http.StatusOK, userView(target))
}

// HandleUpdate applies a partial profile update.
//
//	@Summary	Update a user
//	@Tags		Users
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string					true	"User id"
//	@Param		request	body		api.UpdateUserRequest	true	"Fields to change"
//	@Success	200		{object}	api.UserResponse
//	@Failure	401		{object}	api.ErrorResponse
//	@Failure	403		{object}	api.ErrorResponse
//	@Failure	404		{object}	api.ErrorResponse
//	@Failure	409		{object}	api.ErrorResponse	"Email already exists"
//	@Router		/users/{id} [put].
func (h *UsersHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	target, ok := h.resolveAndAuthorize(w, r)
	if !ok {
		return
	}

	var req api.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteMessage(w, http.StatusBadRequest, "Request body must be valid JSON")
		return
	}

	updated, err := h.UserService.Update(ctx, target.ID, service.UpdateParams{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailTaken):
			httpx.WriteMessage(w, http.StatusConflict, "Email already exists")
		case errors.Is(err, service.ErrUserNotFound):
			httpx.WriteMessage(w, http.StatusNotFound, "User not found")
		default:
			log.Error("update failed", "user_id", target.ID, "err", err)
			httpx.WriteMessage(w, http.StatusInternalServerError, "Failed to update user")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, userView(updated))
}

// resolveAndAuthorize loads the target record from the path id, re-loads the
// authenticated user, and applies the ownership-or-admin rule. It writes the
// failure response itself and reports whether the caller may proceed.
//
// The authenticated user is re-resolved on every request: if their record was
// deleted after the token was minted, that surfaces as 404, not 403.
func (h *UsersHandler) resolveAndAuthorize(w http.ResponseWriter, r *http.Request) (domain.User, bool) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	id, err := idx.Parse(r.PathValue("id"))
	if err != nil {
		// Ids are always ULIDs, so a path value that can't parse as one
		// can't name a record.
		httpx.WriteMessage(w, http.StatusNotFound, "User not found")
		return domain.User{}, false
	}

	target, err := h.UserService.GetByID(ctx, id.String())
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			httpx.WriteMessage(w, http.StatusNotFound, "User not found")
			return domain.User{}, false
		}
		log.Error("target lookup failed", "err", err)
		httpx.WriteMessage(w, http.StatusInternalServerError, "Failed to fetch user")
		return domain.User{}, false
	}

	subject, ok := httpx.UserIDFromContext(ctx)
	if !ok {
		httpx.WriteMessage(w, http.StatusUnauthorized, httpx.MsgAuthFailed)
		return domain.User{}, false
	}

	actor, err := h.UserService.GetByID(ctx, subject)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			httpx.WriteMessage(w, http.StatusNotFound, "User not found")
			return domain.User{}, false
		}
		log.Error("actor lookup failed", "user_id", subject, "err", err)
		httpx.WriteMessage(w, http.StatusInternalServerError, "Failed to fetch user")
		return domain.User{}, false
	}

	if err := service.Authorize(actor, target); err != nil {
		httpx.WriteMessage(w, http.StatusForbidden, "Access to this resource is denied")
		return domain.User{}, false
	}

	return target, true
}

// userView strips a user record down to its public representation. The
// password hash never leaves the service boundary.
func userView(u domain.User) api.UserResponse {
	return api.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sweetsprouts/backend/internal/service"
	"github.com/sweetsprouts/backend/pkg/api"
	"github.com/sweetsprouts/backend/pkg/httpx"
	"github.com/sweetsprouts/backend/pkg/slogx"
)

type RegisterHandler struct {
	UserService *service.UserService
}

// ServeHTTP handles new user registration.
//
//	@Summary	Register a new user
//	@Tags		Auth
//	@Accept		json
//	@Produce	json
//	@Param		request	body		api.RegisterRequest	true	"Registration details"
//	@Success	201		{object}	api.UserResponse	"Created user, without password hash"
//	@Failure	400		{object}	api.ErrorResponse	"Invalid request body"
//	@Failure	409		{object}	api.ErrorResponse	"Email already exists"
//	@Failure	500		{object}	api.ErrorResponse
//	@Router		/auth/register [post].
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req api.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteMessage(w, http.StatusBadRequest, "Request body must be valid JSON")
		return
	}
	if req.Email == "" || req.Password == "" {
		httpx.WriteMessage(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	u, err := h.UserService.Register(ctx, service.RegisterParams{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			httpx.WriteMessage(w, http.StatusConflict, "Email already exists")
			return
		}
		log.Error("register failed", "err", err)
		httpx.WriteMessage(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, userView(u))
}

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

type LoginHandler struct {
	UserService  *service.UserService
	TokenService *service.TokenService
}

// ServeHTTP handles password login and mints the token pair.
//
//	@Summary	Log in with email and password
//	@Tags		Auth
//	@Accept		json
//	@Produce	json
//	@Param		request	body		api.LoginRequest	true	"Credentials"
//	@Success	200		{object}	api.LoginResponse	"Access and refresh tokens plus the user view"
//	@Failure	400		{object}	api.ErrorResponse	"Invalid request body"
//	@Failure	401		{object}	api.ErrorResponse	"Invalid email or password"
//	@Failure	500		{object}	api.ErrorResponse
//	@Router		/auth/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req api.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteMessage(w, http.StatusBadRequest, "Request body must be valid JSON")
		return
	}

	u, err := h.UserService.Login(ctx, req.Email, req.Password)
	if err != nil {
		// One message for both unknown email and wrong password, so the
		// endpoint can't be used to enumerate accounts.
		if errors.Is(err, service.ErrInvalidCredentials) {
			httpx.WriteMessage(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		log.Error("login failed", "err", err)
		httpx.WriteMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	pair, err := h.TokenService.IssuePair(u.ID)
	if err != nil {
		log.Error("token issuance failed", "user_id", u.ID, "err", err)
		httpx.WriteMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, api.LoginResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		User:         userView(u),
	})
}

package handlers

import (
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/ghuser/restock/pkg/auth"
	"github.com/ghuser/restock/pkg/httpx"
	"github.com/ghuser/restock/pkg/logger"
	pkgvalidator "github.com/ghuser/restock/pkg/validator"
)

// DevLoginRequest is the request body for POST /restock/auth/dev-login.
type DevLoginRequest struct {
	UserID string `json:"user_id" validate:"required,uuid" example:"11111111-1111-1111-1111-111111111111"`
} // @name DevLoginRequest

// AuthHandler issues and clears the session cookie. Sign-in without
// credentials is only mounted outside production.
type AuthHandler struct {
	store sessions.Store
	log   logger.Logger
}

func NewAuthHandler(store sessions.Store, log logger.Logger) *AuthHandler {
	return &AuthHandler{store: store, log: log}
}

// DevLogin signs in as the given user.
//
//	@Summary		Development sign-in
//	@Description	Issues a session cookie for any user id. Not available in production.
//	@Tags			auth
//	@Accept			json
//	@Param			request	body	DevLoginRequest	true	"User to sign in as"
//	@Success		204
//	@Failure		400	{object}	ErrorResponse
//	@Failure		422	{object}	ErrorResponse
//	@Router			/restock/auth/dev-login [post]
func (h *AuthHandler) DevLogin(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[DevLoginRequest](w, r)
	if !ok {
		return
	}
	if err := auth.SignIn(h.store, w, r, req.UserID); err != nil {
		h.log.ErrorContext(r.Context(), "dev sign-in failed", "error", err)
		httpx.JSONError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return
	}
	httpx.NoContent(w)
}

// Logout clears the session cookie.
//
//	@Summary	Sign out
//	@Tags		auth
//	@Success	204
//	@Router		/restock/auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := auth.SignOut(h.store, w, r); err != nil {
		h.log.WarnContext(r.Context(), "sign-out failed", "error", err)
	}
	httpx.NoContent(w)
}

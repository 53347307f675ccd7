package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/restock/pkg/errhttp"
	"github.com/ghuser/restock/pkg/httpx"
	appsvcs "github.com/ghuser/restock/services/restock/application/services"
)

// GetSessionHandler handles GET /restock/sessions/{id} requests.
type GetSessionHandler struct {
	svc *appsvcs.Services
}

func NewGetSessionHandler(svc *appsvcs.Services) *GetSessionHandler {
	return &GetSessionHandler{svc: svc}
}

// Execute returns one session.
//
//	@Summary		Get restock session
//	@Tags			sessions
//	@Produce		json
//	@Param			id	path		string	true	"Session ID"
//	@Success		200	{object}	SessionResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/restock/sessions/{id} [get]
func (h *GetSessionHandler) Execute(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	s, err := h.svc.Sessions.GetSession(r.Context(), uid, chi.URLParam(r, "id"))
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toSessionResponse(s))
}

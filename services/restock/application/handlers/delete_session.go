package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/restock/pkg/errhttp"
	"github.com/ghuser/restock/pkg/httpx"
	appsvcs "github.com/ghuser/restock/services/restock/application/services"
)

// DeleteSessionHandler handles DELETE /restock/sessions/{id} requests.
type DeleteSessionHandler struct {
	svc *appsvcs.Services
}

func NewDeleteSessionHandler(svc *appsvcs.Services) *DeleteSessionHandler {
	return &DeleteSessionHandler{svc: svc}
}

// Execute deletes a session in any status.
//
//	@Summary		Delete restock session
//	@Tags			sessions
//	@Param			id	path	string	true	"Session ID"
//	@Success		204
//	@Failure		401	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/restock/sessions/{id} [delete]
func (h *DeleteSessionHandler) Execute(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	if err := h.svc.Sessions.DeleteSession(r.Context(), uid, chi.URLParam(r, "id")); err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.NoContent(w)
}

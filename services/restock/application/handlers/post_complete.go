package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/restock/pkg/errhttp"
	"github.com/ghuser/restock/pkg/httpx"
	appsvcs "github.com/ghuser/restock/services/restock/application/services"
)

// PostCompleteHandler handles POST /restock/sessions/{id}/complete requests.
type PostCompleteHandler struct {
	svc *appsvcs.Services
}

func NewPostCompleteHandler(svc *appsvcs.Services) *PostCompleteHandler {
	return &PostCompleteHandler{svc: svc}
}

// Execute marks a session sent when the emails went out by other means.
//
//	@Summary		Mark session sent
//	@Tags			sessions
//	@Produce		json
//	@Param			id	path		string	true	"Session ID"
//	@Success		200	{object}	SessionResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		409	{object}	ErrorResponse
//	@Router			/restock/sessions/{id}/complete [post]
func (h *PostCompleteHandler) Execute(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	s, err := h.svc.Sessions.CompleteSession(r.Context(), uid, chi.URLParam(r, "id"))
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toSessionResponse(s))
}

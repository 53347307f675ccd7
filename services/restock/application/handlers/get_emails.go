package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/restock/pkg/errhttp"
	"github.com/ghuser/restock/pkg/httpx"
	appsvcs "github.com/ghuser/restock/services/restock/application/services"
)

// GetEmailsHandler handles GET /restock/sessions/{id}/emails requests.
type GetEmailsHandler struct {
	svc *appsvcs.Services
}

func NewGetEmailsHandler(svc *appsvcs.Services) *GetEmailsHandler {
	return &GetEmailsHandler{svc: svc}
}

// Execute re-renders the emails of a session awaiting send.
//
//	@Summary		Preview supplier emails
//	@Tags			emails
//	@Produce		json
//	@Param			id	path		string	true	"Session ID"
//	@Success		200	{object}	EmailsResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		409	{object}	ErrorResponse
//	@Router			/restock/sessions/{id}/emails [get]
func (h *GetEmailsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	res, err := h.svc.Sessions.PreviewEmails(r.Context(), uid, chi.URLParam(r, "id"))
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toEmailsResponse(res))
}

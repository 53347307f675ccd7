package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/restock/pkg/errhttp"
	"github.com/ghuser/restock/pkg/httpx"
	appsvcs "github.com/ghuser/restock/services/restock/application/services"
)

// PostEmailsHandler handles POST /restock/sessions/{id}/emails requests.
type PostEmailsHandler struct {
	svc *appsvcs.Services
}

func NewPostEmailsHandler(svc *appsvcs.Services) *PostEmailsHandler {
	return &PostEmailsHandler{svc: svc}
}

// Execute closes the draft for editing and generates one email per supplier.
//
//	@Summary		Generate supplier emails
//	@Description	Moves a non-empty draft to email_generated and returns one rendered email per supplier
//	@Tags			emails
//	@Produce		json
//	@Param			id	path		string	true	"Session ID"
//	@Success		200	{object}	EmailsResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		409	{object}	ErrorResponse
//	@Router			/restock/sessions/{id}/emails [post]
func (h *PostEmailsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	res, err := h.svc.Sessions.GenerateEmails(r.Context(), uid, chi.URLParam(r, "id"))
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toEmailsResponse(res))
}

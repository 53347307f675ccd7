package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/restock/pkg/errhttp"
	"github.com/ghuser/restock/pkg/httpx"
	"github.com/ghuser/restock/services/restock/application/email"
	appsvcs "github.com/ghuser/restock/services/restock/application/services"
)

// SendResponse is returned by POST /restock/sessions/{id}/send.
type SendResponse struct {
	Session  SessionResponse      `json:"session"`
	Dispatch email.DispatchResult `json:"dispatch"`
} // @name SendResponse

// PostSendHandler handles POST /restock/sessions/{id}/send requests.
type PostSendHandler struct {
	svc *appsvcs.Services
}

func NewPostSendHandler(svc *appsvcs.Services) *PostSendHandler {
	return &PostSendHandler{svc: svc}
}

// Execute sends the supplier emails. 200 means the session is already sent;
// 202 means a background workflow will send it.
//
//	@Summary		Send supplier emails
//	@Tags			emails
//	@Produce		json
//	@Param			id	path		string	true	"Session ID"
//	@Success		200	{object}	SendResponse
//	@Success		202	{object}	SendResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		409	{object}	ErrorResponse
//	@Router			/restock/sessions/{id}/send [post]
func (h *PostSendHandler) Execute(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	res, err := h.svc.Sessions.SendEmails(r.Context(), uid, chi.URLParam(r, "id"))
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	status := http.StatusOK
	if res.Dispatch.Async {
		status = http.StatusAccepted
	}
	httpx.JSON(w, status, SendResponse{Session: toSessionResponse(res.Session), Dispatch: res.Dispatch})
}

package handlers

import (
	"net/http"

	"github.com/ghuser/restock/pkg/errhttp"
	"github.com/ghuser/restock/pkg/httpx"
	appsvcs "github.com/ghuser/restock/services/restock/application/services"
)

// GetSessionsHandler handles GET /restock/sessions requests.
type GetSessionsHandler struct {
	svc *appsvcs.Services
}

func NewGetSessionsHandler(svc *appsvcs.Services) *GetSessionsHandler {
	return &GetSessionsHandler{svc: svc}
}

// Execute lists the user's sessions grouped by status.
//
//	@Summary		List restock sessions
//	@Description	Returns the signed-in user's sessions grouped into draft, email_generated and sent, most recently updated first
//	@Tags			sessions
//	@Produce		json
//	@Success		200	{object}	SessionListResponse
//	@Failure		401	{object}	ErrorResponse
//	@Router			/restock/sessions [get]
func (h *GetSessionsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	grouped, err := h.svc.Sessions.ListSessions(r.Context(), uid)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toSessionListResponse(grouped))
}

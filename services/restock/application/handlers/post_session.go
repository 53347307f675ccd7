package handlers

import (
	"net/http"

	"github.com/ghuser/restock/pkg/errhttp"
	"github.com/ghuser/restock/pkg/httpx"
	pkgvalidator "github.com/ghuser/restock/pkg/validator"
	appsvcs "github.com/ghuser/restock/services/restock/application/services"
)

// CreateSessionRequest is the request body for POST /restock/sessions.
// A blank name becomes "Restock Session YYYY-MM-DD".
type CreateSessionRequest struct {
	Name string `json:"name" validate:"max=255" example:"Weekly bakery order"`
} // @name CreateSessionRequest

// PostSessionHandler handles POST /restock/sessions requests.
type PostSessionHandler struct {
	svc *appsvcs.Services
}

// NewPostSessionHandler returns a PostSessionHandler backed by the given services.
func NewPostSessionHandler(svc *appsvcs.Services) *PostSessionHandler {
	return &PostSessionHandler{svc: svc}
}

// Execute creates a new draft restock session.
//
//	@Summary		Create restock session
//	@Description	Creates an empty draft session for the signed-in store manager
//	@Tags			sessions
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateSessionRequest	true	"Session creation request"
//	@Success		201		{object}	SessionResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/restock/sessions [post]
func (h *PostSessionHandler) Execute(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	req, ok := pkgvalidator.ValidateOptionalRequest[CreateSessionRequest](w, r)
	if !ok {
		return
	}

	s, err := h.svc.Sessions.CreateSession(r.Context(), uid, req.Name)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, toSessionResponse(s))
}

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/restock/pkg/errhttp"
	"github.com/ghuser/restock/pkg/httpx"
	pkgvalidator "github.com/ghuser/restock/pkg/validator"
	appsvcs "github.com/ghuser/restock/services/restock/application/services"
)

// RenameSessionRequest is the request body for PUT /restock/sessions/{id}/name.
type RenameSessionRequest struct {
	Name string `json:"name" validate:"required,notblank,max=255" example:"Friday order"`
} // @name RenameSessionRequest

// PutSessionNameHandler handles PUT /restock/sessions/{id}/name requests.
type PutSessionNameHandler struct {
	svc *appsvcs.Services
}

func NewPutSessionNameHandler(svc *appsvcs.Services) *PutSessionNameHandler {
	return &PutSessionNameHandler{svc: svc}
}

// Execute renames a session that has not been sent.
//
//	@Summary		Rename restock session
//	@Tags			sessions
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Session ID"
//	@Param			request	body		RenameSessionRequest	true	"New name"
//	@Success		200		{object}	SessionResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/restock/sessions/{id}/name [put]
func (h *PutSessionNameHandler) Execute(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	req, ok := pkgvalidator.ValidateRequest[RenameSessionRequest](w, r)
	if !ok {
		return
	}
	s, err := h.svc.Sessions.RenameSession(r.Context(), uid, chi.URLParam(r, "id"), req.Name)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toSessionResponse(s))
}

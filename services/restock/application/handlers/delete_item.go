package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/restock/pkg/errhttp"
	"github.com/ghuser/restock/pkg/httpx"
	appsvcs "github.com/ghuser/restock/services/restock/application/services"
)

// DeleteItemHandler handles DELETE /restock/sessions/{id}/items/{productID} requests.
type DeleteItemHandler struct {
	svc *appsvcs.Services
}

func NewDeleteItemHandler(svc *appsvcs.Services) *DeleteItemHandler {
	return &DeleteItemHandler{svc: svc}
}

// Execute removes a line from a draft session. Removing an absent product is a no-op.
//
//	@Summary		Remove item
//	@Tags			items
//	@Produce		json
//	@Param			id			path		string	true	"Session ID"
//	@Param			productID	path		string	true	"Product ID"
//	@Success		200			{object}	SessionResponse
//	@Failure		401			{object}	ErrorResponse
//	@Failure		404			{object}	ErrorResponse
//	@Failure		409			{object}	ErrorResponse
//	@Router			/restock/sessions/{id}/items/{productID} [delete]
func (h *DeleteItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	s, err := h.svc.Sessions.RemoveItem(r.Context(), uid, chi.URLParam(r, "id"), chi.URLParam(r, "productID"))
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toSessionResponse(s))
}

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/restock/pkg/errhttp"
	"github.com/ghuser/restock/pkg/httpx"
	pkgvalidator "github.com/ghuser/restock/pkg/validator"
	appsvcs "github.com/ghuser/restock/services/restock/application/services"
	"github.com/ghuser/restock/services/restock/domain/models"
)

// UpdateItemRequest is the request body for PATCH /restock/sessions/{id}/items/{productID}.
// Omitted fields are left unchanged.
type UpdateItemRequest struct {
	Quantity *int    `json:"quantity" validate:"omitempty,gt=0"     example:"12"`
	Notes    *string `json:"notes"    validate:"omitempty,max=1000" example:"bulk bags"`
} // @name UpdateItemRequest

// PatchItemHandler handles PATCH /restock/sessions/{id}/items/{productID} requests.
type PatchItemHandler struct {
	svc *appsvcs.Services
}

func NewPatchItemHandler(svc *appsvcs.Services) *PatchItemHandler {
	return &PatchItemHandler{svc: svc}
}

// Execute updates quantity or notes of a line in a draft session.
//
//	@Summary		Update item
//	@Tags			items
//	@Accept			json
//	@Produce		json
//	@Param			id			path		string				true	"Session ID"
//	@Param			productID	path		string				true	"Product ID"
//	@Param			request		body		UpdateItemRequest	true	"Fields to change"
//	@Success		200			{object}	SessionResponse
//	@Failure		401			{object}	ErrorResponse
//	@Failure		404			{object}	ErrorResponse
//	@Failure		409			{object}	ErrorResponse
//	@Failure		422			{object}	ErrorResponse
//	@Router			/restock/sessions/{id}/items/{productID} [patch]
func (h *PatchItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	req, ok := pkgvalidator.ValidateRequest[UpdateItemRequest](w, r)
	if !ok {
		return
	}

	s, err := h.svc.Sessions.UpdateItem(r.Context(), uid, chi.URLParam(r, "id"), chi.URLParam(r, "productID"),
		models.ItemPatch{Quantity: req.Quantity, Notes: req.Notes})
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toSessionResponse(s))
}

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/restock/pkg/errhttp"
	"github.com/ghuser/restock/pkg/httpx"
	pkgvalidator "github.com/ghuser/restock/pkg/validator"
	appsvcs "github.com/ghuser/restock/services/restock/application/services"
	domainsvcs "github.com/ghuser/restock/services/restock/domain/services"
)

// AddItemRequest is the request body for POST /restock/sessions/{id}/items.
// Field rules (positive quantity, names, email syntax) are checked by the
// session service so the first violation is reported in a fixed order.
type AddItemRequest struct {
	ProductName   string `json:"product_name"   validate:"max=255"  example:"Flour"`
	Quantity      int    `json:"quantity"                           example:"10"`
	SupplierName  string `json:"supplier_name"  validate:"max=255"  example:"Acme Mills"`
	SupplierEmail string `json:"supplier_email" validate:"max=320"  example:"orders@acme.com"`
	Notes         string `json:"notes"          validate:"max=1000" example:"00 grade"`
} // @name AddItemRequest

// AddItemResponse reports the updated session and whether catalog records
// were created for the line.
type AddItemResponse struct {
	Session     SessionResponse `json:"session"`
	Item        ItemResponse    `json:"item"`
	NewProduct  bool            `json:"new_product"`
	NewSupplier bool            `json:"new_supplier"`
} // @name AddItemResponse

// PostItemHandler handles POST /restock/sessions/{id}/items requests.
type PostItemHandler struct {
	svc *appsvcs.Services
}

// NewPostItemHandler returns a PostItemHandler backed by the given services.
func NewPostItemHandler(svc *appsvcs.Services) *PostItemHandler {
	return &PostItemHandler{svc: svc}
}

// Execute adds a free-form line to a draft session.
//
//	@Summary		Add item
//	@Description	Adds a product line by name, creating the product and supplier in the catalog when they are new
//	@Tags			items
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string			true	"Session ID"
//	@Param			request	body		AddItemRequest	true	"Item"
//	@Success		201		{object}	AddItemResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/restock/sessions/{id}/items [post]
func (h *PostItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	req, ok := pkgvalidator.ValidateRequest[AddItemRequest](w, r)
	if !ok {
		return
	}

	res, err := h.svc.Sessions.AddItem(r.Context(), uid, chi.URLParam(r, "id"), domainsvcs.AddItemRequest{
		ProductName:   req.ProductName,
		Quantity:      req.Quantity,
		SupplierName:  req.SupplierName,
		SupplierEmail: req.SupplierEmail,
		Notes:         req.Notes,
	})
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, AddItemResponse{
		Session:     toSessionResponse(res.Session),
		Item:        toItemResponse(res.Item),
		NewProduct:  res.NewProduct != nil,
		NewSupplier: res.NewSupplier != nil,
	})
}

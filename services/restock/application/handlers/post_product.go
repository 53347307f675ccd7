package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/restock/pkg/errhttp"
	"github.com/ghuser/restock/pkg/httpx"
	pkgvalidator "github.com/ghuser/restock/pkg/validator"
	appsvcs "github.com/ghuser/restock/services/restock/application/services"
)

// AddProductRequest is the request body for POST /restock/sessions/{id}/products.
// SupplierID and Quantity default to the product's defaults.
type AddProductRequest struct {
	ProductID  string `json:"product_id"  validate:"required,notblank"`
	SupplierID string `json:"supplier_id"`
	Quantity   *int   `json:"quantity"    validate:"omitempty,gt=0" example:"10"`
	Notes      string `json:"notes"       validate:"max=1000"`
} // @name AddProductRequest

// PostProductHandler handles POST /restock/sessions/{id}/products requests.
type PostProductHandler struct {
	svc *appsvcs.Services
}

func NewPostProductHandler(svc *appsvcs.Services) *PostProductHandler {
	return &PostProductHandler{svc: svc}
}

// Execute adds a catalog product to a draft session.
//
//	@Summary		Add catalog product
//	@Tags			items
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string				true	"Session ID"
//	@Param			request	body		AddProductRequest	true	"Catalog product"
//	@Success		201		{object}	SessionResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		403		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/restock/sessions/{id}/products [post]
func (h *PostProductHandler) Execute(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	req, ok := pkgvalidator.ValidateRequest[AddProductRequest](w, r)
	if !ok {
		return
	}

	s, _, err := h.svc.Sessions.AddProduct(r.Context(), uid, chi.URLParam(r, "id"), appsvcs.AddProductInput{
		ProductID:  req.ProductID,
		SupplierID: req.SupplierID,
		Quantity:   req.Quantity,
		Notes:      req.Notes,
	})
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, toSessionResponse(s))
}

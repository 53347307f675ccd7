package handlers

import (
	"net/http"

	"github.com/ghuser/restock/pkg/errhttp"
	"github.com/ghuser/restock/pkg/httpx"
	appsvcs "github.com/ghuser/restock/services/restock/application/services"
)

// GetProductsHandler handles GET /restock/products requests.
type GetProductsHandler struct {
	svc *appsvcs.Services
}

func NewGetProductsHandler(svc *appsvcs.Services) *GetProductsHandler {
	return &GetProductsHandler{svc: svc}
}

// Execute lists the user's catalog products by name.
//
//	@Summary		List products
//	@Tags			catalog
//	@Produce		json
//	@Success		200	{array}		ProductResponse
//	@Failure		401	{object}	ErrorResponse
//	@Router			/restock/products [get]
func (h *GetProductsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	products, err := h.svc.Sessions.ListProducts(r.Context(), uid)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	out := make([]ProductResponse, len(products))
	for i, p := range products {
		out[i] = toProductResponse(p)
	}
	httpx.JSON(w, http.StatusOK, out)
}

// GetSuppliersHandler handles GET /restock/suppliers requests.
type GetSuppliersHandler struct {
	svc *appsvcs.Services
}

func NewGetSuppliersHandler(svc *appsvcs.Services) *GetSuppliersHandler {
	return &GetSuppliersHandler{svc: svc}
}

// Execute lists the user's suppliers by name.
//
//	@Summary		List suppliers
//	@Tags			catalog
//	@Produce		json
//	@Success		200	{array}		SupplierResponse
//	@Failure		401	{object}	ErrorResponse
//	@Router			/restock/suppliers [get]
func (h *GetSuppliersHandler) Execute(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	suppliers, err := h.svc.Sessions.ListSuppliers(r.Context(), uid)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	out := make([]SupplierResponse, len(suppliers))
	for i, s := range suppliers {
		out[i] = toSupplierResponse(s)
	}
	httpx.JSON(w, http.StatusOK, out)
}

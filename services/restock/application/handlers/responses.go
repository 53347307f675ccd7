package handlers

import (
	"net/http"
	"time"

	"github.com/ghuser/restock/pkg/auth"
	"github.com/ghuser/restock/pkg/httpx"
	"github.com/ghuser/restock/services/restock/application/email"
	appsvcs "github.com/ghuser/restock/services/restock/application/services"
	"github.com/ghuser/restock/services/restock/domain/models"
	domainsvcs "github.com/ghuser/restock/services/restock/domain/services"
)

// ErrorResponse is returned on all error responses. Fields is set for
// validation failures.
type ErrorResponse struct {
	Error  string            `json:"error"            example:"Quantity must be greater than 0"`
	Fields map[string]string `json:"fields,omitempty"`
} // @name ErrorResponse

// ItemResponse is one line of a restock session.
type ItemResponse struct {
	ProductID     string `json:"product_id"     example:"8f14e45f-ceea-467f-9e07-3bfb1a5c1e2d"`
	ProductName   string `json:"product_name"   example:"Flour"`
	Quantity      int    `json:"quantity"       example:"10"`
	SupplierID    string `json:"supplier_id"    example:"c9f0f895-fb98-4b91-9a3b-2f1d1e6a7b0c"`
	SupplierName  string `json:"supplier_name"  example:"Acme Mills"`
	SupplierEmail string `json:"supplier_email" example:"orders@acme.com"`
	Notes         string `json:"notes,omitempty" example:"00 grade"`
} // @name ItemResponse

// SessionResponse is a restock session with its items.
type SessionResponse struct {
	ID            string         `json:"id"             example:"45c48cce-2e2d-4fbd-8a3c-6b2a7f0e9d11"`
	Name          string         `json:"name"           example:"Restock Session 2024-03-05"`
	Status        string         `json:"status"         example:"draft" enums:"draft,email_generated,sent"`
	Items         []ItemResponse `json:"items"`
	ItemCount     int            `json:"item_count"     example:"1"`
	TotalQuantity int            `json:"total_quantity" example:"10"`
	CreatedAt     time.Time      `json:"created_at"     example:"2024-03-05T10:30:00Z"`
	UpdatedAt     time.Time      `json:"updated_at"     example:"2024-03-05T10:31:00Z"`
} // @name SessionResponse

// SessionListResponse groups a user's sessions by status.
type SessionListResponse struct {
	Draft          []SessionResponse `json:"draft"`
	EmailGenerated []SessionResponse `json:"email_generated"`
	Sent           []SessionResponse `json:"sent"`
} // @name SessionListResponse

// EmailResponse is one rendered supplier email.
type EmailResponse struct {
	SupplierID    string `json:"supplier_id"`
	SupplierName  string `json:"supplier_name"  example:"Acme Mills"`
	To            string `json:"to"             example:"orders@acme.com"`
	ReplyTo       string `json:"reply_to,omitempty" example:"sam@corner.shop"`
	Subject       string `json:"subject"        example:"Restock order from Corner Shop"`
	Body          string `json:"body"`
	ItemCount     int    `json:"item_count"     example:"2"`
	TotalQuantity int    `json:"total_quantity" example:"12"`
} // @name EmailResponse

// EmailsResponse is a session together with its supplier emails.
type EmailsResponse struct {
	Session SessionResponse `json:"session"`
	Emails  []EmailResponse `json:"emails"`
} // @name EmailsResponse

// ProductResponse is a catalog product.
type ProductResponse struct {
	ID                string `json:"id"`
	Name              string `json:"name"                example:"Flour"`
	DefaultQuantity   int    `json:"default_quantity"    example:"10"`
	DefaultSupplierID string `json:"default_supplier_id,omitempty"`
	Notes             string `json:"notes,omitempty"`
} // @name ProductResponse

// SupplierResponse is a catalog supplier.
type SupplierResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"            example:"Acme Mills"`
	Email string `json:"email"           example:"orders@acme.com"`
	Phone string `json:"phone,omitempty"`
	Notes string `json:"notes,omitempty"`
} // @name SupplierResponse

// userID writes 401 and returns false when the request is unauthenticated.
func userID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, err := auth.UserIDFromCtx(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusUnauthorized, "authentication required")
		return "", false
	}
	return id, true
}

func toSessionResponse(s models.RestockSession) SessionResponse {
	items := make([]ItemResponse, len(s.Items))
	for i, it := range s.Items {
		items[i] = toItemResponse(it)
	}
	return SessionResponse{
		ID:            s.ID,
		Name:          s.Name,
		Status:        s.Status.String(),
		Items:         items,
		ItemCount:     s.ItemCount(),
		TotalQuantity: s.TotalQuantity(),
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

func toItemResponse(it models.RestockItem) ItemResponse {
	return ItemResponse{
		ProductID:     it.ProductID,
		ProductName:   it.ProductName,
		Quantity:      it.Quantity,
		SupplierID:    it.SupplierID,
		SupplierName:  it.SupplierName,
		SupplierEmail: it.SupplierEmail,
		Notes:         it.Notes,
	}
}

func toSessionResponses(ss []models.RestockSession) []SessionResponse {
	out := make([]SessionResponse, len(ss))
	for i, s := range ss {
		out[i] = toSessionResponse(s)
	}
	return out
}

func toSessionListResponse(g domainsvcs.SessionsByStatus) SessionListResponse {
	return SessionListResponse{
		Draft:          toSessionResponses(g.Draft),
		EmailGenerated: toSessionResponses(g.EmailGenerated),
		Sent:           toSessionResponses(g.Sent),
	}
}

// toEmailsResponse pairs drafts with their rendered emails; both are in
// supplier first-seen order.
func toEmailsResponse(res appsvcs.EmailsResult) EmailsResponse {
	emails := make([]EmailResponse, len(res.Emails))
	for i, e := range res.Emails {
		emails[i] = toEmailResponse(e)
		if i < len(res.Drafts) {
			emails[i].ItemCount = len(res.Drafts[i].Items)
			emails[i].TotalQuantity = res.Drafts[i].TotalQuantity()
		}
	}
	return EmailsResponse{Session: toSessionResponse(res.Session), Emails: emails}
}

func toEmailResponse(e email.Rendered) EmailResponse {
	return EmailResponse{
		SupplierID:   e.SupplierID,
		SupplierName: e.SupplierName,
		To:           e.To,
		ReplyTo:      e.ReplyTo,
		Subject:      e.Subject,
		Body:         e.Body,
	}
}

func toProductResponse(p models.Product) ProductResponse {
	return ProductResponse{
		ID:                p.ID,
		Name:              p.Name,
		DefaultQuantity:   p.DefaultQuantity,
		DefaultSupplierID: p.DefaultSupplierID,
		Notes:             p.Notes,
	}
}

func toSupplierResponse(s models.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:    s.ID,
		Name:  s.Name,
		Email: s.Email,
		Phone: s.Phone,
		Notes: s.Notes,
	}
}

// Package services contains stateless domain services for the restock bounded context.
// Domain services enforce business rules that operate purely on domain types
// and have zero external dependencies beyond stdlib and the domain layer.
package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/ghuser/restock/services/restock/domain"
	"github.com/ghuser/restock/services/restock/domain/models"
)

// IDGenerator returns a fresh globally-unique identifier on every call.
type IDGenerator func() string

// Clock returns the current time.
type Clock func() time.Time

// DefaultSessionNamePrefix is prepended to the creation date when a session
// is created without a name.
const DefaultSessionNamePrefix = "Restock Session"

// SessionService is the rule engine for restock sessions. It holds only pure
// collaborators (id generation and time), keeps no state between calls and is
// safe for concurrent use. It is the only place allowed to mint new Product
// and Supplier records on the fly.
type SessionService struct {
	newID IDGenerator
	now   Clock
}

// NewSessionService returns a SessionService using newID for synthesized
// catalog records and now for timestamps. A nil now defaults to UTC wall time.
func NewSessionService(newID IDGenerator, now Clock) *SessionService {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &SessionService{newID: newID, now: now}
}

// AddItemRequest is a free-form line item as typed by the user.
type AddItemRequest struct {
	ProductName   string
	Quantity      int
	SupplierName  string
	SupplierEmail string
	Notes         string
}

// AddItemResult is the outcome of AddItemToSession. NewProduct and NewSupplier
// are set only when the record was synthesized and must be persisted by the caller.
type AddItemResult struct {
	Session     models.RestockSession
	Item        models.RestockItem
	NewProduct  *models.Product
	NewSupplier *models.Supplier
}

// CreateSession returns a new empty draft. A blank name becomes
// "Restock Session YYYY-MM-DD" using the service clock.
func (s *SessionService) CreateSession(id, userID, name string) (models.RestockSession, error) {
	now := s.now()
	if strings.TrimSpace(name) == "" {
		name = DefaultSessionName(now)
	}
	return models.NewRestockSession(id, userID, name, now)
}

// DefaultSessionName builds the name given to sessions created without one.
func DefaultSessionName(at time.Time) string {
	return fmt.Sprintf("%s %s", DefaultSessionNamePrefix, at.UTC().Format(time.DateOnly))
}

// ValidateAddItemRequest checks req in a fixed order: quantity, product name,
// supplier name, supplier email. Only the first violation is reported.
func ValidateAddItemRequest(req AddItemRequest) error {
	if req.Quantity <= 0 {
		return domain.NewValidationError("quantity", "Quantity must be greater than 0")
	}
	if strings.TrimSpace(req.ProductName) == "" {
		return domain.NewValidationError("product_name", "Product name is required")
	}
	if strings.TrimSpace(req.SupplierName) == "" {
		return domain.NewValidationError("supplier_name", "Supplier name is required")
	}
	if !models.IsValidEmail(strings.TrimSpace(req.SupplierEmail)) {
		return domain.NewValidationError("supplier_email", "Supplier email is invalid")
	}
	return nil
}

// AddItemToSession resolves req against the user's catalog, synthesizing a
// product and/or supplier when no match exists, and appends the line item.
//
// Products match on trimmed, case-sensitive name. Suppliers match on trimmed,
// case-sensitive name and case-insensitive email. Catalog entries owned by
// other users are ignored.
func (s *SessionService) AddItemToSession(
	session models.RestockSession,
	req AddItemRequest,
	knownProducts []models.Product,
	knownSuppliers []models.Supplier,
) (AddItemResult, error) {
	if !session.IsEditable() {
		return AddItemResult{}, domain.NewSessionClosedError(session.Status)
	}
	if err := ValidateAddItemRequest(req); err != nil {
		return AddItemResult{}, err
	}

	now := s.now()
	var result AddItemResult

	product, productFound := findProduct(knownProducts, session.UserID, req.ProductName)
	if !productFound {
		product, productFound = findSessionProduct(session, req.ProductName)
	}
	if !productFound {
		created, err := models.NewProduct(s.newID(), session.UserID, req.ProductName, req.Quantity, "", "", now)
		if err != nil {
			return AddItemResult{}, err
		}
		product = created
	}

	supplier, supplierFound := findSupplier(knownSuppliers, session.UserID, req.SupplierName, req.SupplierEmail)
	if !supplierFound {
		created, err := models.NewSupplier(s.newID(), session.UserID, req.SupplierName, req.SupplierEmail, "", "", now)
		if err != nil {
			return AddItemResult{}, err
		}
		supplier = created
		result.NewSupplier = &created
	}

	if !productFound {
		product.DefaultSupplierID = supplier.ID
		result.NewProduct = &product
	}

	item := models.NewRestockItem(product, supplier, req.Quantity, strings.TrimSpace(req.Notes))
	next, err := session.AddItem(item)
	if err != nil {
		return AddItemResult{}, err
	}

	result.Session = next.Touch(now)
	result.Item = item
	return result, nil
}

// AddProductToSession appends a line for catalog entities that already exist.
func (s *SessionService) AddProductToSession(
	session models.RestockSession,
	product models.Product,
	supplier models.Supplier,
	quantity int,
	notes string,
) (models.RestockSession, models.RestockItem, error) {
	if !session.IsEditable() {
		return session, models.RestockItem{}, domain.NewSessionClosedError(session.Status)
	}
	if product.UserID != session.UserID {
		return session, models.RestockItem{}, domain.NewCrossTenantError("product", product.ID)
	}
	if supplier.UserID != session.UserID {
		return session, models.RestockItem{}, domain.NewCrossTenantError("supplier", supplier.ID)
	}
	if quantity <= 0 {
		return session, models.RestockItem{}, domain.NewValidationError("quantity", "Quantity must be greater than 0")
	}

	item := models.NewRestockItem(product, supplier, quantity, strings.TrimSpace(notes))
	next, err := session.AddItem(item)
	if err != nil {
		return session, models.RestockItem{}, err
	}
	return next.Touch(s.now()), item, nil
}

// RemoveItemFromSession drops the line for productID from a draft session.
func (s *SessionService) RemoveItemFromSession(session models.RestockSession, productID string) (models.RestockSession, error) {
	next, err := session.RemoveItem(productID)
	if err != nil {
		return session, err
	}
	return next.Touch(s.now()), nil
}

// UpdateItemInSession patches the line for productID in a draft session.
func (s *SessionService) UpdateItemInSession(session models.RestockSession, productID string, patch models.ItemPatch) (models.RestockSession, error) {
	next, err := session.UpdateItem(productID, patch)
	if err != nil {
		return session, err
	}
	return next.Touch(s.now()), nil
}

// RenameSession sets a new name on a session that has not been sent.
func (s *SessionService) RenameSession(session models.RestockSession, name string) (models.RestockSession, error) {
	next, err := session.SetName(name)
	if err != nil {
		return session, err
	}
	return next.Touch(s.now()), nil
}

// MarkSessionReadyForEmails moves a non-empty draft to email_generated.
func (s *SessionService) MarkSessionReadyForEmails(session models.RestockSession) (models.RestockSession, error) {
	next, err := session.GenerateEmails()
	if err != nil {
		return session, err
	}
	return next.Touch(s.now()), nil
}

// MarkSessionCompleted moves an email_generated session to sent.
func (s *SessionService) MarkSessionCompleted(session models.RestockSession) (models.RestockSession, error) {
	next, err := session.MarkCompleted()
	if err != nil {
		return session, err
	}
	return next.Touch(s.now()), nil
}

func findProduct(products []models.Product, userID, name string) (models.Product, bool) {
	name = strings.TrimSpace(name)
	for _, p := range products {
		if p.UserID == userID && strings.TrimSpace(p.Name) == name {
			return p, true
		}
	}
	return models.Product{}, false
}

// findSessionProduct matches an existing line by product name so a repeated
// request resolves to the same product even when the catalog is not passed in.
func findSessionProduct(session models.RestockSession, name string) (models.Product, bool) {
	name = strings.TrimSpace(name)
	for _, it := range session.Items {
		if strings.TrimSpace(it.ProductName) == name {
			return models.Product{ID: it.ProductID, UserID: session.UserID, Name: it.ProductName}, true
		}
	}
	return models.Product{}, false
}

func findSupplier(suppliers []models.Supplier, userID, name, email string) (models.Supplier, bool) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	for _, sup := range suppliers {
		if sup.UserID == userID &&
			strings.TrimSpace(sup.Name) == name &&
			strings.EqualFold(strings.TrimSpace(sup.Email), email) {
			return sup, true
		}
	}
	return models.Supplier{}, false
}

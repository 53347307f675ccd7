package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the restock domain. Use errors.Is() to check these.
// None of them are retryable: each one reports caller misuse or a business-rule
// violation, never a transient failure.
var (
	// ErrValidation indicates an input field violates domain constraints.
	ErrValidation = errors.New("validation failed")

	// ErrDuplicateProduct indicates the product already has a line item in the session.
	ErrDuplicateProduct = errors.New("product already in session")

	// ErrSessionClosed indicates the session is no longer editable.
	ErrSessionClosed = errors.New("session is closed")

	// ErrInvalidState indicates the requested status transition is not allowed.
	ErrInvalidState = errors.New("invalid session state")

	// ErrEmptySession indicates the session has no items to generate emails for.
	ErrEmptySession = errors.New("session has no items")

	// ErrCrossTenant indicates a catalog entity belongs to a different user than the session.
	ErrCrossTenant = errors.New("entity belongs to another user")

	// ErrItemNotFound indicates no line item exists for the product.
	ErrItemNotFound = errors.New("item not found")

	// ErrSessionNotFound indicates no session exists for the user and id.
	ErrSessionNotFound = errors.New("session not found")

	// ErrProductNotFound indicates no product exists for the user and id.
	ErrProductNotFound = errors.New("product not found")

	// ErrSupplierNotFound indicates no supplier exists for the user and id.
	ErrSupplierNotFound = errors.New("supplier not found")

	// ErrSessionConflict indicates a unique constraint was violated on save.
	ErrSessionConflict = errors.New("session conflict")
)

// Error is a domain failure carrying a user-facing message. It unwraps to its
// Kind sentinel so callers match with errors.Is and render with Error().
type Error struct {
	Kind    error
	Field   string // optional, set for validation failures
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// NewValidationError reports an invalid field.
func NewValidationError(field, message string) error {
	return &Error{Kind: ErrValidation, Field: field, Message: message}
}

// NewDuplicateProductError reports a product that already has a line item.
func NewDuplicateProductError(productName string) error {
	return &Error{
		Kind:    ErrDuplicateProduct,
		Message: fmt.Sprintf("Product %q is already in this session", productName),
	}
}

// NewSessionClosedError reports a mutation attempted outside the draft status.
func NewSessionClosedError(status fmt.Stringer) error {
	return &Error{
		Kind:    ErrSessionClosed,
		Message: fmt.Sprintf("Session can no longer be modified (status: %s)", status),
	}
}

// NewInvalidStateError reports a disallowed status transition.
func NewInvalidStateError(from, to fmt.Stringer) error {
	return &Error{
		Kind:    ErrInvalidState,
		Message: fmt.Sprintf("Cannot move session from %s to %s", from, to),
	}
}

// NewEmptySessionError reports an attempt to generate emails without items.
func NewEmptySessionError() error {
	return &Error{
		Kind:    ErrEmptySession,
		Message: "Cannot generate emails for a session with no items",
	}
}

// NewCrossTenantError reports a catalog entity owned by a different user.
func NewCrossTenantError(entity, id string) error {
	return &Error{
		Kind:    ErrCrossTenant,
		Message: fmt.Sprintf("%s %s does not belong to the session owner", entity, id),
	}
}

// NewItemNotFoundError reports a missing line item.
func NewItemNotFoundError(productID string) error {
	return &Error{
		Kind:    ErrItemNotFound,
		Message: fmt.Sprintf("No item for product %s in this session", productID),
	}
}

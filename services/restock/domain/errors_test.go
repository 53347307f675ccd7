package domain

import (
	"errors"
	"fmt"
	"testing"
)

type stringer string

func (s stringer) String() string { return string(s) }

func TestSentinelErrors_NonNil(t *testing.T) {
	for _, err := range []error{
		ErrValidation, ErrDuplicateProduct, ErrSessionClosed, ErrInvalidState,
		ErrEmptySession, ErrCrossTenant, ErrItemNotFound, ErrSessionNotFound,
		ErrProductNotFound, ErrSupplierNotFound, ErrSessionConflict,
	} {
		if err == nil {
			t.Fatal("sentinel error must not be nil")
		}
	}
}

func TestErrorConstructors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		kind    error
		message string
	}{
		{"validation", NewValidationError("quantity", "Quantity must be greater than 0"), ErrValidation, "Quantity must be greater than 0"},
		{"duplicate", NewDuplicateProductError("Flour"), ErrDuplicateProduct, `Product "Flour" is already in this session`},
		{"closed", NewSessionClosedError(stringer("sent")), ErrSessionClosed, "Session can no longer be modified (status: sent)"},
		{"invalid state", NewInvalidStateError(stringer("draft"), stringer("sent")), ErrInvalidState, "Cannot move session from draft to sent"},
		{"empty", NewEmptySessionError(), ErrEmptySession, "Cannot generate emails for a session with no items"},
		{"cross tenant", NewCrossTenantError("product", "p1"), ErrCrossTenant, "product p1 does not belong to the session owner"},
		{"item not found", NewItemNotFoundError("p1"), ErrItemNotFound, "No item for product p1 in this session"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.kind) {
				t.Fatalf("expected errors.Is(%v, %v)", tt.err, tt.kind)
			}
			if tt.err.Error() != tt.message {
				t.Fatalf("expected message %q, got %q", tt.message, tt.err.Error())
			}
		})
	}
}

func TestError_WrappedIdentity(t *testing.T) {
	wrapped := fmt.Errorf("add item: %w", NewDuplicateProductError("Flour"))
	if !errors.Is(wrapped, ErrDuplicateProduct) {
		t.Fatal("errors.Is must match wrapped ErrDuplicateProduct")
	}

	var de *Error
	if !errors.As(wrapped, &de) {
		t.Fatal("errors.As must find *Error")
	}
	if de.Kind != ErrDuplicateProduct {
		t.Fatalf("expected Kind ErrDuplicateProduct, got %v", de.Kind)
	}
}

func TestValidationError_Field(t *testing.T) {
	var de *Error
	if !errors.As(NewValidationError("supplier_email", "bad"), &de) {
		t.Fatal("expected *Error")
	}
	if de.Field != "supplier_email" {
		t.Fatalf("expected field supplier_email, got %q", de.Field)
	}
}

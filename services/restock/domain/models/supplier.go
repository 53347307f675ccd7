package models

import (
	"regexp"
	"strings"
	"time"

	"github.com/ghuser/restock/services/restock/domain"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsValidEmail reports whether s looks like an email address: something@domain.tld
// with no whitespace. It is a syntactic check only.
func IsValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// Supplier is a vendor contact owned by exactly one user.
type Supplier struct {
	ID        string
	UserID    string
	Name      string
	Email     string
	Phone     string
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewSupplier constructs a valid Supplier. Name and email are stored trimmed.
func NewSupplier(id, userID, name, email, phone, notes string, now time.Time) (Supplier, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" {
		return Supplier{}, domain.NewValidationError("supplier_name", "Supplier name is required")
	}
	if !IsValidEmail(email) {
		return Supplier{}, domain.NewValidationError("supplier_email", "Supplier email is invalid")
	}
	if id == "" || userID == "" {
		return Supplier{}, domain.NewValidationError("id", "Supplier id and user id must be set")
	}
	return Supplier{
		ID:        id,
		UserID:    userID,
		Name:      name,
		Email:     email,
		Phone:     strings.TrimSpace(phone),
		Notes:     strings.TrimSpace(notes),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

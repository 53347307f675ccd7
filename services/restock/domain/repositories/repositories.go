package repositories

import (
	"context"

	"github.com/ghuser/restock/services/restock/domain/models"
)

// SessionRepository is the persistence interface for the RestockSession aggregate.
// The domain layer owns this interface; infrastructure implements it.
// Every method is scoped by userID so one user can never read another's data.
type SessionRepository interface {
	// FindByID returns ErrSessionNotFound when no session matches.
	FindByID(ctx context.Context, userID, id string) (models.RestockSession, error)

	// FindByUserID returns the user's sessions, most recently updated first.
	FindByUserID(ctx context.Context, userID string) ([]models.RestockSession, error)

	// Save inserts or replaces the session.
	Save(ctx context.Context, session models.RestockSession) error

	Delete(ctx context.Context, userID, id string) error
}

// ProductRepository is the persistence interface for catalog products.
type ProductRepository interface {
	FindByID(ctx context.Context, userID, id string) (models.Product, error)
	FindByUserID(ctx context.Context, userID string) ([]models.Product, error)
	Save(ctx context.Context, product models.Product) error
	Delete(ctx context.Context, userID, id string) error
}

// SupplierRepository is the persistence interface for catalog suppliers.
type SupplierRepository interface {
	FindByID(ctx context.Context, userID, id string) (models.Supplier, error)
	FindByUserID(ctx context.Context, userID string) ([]models.Supplier, error)
	Save(ctx context.Context, supplier models.Supplier) error
	Delete(ctx context.Context, userID, id string) error
}

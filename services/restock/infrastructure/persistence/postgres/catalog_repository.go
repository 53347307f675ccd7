package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ghuser/restock/pkg/database"
	"github.com/ghuser/restock/services/restock/domain"
	"github.com/ghuser/restock/services/restock/domain/models"
	"github.com/ghuser/restock/services/restock/domain/repositories"
	"github.com/ghuser/restock/services/restock/infrastructure/persistence/postgres/db"
)

var (
	_ repositories.ProductRepository  = (*ProductRepository)(nil)
	_ repositories.SupplierRepository = (*SupplierRepository)(nil)
)

// ProductRepository implements repositories.ProductRepository against PostgreSQL.
type ProductRepository struct {
	db *database.Database
}

func NewProductRepository(database *database.Database) *ProductRepository {
	return &ProductRepository{db: database}
}

// Save upserts the product. A same-name product for the user, or an id owned
// by another user, yields ErrSessionConflict.
func (r *ProductRepository) Save(ctx context.Context, p models.Product) error {
	q := db.New(r.db.DB())
	n, err := q.UpsertProduct(ctx, db.UpsertProductParams{
		ID:                p.ID,
		UserID:            p.UserID,
		Name:              p.Name,
		DefaultQuantity:   int32(p.DefaultQuantity), //nolint:gosec // validated positive, small
		DefaultSupplierID: nullString(p.DefaultSupplierID),
		Notes:             p.Notes,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	})
	if err != nil {
		if database.IsUniqueViolation(err) {
			return domain.ErrSessionConflict
		}
		return fmt.Errorf("upsert product: %w", err)
	}
	if n == 0 {
		return domain.ErrSessionConflict
	}
	return nil
}

// FindByID returns ErrProductNotFound when the product does not exist for userID.
func (r *ProductRepository) FindByID(ctx context.Context, userID, id string) (models.Product, error) {
	q := db.New(r.db.DB())
	row, err := q.GetProduct(ctx, db.GetProductParams{ID: id, UserID: userID})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Product{}, domain.ErrProductNotFound
		}
		return models.Product{}, fmt.Errorf("query product: %w", err)
	}
	return rowToProduct(row), nil
}

// FindByUserID returns the user's products ordered by name.
func (r *ProductRepository) FindByUserID(ctx context.Context, userID string) ([]models.Product, error) {
	q := db.New(r.db.DB())
	rows, err := q.ListProductsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	out := make([]models.Product, len(rows))
	for i, row := range rows {
		out[i] = rowToProduct(row)
	}
	return out, nil
}

func (r *ProductRepository) Delete(ctx context.Context, userID, id string) error {
	q := db.New(r.db.DB())
	n, err := q.DeleteProduct(ctx, db.DeleteProductParams{ID: id, UserID: userID})
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if n == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// SupplierRepository implements repositories.SupplierRepository against PostgreSQL.
type SupplierRepository struct {
	db *database.Database
}

func NewSupplierRepository(database *database.Database) *SupplierRepository {
	return &SupplierRepository{db: database}
}

// Save upserts the supplier. Name plus case-insensitive email is unique per user.
func (r *SupplierRepository) Save(ctx context.Context, s models.Supplier) error {
	q := db.New(r.db.DB())
	n, err := q.UpsertSupplier(ctx, db.UpsertSupplierParams{
		ID:        s.ID,
		UserID:    s.UserID,
		Name:      s.Name,
		Email:     s.Email,
		Phone:     s.Phone,
		Notes:     s.Notes,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	})
	if err != nil {
		if database.IsUniqueViolation(err) {
			return domain.ErrSessionConflict
		}
		return fmt.Errorf("upsert supplier: %w", err)
	}
	if n == 0 {
		return domain.ErrSessionConflict
	}
	return nil
}

// FindByID returns ErrSupplierNotFound when the supplier does not exist for userID.
func (r *SupplierRepository) FindByID(ctx context.Context, userID, id string) (models.Supplier, error) {
	q := db.New(r.db.DB())
	row, err := q.GetSupplier(ctx, db.GetSupplierParams{ID: id, UserID: userID})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Supplier{}, domain.ErrSupplierNotFound
		}
		return models.Supplier{}, fmt.Errorf("query supplier: %w", err)
	}
	return rowToSupplier(row), nil
}

func (r *SupplierRepository) FindByUserID(ctx context.Context, userID string) ([]models.Supplier, error) {
	q := db.New(r.db.DB())
	rows, err := q.ListSuppliersByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("query suppliers: %w", err)
	}
	out := make([]models.Supplier, len(rows))
	for i, row := range rows {
		out[i] = rowToSupplier(row)
	}
	return out, nil
}

func (r *SupplierRepository) Delete(ctx context.Context, userID, id string) error {
	q := db.New(r.db.DB())
	n, err := q.DeleteSupplier(ctx, db.DeleteSupplierParams{ID: id, UserID: userID})
	if err != nil {
		return fmt.Errorf("delete supplier: %w", err)
	}
	if n == 0 {
		return domain.ErrSupplierNotFound
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func rowToProduct(row db.Product) models.Product {
	return models.Product{
		ID:                row.ID,
		UserID:            row.UserID,
		Name:              row.Name,
		DefaultQuantity:   int(row.DefaultQuantity),
		DefaultSupplierID: row.DefaultSupplierID.String,
		Notes:             row.Notes,
		CreatedAt:         row.CreatedAt,
		UpdatedAt:         row.UpdatedAt,
	}
}

func rowToSupplier(row db.Supplier) models.Supplier {
	return models.Supplier{
		ID:        row.ID,
		UserID:    row.UserID,
		Name:      row.Name,
		Email:     row.Email,
		Phone:     row.Phone,
		Notes:     row.Notes,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

// Package memory holds map-backed repositories for tests and the offline CLI.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/ghuser/restock/services/restock/domain"
	"github.com/ghuser/restock/services/restock/domain/models"
	"github.com/ghuser/restock/services/restock/domain/repositories"
)

type key struct{ userID, id string }

type SessionRepository struct {
	mu       sync.RWMutex
	sessions map[key]models.RestockSession
}

func NewSessionRepository() *SessionRepository {
	return &SessionRepository{sessions: make(map[key]models.RestockSession)}
}

func (r *SessionRepository) FindByID(_ context.Context, userID, id string) (models.RestockSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[key{userID, id}]
	if !ok {
		return models.RestockSession{}, domain.ErrSessionNotFound
	}
	return copySession(s), nil
}

// FindByUserID returns sessions most recently updated first, ties broken by id.
func (r *SessionRepository) FindByUserID(_ context.Context, userID string) ([]models.RestockSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.RestockSession, 0)
	for k, s := range r.sessions {
		if k.userID == userID {
			out = append(out, copySession(s))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].UpdatedAt.After(out[j].UpdatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *SessionRepository) Save(_ context.Context, s models.RestockSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[key{s.UserID, s.ID}] = copySession(s)
	return nil
}

func (r *SessionRepository) Delete(_ context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := key{userID, id}
	if _, ok := r.sessions[k]; !ok {
		return domain.ErrSessionNotFound
	}
	delete(r.sessions, k)
	return nil
}

func copySession(s models.RestockSession) models.RestockSession {
	items := make([]models.RestockItem, len(s.Items))
	copy(items, s.Items)
	s.Items = items
	return s
}

type ProductRepository struct {
	mu       sync.RWMutex
	products map[key]models.Product
}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{products: make(map[key]models.Product)}
}

func (r *ProductRepository) FindByID(_ context.Context, userID, id string) (models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.products[key{userID, id}]
	if !ok {
		return models.Product{}, domain.ErrProductNotFound
	}
	return p, nil
}

// FindByUserID returns products ordered by name.
func (r *ProductRepository) FindByUserID(_ context.Context, userID string) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Product, 0)
	for k, p := range r.products {
		if k.userID == userID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *ProductRepository) Save(_ context.Context, p models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[key{p.UserID, p.ID}] = p
	return nil
}

func (r *ProductRepository) Delete(_ context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := key{userID, id}
	if _, ok := r.products[k]; !ok {
		return domain.ErrProductNotFound
	}
	delete(r.products, k)
	return nil
}

type SupplierRepository struct {
	mu        sync.RWMutex
	suppliers map[key]models.Supplier
}

func NewSupplierRepository() *SupplierRepository {
	return &SupplierRepository{suppliers: make(map[key]models.Supplier)}
}

func (r *SupplierRepository) FindByID(_ context.Context, userID, id string) (models.Supplier, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.suppliers[key{userID, id}]
	if !ok {
		return models.Supplier{}, domain.ErrSupplierNotFound
	}
	return s, nil
}

// FindByUserID returns suppliers ordered by name.
func (r *SupplierRepository) FindByUserID(_ context.Context, userID string) ([]models.Supplier, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Supplier, 0)
	for k, s := range r.suppliers {
		if k.userID == userID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *SupplierRepository) Save(_ context.Context, s models.Supplier) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.suppliers[key{s.UserID, s.ID}] = s
	return nil
}

func (r *SupplierRepository) Delete(_ context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := key{userID, id}
	if _, ok := r.suppliers[k]; !ok {
		return domain.ErrSupplierNotFound
	}
	delete(r.suppliers, k)
	return nil
}

var (
	_ repositories.SessionRepository  = (*SessionRepository)(nil)
	_ repositories.ProductRepository  = (*ProductRepository)(nil)
	_ repositories.SupplierRepository = (*SupplierRepository)(nil)
)

package services

import (
	pkgcache "github.com/ghuser/restock/pkg/cache"
	"github.com/ghuser/restock/services/restock/domain/models"
)

func toCached(s models.RestockSession) *pkgcache.CachedSession {
	items := make([]pkgcache.CachedItem, len(s.Items))
	for i, it := range s.Items {
		items[i] = pkgcache.CachedItem{
			ProductID:     it.ProductID,
			ProductName:   it.ProductName,
			Quantity:      it.Quantity,
			SupplierID:    it.SupplierID,
			SupplierName:  it.SupplierName,
			SupplierEmail: it.SupplierEmail,
			Notes:         it.Notes,
		}
	}
	return &pkgcache.CachedSession{
		ID:        s.ID,
		UserID:    s.UserID,
		Name:      s.Name,
		Status:    s.Status.String(),
		Items:     items,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func fromCached(c *pkgcache.CachedSession) (models.RestockSession, error) {
	status, err := models.ParseStatus(c.Status)
	if err != nil {
		return models.RestockSession{}, err
	}
	items := make([]models.RestockItem, len(c.Items))
	for i, it := range c.Items {
		items[i] = models.RestockItem{
			ProductID:     it.ProductID,
			ProductName:   it.ProductName,
			Quantity:      it.Quantity,
			SupplierID:    it.SupplierID,
			SupplierName:  it.SupplierName,
			SupplierEmail: it.SupplierEmail,
			Notes:         it.Notes,
		}
	}
	return models.RestockSession{
		ID:        c.ID,
		UserID:    c.UserID,
		Name:      c.Name,
		Status:    status,
		Items:     items,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}, nil
}

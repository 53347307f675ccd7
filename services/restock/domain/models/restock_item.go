package models

// RestockItem is one line of a session. ProductName, SupplierName and
// SupplierEmail are snapshots taken when the item was added, so old sessions
// stay readable after the catalog changes.
type RestockItem struct {
	ProductID     string
	ProductName   string
	Quantity      int
	SupplierID    string
	SupplierName  string
	SupplierEmail string
	Notes         string
}

// NewRestockItem snapshots product and supplier into a line item.
func NewRestockItem(p Product, s Supplier, quantity int, notes string) RestockItem {
	return RestockItem{
		ProductID:     p.ID,
		ProductName:   p.Name,
		Quantity:      quantity,
		SupplierID:    s.ID,
		SupplierName:  s.Name,
		SupplierEmail: s.Email,
		Notes:         notes,
	}
}

// ItemPatch holds the fields UpdateItem may change. Nil fields are left as is.
type ItemPatch struct {
	Quantity *int
	Notes    *string
}

// IsEmpty reports whether the patch changes nothing.
func (p ItemPatch) IsEmpty() bool {
	return p.Quantity == nil && p.Notes == nil
}

func (p ItemPatch) apply(item RestockItem) RestockItem {
	if p.Quantity != nil {
		item.Quantity = *p.Quantity
	}
	if p.Notes != nil {
		item.Notes = *p.Notes
	}
	return item
}

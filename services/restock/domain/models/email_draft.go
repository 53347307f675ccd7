package models

// EmailDraftItem is one product line inside a supplier email.
type EmailDraftItem struct {
	ProductName string
	Quantity    int
	Notes       string
}

// EmailDraft is the structured, unrendered order for a single supplier.
// It is handed to the text-generation collaborator as is.
type EmailDraft struct {
	SupplierID    string
	SupplierName  string
	SupplierEmail string
	Items         []EmailDraftItem
	StoreName     string
	SenderName    string
	SenderEmail   string
}

// TotalQuantity sums the quantities of every line in the draft.
func (d EmailDraft) TotalQuantity() int {
	total := 0
	for _, it := range d.Items {
		total += it.Quantity
	}
	return total
}

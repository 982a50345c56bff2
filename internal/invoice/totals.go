package invoice

// Totals are derived from the item list on every change and never stored.
// TotalDue always equals the vendor subtotal; the catalog subtotal is
// informational only.
type Totals struct {
	CatalogSubtotal float64 `json:"catalogSubtotal"`
	VendorSubtotal  float64 `json:"vendorSubtotal"`
	TotalDue        float64 `json:"totalDue"`
}

// ComputeTotals reduces the item list into the three invoice sums. Rows
// whose coerced quantity is not positive contribute nothing. Prices are
// taken as-is; upstream validation rejects negatives before submission.
func ComputeTotals(items []LineItem) Totals {
	var t Totals
	for _, item := range items {
		qty := float64(item.Quantity)
		if qty <= 0 {
			continue
		}
		t.CatalogSubtotal += qty * float64(item.CatalogPrice)
		t.VendorSubtotal += qty * float64(item.VendorPrice)
	}
	t.TotalDue = t.VendorSubtotal
	return t
}

// LineSubtotal is the per-row amount shown in the items table.
func LineSubtotal(item LineItem) float64 {
	qty := float64(item.Quantity)
	if qty <= 0 {
		return 0
	}
	return qty * float64(item.VendorPrice)
}

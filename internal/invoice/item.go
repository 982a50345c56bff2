// Package invoice holds the invoice data model: line items, the invoice
// envelope, field validation, and totals derivation. Nothing in here is
// persisted; an invoice lives only for the duration of a request.
package invoice

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/facturafacil/facturafacil/pkg/utils"
)

// Amount is a numeric field tolerant of in-progress form input. JSON
// decoding accepts numbers, numeric strings in either locale convention,
// and null; anything unparsable coerces to 0 instead of failing.
type Amount float64

func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*a = 0
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*a = 0
			return nil
		}
		v, ok := utils.ParseFlexibleNumber(s)
		if !ok {
			v = 0
		}
		*a = Amount(v)
		return nil
	}

	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		*a = 0
		return nil
	}
	*a = Amount(v)
	return nil
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(a))
}

// LineItem is one row of an invoice.
type LineItem struct {
	Code         string `json:"code,omitempty"`
	Description  string `json:"description"`
	Quantity     Amount `json:"quantity"`
	CatalogPrice Amount `json:"catalogPrice,omitempty"`
	VendorPrice  Amount `json:"vendorPrice"`
}

// Validate checks one line item and returns field -> message for every
// violation. An empty map means the item is valid.
func (li LineItem) Validate() map[string]string {
	errs := make(map[string]string)

	if strings.TrimSpace(li.Description) == "" {
		errs["description"] = "Descripción es requerida."
	}
	if li.Quantity <= 0 {
		errs["quantity"] = "Cantidad debe ser mayor a 0."
	}
	if li.CatalogPrice < 0 {
		errs["catalogPrice"] = "Precio catálogo no puede ser negativo."
	}
	if li.VendorPrice < 0 {
		errs["vendorPrice"] = "Precio vendedora no puede ser negativo."
	}

	return errs
}

// Invoice is the form envelope. All header fields are optional; only the
// item list is mandatory.
type Invoice struct {
	ClientName     string     `json:"clientName,omitempty"`
	ClientAddress  string     `json:"clientAddress,omitempty"`
	InvoiceNumber  string     `json:"invoiceNumber,omitempty"`
	PaymentDueDate string     `json:"paymentDueDate,omitempty"`
	Items          []LineItem `json:"items"`
}

// Validate checks the whole invoice. Item errors are keyed
// "items[i].field" so callers can annotate the offending row inline.
func (inv Invoice) Validate() map[string]string {
	errs := make(map[string]string)

	if len(inv.Items) == 0 {
		errs["items"] = "Debe agregar al menos un ítem a la factura."
		return errs
	}

	for i, item := range inv.Items {
		for field, msg := range item.Validate() {
			errs[fmt.Sprintf("items[%d].%s", i, field)] = msg
		}
	}

	return errs
}

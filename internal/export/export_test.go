package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/facturafacil/facturafacil/internal/invoice"
)

func sampleInvoice() (invoice.Invoice, invoice.Totals) {
	inv := invoice.Invoice{
		ClientName:     "María Pérez",
		InvoiceNumber:  "F-0042",
		PaymentDueDate: "2025-07-15",
		Items: []invoice.LineItem{
			{Code: "COD001", Description: "Camisa Talla L", Quantity: 2, CatalogPrice: 25, VendorPrice: 20},
			{Description: "Pantalón Jean Azul", Quantity: 1, VendorPrice: 45.5},
		},
	}
	return inv, invoice.ComputeTotals(inv.Items)
}

func TestPDF(t *testing.T) {
	inv, totals := sampleInvoice()

	out, err := PDF(inv, totals)
	require.NoError(t, err)

	require.NotEmpty(t, out)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "output should be a PDF document")
}

func TestPDFManyItemsPaginates(t *testing.T) {
	inv, _ := sampleInvoice()
	for i := 0; i < 80; i++ {
		inv.Items = append(inv.Items, invoice.LineItem{
			Description: "Artículo adicional", Quantity: 1, VendorPrice: 9.9,
		})
	}

	out, err := PDF(inv, invoice.ComputeTotals(inv.Items))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestPNG(t *testing.T) {
	inv, totals := sampleInvoice()

	out, err := PNG(inv, totals, 0)
	require.NoError(t, err)

	// PNG magic bytes.
	assert.True(t, bytes.HasPrefix(out, []byte{0x89, 'P', 'N', 'G'}))
}

func TestXLSX(t *testing.T) {
	inv, totals := sampleInvoice()

	out, err := XLSX(inv, totals)
	require.NoError(t, err)

	wb, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer wb.Close()

	rows, err := wb.GetRows("Factura")
	require.NoError(t, err)

	var flat []string
	for _, r := range rows {
		flat = append(flat, r...)
	}
	assert.Contains(t, flat, "Camisa Talla L")
	assert.Contains(t, flat, "Total a Pagar")
}

func TestFilename(t *testing.T) {
	tests := []struct {
		name          string
		invoiceNumber string
		ext           string
		expected      string
	}{
		{name: "with invoice number", invoiceNumber: "F-0042", ext: "pdf", expected: "factura-F-0042.pdf"},
		{name: "empty number falls back", invoiceNumber: "", ext: "png", expected: "factura.png"},
		{name: "unsafe characters replaced", invoiceNumber: "N° 12/7", ext: "xlsx", expected: "factura-N-12-7.xlsx"},
		{name: "dotted extension", invoiceNumber: "A1", ext: ".pdf", expected: "factura-A1.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Filename(tt.invoiceNumber, tt.ext))
		})
	}
}

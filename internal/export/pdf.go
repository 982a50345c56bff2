// Package export packages a validated invoice as a downloadable file:
// an A4 PDF document, a PNG rasterization of it, or an XLSX workbook.
package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/facturafacil/facturafacil/internal/invoice"
	"github.com/facturafacil/facturafacil/pkg/utils"
)

// Table column widths in mm; they fill the printable A4 width.
var colWidths = []float64{25, 65, 15, 28, 28, 29}

var colHeaders = []string{"Código", "Descripción", "Cant.", "P. Catálogo", "P. Vendedora", "Subtotal"}

// PDF renders the invoice as an A4 portrait document and returns the
// encoded bytes.
func PDF(inv invoice.Invoice, totals invoice.Totals) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(tr("Factura "+inv.InvoiceNumber), true)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	// Header
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetTextColor(15, 118, 110)
	pdf.CellFormat(120, 10, tr("Factura Fácil"), "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(31, 41, 55)
	title := "Factura"
	if inv.InvoiceNumber != "" {
		title = "Factura " + inv.InvoiceNumber
	}
	pdf.CellFormat(70, 10, tr(title), "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	if inv.PaymentDueDate != "" {
		pdf.CellFormat(190, 5, tr("Fecha de vencimiento: "+inv.PaymentDueDate), "", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	// Client block
	if inv.ClientName != "" || inv.ClientAddress != "" {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(190, 5, tr("Cliente"), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		if inv.ClientName != "" {
			pdf.CellFormat(190, 5, tr(inv.ClientName), "", 1, "L", false, 0, "")
		}
		if inv.ClientAddress != "" {
			pdf.CellFormat(190, 5, tr(inv.ClientAddress), "", 1, "L", false, 0, "")
		}
		pdf.Ln(4)
	}

	// Items table
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(243, 244, 246)
	for i, h := range colHeaders {
		align := "L"
		if i >= 2 {
			align = "R"
		}
		pdf.CellFormat(colWidths[i], 7, tr(h), "1", 0, align, true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, item := range inv.Items {
		cells := []string{
			item.Code,
			item.Description,
			formatQuantity(item.Quantity),
			utils.FormatCurrency(float64(item.CatalogPrice)),
			utils.FormatCurrency(float64(item.VendorPrice)),
			utils.FormatCurrency(invoice.LineSubtotal(item)),
		}
		for i, c := range cells {
			align := "L"
			if i >= 2 {
				align = "R"
			}
			pdf.CellFormat(colWidths[i], 6, tr(c), "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(4)

	// Totals block, right-aligned
	totalsRows := []struct {
		label string
		value float64
		bold  bool
	}{
		{"Subtotal (Precio Catálogo):", totals.CatalogSubtotal, false},
		{"Subtotal (Precio Vendedora):", totals.VendorSubtotal, false},
		{"Total a Pagar:", totals.TotalDue, true},
	}
	for _, row := range totalsRows {
		if row.bold {
			pdf.SetFont("Helvetica", "B", 11)
			pdf.SetTextColor(15, 118, 110)
		} else {
			pdf.SetFont("Helvetica", "", 10)
			pdf.SetTextColor(31, 41, 55)
		}
		pdf.CellFormat(133, 6, tr(row.label), "", 0, "R", false, 0, "")
		pdf.CellFormat(57, 6, tr(utils.FormatCurrency(row.value)), "", 1, "R", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("encode pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func formatQuantity(q invoice.Amount) string {
	if q == invoice.Amount(int64(q)) {
		return fmt.Sprintf("%d", int64(q))
	}
	return utils.FormatCurrency(float64(q))
}

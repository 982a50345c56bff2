package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/facturafacil/facturafacil/internal/invoice"
)

// XLSX builds a one-sheet workbook with the invoice header, the item
// rows, and the totals block.
func XLSX(inv invoice.Invoice, totals invoice.Totals) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Factura"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("drop default sheet: %w", err)
	}

	row := 1
	setRow := func(values ...interface{}) error {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
		row++
		return nil
	}

	header := [][]interface{}{}
	if inv.InvoiceNumber != "" {
		header = append(header, []interface{}{"Número de Factura", inv.InvoiceNumber})
	}
	if inv.ClientName != "" {
		header = append(header, []interface{}{"Cliente", inv.ClientName})
	}
	if inv.ClientAddress != "" {
		header = append(header, []interface{}{"Dirección", inv.ClientAddress})
	}
	if inv.PaymentDueDate != "" {
		header = append(header, []interface{}{"Fecha de Vencimiento", inv.PaymentDueDate})
	}
	for _, h := range header {
		if err := setRow(h...); err != nil {
			return nil, fmt.Errorf("write header: %w", err)
		}
	}
	if len(header) > 0 {
		row++
	}

	if err := setRow("Código", "Descripción", "Cantidad", "Precio Catálogo", "Precio Vendedora", "Subtotal"); err != nil {
		return nil, fmt.Errorf("write column headers: %w", err)
	}
	for _, item := range inv.Items {
		err := setRow(
			item.Code,
			item.Description,
			float64(item.Quantity),
			float64(item.CatalogPrice),
			float64(item.VendorPrice),
			invoice.LineSubtotal(item),
		)
		if err != nil {
			return nil, fmt.Errorf("write item row: %w", err)
		}
	}

	row++
	totalsRows := [][]interface{}{
		{"Subtotal (Precio Catálogo)", totals.CatalogSubtotal},
		{"Subtotal (Precio Vendedora)", totals.VendorSubtotal},
		{"Total a Pagar", totals.TotalDue},
	}
	for _, r := range totalsRows {
		if err := setRow(r...); err != nil {
			return nil, fmt.Errorf("write totals: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("encode workbook: %w", err)
	}
	return buf.Bytes(), nil
}

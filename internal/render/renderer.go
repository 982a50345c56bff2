// Package render produces the printable HTML invoice preview from
// validated invoice data. It is a pure presentational transform; totals
// are computed by the caller and passed in.
package render

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/facturafacil/facturafacil/internal/invoice"
	"github.com/facturafacil/facturafacil/pkg/utils"
)

const previewHTMLTemplate = `<!doctype html>
<html lang="es">
<head>
  <meta charset="utf-8" />
  <title>Factura {{if .Invoice.InvoiceNumber}}{{.Invoice.InvoiceNumber}}{{else}}sin número{{end}}</title>
  <style>
    * { box-sizing: border-box; }
    body {
      margin: 0;
      padding: 32px;
      font-family: "Helvetica Neue", Arial, sans-serif;
      color: #1f2937;
      background: #ffffff;
    }
    .invoice { max-width: 820px; margin: 0 auto; }
    .header {
      display: flex;
      justify-content: space-between;
      align-items: flex-start;
      border-bottom: 2px solid #0f766e;
      padding-bottom: 16px;
      margin-bottom: 24px;
    }
    .meta { text-align: right; font-size: 14px; }
    .label {
      color: #6b7280;
      text-transform: uppercase;
      letter-spacing: 0.04em;
      font-size: 11px;
    }
    .section { margin-bottom: 24px; }
    table { width: 100%; border-collapse: collapse; font-size: 14px; }
    th, td {
      padding: 10px;
      border-bottom: 1px solid #e5e7eb;
      text-align: left;
    }
    th {
      text-transform: uppercase;
      font-size: 11px;
      letter-spacing: 0.04em;
      color: #6b7280;
    }
    td.num, th.num { text-align: right; }
    .totals {
      margin-top: 16px;
      margin-left: auto;
      width: 320px;
      font-size: 14px;
    }
    .totals div {
      display: flex;
      justify-content: space-between;
      padding: 4px 0;
    }
    .totals .due {
      border-top: 1px solid #e5e7eb;
      margin-top: 8px;
      padding-top: 8px;
      font-weight: 700;
      font-size: 16px;
      color: #0f766e;
    }
  </style>
</head>
<body>
  <div class="invoice">
    <div class="header">
      <div>
        <div><strong>Factura Fácil</strong></div>
        {{if .Invoice.ClientName}}<div>{{.Invoice.ClientName}}</div>{{end}}
        {{if .Invoice.ClientAddress}}<div>{{.Invoice.ClientAddress}}</div>{{end}}
      </div>
      <div class="meta">
        <div class="label">Factura</div>
        {{if .Invoice.InvoiceNumber}}<div><strong>{{.Invoice.InvoiceNumber}}</strong></div>{{end}}
        {{if .Invoice.PaymentDueDate}}<div>Vence: {{.Invoice.PaymentDueDate}}</div>{{end}}
      </div>
    </div>

    <div class="section">
      <table>
        <thead>
          <tr>
            <th>Código</th>
            <th>Descripción</th>
            <th class="num">Cant.</th>
            <th class="num">Precio Catálogo</th>
            <th class="num">Precio Vendedora</th>
            <th class="num">Subtotal</th>
          </tr>
        </thead>
        <tbody>
          {{range .Invoice.Items}}
          <tr>
            <td>{{.Code}}</td>
            <td>{{.Description}}</td>
            <td class="num">{{formatQty .Quantity}}</td>
            <td class="num">{{money .CatalogPrice}}</td>
            <td class="num">{{money .VendorPrice}}</td>
            <td class="num">{{money (lineSubtotal .)}}</td>
          </tr>
          {{end}}
        </tbody>
      </table>
    </div>

    <div class="totals">
      <div><span>Subtotal (Precio Catálogo):</span><span>{{money .Totals.CatalogSubtotal}}</span></div>
      <div><span>Subtotal (Precio Vendedora):</span><span>{{money .Totals.VendorSubtotal}}</span></div>
      <div class="due"><span>Total a Pagar:</span><span>{{money .Totals.TotalDue}}</span></div>
    </div>
  </div>
</body>
</html>
`

type previewData struct {
	Invoice invoice.Invoice
	Totals  invoice.Totals
}

var previewTemplate = template.Must(template.New("preview").Funcs(template.FuncMap{
	"money": func(v interface{}) string {
		switch t := v.(type) {
		case invoice.Amount:
			return utils.FormatCurrency(float64(t))
		case float64:
			return utils.FormatCurrency(t)
		default:
			return utils.FormatCurrency(0)
		}
	},
	"formatQty": func(q invoice.Amount) string {
		if q == invoice.Amount(int64(q)) {
			return fmt.Sprintf("%d", int64(q))
		}
		return utils.FormatCurrency(float64(q))
	},
	"lineSubtotal": invoice.LineSubtotal,
}).Parse(previewHTMLTemplate))

// Preview renders the printable invoice document.
func Preview(inv invoice.Invoice, totals invoice.Totals) ([]byte, error) {
	var buf bytes.Buffer
	if err := previewTemplate.Execute(&buf, previewData{Invoice: inv, Totals: totals}); err != nil {
		return nil, fmt.Errorf("render preview: %w", err)
	}
	return buf.Bytes(), nil
}

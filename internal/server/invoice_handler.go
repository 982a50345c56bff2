package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/facturafacil/facturafacil/internal/export"
	"github.com/facturafacil/facturafacil/internal/invoice"
	"github.com/facturafacil/facturafacil/internal/render"
)

// Totals recomputes the three invoice sums for a possibly mid-edit item
// list. Numeric fields coerce leniently, so this endpoint never rejects
// input shape beyond malformed JSON.
func (s *Server) Totals(c *gin.Context) {
	var inv invoice.Invoice
	if err := c.ShouldBindJSON(&inv); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	c.JSON(http.StatusOK, invoice.ComputeTotals(inv.Items))
}

// bindValidatedInvoice decodes and fully validates an invoice, writing
// the field-keyed error response itself when validation fails.
func (s *Server) bindValidatedInvoice(c *gin.Context) (invoice.Invoice, bool) {
	var inv invoice.Invoice
	if err := c.ShouldBindJSON(&inv); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return inv, false
	}

	if errs := inv.Validate(); len(errs) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": errs})
		return inv, false
	}

	return inv, true
}

// Preview validates the invoice and returns the snapshot the preview
// surface renders from: the submitted data plus its computed totals.
func (s *Server) Preview(c *gin.Context) {
	inv, ok := s.bindValidatedInvoice(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"invoice": inv,
		"totals":  invoice.ComputeTotals(inv.Items),
	})
}

// PreviewHTML returns the printable HTML invoice document.
func (s *Server) PreviewHTML(c *gin.Context) {
	inv, ok := s.bindValidatedInvoice(c)
	if !ok {
		return
	}

	html, err := render.Preview(inv, invoice.ComputeTotals(inv.Items))
	if err != nil {
		s.logger.Error("Failed to render invoice preview", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no se pudo generar la vista previa"})
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", html)
}

// Export packages the validated invoice as a downloadable PDF, PNG, or
// XLSX file. Export failures are reported and leave nothing corrupted;
// the caller may simply retry.
func (s *Server) Export(c *gin.Context) {
	inv, ok := s.bindValidatedInvoice(c)
	if !ok {
		return
	}
	totals := invoice.ComputeTotals(inv.Items)

	format := c.DefaultQuery("format", "pdf")

	var (
		data        []byte
		contentType string
		err         error
	)
	switch format {
	case "pdf":
		data, err = export.PDF(inv, totals)
		contentType = "application/pdf"
	case "png":
		data, err = export.PNG(inv, totals, s.cfg.Export.PNGDPI)
		contentType = "image/png"
	case "xlsx":
		data, err = export.XLSX(inv, totals)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported format: " + format})
		return
	}
	if err != nil {
		s.logger.Error("Invoice export failed",
			zap.String("format", format),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no se pudo exportar la factura"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+export.Filename(inv.InvoiceNumber, format)+`"`)
	c.Data(http.StatusOK, contentType, data)
}

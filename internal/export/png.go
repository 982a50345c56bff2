package export

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/gen2brain/go-fitz"

	"github.com/facturafacil/facturafacil/internal/invoice"
)

// DefaultPNGDPI balances file size against legible table text.
const DefaultPNGDPI = 150

// PNG renders the invoice PDF and rasterizes its first page.
func PNG(inv invoice.Invoice, totals invoice.Totals, dpi float64) ([]byte, error) {
	if dpi <= 0 {
		dpi = DefaultPNGDPI
	}

	pdfBytes, err := PDF(inv, totals)
	if err != nil {
		return nil, err
	}

	doc, err := fitz.NewFromMemory(pdfBytes)
	if err != nil {
		return nil, fmt.Errorf("open generated pdf: %w", err)
	}
	defer doc.Close()

	if doc.NumPage() == 0 {
		return nil, fmt.Errorf("generated pdf has no pages")
	}

	img, err := doc.ImageDPI(0, dpi)
	if err != nil {
		return nil, fmt.Errorf("rasterize page: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

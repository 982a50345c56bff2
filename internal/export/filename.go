package export

import (
	"regexp"
	"strings"
)

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// Filename derives the download name from the invoice number, falling
// back to a generic name when none was entered.
func Filename(invoiceNumber, ext string) string {
	base := "factura"
	if n := strings.TrimSpace(invoiceNumber); n != "" {
		if safe := strings.Trim(unsafeFilenameChars.ReplaceAllString(n, "-"), "-"); safe != "" {
			base = "factura-" + safe
		}
	}
	return base + "." + strings.TrimPrefix(ext, ".")
}

// Package imaging prepares uploaded invoice photos for the extraction
// flow: bounded resize, JPEG re-encode, and data URI assembly.
package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // register PNG decoding

	"github.com/nfnt/resize"
	"go.uber.org/zap"
)

// Options bound the compressed output.
type Options struct {
	// MaxEdge is the longest allowed side in pixels.
	MaxEdge uint
	// JPEGQuality for re-encoding, 1-100.
	JPEGQuality int
}

// DefaultOptions keep an invoice photo comfortably under the upload
// ceiling while leaving table text legible for the vision model.
func DefaultOptions() Options {
	return Options{MaxEdge: 1600, JPEGQuality: 85}
}

// Compress decodes data, shrinks it to fit opts.MaxEdge, and re-encodes
// as JPEG. It is best-effort: on any failure, or when re-encoding did not
// help, the original bytes and MIME type are returned unchanged.
func Compress(data []byte, mimeType string, opts Options, logger *zap.Logger) ([]byte, string) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		logger.Warn("Could not decode uploaded image, sending original",
			zap.String("mime_type", mimeType),
			zap.Int("size_bytes", len(data)),
			zap.Error(err))
		return data, mimeType
	}

	bounds := img.Bounds()
	needsResize := uint(bounds.Dx()) > opts.MaxEdge || uint(bounds.Dy()) > opts.MaxEdge

	out := img
	if needsResize {
		out = resize.Thumbnail(opts.MaxEdge, opts.MaxEdge, img, resize.Lanczos3)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, out, &jpeg.Options{Quality: opts.JPEGQuality}); err != nil {
		logger.Warn("Could not re-encode uploaded image, sending original",
			zap.String("format", format),
			zap.Error(err))
		return data, mimeType
	}

	if !needsResize && buf.Len() >= len(data) {
		return data, mimeType
	}

	logger.Debug("Compressed uploaded image",
		zap.String("format", format),
		zap.Int("original_bytes", len(data)),
		zap.Int("compressed_bytes", buf.Len()),
		zap.Int("width", out.Bounds().Dx()),
		zap.Int("height", out.Bounds().Dy()))
	return buf.Bytes(), "image/jpeg"
}

// DataURI encodes image bytes as "data:<mime>;base64,<payload>", the
// format the image extraction flow expects.
func DataURI(mimeType string, data []byte) string {
	return fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data))
}

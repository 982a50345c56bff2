package server

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/facturafacil/facturafacil/internal/extract"
	"github.com/facturafacil/facturafacil/internal/imaging"
)

type extractTextRequest struct {
	Text string `json:"text"`
}

// ExtractText runs the AI text flow. Flow failures still answer 200 with
// an empty item list; only an unusable request is rejected.
func (s *Server) ExtractText(c *gin.Context) {
	var req extractTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if len(strings.TrimSpace(req.Text)) < extract.MinTextLength {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"errors": gin.H{"text": "El texto debe tener al menos 10 caracteres."},
		})
		return
	}

	c.JSON(http.StatusOK, s.textFlow.Parse(c.Request.Context(), req.Text))
}

// ExtractImage accepts a multipart invoice photo, compresses it
// best-effort, and runs the AI image flow. The body is capped at the
// configured upload ceiling.
func (s *Server) ExtractImage(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.cfg.Upload.MaxImageBytes)

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		if isTooLarge(err) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "la imagen supera el tamaño máximo permitido"})
			return
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"errors": gin.H{"image": "Por favor, seleccione un archivo de imagen."},
		})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		if isTooLarge(err) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "la imagen supera el tamaño máximo permitido"})
			return
		}
		s.logger.Error("Failed to read uploaded image", zap.Error(err))
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"errors": gin.H{"image": "No se pudo leer el archivo de imagen."},
		})
		return
	}

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" || !strings.HasPrefix(mimeType, "image/") {
		mimeType = "image/jpeg"
	}

	compressed, outMime := imaging.Compress(data, mimeType, imaging.Options{
		MaxEdge:     s.cfg.Upload.MaxEdge,
		JPEGQuality: s.cfg.Upload.JPEGQuality,
	}, s.logger)

	dataURI := imaging.DataURI(outMime, compressed)
	c.JSON(http.StatusOK, s.imageFlow.Parse(c.Request.Context(), dataURI))
}

func isTooLarge(err error) bool {
	var mbe *http.MaxBytesError
	return errors.As(err, &mbe)
}

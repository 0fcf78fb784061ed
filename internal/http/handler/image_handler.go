package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/venkyden/Roomivo/internal/repository"
)

// ImageHandler manages property image uploads backed by GridFS.
type ImageHandler struct {
	store    repository.ImageStore
	maxBytes int64
	logger   *zap.Logger
}

func NewImageHandler(store repository.ImageStore, maxBytes int64, logger *zap.Logger) *ImageHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ImageHandler{store: store, maxBytes: maxBytes, logger: logger}
}

// Upload accepts a multipart "image" part, stores it, and returns a
// URL the client can embed in a property listing.
func (h *ImageHandler) Upload(c *gin.Context) {
	if _, ok := callerIdentity(c); !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes)

	fileHeader, err := c.FormFile("image")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "File too large"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "No image file provided"})
		return
	}
	if fileHeader.Size > h.maxBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File too large"})
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only image files are allowed"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer file.Close()

	publicID, err := h.store.Upload(c.Request.Context(), fileHeader.Filename, contentType, file)
	if err != nil {
		h.logger.Error("image upload failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	imageURL := fmt.Sprintf("%s://%s/api/images/%s", scheme, c.Request.Host, publicID)

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"imageUrl": imageURL,
		"publicId": publicID,
	})
}

// Serve streams a stored image back with its original content type.
func (h *ImageHandler) Serve(c *gin.Context) {
	publicID := c.Param("publicId")
	img, err := h.store.Get(c.Request.Context(), publicID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Image not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	contentType := img.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Data(http.StatusOK, contentType, img.Data)
}

// Remove deletes a stored image.
func (h *ImageHandler) Remove(c *gin.Context) {
	if _, ok := callerIdentity(c); !ok {
		return
	}
	publicID := c.Param("publicId")
	if err := h.store.Delete(c.Request.Context(), publicID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Image not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Image deleted"})
}

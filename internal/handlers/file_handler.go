package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path"
	"strconv"

	"github.com/gin-gonic/gin"

	"kariyer_backend/internal/logger"
	"kariyer_backend/internal/storage"
	"kariyer_backend/pkg/apperrors"
)

// FileHandler streams stored objects, mainly for the local storage backend.
type FileHandler struct {
	*BaseHandler
	storage storage.Storage
}

func NewFileHandler(base *BaseHandler, storage storage.Storage) *FileHandler {
	return &FileHandler{
		BaseHandler: base,
		storage:     storage,
	}
}

func (h *FileHandler) RegisterRoutes(r *gin.RouterGroup) {
	files := r.Group("/files")
	{
		files.GET("/*path", h.ServeFile)
		files.HEAD("/*path", h.CheckFileExists)
	}
}

func (h *FileHandler) resolve(c *gin.Context) (string, bool) {
	key, err := storage.CleanKey(c.Param("path"))
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid file path"))
		return "", false
	}
	return key, true
}

func contentTypeFor(key string) string {
	if ct := mime.TypeByExtension(path.Ext(key)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// inlineTypes are the only types rendered in the browser; everything else downloads.
var inlineTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

func dispositionFor(contentType string, download bool, key string) string {
	if !download && inlineTypes[contentType] {
		return "inline"
	}
	return fmt.Sprintf(`attachment; filename="%s"`, path.Base(key))
}

func (h *FileHandler) ServeFile(c *gin.Context) {
	key, ok := h.resolve(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	reader, err := h.storage.Get(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) || errors.Is(err, storage.ErrInvalidPath) {
			apperrors.HandleError(c, apperrors.NewNotFoundError("file", "File not found"))
			return
		}
		h.HandleServiceError(c, apperrors.ExternalServiceError(err, "storage", "Failed to read file"))
		return
	}
	defer reader.Close()

	contentType := contentTypeFor(key)
	c.Header("Content-Type", contentType)
	if size, err := h.storage.GetSize(ctx, key); err == nil {
		c.Header("Content-Length", strconv.FormatInt(size, 10))
	}
	c.Header("Cache-Control", "public, max-age=31536000")
	c.Header("ETag", fmt.Sprintf(`"%s"`, key))
	c.Header("X-Content-Type-Options", "nosniff")
	c.Header("Content-Security-Policy", "default-src 'none'; sandbox")
	c.Header("Content-Disposition", dispositionFor(contentType, c.Query("download") == "true", key))

	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, reader); err != nil {
		// headers are already sent
		logger.CtxWarn(ctx, "file stream interrupted", "key", key, "error", err)
	}
}

func (h *FileHandler) CheckFileExists(c *gin.Context) {
	key, err := storage.CleanKey(c.Param("path"))
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}

	exists, err := h.storage.Exists(c.Request.Context(), key)
	if err != nil || !exists {
		c.Status(http.StatusNotFound)
		return
	}

	c.Header("Content-Type", contentTypeFor(key))
	if size, err := h.storage.GetSize(c.Request.Context(), key); err == nil {
		c.Header("Content-Length", strconv.FormatInt(size, 10))
	}
	c.Status(http.StatusOK)
}

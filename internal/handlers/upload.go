package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"kariyer_backend/internal/dto"
	"kariyer_backend/pkg/apperrors"
)

// readUpload reads the multipart file in field, rejecting files above maxSize.
// MimeType is sniffed from the bytes; the client's Content-Type is kept as DeclaredType only.
func readUpload(c *gin.Context, field string, maxSize int64) (dto.UploadInput, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return dto.UploadInput{}, apperrors.ErrFileTooLarge
		}
		return dto.UploadInput{}, apperrors.NewBadRequestError("No file provided in field '" + field + "'")
	}
	if maxSize > 0 && fileHeader.Size > maxSize {
		return dto.UploadInput{}, apperrors.ErrFileTooLarge
	}

	f, err := fileHeader.Open()
	if err != nil {
		return dto.UploadInput{}, apperrors.NewBadRequestError("Failed to open uploaded file")
	}
	defer f.Close()

	reader := io.Reader(f)
	if maxSize > 0 {
		reader = io.LimitReader(f, maxSize+1)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return dto.UploadInput{}, apperrors.NewBadRequestError("Failed to read uploaded file")
	}
	if maxSize > 0 && int64(len(data)) > maxSize {
		return dto.UploadInput{}, apperrors.ErrFileTooLarge
	}

	return dto.UploadInput{
		FileName:     fileHeader.Filename,
		MimeType:     http.DetectContentType(data),
		DeclaredType: strings.TrimSpace(fileHeader.Header.Get("Content-Type")),
		Size:         int64(len(data)),
		Data:         data,
	}, nil
}

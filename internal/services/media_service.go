package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kariyer_backend/internal/dto"
	"kariyer_backend/internal/imageprocessor"
	"kariyer_backend/internal/logger"
	"kariyer_backend/internal/models"
	"kariyer_backend/internal/repositories"
	"kariyer_backend/internal/storage"
	"kariyer_backend/pkg/apperrors"
)

// MediaConfig limits what can be uploaded to the media library.
type MediaConfig struct {
	MaxSize      int64
	AllowedTypes []string
}

type MediaService interface {
	ListCategories(db *gorm.DB) ([]models.MediaCategory, error)
	CreateCategory(db *gorm.DB, actor dto.Actor, req *dto.MediaCategoryRequest) (*models.MediaCategory, error)
	UpdateCategory(db *gorm.DB, actor dto.Actor, id string, req *dto.MediaCategoryRequest) (*models.MediaCategory, error)
	DeleteCategory(db *gorm.DB, actor dto.Actor, id string) error

	List(db *gorm.DB, query dto.MediaListQuery) (*dto.PaginatedResponse, error)
	Get(db *gorm.DB, id string) (*models.Media, error)
	Upload(ctx context.Context, db *gorm.DB, actor dto.Actor, in dto.UploadInput) (*models.Media, error)
	Update(db *gorm.DB, actor dto.Actor, id string, req *dto.UpdateMediaRequest) (*models.Media, error)
	Delete(ctx context.Context, db *gorm.DB, actor dto.Actor, id string) error
}

type mediaService struct {
	mediaRepo repositories.MediaRepository
	storage   storage.Storage
	images    *imageprocessor.Processor
	config    MediaConfig
	audit     AuditService
}

func NewMediaService(
	mediaRepo repositories.MediaRepository,
	store storage.Storage,
	images *imageprocessor.Processor,
	config MediaConfig,
	audit AuditService,
) MediaService {
	return &mediaService{
		mediaRepo: mediaRepo,
		storage:   store,
		images:    images,
		config:    config,
		audit:     audit,
	}
}

// ---------------- Categories ----------------

func (s *mediaService) ListCategories(db *gorm.DB) ([]models.MediaCategory, error) {
	cats, err := s.mediaRepo.ListCategories(db)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	if cats == nil {
		cats = []models.MediaCategory{}
	}
	return cats, nil
}

func (s *mediaService) CreateCategory(db *gorm.DB, actor dto.Actor, req *dto.MediaCategoryRequest) (*models.MediaCategory, error) {
	slug, err := s.resolveSlug(db, req, "")
	if err != nil {
		return nil, err
	}
	cat := &models.MediaCategory{
		Name:        strings.TrimSpace(req.Name),
		Slug:        slug,
		Description: req.Description,
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.DatabaseError(tx.Error)
	}
	defer tx.Rollback()

	if err := s.mediaRepo.CreateCategory(tx, cat); err != nil {
		return nil, handleMediaError(err)
	}
	if err := s.audit.Record(tx, actor, ActionCategoryCreate, "media_category", cat.ID, map[string]string{"slug": cat.Slug}); err != nil {
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return cat, nil
}

func (s *mediaService) UpdateCategory(db *gorm.DB, actor dto.Actor, id string, req *dto.MediaCategoryRequest) (*models.MediaCategory, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.DatabaseError(tx.Error)
	}
	defer tx.Rollback()

	cat, err := s.mediaRepo.FindCategoryByID(tx, id)
	if err != nil {
		return nil, handleMediaError(err)
	}
	slug, err := s.resolveSlug(tx, req, cat.ID)
	if err != nil {
		return nil, err
	}
	cat.Name = strings.TrimSpace(req.Name)
	cat.Slug = slug
	cat.Description = req.Description

	if err := s.mediaRepo.UpdateCategory(tx, cat); err != nil {
		return nil, handleMediaError(err)
	}
	if err := s.audit.Record(tx, actor, ActionCategoryUpdate, "media_category", cat.ID, map[string]string{"slug": cat.Slug}); err != nil {
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return cat, nil
}

// DeleteCategory removes the category; its media stay in the library uncategorised.
func (s *mediaService) DeleteCategory(db *gorm.DB, actor dto.Actor, id string) error {
	tx := db.Begin()
	if tx.Error != nil {
		return apperrors.DatabaseError(tx.Error)
	}
	defer tx.Rollback()

	if err := s.mediaRepo.DeleteCategory(tx, id); err != nil {
		return handleMediaError(err)
	}
	if err := s.audit.Record(tx, actor, ActionCategoryDelete, "media_category", id, nil); err != nil {
		return err
	}
	return wrapDB(tx.Commit().Error)
}

func (s *mediaService) resolveSlug(db *gorm.DB, req *dto.MediaCategoryRequest, exceptID string) (string, error) {
	slug := Slugify(req.Slug)
	if slug == "" {
		slug = Slugify(req.Name)
	}
	if slug == "" {
		return "", apperrors.ValidationError(map[string]string{"slug": "slug cannot be empty"})
	}
	exists, err := s.mediaRepo.SlugExists(db, slug, exceptID)
	if err != nil {
		return "", apperrors.DatabaseError(err)
	}
	if exists {
		return "", apperrors.ErrSlugExists
	}
	return slug, nil
}

// ---------------- Media ----------------

func (s *mediaService) List(db *gorm.DB, query dto.MediaListQuery) (*dto.PaginatedResponse, error) {
	items, total, err := s.mediaRepo.List(db, repositories.MediaFilter{
		CategoryID: query.CategoryID,
		MimePrefix: query.MimePrefix,
		Page:       query.Page,
		PageSize:   query.PageSize,
	})
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	page, size := pageOrDefault(query.Page, query.PageSize)
	return dto.NewPaginatedResponse(items, total, page, size), nil
}

func (s *mediaService) Get(db *gorm.DB, id string) (*models.Media, error) {
	m, err := s.mediaRepo.FindByID(db, id)
	if err != nil {
		return nil, handleMediaError(err)
	}
	return m, nil
}

// Upload validates, stores the file and, for images, a thumbnail.
func (s *mediaService) Upload(ctx context.Context, db *gorm.DB, actor dto.Actor, in dto.UploadInput) (*models.Media, error) {
	if s.config.MaxSize > 0 && in.Size > s.config.MaxSize {
		return nil, apperrors.ErrFileTooLarge
	}
	mime := sniffMediaType(in.Data, in.DeclaredType)
	if !s.isAllowed(mime) {
		return nil, apperrors.ErrInvalidFileType.WithDetails(map[string]string{"mime_type": mime})
	}

	var categoryID *string
	if in.CategoryID != nil && *in.CategoryID != "" {
		if _, err := s.mediaRepo.FindCategoryByID(db, *in.CategoryID); err != nil {
			return nil, handleMediaError(err)
		}
		id := *in.CategoryID
		categoryID = &id
	}

	id := uuid.NewString()
	now := time.Now().UTC()
	key := fmt.Sprintf("media/%04d/%02d/%s%s", now.Year(), now.Month(), id, mediaExtensions[mime])

	if err := s.storage.Save(ctx, key, bytes.NewReader(in.Data), mime); err != nil {
		return nil, apperrors.ExternalServiceError(err, "storage", "Failed to store file")
	}
	url, err := s.storage.GetURL(ctx, key)
	if err != nil {
		s.cleanup(ctx, key)
		return nil, apperrors.ExternalServiceError(err, "storage", "Failed to resolve file URL")
	}

	media := &models.Media{
		CategoryID:   categoryID,
		UploaderID:   actor.UserID,
		OriginalName: in.FileName,
		Path:         key,
		URL:          url,
		MimeType:     mime,
		Size:         in.Size,
		Alt:          in.Alt,
	}
	media.ID = id

	if imageprocessor.IsImage(mime) && s.images != nil {
		s.attachThumbnail(ctx, media, in.Data)
	}

	tx := db.Begin()
	if tx.Error != nil {
		s.cleanup(ctx, media.Path, media.ThumbnailPath)
		return nil, apperrors.DatabaseError(tx.Error)
	}
	defer tx.Rollback()

	if err := s.mediaRepo.Create(tx, media); err != nil {
		s.cleanup(ctx, media.Path, media.ThumbnailPath)
		return nil, apperrors.DatabaseError(err)
	}
	if err := s.audit.Record(tx, actor, ActionMediaUpload, "media", media.ID, map[string]interface{}{
		"name": media.OriginalName,
		"size": media.Size,
	}); err != nil {
		s.cleanup(ctx, media.Path, media.ThumbnailPath)
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		s.cleanup(ctx, media.Path, media.ThumbnailPath)
		return nil, apperrors.DatabaseError(err)
	}
	return media, nil
}

// attachThumbnail is best effort: an undecodable image is stored without a preview.
func (s *mediaService) attachThumbnail(ctx context.Context, media *models.Media, data []byte) {
	thumb, err := s.images.MakeThumbnail(data, imageprocessor.ThumbnailSize)
	if err != nil {
		logger.Warn("Thumbnail generation failed", "media_id", media.ID, "error", err)
		return
	}
	media.Width, media.Height = thumb.SourceWidth, thumb.SourceHeight

	key := "media/thumbs/" + media.ID + thumb.Ext
	if err := s.storage.Save(ctx, key, bytes.NewReader(thumb.Data), thumb.ContentType); err != nil {
		logger.Warn("Thumbnail upload failed", "media_id", media.ID, "error", err)
		return
	}
	url, err := s.storage.GetURL(ctx, key)
	if err != nil {
		s.cleanup(ctx, key)
		return
	}
	media.ThumbnailPath = key
	media.ThumbnailURL = url
}

func (s *mediaService) Update(db *gorm.DB, actor dto.Actor, id string, req *dto.UpdateMediaRequest) (*models.Media, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.DatabaseError(tx.Error)
	}
	defer tx.Rollback()

	media, err := s.mediaRepo.FindByID(tx, id)
	if err != nil {
		return nil, handleMediaError(err)
	}
	if req.Alt != nil {
		media.Alt = *req.Alt
	}
	if req.CategoryID != nil {
		if *req.CategoryID == "" {
			media.CategoryID = nil
		} else {
			if _, err := s.mediaRepo.FindCategoryByID(tx, *req.CategoryID); err != nil {
				return nil, handleMediaError(err)
			}
			catID := *req.CategoryID
			media.CategoryID = &catID
		}
		media.Category = nil
	}

	if err := s.mediaRepo.Update(tx, media); err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	if err := s.audit.Record(tx, actor, ActionMediaUpdate, "media", media.ID, nil); err != nil {
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return s.Get(db, media.ID)
}

// Delete removes the row first, then the stored objects.
func (s *mediaService) Delete(ctx context.Context, db *gorm.DB, actor dto.Actor, id string) error {
	tx := db.Begin()
	if tx.Error != nil {
		return apperrors.DatabaseError(tx.Error)
	}
	defer tx.Rollback()

	media, err := s.mediaRepo.FindByID(tx, id)
	if err != nil {
		return handleMediaError(err)
	}
	if err := s.mediaRepo.Delete(tx, id); err != nil {
		return handleMediaError(err)
	}
	if err := s.audit.Record(tx, actor, ActionMediaDelete, "media", id, map[string]string{"path": media.Path}); err != nil {
		return err
	}
	if err := tx.Commit().Error; err != nil {
		return apperrors.DatabaseError(err)
	}

	s.cleanup(ctx, media.Path, media.ThumbnailPath)
	return nil
}

func (s *mediaService) cleanup(ctx context.Context, keys ...string) {
	for _, key := range keys {
		if key == "" {
			continue
		}
		if err := s.storage.Delete(ctx, key); err != nil {
			logger.Warn("Failed to delete stored file", "path", key, "error", err)
		}
	}
}

func (s *mediaService) isAllowed(mime string) bool {
	if len(s.config.AllowedTypes) == 0 {
		_, known := mediaExtensions[mime]
		return known
	}
	for _, t := range s.config.AllowedTypes {
		if t == mime {
			return true
		}
	}
	return false
}

const mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// mediaExtensions maps every storable type to the extension its key gets.
var mediaExtensions = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/gif":       ".gif",
	"image/webp":      ".webp",
	"application/pdf": ".pdf",
	"text/plain":      ".txt",
	mimeDOCX:          ".docx",
}

// sniffMediaType types an upload by its content. A DOCX sniffs as a zip archive,
// so the declared type is only trusted to tell that case apart.
func sniffMediaType(data []byte, declared string) string {
	mime := baseMime(http.DetectContentType(data))
	if mime == "application/zip" && baseMime(declared) == mimeDOCX {
		return mimeDOCX
	}
	return mime
}

func baseMime(m string) string {
	if i := strings.IndexByte(m, ';'); i >= 0 {
		m = m[:i]
	}
	return strings.ToLower(strings.TrimSpace(m))
}

var turkishFold = strings.NewReplacer(
	"ç", "c", "Ç", "c", "ğ", "g", "Ğ", "g", "ı", "i", "İ", "i",
	"ö", "o", "Ö", "o", "ş", "s", "Ş", "s", "ü", "u", "Ü", "u",
)

// Slugify lowercases s, folds Turkish letters and joins words with dashes.
func Slugify(s string) string {
	s = strings.ToLower(turkishFold.Replace(strings.TrimSpace(s)))
	var b strings.Builder
	dash := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

func handleMediaError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrMediaNotFound):
		return apperrors.ErrMediaNotFound
	case errors.Is(err, repositories.ErrMediaCategoryNotFound):
		return apperrors.ErrMediaCategoryNotFound
	case errors.Is(err, repositories.ErrSlugAlreadyExists):
		return apperrors.ErrSlugExists
	default:
		return apperrors.DatabaseError(err)
	}
}

package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"kariyer_backend/internal/auth"
	"kariyer_backend/internal/dto"
	"kariyer_backend/internal/middleware"
	"kariyer_backend/internal/services"
)

// MediaHandler manages the media library and its categories.
type MediaHandler struct {
	*BaseHandler
	mediaService services.MediaService
	maxSize      int64
}

func NewMediaHandler(base *BaseHandler, mediaService services.MediaService, maxSize int64) *MediaHandler {
	return &MediaHandler{
		BaseHandler:  base,
		mediaService: mediaService,
		maxSize:      maxSize,
	}
}

func (h *MediaHandler) RegisterRoutes(r *gin.RouterGroup) {
	media := r.Group("/admin/media")
	media.Use(h.RequireAuth(), middleware.RequirePermission(auth.PermContentWrite))
	{
		media.GET("", h.ListMedia)
		media.POST("", h.UploadMedia)
		media.GET("/:id", h.GetMedia)
		media.PUT("/:id", h.UpdateMedia)
		media.DELETE("/:id", h.DeleteMedia)
	}

	categories := r.Group("/admin/media-categories")
	categories.Use(h.RequireAuth(), middleware.RequirePermission(auth.PermContentWrite))
	{
		categories.GET("", h.ListCategories)
		categories.POST("", h.CreateCategory)
		categories.PUT("/:id", h.UpdateCategory)
		categories.DELETE("/:id", h.DeleteCategory)
	}
}

func (h *MediaHandler) ListMedia(c *gin.Context) {
	var query dto.MediaListQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}
	query.Page, query.PageSize = ParsePagination(c)

	result, err := h.mediaService.List(h.GetDB(c), query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// UploadMedia godoc
// @Summary Upload a file to the media library
// @Tags media
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "File"
// @Param category_id formData string false "Category"
// @Param alt formData string false "Alt text"
// @Success 201 {object} models.Media
// @Failure 413 {object} apperrors.ErrorResponse
// @Failure 415 {object} apperrors.ErrorResponse
// @Router /admin/media [post]
func (h *MediaHandler) UploadMedia(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}

	in, err := readUpload(c, "file", h.maxSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	if categoryID := strings.TrimSpace(c.PostForm("category_id")); categoryID != "" {
		in.CategoryID = &categoryID
	}
	in.Alt = strings.TrimSpace(c.PostForm("alt"))

	media, err := h.mediaService.Upload(c.Request.Context(), h.GetDB(c), actor, in)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, media)
}

func (h *MediaHandler) GetMedia(c *gin.Context) {
	media, err := h.mediaService.Get(h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, media)
}

func (h *MediaHandler) UpdateMedia(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}

	var req dto.UpdateMediaRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	media, err := h.mediaService.Update(h.GetDB(c), actor, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, media)
}

func (h *MediaHandler) DeleteMedia(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}

	if err := h.mediaService.Delete(c.Request.Context(), h.GetDB(c), actor, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Media deleted successfully"})
}

// --- Categories ---

func (h *MediaHandler) ListCategories(c *gin.Context) {
	categories, err := h.mediaService.ListCategories(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, categories)
}

func (h *MediaHandler) CreateCategory(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}

	var req dto.MediaCategoryRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	category, err := h.mediaService.CreateCategory(h.GetDB(c), actor, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, category)
}

func (h *MediaHandler) UpdateCategory(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}

	var req dto.MediaCategoryRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	category, err := h.mediaService.UpdateCategory(h.GetDB(c), actor, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, category)
}

func (h *MediaHandler) DeleteCategory(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}

	if err := h.mediaService.DeleteCategory(h.GetDB(c), actor, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Category deleted successfully"})
}

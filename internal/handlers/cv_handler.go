package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kariyer_backend/internal/dto"
	"kariyer_backend/internal/middleware"
	"kariyer_backend/internal/services"
)

type CVHandler struct {
	*BaseHandler
	cvService services.CVService
	aiLimiter *middleware.RateLimiter
	maxUpload int64
}

func NewCVHandler(base *BaseHandler, cvService services.CVService, aiLimiter *middleware.RateLimiter, maxUpload int64) *CVHandler {
	return &CVHandler{
		BaseHandler: base,
		cvService:   cvService,
		aiLimiter:   aiLimiter,
		maxUpload:   maxUpload,
	}
}

func (h *CVHandler) RegisterRoutes(r *gin.RouterGroup) {
	cvs := r.Group("/cvs")
	cvs.Use(h.RequireAuth())
	{
		cvs.GET("", h.ListCVs)
		cvs.POST("", h.CreateCV)
		cvs.POST("/import", h.aiLimiter.PerUser(), h.ImportCV)
		cvs.GET("/:id", h.GetCV)
		cvs.PUT("/:id", h.UpdateCV)
		cvs.DELETE("/:id", h.DeleteCV)
		cvs.POST("/:id/primary", h.SetPrimary)
		cvs.GET("/:id/export", h.ExportCV)
		cvs.POST("/:id/analyze", h.aiLimiter.PerUser(), h.AnalyzeCV)
	}

	r.POST("/ai/improve", h.RequireAuth(), h.aiLimiter.PerUser(), h.ImproveText)
}

func (h *CVHandler) ListCVs(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	cvs, err := h.cvService.List(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cvs":   cvs,
		"total": len(cvs),
	})
}

func (h *CVHandler) CreateCV(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CVRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	cv, err := h.cvService.Create(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, cv)
}

func (h *CVHandler) GetCV(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	cv, err := h.cvService.Get(h.GetDB(c), userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, cv)
}

func (h *CVHandler) UpdateCV(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CVRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	cv, err := h.cvService.Update(h.GetDB(c), userID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, cv)
}

func (h *CVHandler) DeleteCV(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.cvService.Delete(h.GetDB(c), userID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "CV deleted successfully"})
}

func (h *CVHandler) SetPrimary(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	cv, err := h.cvService.SetPrimary(h.GetDB(c), userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, cv)
}

// ExportCV returns the printable HTML document.
func (h *CVHandler) ExportCV(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	html, err := h.cvService.ExportHTML(h.GetDB(c), userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", "inline")
	c.Data(http.StatusOK, "text/html; charset=utf-8", html)
}

// ImportCV godoc
// @Summary Import a CV from a PDF, DOCX or TXT file
// @Tags cv
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CV document"
// @Success 201 {object} models.CV
// @Failure 403 {object} apperrors.ErrorResponse "Not enough AI tokens"
// @Failure 413 {object} apperrors.ErrorResponse
// @Failure 415 {object} apperrors.ErrorResponse
// @Router /cvs/import [post]
func (h *CVHandler) ImportCV(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	file, err := readUpload(c, "file", h.maxUpload)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	cv, err := h.cvService.Import(c.Request.Context(), h.GetDB(c), userID, file)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, cv)
}

func (h *CVHandler) AnalyzeCV(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req struct {
		Language string `json:"language" validate:"omitempty,oneof=tr en"`
	}
	if c.Request.ContentLength > 0 && !h.BindAndValidate_JSON(c, &req) {
		return
	}

	cv, err := h.cvService.Analyze(c.Request.Context(), h.GetDB(c), userID, c.Param("id"), req.Language)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, cv)
}

func (h *CVHandler) ImproveText(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.ImproveTextRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	response, err := h.cvService.Improve(c.Request.Context(), h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

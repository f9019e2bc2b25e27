package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kariyer_backend/internal/auth"
	"kariyer_backend/internal/dto"
	"kariyer_backend/internal/middleware"
	"kariyer_backend/internal/services"
)

// SettingsHandler serves site settings, plans and content pages.
type SettingsHandler struct {
	*BaseHandler
	settingsService services.SettingsService
}

func NewSettingsHandler(base *BaseHandler, settingsService services.SettingsService) *SettingsHandler {
	return &SettingsHandler{
		BaseHandler:     base,
		settingsService: settingsService,
	}
}

func (h *SettingsHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/settings/public/:key", h.GetPublicSetting)
	r.GET("/pages/:slug", h.GetPage)

	admin := r.Group("/admin")
	admin.Use(h.RequireAuth(), middleware.RequireStaff())
	{
		admin.GET("/settings", h.ListSettings)
		admin.GET("/settings/:key", h.GetSetting)
		admin.PUT("/settings/:key", middleware.RequirePermission(auth.PermSettingsWrite), h.SetSetting)
		admin.DELETE("/settings/:key", middleware.RequirePermission(auth.PermSettingsWrite), h.DeleteSetting)

		admin.GET("/plans", h.GetAllPlans)
		admin.PUT("/plans", middleware.RequirePermission(auth.PermSettingsWrite), h.UpdatePlans)

		admin.PUT("/pages/:slug", middleware.RequirePermission(auth.PermSettingsWrite), h.SetPage)
	}
}

func (h *SettingsHandler) GetPublicSetting(c *gin.Context) {
	key := c.Param("key")

	value, err := h.settingsService.GetPublic(h.GetDB(c), key)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"key":   key,
		"value": value,
	})
}

func (h *SettingsHandler) GetPage(c *gin.Context) {
	page, err := h.settingsService.GetPage(h.GetDB(c), c.Param("slug"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

func (h *SettingsHandler) ListSettings(c *gin.Context) {
	settings, err := h.settingsService.List(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, settings)
}

func (h *SettingsHandler) GetSetting(c *gin.Context) {
	setting, err := h.settingsService.Get(h.GetDB(c), c.Param("key"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, setting)
}

func (h *SettingsHandler) SetSetting(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}

	var req dto.SettingValueRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	setting, err := h.settingsService.Set(h.GetDB(c), actor, c.Param("key"), req.Value)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, setting)
}

func (h *SettingsHandler) DeleteSetting(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}

	if err := h.settingsService.Delete(h.GetDB(c), actor, c.Param("key")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Setting deleted successfully"})
}

func (h *SettingsHandler) GetAllPlans(c *gin.Context) {
	plans, err := h.settingsService.GetPlans(h.GetDB(c), false)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, plans)
}

func (h *SettingsHandler) UpdatePlans(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}

	var req dto.UpdatePlansRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	plans, err := h.settingsService.UpdatePlans(h.GetDB(c), actor, req.Plans)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, plans)
}

func (h *SettingsHandler) SetPage(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}

	var req dto.Page
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	page, err := h.settingsService.SetPage(h.GetDB(c), actor, c.Param("slug"), req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

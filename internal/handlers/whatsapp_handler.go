package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kariyer_backend/internal/auth"
	"kariyer_backend/internal/dto"
	"kariyer_backend/internal/middleware"
	"kariyer_backend/internal/services"
)

type WhatsAppHandler struct {
	*BaseHandler
	whatsappService services.WhatsAppService
}

func NewWhatsAppHandler(base *BaseHandler, whatsappService services.WhatsAppService) *WhatsAppHandler {
	return &WhatsAppHandler{
		BaseHandler:     base,
		whatsappService: whatsappService,
	}
}

func (h *WhatsAppHandler) RegisterRoutes(r *gin.RouterGroup) {
	wa := r.Group("/admin/whatsapp")
	wa.Use(h.RequireAuth(), middleware.RequirePermission(auth.PermWhatsAppManage))
	{
		wa.GET("/status", h.GetStatus)
		wa.GET("/qr", h.GetQRCode)
		wa.GET("/qr.png", h.GetQRCodePNG)
		wa.POST("/logout", h.Logout)
		wa.POST("/send", h.SendMessage)
		wa.GET("/logs", h.ListLogs)
	}
}

func (h *WhatsAppHandler) GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.whatsappService.Status())
}

func (h *WhatsAppHandler) GetQRCode(c *gin.Context) {
	code, err := h.whatsappService.QRCode()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": code})
}

func (h *WhatsAppHandler) GetQRCodePNG(c *gin.Context) {
	png, err := h.whatsappService.QRCodePNG()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/png", png)
}

func (h *WhatsAppHandler) Logout(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}

	if err := h.whatsappService.Logout(c.Request.Context(), h.GetDB(c), actor); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "WhatsApp session logged out"})
}

func (h *WhatsAppHandler) SendMessage(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}

	var req dto.WhatsAppSendRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.whatsappService.Send(h.GetDB(c), actor, &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Message sent"})
}

func (h *WhatsAppHandler) ListLogs(c *gin.Context) {
	var query dto.WhatsAppLogQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}
	query.Page, query.PageSize = ParsePagination(c)

	result, err := h.whatsappService.Logs(h.GetDB(c), query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

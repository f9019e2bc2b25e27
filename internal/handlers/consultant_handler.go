package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kariyer_backend/internal/dto"
	"kariyer_backend/internal/middleware"
	"kariyer_backend/internal/services"
)

type ConsultantHandler struct {
	*BaseHandler
	consultantService services.ConsultantService
}

func NewConsultantHandler(base *BaseHandler, consultantService services.ConsultantService) *ConsultantHandler {
	return &ConsultantHandler{
		BaseHandler:       base,
		consultantService: consultantService,
	}
}

func (h *ConsultantHandler) RegisterRoutes(r *gin.RouterGroup) {
	consultants := r.Group("/consultants")
	{
		consultants.GET("", h.ListConsultants)
		consultants.GET("/:id", h.GetConsultant)
	}

	admin := r.Group("/admin/consultants")
	admin.Use(h.RequireAuth(), middleware.RequireStaff())
	{
		admin.GET("", h.ListAllConsultants)
		admin.GET("/:id", h.GetAnyConsultant)

		admin.POST("", middleware.RequireAdmin(), h.CreateConsultant)
		admin.PUT("/:id", middleware.RequireAdmin(), h.UpdateConsultant)
		admin.DELETE("/:id", middleware.RequireAdmin(), h.DeleteConsultant)
	}
}

// ListConsultants godoc
// @Summary Active consultants ordered for display
// @Tags consultants
// @Produce json
// @Success 200 {array} models.Consultant
// @Router /consultants [get]
func (h *ConsultantHandler) ListConsultants(c *gin.Context) {
	h.list(c, false)
}

func (h *ConsultantHandler) ListAllConsultants(c *gin.Context) {
	h.list(c, true)
}

func (h *ConsultantHandler) list(c *gin.Context, includeInactive bool) {
	consultants, err := h.consultantService.List(h.GetDB(c), includeInactive)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, consultants)
}

func (h *ConsultantHandler) GetConsultant(c *gin.Context) {
	h.get(c, false)
}

func (h *ConsultantHandler) GetAnyConsultant(c *gin.Context) {
	h.get(c, true)
}

func (h *ConsultantHandler) get(c *gin.Context, includeInactive bool) {
	consultant, err := h.consultantService.Get(h.GetDB(c), c.Param("id"), includeInactive)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, consultant)
}

func (h *ConsultantHandler) CreateConsultant(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}

	var req dto.ConsultantRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	consultant, err := h.consultantService.Create(h.GetDB(c), actor, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, consultant)
}

func (h *ConsultantHandler) UpdateConsultant(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}

	var req dto.ConsultantRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	consultant, err := h.consultantService.Update(h.GetDB(c), actor, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, consultant)
}

func (h *ConsultantHandler) DeleteConsultant(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}

	if err := h.consultantService.Delete(h.GetDB(c), actor, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Consultant deleted successfully"})
}

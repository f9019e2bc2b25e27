package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"kariyer_backend/internal/auth"
	"kariyer_backend/internal/dto"
	"kariyer_backend/internal/middleware"
	"kariyer_backend/internal/services"
)

// AdminHandler serves the dashboard, the audit log and sales reports.
type AdminHandler struct {
	*BaseHandler
	adminService services.AdminService
	auditService services.AuditService
}

func NewAdminHandler(base *BaseHandler, adminService services.AdminService, auditService services.AuditService) *AdminHandler {
	return &AdminHandler{
		BaseHandler:  base,
		adminService: adminService,
		auditService: auditService,
	}
}

func (h *AdminHandler) RegisterRoutes(r *gin.RouterGroup) {
	admin := r.Group("/admin")
	admin.Use(h.RequireAuth(), middleware.RequireStaff())
	{
		admin.GET("/dashboard", h.GetDashboard)

		admin.GET("/logs", middleware.RequirePermission(auth.PermAuditRead), h.ListLogs)
		admin.GET("/sales", middleware.RequirePermission(auth.PermAuditRead), h.ListSales)
		admin.GET("/sales/stats", middleware.RequirePermission(auth.PermAuditRead), h.GetSalesStats)
	}
}

// GetDashboard godoc
// @Summary Back-office counters and revenue
// @Tags admin
// @Produce json
// @Success 200 {object} dto.DashboardStats
// @Failure 403 {object} apperrors.ErrorResponse
// @Router /admin/dashboard [get]
func (h *AdminHandler) GetDashboard(c *gin.Context) {
	stats, err := h.adminService.Dashboard(h.GetDB(c), time.Now())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *AdminHandler) ListLogs(c *gin.Context) {
	var query dto.AdminLogQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}
	query.Page, query.PageSize = ParsePagination(c)

	result, err := h.auditService.List(h.GetDB(c), query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *AdminHandler) ListSales(c *gin.Context) {
	from, to, err := ParseQueryDateRange(c, 30)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	page, pageSize := ParsePagination(c)

	result, err := h.adminService.ListSales(h.GetDB(c), dto.SalesQuery{
		From:     from,
		To:       to,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *AdminHandler) GetSalesStats(c *gin.Context) {
	from, to, err := ParseQueryDateRange(c, 365)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	stats, err := h.adminService.SalesStats(h.GetDB(c), from, to)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

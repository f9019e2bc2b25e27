package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kariyer_backend/internal/dto"
	"kariyer_backend/internal/middleware"
	"kariyer_backend/internal/services"
)

type JobHandler struct {
	*BaseHandler
	jobService services.JobService
	aiLimiter  *middleware.RateLimiter
}

func NewJobHandler(base *BaseHandler, jobService services.JobService, aiLimiter *middleware.RateLimiter) *JobHandler {
	return &JobHandler{
		BaseHandler: base,
		jobService:  jobService,
		aiLimiter:   aiLimiter,
	}
}

func (h *JobHandler) RegisterRoutes(r *gin.RouterGroup) {
	jobs := r.Group("/jobs")
	{
		jobs.GET("", h.ListJobs)
		jobs.GET("/filters", h.GetFilters)
		jobs.GET("/:id", h.GetJob)
		jobs.POST("/:id/match", h.RequireAuth(), h.aiLimiter.PerUser(), h.MatchJob)
	}

	admin := r.Group("/admin/jobs")
	admin.Use(h.RequireAuth(), middleware.RequireStaff())
	{
		admin.GET("", h.ListAllJobs)
		admin.GET("/:id", h.GetAnyJob)
		admin.POST("", h.CreateJob)
		admin.PUT("/:id", h.UpdateJob)
		admin.DELETE("/:id", h.DeleteJob)
		admin.POST("/generate", middleware.RequireAdmin(), h.GenerateJobs)
	}
}

// ListJobs godoc
// @Summary Active job listings, newest first
// @Tags jobs
// @Produce json
// @Param q query string false "Search text"
// @Param city query string false "City"
// @Param sector query string false "PUBLIC or PRIVATE"
// @Param type query string false "Employment type"
// @Param category query string false "Category"
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {object} dto.PaginatedResponse
// @Router /jobs [get]
func (h *JobHandler) ListJobs(c *gin.Context) {
	h.list(c, false)
}

func (h *JobHandler) ListAllJobs(c *gin.Context) {
	h.list(c, true)
}

func (h *JobHandler) list(c *gin.Context, includeInactive bool) {
	var query dto.JobListQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}
	query.Page, query.PageSize = ParsePagination(c)
	query.IncludeInactive = includeInactive

	result, err := h.jobService.List(h.GetDB(c), query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *JobHandler) GetFilters(c *gin.Context) {
	filters, err := h.jobService.Filters(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, filters)
}

func (h *JobHandler) GetJob(c *gin.Context) {
	h.get(c, false)
}

func (h *JobHandler) GetAnyJob(c *gin.Context) {
	h.get(c, true)
}

func (h *JobHandler) get(c *gin.Context, includeInactive bool) {
	job, err := h.jobService.Get(h.GetDB(c), c.Param("id"), includeInactive)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, job)
}

func (h *JobHandler) MatchJob(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.JobMatchRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	match, err := h.jobService.Match(c.Request.Context(), h.GetDB(c), userID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, match)
}

func (h *JobHandler) CreateJob(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}

	var req dto.JobRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	job, err := h.jobService.Create(h.GetDB(c), actor, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, job)
}

func (h *JobHandler) UpdateJob(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}

	var req dto.JobRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	job, err := h.jobService.Update(h.GetDB(c), actor, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, job)
}

func (h *JobHandler) DeleteJob(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}

	if err := h.jobService.Delete(h.GetDB(c), actor, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Job listing deleted successfully"})
}

func (h *JobHandler) GenerateJobs(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}

	var req dto.GenerateJobsRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	result, err := h.jobService.Generate(h.GetDB(c), actor, req.Count)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

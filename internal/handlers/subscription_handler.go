package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kariyer_backend/internal/auth"
	"kariyer_backend/internal/dto"
	"kariyer_backend/internal/middleware"
	"kariyer_backend/internal/services"
)

type SubscriptionHandler struct {
	*BaseHandler
	subscriptionService services.SubscriptionService
}

func NewSubscriptionHandler(base *BaseHandler, subscriptionService services.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{
		BaseHandler:         base,
		subscriptionService: subscriptionService,
	}
}

func (h *SubscriptionHandler) RegisterRoutes(r *gin.RouterGroup) {
	// Public plan and bank-transfer information
	r.GET("/plans", h.GetPlans)
	r.GET("/payment-info", h.GetPaymentInfo)

	subscriptions := r.Group("/subscriptions")
	subscriptions.Use(h.RequireAuth())
	{
		subscriptions.POST("", h.CreateSubscription)
		subscriptions.GET("/me", h.GetMySubscriptions)
		subscriptions.POST("/:id/cancel", h.CancelMySubscription)
	}

	admin := r.Group("/admin/subscriptions")
	admin.Use(h.RequireAuth(), middleware.RequireStaff())
	{
		admin.GET("", h.ListSubscriptions)
		admin.GET("/:id", h.GetSubscription)

		admin.POST("/:id/approve", middleware.RequirePermission(auth.PermBillingApprove), h.ApproveSubscription)
		admin.POST("/:id/reject", middleware.RequirePermission(auth.PermBillingApprove), h.RejectSubscription)
		admin.POST("/:id/cancel", middleware.RequirePermission(auth.PermBillingApprove), h.CancelSubscription)
		admin.POST("/:id/extend", middleware.RequirePermission(auth.PermBillingApprove), h.ExtendSubscription)
	}
}

// GetPlans godoc
// @Summary Active subscription plans
// @Tags subscriptions
// @Produce json
// @Success 200 {array} dto.Plan
// @Router /plans [get]
func (h *SubscriptionHandler) GetPlans(c *gin.Context) {
	plans, err := h.subscriptionService.ListPlans(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, plans)
}

func (h *SubscriptionHandler) GetPaymentInfo(c *gin.Context) {
	info, err := h.subscriptionService.PaymentInfo(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, info)
}

// CreateSubscription godoc
// @Summary Order a plan
// @Description Creates a PENDING subscription with an order code to quote in the bank transfer.
// @Tags subscriptions
// @Accept json
// @Produce json
// @Param request body dto.CreateSubscriptionRequest true "Plan"
// @Success 201 {object} dto.CreateSubscriptionResponse
// @Failure 404 {object} apperrors.ErrorResponse "Unknown plan"
// @Failure 409 {object} apperrors.ErrorResponse "A pending order already exists"
// @Router /subscriptions [post]
func (h *SubscriptionHandler) CreateSubscription(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateSubscriptionRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	response, err := h.subscriptionService.Create(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

func (h *SubscriptionHandler) GetMySubscriptions(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	response, err := h.subscriptionService.MySubscriptions(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *SubscriptionHandler) CancelMySubscription(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	sub, err := h.subscriptionService.CancelOwn(h.GetDB(c), userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, sub)
}

// --- Back office ---

func (h *SubscriptionHandler) ListSubscriptions(c *gin.Context) {
	var query dto.SubscriptionListQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}
	query.Page, query.PageSize = ParsePagination(c)

	result, err := h.subscriptionService.List(h.GetDB(c), query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *SubscriptionHandler) GetSubscription(c *gin.Context) {
	sub, err := h.subscriptionService.Get(h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, sub)
}

func (h *SubscriptionHandler) ApproveSubscription(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}

	sub, err := h.subscriptionService.Approve(h.GetDB(c), actor, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, sub)
}

func (h *SubscriptionHandler) RejectSubscription(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}

	// The note is optional, so an empty body is accepted.
	var req dto.RejectSubscriptionRequest
	if c.Request.ContentLength > 0 && !h.BindAndValidate_JSON(c, &req) {
		return
	}

	sub, err := h.subscriptionService.Reject(h.GetDB(c), actor, c.Param("id"), req.Note)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, sub)
}

func (h *SubscriptionHandler) CancelSubscription(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}

	sub, err := h.subscriptionService.Cancel(h.GetDB(c), actor, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, sub)
}

func (h *SubscriptionHandler) ExtendSubscription(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}

	var req dto.ExtendSubscriptionRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	sub, err := h.subscriptionService.Extend(h.GetDB(c), actor, c.Param("id"), req.Days)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, sub)
}

package handlers

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"kariyer_backend/internal/dto"
	"kariyer_backend/internal/logger"
	"kariyer_backend/internal/middleware"
	"kariyer_backend/internal/validator"
	"kariyer_backend/pkg/apperrors"
	"kariyer_backend/pkg/contextkeys"
)

// ============================================================================
// 1. Base handler
// ============================================================================

type BaseHandler struct {
	validator *validator.Validator
	authn     *middleware.Authenticator
}

func NewBaseHandler(v *validator.Validator, authn *middleware.Authenticator) *BaseHandler {
	return &BaseHandler{
		validator: v,
		authn:     authn,
	}
}

// RequireAuth rejects requests without a valid session.
func (h *BaseHandler) RequireAuth() gin.HandlerFunc {
	return h.authn.Required()
}

// ============================================================================
// 2. DB access
// ============================================================================

// GetDB returns the *gorm.DB (pool or transaction) placed in the context by DBMiddleware.
func (h *BaseHandler) GetDB(c *gin.Context) *gorm.DB {
	dbKey := string(contextkeys.DBContextKey)

	val, ok := c.Get(dbKey)
	if !ok {
		logger.CtxError(c.Request.Context(), "critical error: db key not found in context", "key", dbKey)
		panic("critical error: DBMiddleware did not set the db key")
	}

	db, ok := val.(*gorm.DB)
	if !ok {
		logger.CtxError(c.Request.Context(), "critical error: db in context is not *gorm.DB", "key", dbKey, "type", fmt.Sprintf("%T", val))
		panic("critical error: db in context has incorrect type")
	}

	return db
}

// ============================================================================
// 3. Binding and validation
// ============================================================================

func (h *BaseHandler) BindAndValidate_JSON(c *gin.Context, obj interface{}) bool {
	ctx := c.Request.Context()

	if err := c.ShouldBindJSON(obj); err != nil {
		logger.CtxWithError(ctx, "Failed to bind JSON body", err, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid request body: "+err.Error()))
		return false
	}

	return h.validate(c, obj, "body")
}

func (h *BaseHandler) BindAndValidate_Query(c *gin.Context, obj interface{}) bool {
	ctx := c.Request.Context()

	if err := c.ShouldBindQuery(obj); err != nil {
		logger.CtxWithError(ctx, "Failed to bind query params", err, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid query parameters: "+err.Error()))
		return false
	}

	return h.validate(c, obj, "query")
}

func (h *BaseHandler) validate(c *gin.Context, obj interface{}, source string) bool {
	ctx := c.Request.Context()

	if err := h.validator.Validate(obj); err != nil {
		if vErr, ok := err.(*validator.ValidationError); ok {
			logger.CtxWarn(ctx, "Validation failed", "source", source, "errors", vErr.Errors, "path", c.Request.URL.Path)
			apperrors.HandleError(c, apperrors.ValidationError(vErr.Errors))
		} else {
			logger.CtxWithError(ctx, "Internal validator error", err, "source", source, "path", c.Request.URL.Path)
			apperrors.HandleError(c, apperrors.InternalError(err))
		}
		return false
	}
	return true
}

// ============================================================================
// 4. Error handling
// ============================================================================

func (h *BaseHandler) HandleServiceError(c *gin.Context, err error) {
	ctx := c.Request.Context()

	var appErr *apperrors.AppError
	if apperrors.As(err, &appErr) {
		logger.CtxWarn(ctx, "Service error",
			"code", appErr.Code,
			"error", appErr.Message,
			"details", appErr.Details,
			"path", c.Request.URL.Path,
		)
		apperrors.HandleError(c, appErr)
	} else {
		logger.CtxWithError(ctx, "Internal server error", err, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.InternalError(err))
	}
}

// ============================================================================
// 5. Caller identity
// ============================================================================

func (h *BaseHandler) GetAndAuthorizeUserID(c *gin.Context) (string, bool) {
	ctx := c.Request.Context()

	userIDVal, exists := c.Get(contextkeys.UserIDKey)
	if !exists {
		logger.CtxWarn(ctx, "Unauthorized access: userID not found in context",
			"path", c.Request.URL.Path,
			"ip", c.ClientIP(),
		)
		apperrors.HandleError(c, apperrors.NewUnauthorizedError("User not authenticated"))
		return "", false
	}

	userIDStr, ok := userIDVal.(string)
	if !ok || userIDStr == "" {
		logger.CtxWarn(ctx, "Unauthorized access: invalid userID in context",
			"path", c.Request.URL.Path,
			"ip", c.ClientIP(),
		)
		apperrors.HandleError(c, apperrors.NewUnauthorizedError("Invalid user ID in context"))
		return "", false
	}

	return userIDStr, true
}

// GetActor builds the acting user for services that check roles or write audit rows.
func (h *BaseHandler) GetActor(c *gin.Context) (dto.Actor, bool) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return dto.Actor{}, false
	}
	role, _ := middleware.GetRole(c)
	return dto.Actor{UserID: userID, Role: role, IP: c.ClientIP()}, true
}

// ============================================================================
// 6. Parsing helpers
// ============================================================================

func ParseQueryInt(c *gin.Context, key string, defaultValue int) int {
	valueStr := c.Query(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func ParsePagination(c *gin.Context) (page int, pageSize int) {
	const defaultPage = 1
	const defaultPageSize = 20
	const maxPageSize = 100

	page = ParseQueryInt(c, "page", defaultPage)
	if page <= 0 {
		page = defaultPage
	}

	pageSize = ParseQueryInt(c, "page_size", defaultPageSize)
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	return page, pageSize
}

// parseTimeParam accepts RFC3339 or a plain date.
func parseTimeParam(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02", value, time.Local)
}

// ParseQueryDateRange reads "from" and "to"; a missing "from" means defaultDaysAgo days back.
// A plain "to" date covers that whole day.
func ParseQueryDateRange(c *gin.Context, defaultDaysAgo int) (time.Time, time.Time, error) {
	fromStr := c.Query("from")
	toStr := c.Query("to")

	to := time.Now()
	from := to.AddDate(0, 0, -defaultDaysAgo)

	var err error
	if fromStr != "" {
		from, err = parseTimeParam(fromStr)
		if err != nil {
			return time.Time{}, time.Time{}, apperrors.NewBadRequestError("Invalid from date. Use YYYY-MM-DD or RFC3339")
		}
	}

	if toStr != "" {
		to, err = parseTimeParam(toStr)
		if err != nil {
			return time.Time{}, time.Time{}, apperrors.NewBadRequestError("Invalid to date. Use YYYY-MM-DD or RFC3339")
		}
		if len(toStr) == len("2006-01-02") {
			to = to.AddDate(0, 0, 1).Add(-time.Nanosecond)
		}
	}

	if from.After(to) {
		return time.Time{}, time.Time{}, apperrors.NewBadRequestError("from cannot be after to")
	}

	return from, to, nil
}

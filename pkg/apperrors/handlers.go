package apperrors

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kariyer_backend/internal/logger"
)

// ErrorResponse is the JSON body written for every failed request.
type ErrorResponse struct {
	Error *AppError `json:"error"`
}

// GinErrorHandler renders errors for gin handlers.
type GinErrorHandler struct {
	Debug bool
}

func (h *GinErrorHandler) HandleGinError(c *gin.Context, err error) {
	appErr, ok := AsAppError(err)
	if !ok {
		appErr = InternalError(err)
	}
	if appErr.HTTPCode == 0 {
		cp := *appErr
		cp.HTTPCode = http.StatusInternalServerError
		appErr = &cp
	}

	if appErr.HTTPCode >= 500 {
		logger.CtxError(c.Request.Context(), "server error",
			"code", appErr.Code,
			"domain", appErr.Domain,
			"error", appErr.Error(),
			"path", c.Request.URL.Path,
		)
		if !h.Debug && appErr.Details != nil {
			appErr = appErr.WithDetails(nil)
		}
	}

	c.AbortWithStatusJSON(appErr.HTTPCode, ErrorResponse{Error: appErr})
}

// debugErrors toggles detail output on 5xx responses; set from config at startup.
var debugErrors = false

// SetDebug enables error details on 5xx responses.
func SetDebug(debug bool) {
	debugErrors = debug
}

// HandleError writes err as a JSON error response.
func HandleError(c *gin.Context, err error) {
	handler := &GinErrorHandler{Debug: debugErrors}
	handler.HandleGinError(c, err)
}

func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

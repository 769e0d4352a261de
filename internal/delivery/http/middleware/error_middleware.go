package middleware

import (
	"errors"
	"net/http"

	"davinci-contact-api/internal/delivery/http/response"
	"davinci-contact-api/pkg/apperror"
	"davinci-contact-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorHandler renders the last error attached with c.Error.
// exposeDetails adds the underlying error text to 5xx bodies.
func ErrorHandler(exposeDetails bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		reqID := c.GetString(response.RequestIDKey)

		var appErr *apperror.AppError
		if !errors.As(err, &appErr) {
			// Never expose internal error details for unknown errors
			logger.Log.Error("Internal Server Error", "error", err, "request_id", reqID, "path", c.FullPath())
			response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
			return
		}

		var detail interface{}
		switch {
		case len(appErr.Details) > 0:
			detail = appErr.Details
		case exposeDetails && appErr.Code >= http.StatusInternalServerError && appErr.Err != nil:
			detail = appErr.Err.Error()
		}

		if appErr.Code >= http.StatusInternalServerError {
			logger.Log.Debug("Request failed", "status", appErr.Code, "error", appErr.Err, "request_id", reqID)
		}

		response.Error(c, appErr.Code, appErr.Message, detail)
	}
}

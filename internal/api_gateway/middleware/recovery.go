package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
)

// Recovery turns a panic in a handler into an opaque 500. A panic inside the
// transfer engine has already rolled its unit back by the time it gets here.
func Recovery(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}

			attrs := []any{
				"error", r,
				"stack", string(debug.Stack()),
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
			}
			if correlationID := GetCorrelationID(c); correlationID != "" {
				attrs = append(attrs, "correlation_id", correlationID)
			}
			if userID, ok := GetUserID(c); ok {
				attrs = append(attrs, "user_id", userID)
			}
			logger.Error("Panic recovered", attrs...)

			_ = c.Error(fmt.Errorf("panic: %v", r))
			abortWithError(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "An internal server error occurred")
		}()

		c.Next()
	}
}

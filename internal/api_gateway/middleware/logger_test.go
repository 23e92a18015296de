package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestLoggerMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name      string
		status    int
		wantLevel string
	}{
		{name: "success is info", status: http.StatusOK, wantLevel: "INFO"},
		{name: "client error is warn", status: http.StatusNotFound, wantLevel: "WARN"},
		{name: "server error is error", status: http.StatusInternalServerError, wantLevel: "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logBuffer bytes.Buffer
			testLogger := slog.New(slog.NewJSONHandler(&logBuffer, &slog.HandlerOptions{Level: slog.LevelInfo}))

			router := gin.New()
			router.Use(CorrelationID())
			router.Use(Logger(testLogger))
			router.GET("/accounts/:id", func(c *gin.Context) {
				c.Set(UserIDKey, int64(42))
				c.Status(tt.status)
			})

			req, _ := http.NewRequest(http.MethodGet, "/accounts/7?page=2", nil)
			req.Header.Set("User-Agent", "test-agent")
			req.Header.Set(CorrelationIDHeader, "trace-1")
			router.ServeHTTP(httptest.NewRecorder(), req)

			logOutput := logBuffer.String()
			assert.Contains(t, logOutput, `"level":"`+tt.wantLevel+`"`)
			assert.Contains(t, logOutput, `"msg":"HTTP request"`)
			assert.Contains(t, logOutput, `"method":"GET"`)
			assert.Contains(t, logOutput, `"path":"/accounts/7?page=2"`)
			assert.Contains(t, logOutput, `"route":"/accounts/:id"`)
			assert.Contains(t, logOutput, `"user_agent":"test-agent"`)
			assert.Contains(t, logOutput, `"correlation_id":"trace-1"`)
			assert.Contains(t, logOutput, `"user_id":42`)
		})
	}
}

package middleware

import (
	"net/http"
	"strings"

	"github.com/banking-transfer-api/internal/platform/auth"
	"github.com/gin-gonic/gin"
)

// UserIDKey holds the authenticated user id in the gin context.
const UserIDKey = "user_id"

// TokenParser verifies bearer tokens. *auth.TokenIssuer satisfies it.
type TokenParser interface {
	Parse(token string) (*auth.Claims, error)
}

// Authenticate rejects requests without a valid "Authorization: Bearer" token
// and stores the token subject under UserIDKey.
func Authenticate(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		scheme, token, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			abortUnauthorized(c, "Missing bearer token")
			return
		}

		claims, err := parser.Parse(strings.TrimSpace(token))
		if err != nil {
			_ = c.Error(err)
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		userID, err := claims.UserID()
		if err != nil {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}

// GetUserID returns the authenticated user id, if any.
func GetUserID(c *gin.Context) (int64, bool) {
	id, ok := c.Get(UserIDKey)
	if !ok {
		return 0, false
	}
	userID, ok := id.(int64)
	return userID, ok
}

func abortUnauthorized(c *gin.Context, message string) {
	abortWithError(c, http.StatusUnauthorized, "UNAUTHORIZED", message)
}

// abortWithError writes the same error envelope the handlers use. Middleware
// cannot import the handler package, so the shape is repeated here.
func abortWithError(c *gin.Context, status int, code, message string) {
	response := gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	}
	if correlationID := GetCorrelationID(c); correlationID != "" {
		response["correlation_id"] = correlationID
	}
	c.AbortWithStatusJSON(status, response)
}

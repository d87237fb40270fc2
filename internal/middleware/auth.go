package middleware

import (
	"net/http"
	"strings"

	jwtsvc "floorcare/internal/pkg/jwt"
	"floorcare/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// Auth validates the session token and stores the caller's identity on
// the context. The token is taken from the Authorization bearer header
// or, failing that, from the "token" cookie.
func Auth(jwt *jwtsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := extractToken(c)
		if tokenStr == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
			c.Abort()
			return
		}

		claims, err := jwt.ValidateToken(tokenStr)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("role", claims.Role)

		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	if cookie, err := c.Cookie("token"); err == nil {
		return strings.TrimSpace(cookie)
	}
	return ""
}

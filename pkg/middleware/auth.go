package middleware

import (
	"net/http"

	"fieldnotes/pkg/jwt"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware authenticates requests via the admin session cookie. The
// cookie value is a signed JWT carrying the user id; absence or an invalid
// signature yields 401 so API clients can redirect to the login page.
func AuthMiddleware(jwtService *jwt.Service, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil || token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized"})
			c.Abort()
			return
		}

		claims, err := jwtService.ValidateToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized"})
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("role", claims.Role)
		c.Next()
	}
}

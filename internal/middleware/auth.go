package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/harentsoaR/sewa-finder/internal/models"
	"github.com/harentsoaR/sewa-finder/internal/utils"
)

// SessionCookie carries the session JWT for browser requests.
const SessionCookie = "sewa_session"

// AuthMiddleware accepts a Bearer token or the session cookie and puts
// userID, userEmail and userRole in the context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		if tokenString == "" {
			tokenString, _ = c.Cookie(SessionCookie)
		}
		if tokenString == "" {
			abortAuth(c, http.StatusUnauthorized, "Please log in.")
			return
		}

		claims, err := utils.ValidateJWT(tokenString)
		if err != nil {
			abortAuth(c, http.StatusUnauthorized, "Session expired, please log in again.")
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("userEmail", claims.Email)
		c.Set("userRole", string(claims.Role))

		c.Next()
	}
}

// RequireRole admits only sessions whose role was resolved to role.
// Must run after AuthMiddleware.
func RequireRole(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if models.Role(c.GetString("userRole")) != role {
			abortAuth(c, http.StatusForbidden, "No matching user found.")
			return
		}
		c.Next()
	}
}

// abortAuth answers JSON for /api routes and redirects pages back to the
// login form with the message.
func abortAuth(c *gin.Context, status int, msg string) {
	if strings.HasPrefix(c.Request.URL.Path, "/api/") {
		c.AbortWithStatusJSON(status, gin.H{"error": msg})
		return
	}
	c.Redirect(http.StatusSeeOther, "/?err="+url.QueryEscape(msg))
	c.Abort()
}

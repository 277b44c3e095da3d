package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const CookieName = "session"

// RequireSession resolves the caller's identity from the session cookie or
// a Bearer header. Unauthenticated callers are sent back to the landing
// page; there is no 401 on these routes.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := tokenFromRequest(c)
		if tokenStr == "" {
			c.Redirect(http.StatusSeeOther, "/")
			c.Abort()
			return
		}
		claims, err := ParseToken(tokenStr)
		if err != nil {
			c.Redirect(http.StatusSeeOther, "/")
			c.Abort()
			return
		}
		c.Set("account_id", claims.AccountID)
		c.Set("account_email", claims.Email)
		c.Set("account_image", claims.ProfileImage)
		c.Next()
	}
}

func tokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie(CookieName); err == nil && cookie != "" {
		return cookie
	}
	h := c.GetHeader("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}

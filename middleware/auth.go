// Package middleware holds the gin middleware chain: session
// resolution, admin gating and per-IP rate limiting.
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"courtside/handlers"
	"courtside/services/auth"
	"courtside/utils"
)

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success":  false,
		"endpoint": c.FullPath(),
		"errors":   []gin.H{{"message": utils.ErrUnauthorized}},
	})
}

// SessionAuth resolves the session cookie into a principal and attaches
// it to the request. Requests without a valid session are rejected.
func SessionAuth(authSvc auth.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(utils.SessionCookieName)
		if err != nil || token == "" {
			abortUnauthorized(c)
			return
		}

		principal, err := authSvc.ResolveSession(c.Request.Context(), token)
		if err != nil || !principal.IsLoggedIn() {
			abortUnauthorized(c)
			return
		}

		handlers.SetPrincipal(c, principal)
		c.Next()
	}
}

// AdminOnly rejects requests whose principal lacks the ADMIN role. It
// must run behind SessionAuth.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !handlers.CurrentPrincipal(c).IsAdmin() {
			abortUnauthorized(c)
			return
		}
		c.Next()
	}
}

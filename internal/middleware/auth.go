package middleware

import (
	"strings"

	"github.com/coachtui/crewcommand/internal/authz"
	"github.com/coachtui/crewcommand/internal/constants"
	"github.com/coachtui/crewcommand/internal/errors"
	"github.com/coachtui/crewcommand/internal/services"
	"github.com/gin-gonic/gin"
)

var authService *services.AuthService

// Init wires the middleware to the auth service.
func Init(service *services.AuthService) {
	authService = service
}

// RequireAuth validates the bearer token and loads the caller's
// authorization context from the database. The token only identifies
// the user; roles and site assignments are read fresh on every request
// so a revoked role takes effect immediately.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenString == "" {
			errors.Unauthorized(c, "Missing bearer token")
			c.Abort()
			return
		}

		claims, err := authService.ParseToken(tokenString)
		if err != nil {
			errors.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		caller, err := authService.ResolveCaller(c.Request.Context(), claims)
		if err != nil {
			errors.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, caller.UserID)
		c.Set(constants.ContextKeyCaller, caller)
		c.Next()
	}
}

// GetUserID returns the authenticated user ID from the context.
func GetUserID(c *gin.Context) (uint64, bool) {
	v, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}
	id, ok := v.(uint64)
	return id, ok
}

// GetCaller returns the authorization context from the context.
func GetCaller(c *gin.Context) (authz.Caller, bool) {
	v, exists := c.Get(constants.ContextKeyCaller)
	if !exists {
		return authz.Caller{}, false
	}
	caller, ok := v.(authz.Caller)
	return caller, ok
}

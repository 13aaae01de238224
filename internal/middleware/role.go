package middleware

import (
	"strconv"

	"scheduling/internal/domain"
	"scheduling/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// RequireRole lets the request through when the caller has any of the given roles.
func RequireRole(roles ...domain.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := domain.UserRole(c.GetString(CtxRole))
		if role == "" {
			response.Unauthorized(c, "Role not found in token")
			c.Abort()
			return
		}

		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}

		response.Forbidden(c, "Access denied: insufficient permissions")
		c.Abort()
	}
}

// RequireSelfOrRole allows the user whose id is in the URL param, or any of the given roles.
func RequireSelfOrRole(param string, roles ...domain.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := CurrentActor(c)
		if actor.UserID == 0 {
			response.Unauthorized(c, "Authentication required")
			c.Abort()
			return
		}

		if actor.Is(roles...) {
			c.Next()
			return
		}

		id, err := strconv.ParseInt(c.Param(param), 10, 64)
		if err == nil && id == actor.UserID {
			c.Next()
			return
		}

		response.Forbidden(c, "You don't own this resource")
		c.Abort()
	}
}

package middleware

import (
	"context"
	"errors"
	"strings"

	"scheduling/internal/domain"
	jwtsvc "scheduling/internal/pkg/jwt"
	"scheduling/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	CtxUserID = "user_id"
	CtxRole   = "role"
	CtxEmail  = "email"
)

type tokenValidator interface {
	ValidateToken(tokenStr string) (*jwtsvc.Claims, error)
}

// UserLookup loads the account behind a token.
type UserLookup interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// JWTAuth requires a valid "Authorization: Bearer <token>" header for an existing active user.
// Role and email come from the stored user, not the token, so deactivation and role changes apply at once.
func JWTAuth(jwt tokenValidator, users UserLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" {
			response.Unauthorized(c, "Missing Authorization header")
			c.Abort()
			return
		}

		scheme, tokenStr, ok := strings.Cut(h, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") {
			response.Unauthorized(c, "Authorization header must be 'Bearer <token>'")
			c.Abort()
			return
		}

		tokenStr = strings.TrimSpace(tokenStr)
		if tokenStr == "" {
			response.Unauthorized(c, "Empty token")
			c.Abort()
			return
		}

		claims, err := jwt.ValidateToken(tokenStr)
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		u, err := users.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				response.Unauthorized(c, "Account not found")
			} else {
				response.Internal(c, err)
			}
			c.Abort()
			return
		}
		if !u.IsActive {
			response.Forbidden(c, "Account is disabled")
			c.Abort()
			return
		}

		c.Set(CtxUserID, u.ID)
		c.Set(CtxRole, string(u.Role))
		c.Set(CtxEmail, u.Email)

		c.Next()
	}
}

// CurrentActor reads the caller set by JWTAuth.
func CurrentActor(c *gin.Context) domain.Actor {
	return domain.Actor{
		UserID: c.GetInt64(CtxUserID),
		Role:   domain.UserRole(c.GetString(CtxRole)),
	}
}

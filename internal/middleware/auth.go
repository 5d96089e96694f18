package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"skillbridge/internal/access"
	"skillbridge/internal/domain"
	"skillbridge/internal/pkg/jwt"
	"skillbridge/internal/pkg/logger"
	"skillbridge/internal/pkg/response"
)

const actorKey = "actor"

// RoleLookup resolves the currently selected role of a user.
type RoleLookup interface {
	GetRole(ctx context.Context, userID int64) (domain.Role, error)
}

// JWTAuth verifies the bearer token and stores the identity in the context.
func JWTAuth(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Error(c, http.StatusUnauthorized, "AUTH_HEADER_MISSING", "Authorization header is required")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Error(c, http.StatusUnauthorized, "INVALID_AUTH_FORMAT", "Authorization header must be 'Bearer <token>'")
			c.Abort()
			return
		}

		claims, err := jwtService.ValidateToken(strings.TrimSpace(parts[1]))
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)
		c.Next()
	}
}

// OptionalJWTAuth identifies the caller when a valid bearer token is present
// and lets the request through anonymously otherwise.
func OptionalJWTAuth(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
		if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
			if claims, err := jwtService.ValidateToken(strings.TrimSpace(parts[1])); err == nil {
				c.Set(actorKey, access.ActorContext{ID: claims.UserID, Email: claims.Email})
			}
		}
		c.Next()
	}
}

// Actor builds the ActorContext for an authenticated request. The role comes
// from the profile store on every request, so a role switch applies at once.
func Actor(roles RoleLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetInt64("user_id")
		if userID == 0 {
			response.Fail(c, access.ErrUnauthenticated)
			c.Abort()
			return
		}

		role, err := roles.GetRole(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// token outlived its profile
				response.Fail(c, access.ErrUnauthenticated)
				c.Abort()
				return
			}
			logger.Error("actor: role lookup failed", zap.Int64("user_id", userID), zap.Error(err))
			response.Fail(c, err)
			c.Abort()
			return
		}

		a := access.ActorContext{ID: userID, Email: c.GetString("email"), Role: role}
		c.Set(actorKey, a)
		c.Set("role", string(role))
		c.Next()
	}
}

// ActorFrom returns the ActorContext set by Actor, or an anonymous one.
func ActorFrom(c *gin.Context) access.ActorContext {
	if v, ok := c.Get(actorKey); ok {
		if a, ok := v.(access.ActorContext); ok {
			return a
		}
	}
	return access.ActorContext{}
}

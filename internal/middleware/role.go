package middleware

import (
	"github.com/gin-gonic/gin"

	"skillbridge/internal/access"
	"skillbridge/internal/domain"
	"skillbridge/internal/pkg/response"
)

// RequireRole ensures that the actor is currently in the given role. It must
// run after Actor. Services check the role again; this only rejects early.
func RequireRole(role domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := access.RequireRole(ActorFrom(c), role); err != nil {
			response.Fail(c, err)
			c.Abort()
			return
		}
		c.Next()
	}
}

func WorkerOnly() gin.HandlerFunc {
	return RequireRole(domain.RoleWorker)
}

func CustomerOnly() gin.HandlerFunc {
	return RequireRole(domain.RoleCustomer)
}

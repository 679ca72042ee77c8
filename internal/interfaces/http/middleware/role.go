package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/weshare/backend/internal/domain/identity"
)

// RequireRole guards a route group to users carrying the given role claim.
// Must run after JWT authentication.
func RequireRole(role identity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetJWTRole(c) != role.String() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "ERR_FORBIDDEN",
					"message": "This action requires the " + role.String() + " role",
				},
			})
			return
		}
		c.Next()
	}
}

// RequireDonor guards donor-only routes
func RequireDonor() gin.HandlerFunc {
	return RequireRole(identity.RoleDonor)
}

// RequireReceiver guards receiver-only routes
func RequireReceiver() gin.HandlerFunc {
	return RequireRole(identity.RoleReceiver)
}

package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/commerce-service/internal/domain/dto"
)

// RequireAdmin returns a middleware that rejects requests whose token
// does not carry an admin or superadmin role. It must run after JWTAuth.
func RequireAdmin() gin.HandlerFunc {
	return RequireRoles("admin", "superadmin")
}

// RequireRoles returns a middleware that rejects requests whose token
// role is not in the allowed set. It must run after JWTAuth.
func RequireRoles(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *gin.Context) {
		claims, ok := GetClaims(c)
		if !ok {
			unauthorized(c, "authentication required")
			return
		}

		if !allowed[claims.Role] {
			resp := dto.NewError("insufficient permissions").WithRequestID(GetRequestID(c))
			c.AbortWithStatusJSON(http.StatusForbidden, resp)
			return
		}

		c.Next()
	}
}

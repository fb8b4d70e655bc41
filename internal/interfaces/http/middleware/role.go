package middleware

import (
	"net/http"

	"github.com/ebilling/backend/internal/domain/shared"
	"github.com/ebilling/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// RequireRole gates a route group to one role. A caller with the wrong
// role gets 401, matching the rest of the auth error surface, not 403.
func RequireRole(role shared.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok || principal.Role != role {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse(dto.ErrCodeUnauthorized, "Not authorized to perform this action"))
			return
		}
		c.Next()
	}
}

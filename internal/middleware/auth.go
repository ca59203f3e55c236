// internal/middleware/auth.go
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/lweber/gameshop-backend/internal/models"
	"github.com/lweber/gameshop-backend/internal/services"
	"github.com/lweber/gameshop-backend/internal/utils"
)

const accessCodeKey = "access_code"

// AuthRequired verifies the bearer token and attaches the access code
// record to the request context.
func AuthRequired(accessCodes *services.AccessCodeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.UnauthorizedResponse(c, "")
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.UnauthorizedResponse(c, "Invalid authorization header")
			c.Abort()
			return
		}

		code, err := accessCodes.VerifyToken(c.Request.Context(), parts[1])
		if err != nil {
			utils.AppErrorResponse(c, err)
			c.Abort()
			return
		}

		c.Set(accessCodeKey, code)
		c.Next()
	}
}

// GetAccessCode returns the authenticated code set by AuthRequired.
func GetAccessCode(c *gin.Context) (*models.AccessCode, bool) {
	value, exists := c.Get(accessCodeKey)
	if !exists {
		return nil, false
	}
	code, ok := value.(*models.AccessCode)
	return code, ok
}

package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Donelpee/travelcover-insurance/internal/domain/entity"
	"github.com/Donelpee/travelcover-insurance/internal/usecase"
)

const contextUserKey = "currentUser"

// AuthRequired validates the bearer token and stores the loaded user
// (with role permissions) on the request context.
func AuthRequired(auth *usecase.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		user, err := auth.VerifyToken(c.Request.Context(), strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(contextUserKey, user)
		c.Next()
	}
}

// RequirePermission guards a route with a permission key lookup
// against the authenticated user's role.
func RequirePermission(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		if user == nil || !user.HasPermission(key) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "permission denied", "permission": key})
			return
		}
		c.Next()
	}
}

func currentUser(c *gin.Context) *entity.User {
	v, ok := c.Get(contextUserKey)
	if !ok {
		return nil
	}
	user, _ := v.(*entity.User)
	return user
}

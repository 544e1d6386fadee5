package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Filichkin/SA-RAG/domain"
)

// RequireElevated allows administrators and superusers through. Must
// run after AuthMiddleware.
func RequireElevated() gin.HandlerFunc {
	return gin.HandlerFunc(func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}

		if !user.IsElevated() {
			c.JSON(http.StatusForbidden, gin.H{"error": domain.ErrForbidden.Error()})
			c.Abort()
			return
		}

		c.Next()
	})
}

// RequireSuperuser allows only superusers through. Must run after
// AuthMiddleware.
func RequireSuperuser() gin.HandlerFunc {
	return gin.HandlerFunc(func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}

		if !user.IsSuperuser {
			c.JSON(http.StatusForbidden, gin.H{"error": domain.ErrForbidden.Error()})
			c.Abort()
			return
		}

		c.Next()
	})
}

package httpx

import (
	"github.com/gin-gonic/gin"

	"github.com/Filichkin/SA-RAG/internal/http/handlers"
	"github.com/Filichkin/SA-RAG/internal/http/middleware"
)

// BuildRouter assembles the HTTP surface. Public routes cover
// registration and the two-step login; everything else sits behind the
// session middleware, with the user administration routes additionally
// role-gated.
func BuildRouter(ah *handlers.AuthHandlers, uh *handlers.UserHandlers, jwtmw *middleware.AuthMW) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	auth := r.Group("/auth")
	auth.POST("/register", ah.Register)
	auth.POST("/2fa/login", ah.TwoFactorLogin)
	auth.POST("/2fa/verify-code", ah.VerifyCode)
	auth.POST("/reset-password", ah.ResetPassword)

	v := r.Group("/").Use(jwtmw.WithSession())
	v.GET("/auth/me", ah.Me)
	v.POST("/auth/logout", ah.Logout)
	v.POST("/users/change-password", uh.ChangePassword)

	adm := r.Group("/users").Use(jwtmw.WithSession())
	adm.GET("", middleware.RequireElevated(), uh.List)
	adm.DELETE("/:id", middleware.RequireSuperuser(), uh.Delete)

	return r
}

package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/Filichkin/SA-RAG/domain"
)

// AuthMW wraps the auth service for middleware construction
type AuthMW struct {
	authSvc domain.AuthService
}

// NewAuthMW creates new auth middleware wrapper
func NewAuthMW(authSvc domain.AuthService) *AuthMW {
	return &AuthMW{authSvc: authSvc}
}

// WithSession returns the session verification middleware
func (mw *AuthMW) WithSession() gin.HandlerFunc {
	return AuthMiddleware(mw.authSvc)
}

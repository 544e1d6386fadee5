package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Filichkin/SA-RAG/domain"
	"github.com/Filichkin/SA-RAG/internal/http/middleware"
)

// serverError logs the underlying fault and answers with a generic 500.
// Unexpected errors never reach the client verbatim.
func serverError(c *gin.Context, message string, err error) {
	log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": message})
}

// AuthHandlers handles authentication HTTP requests
type AuthHandlers struct {
	authSvc domain.AuthService
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(authSvc domain.AuthService) *AuthHandlers {
	return &AuthHandlers{authSvc: authSvc}
}

// RegisterRequest represents registration request
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Password  string `json:"password" binding:"required"`
}

// LoginRequest represents the first-stage 2FA login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// VerifyCodeRequest carries the second-factor code. The pending token
// travels in the X-Temp-Token header, not the body.
type VerifyCodeRequest struct {
	Code string `json:"code" binding:"required,len=6,numeric"`
}

// ResetPasswordRequest represents a forgotten-password request
type ResetPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// Register handles user registration
func (h *AuthHandlers) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	user, err := h.authSvc.Register(c.Request.Context(), req.Email, req.FirstName, req.LastName, req.Password)
	if err != nil {
		switch err {
		case domain.ErrUserAlreadyExists:
			c.JSON(http.StatusConflict, gin.H{"error": "User already exists"})
		case domain.ErrPasswordPolicy:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Password does not meet policy"})
		default:
			serverError(c, "Failed to register user", err)
		}
		return
	}

	c.JSON(http.StatusCreated, UserResponse{}.FromDomain(user))
}

// TwoFactorLogin handles the first factor: password verification and
// code dispatch
func (h *AuthHandlers) TwoFactorLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch err {
		case domain.ErrInvalidCredentials:
			// One status and one message for both unknown email and
			// wrong password.
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid credentials"})
		case domain.ErrUserInactive:
			c.JSON(http.StatusForbidden, gin.H{"error": "Account is inactive"})
		case domain.ErrLoginThrottled:
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Please wait before requesting a new code"})
		case domain.ErrNotificationFailed:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to send verification code"})
		default:
			serverError(c, "Login failed", err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    result.Message,
		"temp_token": result.TempToken,
	})
}

// VerifyCode handles the second factor and issues the session token
func (h *AuthHandlers) VerifyCode(c *gin.Context) {
	// A missing header is the same failure as an expired or forged
	// pending token.
	tempToken := c.GetHeader("X-Temp-Token")
	if tempToken == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired temporary token"})
		return
	}

	var req VerifyCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	result, err := h.authSvc.VerifyCode(c.Request.Context(), tempToken, req.Code)
	if err != nil {
		switch err {
		case domain.ErrValidation:
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Code must be exactly 6 digits"})
		case domain.ErrPendingTokenInvalid:
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired temporary token"})
		case domain.ErrCodeInvalid:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid verification code"})
		case domain.ErrCodeExpired:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Verification code has expired"})
		default:
			serverError(c, "Verification failed", err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": result.AccessToken,
		"token_type":   result.TokenType,
	})
}

// Me returns the authenticated user's profile
func (h *AuthHandlers) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	c.JSON(http.StatusOK, UserResponse{}.FromDomain(user))
}

// Logout revokes every outstanding session token of the current user
func (h *AuthHandlers) Logout(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	if err := h.authSvc.Logout(c.Request.Context(), user.ID); err != nil {
		serverError(c, "Logout failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// ResetPassword generates a new password and emails it to the user
func (h *AuthHandlers) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	err := h.authSvc.ResetPassword(c.Request.Context(), req.Email)
	if err != nil {
		switch err {
		case domain.ErrUserNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		case domain.ErrNotificationFailed:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to send email"})
		case domain.ErrConcurrentUpdate:
			c.JSON(http.StatusConflict, gin.H{"error": "Password was changed concurrently, try again"})
		default:
			serverError(c, "Password reset failed", err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "New password sent to email"})
}

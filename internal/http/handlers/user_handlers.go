package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Filichkin/SA-RAG/domain"
	"github.com/Filichkin/SA-RAG/internal/http/middleware"
)

const (
	defaultListLimit = 100
	maxListLimit     = 500
)

// UserHandlers handles user administration HTTP requests
type UserHandlers struct {
	authSvc  domain.AuthService
	userRepo domain.UserRepository
}

// NewUserHandlers creates new user handlers
func NewUserHandlers(authSvc domain.AuthService, userRepo domain.UserRepository) *UserHandlers {
	return &UserHandlers{
		authSvc:  authSvc,
		userRepo: userRepo,
	}
}

// UserResponse is the public representation of a user
type UserResponse struct {
	ID              uint      `json:"id"`
	Email           string    `json:"email"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	IsActive        bool      `json:"is_active"`
	IsSuperuser     bool      `json:"is_superuser"`
	IsAdministrator bool      `json:"is_administrator"`
	IsDriver        bool      `json:"is_driver"`
	IsAssistant     bool      `json:"is_assistant"`
	CreatedAt       time.Time `json:"created_at"`
}

// FromDomain converts a domain user to its public representation
func (UserResponse) FromDomain(user *domain.User) UserResponse {
	return UserResponse{
		ID:              user.ID,
		Email:           user.Email,
		FirstName:       user.FirstName,
		LastName:        user.LastName,
		IsActive:        user.IsActive,
		IsSuperuser:     user.IsSuperuser,
		IsAdministrator: user.IsAdministrator,
		IsDriver:        user.IsDriver,
		IsAssistant:     user.IsAssistant,
		CreatedAt:       user.CreatedAt,
	}
}

// ChangePasswordRequest represents a password change request
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// List returns all users with pagination, newest first. Requires an
// administrator or superuser role.
func (h *UserHandlers) List(c *gin.Context) {
	skip, err := strconv.Atoi(c.DefaultQuery("skip", "0"))
	if err != nil || skip < 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid skip parameter"})
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultListLimit)))
	if err != nil || limit < 1 || limit > maxListLimit {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid limit parameter"})
		return
	}

	users, err := h.userRepo.List(c.Request.Context(), skip, limit)
	if err != nil {
		serverError(c, "Failed to list users", err)
		return
	}

	response := make([]UserResponse, 0, len(users))
	for _, user := range users {
		response = append(response, UserResponse{}.FromDomain(user))
	}
	c.JSON(http.StatusOK, response)
}

// Delete removes a user by ID. Requires a superuser role; superusers
// cannot delete their own account.
func (h *UserHandlers) Delete(c *gin.Context) {
	current, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid user ID"})
		return
	}

	if uint(userID) == current.ID {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrCannotDeleteSelf.Error()})
		return
	}

	user, err := h.userRepo.FindByID(c.Request.Context(), uint(userID))
	if err != nil {
		if err == domain.ErrUserNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		serverError(c, "Failed to find user", err)
		return
	}

	if err := h.userRepo.Delete(c.Request.Context(), uint(userID)); err != nil {
		serverError(c, "Failed to delete user", err)
		return
	}

	c.JSON(http.StatusOK, UserResponse{}.FromDomain(user))
}

// ChangePassword changes the current user's password. The old password
// must be provided; on success every previously issued session token is
// revoked by the token-version bump.
func (h *UserHandlers) ChangePassword(c *gin.Context) {
	current, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	err := h.authSvc.ChangePassword(c.Request.Context(), current.ID, req.OldPassword, req.NewPassword)
	if err != nil {
		switch err {
		case domain.ErrInvalidCredentials:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid current password"})
		case domain.ErrPasswordPolicy:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Password does not meet policy"})
		case domain.ErrConcurrentUpdate:
			c.JSON(http.StatusConflict, gin.H{"error": "Password was changed concurrently, try again"})
		default:
			serverError(c, "Password change failed", err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
}

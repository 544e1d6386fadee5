package mocks

import (
	"context"

	"github.com/Filichkin/SA-RAG/domain"
)

// MockAuthService implements domain.AuthService interface for testing
type MockAuthService struct {
	RegisterFunc            func(ctx context.Context, email, firstName, lastName, password string) (*domain.User, error)
	LoginFunc               func(ctx context.Context, email, password string) (*domain.LoginResult, error)
	VerifyCodeFunc          func(ctx context.Context, tempToken, code string) (*domain.VerifyResult, error)
	AuthenticateFunc        func(ctx context.Context, sessionToken string) (*domain.User, error)
	ChangePasswordFunc      func(ctx context.Context, userID uint, oldPassword, newPassword string) error
	ResetPasswordFunc       func(ctx context.Context, email string) error
	LogoutFunc              func(ctx context.Context, userID uint) error
	CleanupExpiredCodesFunc func(ctx context.Context) (int64, error)
}

// NewMockAuthService creates a new MockAuthService with default behaviors
func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

// Register registers a new user
func (m *MockAuthService) Register(ctx context.Context, email, firstName, lastName, password string) (*domain.User, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, email, firstName, lastName, password)
	}
	return &domain.User{ID: 1, Email: email, FirstName: firstName, LastName: lastName, TokenVersion: 1, IsActive: true}, nil
}

// Login performs the first 2FA stage
func (m *MockAuthService) Login(ctx context.Context, email, password string) (*domain.LoginResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	return &domain.LoginResult{Message: "verification code sent to email", TempToken: "pending_token_1"}, nil
}

// VerifyCode performs the second 2FA stage
func (m *MockAuthService) VerifyCode(ctx context.Context, tempToken, code string) (*domain.VerifyResult, error) {
	if m.VerifyCodeFunc != nil {
		return m.VerifyCodeFunc(ctx, tempToken, code)
	}
	return &domain.VerifyResult{AccessToken: "session_token_1_v1", TokenType: "bearer"}, nil
}

// Authenticate resolves a session token into a user
func (m *MockAuthService) Authenticate(ctx context.Context, sessionToken string) (*domain.User, error) {
	if m.AuthenticateFunc != nil {
		return m.AuthenticateFunc(ctx, sessionToken)
	}
	// Default behavior: invalid token
	return nil, domain.ErrUnauthenticated
}

// ChangePassword changes a user's password
func (m *MockAuthService) ChangePassword(ctx context.Context, userID uint, oldPassword, newPassword string) error {
	if m.ChangePasswordFunc != nil {
		return m.ChangePasswordFunc(ctx, userID, oldPassword, newPassword)
	}
	return nil
}

// ResetPassword resets a user's password
func (m *MockAuthService) ResetPassword(ctx context.Context, email string) error {
	if m.ResetPasswordFunc != nil {
		return m.ResetPasswordFunc(ctx, email)
	}
	return nil
}

// Logout revokes the user's session tokens
func (m *MockAuthService) Logout(ctx context.Context, userID uint) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, userID)
	}
	return nil
}

// CleanupExpiredCodes deletes expired codes
func (m *MockAuthService) CleanupExpiredCodes(ctx context.Context) (int64, error) {
	if m.CleanupExpiredCodesFunc != nil {
		return m.CleanupExpiredCodesFunc(ctx)
	}
	return 0, nil
}

// Compile-time interface compliance verification
var _ domain.AuthService = (*MockAuthService)(nil)

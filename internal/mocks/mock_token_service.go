package mocks

import (
	"fmt"

	"github.com/Filichkin/SA-RAG/domain"
)

// MockTokenService implements domain.TokenService interface for testing
type MockTokenService struct {
	GenerateSessionTokenFunc func(userID uint, tokenVersion int) (string, error)
	ValidateSessionTokenFunc func(token string) (*domain.SessionClaims, error)
	GeneratePendingTokenFunc func(userID uint) (string, error)
	ValidatePendingTokenFunc func(token string) (*domain.PendingClaims, error)
}

// NewMockTokenService creates a new MockTokenService with default behaviors
func NewMockTokenService() *MockTokenService {
	return &MockTokenService{}
}

// GenerateSessionToken mints a session token
func (m *MockTokenService) GenerateSessionToken(userID uint, tokenVersion int) (string, error) {
	if m.GenerateSessionTokenFunc != nil {
		return m.GenerateSessionTokenFunc(userID, tokenVersion)
	}
	// Default behavior: recognizable fake token
	return fmt.Sprintf("session_token_%d_v%d", userID, tokenVersion), nil
}

// ValidateSessionToken verifies a session token
func (m *MockTokenService) ValidateSessionToken(token string) (*domain.SessionClaims, error) {
	if m.ValidateSessionTokenFunc != nil {
		return m.ValidateSessionTokenFunc(token)
	}
	// Default behavior: invalid
	return nil, domain.ErrUnauthenticated
}

// GeneratePendingToken mints a pending token
func (m *MockTokenService) GeneratePendingToken(userID uint) (string, error) {
	if m.GeneratePendingTokenFunc != nil {
		return m.GeneratePendingTokenFunc(userID)
	}
	// Default behavior: recognizable fake token
	return fmt.Sprintf("pending_token_%d", userID), nil
}

// ValidatePendingToken verifies a pending token
func (m *MockTokenService) ValidatePendingToken(token string) (*domain.PendingClaims, error) {
	if m.ValidatePendingTokenFunc != nil {
		return m.ValidatePendingTokenFunc(token)
	}
	// Default behavior: invalid
	return nil, domain.ErrPendingTokenInvalid
}

// Compile-time interface compliance verification
var _ domain.TokenService = (*MockTokenService)(nil)

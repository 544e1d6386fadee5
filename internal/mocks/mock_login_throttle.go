package mocks

import (
	"context"

	"github.com/Filichkin/SA-RAG/domain"
)

// MockLoginThrottle implements domain.LoginThrottle interface for testing
type MockLoginThrottle struct {
	ReserveFunc func(ctx context.Context, userID uint) error
	ReleaseFunc func(ctx context.Context, userID uint) error
}

// NewMockLoginThrottle creates a new MockLoginThrottle with default behaviors
func NewMockLoginThrottle() *MockLoginThrottle {
	return &MockLoginThrottle{}
}

// Reserve marks the start of a login attempt
func (m *MockLoginThrottle) Reserve(ctx context.Context, userID uint) error {
	if m.ReserveFunc != nil {
		return m.ReserveFunc(ctx, userID)
	}
	// Default behavior: not throttled
	return nil
}

// Release frees the reservation
func (m *MockLoginThrottle) Release(ctx context.Context, userID uint) error {
	if m.ReleaseFunc != nil {
		return m.ReleaseFunc(ctx, userID)
	}
	// Default behavior: success
	return nil
}

// Compile-time interface compliance verification
var _ domain.LoginThrottle = (*MockLoginThrottle)(nil)

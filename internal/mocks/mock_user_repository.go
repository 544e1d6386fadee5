package mocks

import (
	"context"

	"github.com/Filichkin/SA-RAG/domain"
)

// MockUserRepository implements domain.UserRepository interface for testing
type MockUserRepository struct {
	CreateFunc           func(ctx context.Context, user *domain.User) error
	FindByEmailFunc      func(ctx context.Context, email string) (*domain.User, error)
	FindByIDFunc         func(ctx context.Context, id uint) (*domain.User, error)
	ListFunc             func(ctx context.Context, offset, limit int) ([]*domain.User, error)
	UpdateFunc           func(ctx context.Context, user *domain.User) error
	DeleteFunc           func(ctx context.Context, id uint) error
	UpdatePasswordFunc   func(ctx context.Context, userID uint, newHash string, fromVersion int) error
	BumpTokenVersionFunc func(ctx context.Context, userID uint, fromVersion int) error
}

// NewMockUserRepository creates a new MockUserRepository with default behaviors
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{}
}

// Create creates a new user
func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	// Default behavior: success
	return nil
}

// FindByEmail finds a user by email
func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	// Default behavior: not found
	return nil, domain.ErrUserNotFound
}

// FindByID finds a user by ID
func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	// Default behavior: not found
	return nil, domain.ErrUserNotFound
}

// List returns users with pagination
func (m *MockUserRepository) List(ctx context.Context, offset, limit int) ([]*domain.User, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, offset, limit)
	}
	// Default behavior: empty result
	return nil, nil
}

// Update updates an existing user
func (m *MockUserRepository) Update(ctx context.Context, user *domain.User) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, user)
	}
	// Default behavior: success
	return nil
}

// Delete removes a user
func (m *MockUserRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	// Default behavior: success
	return nil
}

// UpdatePassword swaps the password hash and bumps the token version
func (m *MockUserRepository) UpdatePassword(ctx context.Context, userID uint, newHash string, fromVersion int) error {
	if m.UpdatePasswordFunc != nil {
		return m.UpdatePasswordFunc(ctx, userID, newHash, fromVersion)
	}
	// Default behavior: success
	return nil
}

// BumpTokenVersion increments the token version
func (m *MockUserRepository) BumpTokenVersion(ctx context.Context, userID uint, fromVersion int) error {
	if m.BumpTokenVersionFunc != nil {
		return m.BumpTokenVersionFunc(ctx, userID, fromVersion)
	}
	// Default behavior: success
	return nil
}

// Compile-time interface compliance verification
var _ domain.UserRepository = (*MockUserRepository)(nil)

package mocks

import "github.com/Filichkin/SA-RAG/domain"

// MockPasswordService implements domain.PasswordService interface for testing
type MockPasswordService struct {
	HashFunc           func(password string) (string, error)
	VerifyFunc         func(hashedPassword, password string) bool
	GenerateRandomFunc func() (string, error)
}

// NewMockPasswordService creates a new MockPasswordService with default behaviors
func NewMockPasswordService() *MockPasswordService {
	return &MockPasswordService{}
}

// Hash hashes a password
func (m *MockPasswordService) Hash(password string) (string, error) {
	if m.HashFunc != nil {
		return m.HashFunc(password)
	}
	// Default behavior: recognizable fake hash
	return "hashed_" + password, nil
}

// Verify checks a password against a hash
func (m *MockPasswordService) Verify(hashedPassword, password string) bool {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(hashedPassword, password)
	}
	// Default behavior: match against the fake hash scheme
	return hashedPassword == "hashed_"+password
}

// GenerateRandom produces a random password
func (m *MockPasswordService) GenerateRandom() (string, error) {
	if m.GenerateRandomFunc != nil {
		return m.GenerateRandomFunc()
	}
	// Default behavior: fixed policy-conforming password
	return "Generated1!pass", nil
}

// Compile-time interface compliance verification
var _ domain.PasswordService = (*MockPasswordService)(nil)

package mocks

import "github.com/Filichkin/SA-RAG/domain"

// MockCodeGenerator implements domain.CodeGenerator interface for testing
type MockCodeGenerator struct {
	GenerateFunc func() (string, error)
}

// NewMockCodeGenerator creates a new MockCodeGenerator with default behaviors
func NewMockCodeGenerator() *MockCodeGenerator {
	return &MockCodeGenerator{}
}

// Generate produces a one-time code
func (m *MockCodeGenerator) Generate() (string, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	// Default behavior: fixed code with a leading zero, so tests cover
	// zero-padded codes by default
	return "042137", nil
}

// Compile-time interface compliance verification
var _ domain.CodeGenerator = (*MockCodeGenerator)(nil)

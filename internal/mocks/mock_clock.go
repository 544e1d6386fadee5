package mocks

import (
	"sync"
	"time"

	"github.com/Filichkin/SA-RAG/domain"
)

// MockClock implements domain.Clock with a settable current time
type MockClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewMockClock creates a clock frozen at the given time
func NewMockClock(now time.Time) *MockClock {
	return &MockClock{now: now}
}

// Now returns the frozen time
func (m *MockClock) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Advance moves the clock forward
func (m *MockClock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
}

// Set replaces the current time
func (m *MockClock) Set(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = t
}

// Compile-time interface compliance verification
var _ domain.Clock = (*MockClock)(nil)

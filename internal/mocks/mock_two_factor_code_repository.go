package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/Filichkin/SA-RAG/domain"
)

// MockTwoFactorCodeRepository implements domain.TwoFactorCodeRepository
// interface for testing
type MockTwoFactorCodeRepository struct {
	ReplaceFunc       func(ctx context.Context, code *domain.TwoFactorCode) error
	FindUnusedFunc    func(ctx context.Context, userID uint, code string) (*domain.TwoFactorCode, error)
	MarkUsedFunc      func(ctx context.Context, codeID uint) error
	DeleteByUserFunc  func(ctx context.Context, userID uint) error
	DeleteExpiredFunc func(ctx context.Context, cutoff time.Time) (int64, error)
}

// NewMockTwoFactorCodeRepository creates a new mock with default behaviors
func NewMockTwoFactorCodeRepository() *MockTwoFactorCodeRepository {
	return &MockTwoFactorCodeRepository{}
}

// Replace stores a code after deleting the user's previous ones
func (m *MockTwoFactorCodeRepository) Replace(ctx context.Context, code *domain.TwoFactorCode) error {
	if m.ReplaceFunc != nil {
		return m.ReplaceFunc(ctx, code)
	}
	// Default behavior: success
	return nil
}

// FindUnused returns the matching unused code
func (m *MockTwoFactorCodeRepository) FindUnused(ctx context.Context, userID uint, code string) (*domain.TwoFactorCode, error) {
	if m.FindUnusedFunc != nil {
		return m.FindUnusedFunc(ctx, userID, code)
	}
	// Default behavior: no code exists
	return nil, domain.ErrCodeInvalid
}

// MarkUsed consumes a code
func (m *MockTwoFactorCodeRepository) MarkUsed(ctx context.Context, codeID uint) error {
	if m.MarkUsedFunc != nil {
		return m.MarkUsedFunc(ctx, codeID)
	}
	// Default behavior: success
	return nil
}

// DeleteByUser removes every code belonging to the user
func (m *MockTwoFactorCodeRepository) DeleteByUser(ctx context.Context, userID uint) error {
	if m.DeleteByUserFunc != nil {
		return m.DeleteByUserFunc(ctx, userID)
	}
	// Default behavior: success
	return nil
}

// DeleteExpired removes codes created before the cutoff
func (m *MockTwoFactorCodeRepository) DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	if m.DeleteExpiredFunc != nil {
		return m.DeleteExpiredFunc(ctx, cutoff)
	}
	// Default behavior: nothing deleted
	return 0, nil
}

// Compile-time interface compliance verification
var _ domain.TwoFactorCodeRepository = (*MockTwoFactorCodeRepository)(nil)

// InMemoryTwoFactorCodeRepository is a mutex-guarded in-memory
// implementation used for concurrency tests, where the conditional
// mark-used semantics matter and function-field mocks would race.
type InMemoryTwoFactorCodeRepository struct {
	mu     sync.Mutex
	nextID uint
	codes  map[uint]*domain.TwoFactorCode
}

// NewInMemoryTwoFactorCodeRepository creates an empty in-memory store
func NewInMemoryTwoFactorCodeRepository() *InMemoryTwoFactorCodeRepository {
	return &InMemoryTwoFactorCodeRepository{
		nextID: 1,
		codes:  make(map[uint]*domain.TwoFactorCode),
	}
}

// Replace deletes the user's codes and stores the new one atomically
func (r *InMemoryTwoFactorCodeRepository) Replace(ctx context.Context, code *domain.TwoFactorCode) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, c := range r.codes {
		if c.UserID == code.UserID {
			delete(r.codes, id)
		}
	}

	code.ID = r.nextID
	r.nextID++
	stored := *code
	r.codes[code.ID] = &stored
	return nil
}

// FindUnused returns a copy of the matching unused code
func (r *InMemoryTwoFactorCodeRepository) FindUnused(ctx context.Context, userID uint, code string) (*domain.TwoFactorCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var found *domain.TwoFactorCode
	for _, c := range r.codes {
		if c.UserID == userID && c.Code == code && !c.IsUsed {
			if found != nil {
				// Multiple live codes violate the invariant; fail closed.
				return nil, domain.ErrCodeInvalid
			}
			copied := *c
			found = &copied
		}
	}
	if found == nil {
		return nil, domain.ErrCodeInvalid
	}
	return found, nil
}

// MarkUsed flips is_used exactly once per code
func (r *InMemoryTwoFactorCodeRepository) MarkUsed(ctx context.Context, codeID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.codes[codeID]
	if !ok || c.IsUsed {
		return domain.ErrCodeInvalid
	}
	c.IsUsed = true
	return nil
}

// DeleteByUser removes every code belonging to the user
func (r *InMemoryTwoFactorCodeRepository) DeleteByUser(ctx context.Context, userID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, c := range r.codes {
		if c.UserID == userID {
			delete(r.codes, id)
		}
	}
	return nil
}

// DeleteExpired removes codes created before the cutoff
func (r *InMemoryTwoFactorCodeRepository) DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var deleted int64
	for id, c := range r.codes {
		if c.CreatedAt.Before(cutoff) {
			delete(r.codes, id)
			deleted++
		}
	}
	return deleted, nil
}

// CountForUser reports how many codes the user currently has (test helper)
func (r *InMemoryTwoFactorCodeRepository) CountForUser(userID uint) (total, unused int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.codes {
		if c.UserID == userID {
			total++
			if !c.IsUsed {
				unused++
			}
		}
	}
	return total, unused
}

// Compile-time interface compliance verification
var _ domain.TwoFactorCodeRepository = (*InMemoryTwoFactorCodeRepository)(nil)

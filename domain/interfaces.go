package domain

import (
	"context"
	"time"
)

// UserRepository defines user data access operations
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id uint) (*User, error)
	List(ctx context.Context, offset, limit int) ([]*User, error)
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id uint) error
	// UpdatePassword persists a new password hash and bumps the token
	// version in a single conditional write. Returns ErrConcurrentUpdate
	// when fromVersion no longer matches the stored version.
	UpdatePassword(ctx context.Context, userID uint, newHash string, fromVersion int) error
	// BumpTokenVersion increments the token version without touching the
	// password, with the same conditional semantics as UpdatePassword.
	BumpTokenVersion(ctx context.Context, userID uint, fromVersion int) error
}

// TwoFactorCodeRepository persists one-time login codes
type TwoFactorCodeRepository interface {
	// Replace atomically deletes every code belonging to the user and
	// stores the new one, so at most one live code exists per user.
	Replace(ctx context.Context, code *TwoFactorCode) error
	// FindUnused returns the user's matching unused code, or
	// ErrCodeInvalid when no row matches.
	FindUnused(ctx context.Context, userID uint, code string) (*TwoFactorCode, error)
	// MarkUsed flips is_used on a still-unused code. Returns
	// ErrCodeInvalid when the code was already consumed.
	MarkUsed(ctx context.Context, codeID uint) error
	DeleteByUser(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error)
}

// TokenService encodes and decodes the two bearer credentials
type TokenService interface {
	GenerateSessionToken(userID uint, tokenVersion int) (string, error)
	ValidateSessionToken(token string) (*SessionClaims, error)
	GeneratePendingToken(userID uint) (string, error)
	ValidatePendingToken(token string) (*PendingClaims, error)
}

// PasswordService defines password operations
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
	// GenerateRandom produces a policy-conforming random password for
	// the reset flow.
	GenerateRandom() (string, error)
}

// CodeGenerator produces one-time numeric login codes
type CodeGenerator interface {
	Generate() (string, error)
}

// Clock provides the current time; injected so expiry is testable
type Clock interface {
	Now() time.Time
}

// NotificationService delivers codes and passwords out of band
type NotificationService interface {
	SendEmail(to, subject, body string) error
	SendSMS(to, message string) error
}

// LoginThrottle bounds how often a user may restart the 2FA flow
type LoginThrottle interface {
	// Reserve marks the start of a login attempt. Returns
	// ErrLoginThrottled with the remaining wait when the window is
	// still open.
	Reserve(ctx context.Context, userID uint) error
	// Release frees the reservation, used when the attempt fails before
	// a code was dispatched.
	Release(ctx context.Context, userID uint) error
}

// AuthService defines the authentication business logic
type AuthService interface {
	Register(ctx context.Context, email, firstName, lastName, password string) (*User, error)
	// Login verifies the first factor, stores a fresh one-time code
	// (replacing any previous one) and dispatches it out of band.
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	// VerifyCode verifies the second factor and mints a session token.
	VerifyCode(ctx context.Context, tempToken, code string) (*VerifyResult, error)
	// Authenticate resolves a session token into the current user,
	// enforcing the token-version check.
	Authenticate(ctx context.Context, sessionToken string) (*User, error)
	ChangePassword(ctx context.Context, userID uint, oldPassword, newPassword string) error
	ResetPassword(ctx context.Context, email string) error
	// Logout revokes every outstanding session token for the user.
	Logout(ctx context.Context, userID uint) error
	// CleanupExpiredCodes deletes codes past their lifetime and reports
	// how many were removed.
	CleanupExpiredCodes(ctx context.Context) (int64, error)
}

package domain

import "time"

// User represents an account in the system
type User struct {
	ID              uint
	Email           string
	FirstName       string
	LastName        string
	Phone           string
	PasswordHash    string
	TokenVersion    int
	IsActive        bool
	IsSuperuser     bool
	IsAdministrator bool
	IsDriver        bool
	IsAssistant     bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsElevated reports whether the user may access administration endpoints
func (u *User) IsElevated() bool {
	return u.IsSuperuser || u.IsAdministrator
}

// FullName returns the display name used in outgoing notifications
func (u *User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// TwoFactorCode is a single-use numeric login code delivered out of band.
// CreatedAt is the source of truth for expiry. At most one live
// (unused, unexpired) code exists per user.
type TwoFactorCode struct {
	ID        uint
	UserID    uint
	Code      string
	CreatedAt time.Time
	IsUsed    bool
}

// SessionClaims are the verified contents of a session token.
// TokenVersion is compared against the user record on every request;
// a mismatch means the token has been revoked.
type SessionClaims struct {
	UserID       uint
	TokenVersion int
	IssuedAt     int64
	ExpiresAt    int64
}

// PendingClaims are the verified contents of a pending token, the
// "first factor passed, code not yet verified" credential. A pending
// token grants access to nothing but the verify-code endpoint.
type PendingClaims struct {
	UserID    uint
	IssuedAt  int64
	ExpiresAt int64
}

// LoginResult is returned by the first stage of a 2FA login
type LoginResult struct {
	Message   string
	TempToken string
}

// VerifyResult is returned by the second stage of a 2FA login
type VerifyResult struct {
	AccessToken string
	TokenType   string
}

package domain

import "errors"

// Authentication errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrUserInactive       = errors.New("user account is inactive")
)

// Input validation errors
var (
	ErrValidation     = errors.New("invalid input")
	ErrPasswordPolicy = errors.New("password does not meet policy")
)

// Two-factor code errors
var (
	ErrCodeInvalid    = errors.New("invalid two-factor code")
	ErrCodeExpired    = errors.New("two-factor code has expired")
	ErrLoginThrottled = errors.New("two-factor login throttled")
)

// Token errors
var (
	ErrPendingTokenInvalid = errors.New("invalid pending token")
	ErrUnauthenticated     = errors.New("unauthenticated")
	ErrTokenMalformed      = errors.New("malformed token")
)

// Delivery and persistence errors
var (
	ErrNotificationFailed = errors.New("notification dispatch failed")
	ErrConcurrentUpdate   = errors.New("concurrent update conflict")
)

// Authorization errors
var (
	ErrForbidden        = errors.New("insufficient role permissions")
	ErrCannotDeleteSelf = errors.New("cannot delete own account")
)

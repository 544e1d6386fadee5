package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Filichkin/SA-RAG/domain"
)

const (
	msgCodeSentEmail = "verification code sent to email"
	msgCodeSentSMS   = "verification code sent to phone"

	// ChannelEmail and ChannelSMS select the out-of-band delivery
	// transport for one-time codes.
	ChannelEmail = "email"
	ChannelSMS   = "sms"
)

// AuthConfig holds the tunables of the authentication flow
type AuthConfig struct {
	CodeLength     int
	CodeTTL        time.Duration
	PasswordMinLen int
	Channel        string
}

// AuthServiceImpl implements domain.AuthService
type AuthServiceImpl struct {
	userRepo        domain.UserRepository
	codeRepo        domain.TwoFactorCodeRepository
	passwordSvc     domain.PasswordService
	tokenSvc        domain.TokenService
	codeGen         domain.CodeGenerator
	notificationSvc domain.NotificationService
	throttle        domain.LoginThrottle
	clock           domain.Clock
	config          AuthConfig
}

// NewAuthService creates a new auth service. throttle may be nil, in
// which case login attempts are not rate limited.
func NewAuthService(
	userRepo domain.UserRepository,
	codeRepo domain.TwoFactorCodeRepository,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	codeGen domain.CodeGenerator,
	notificationSvc domain.NotificationService,
	throttle domain.LoginThrottle,
	clock domain.Clock,
	config AuthConfig,
) domain.AuthService {
	return &AuthServiceImpl{
		userRepo:        userRepo,
		codeRepo:        codeRepo,
		passwordSvc:     passwordSvc,
		tokenSvc:        tokenSvc,
		codeGen:         codeGen,
		notificationSvc: notificationSvc,
		throttle:        throttle,
		clock:           clock,
		config:          config,
	}
}

// Register implements domain.AuthService
func (s *AuthServiceImpl) Register(ctx context.Context, email, firstName, lastName, password string) (*domain.User, error) {
	existingUser, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existingUser != nil {
		return nil, domain.ErrUserAlreadyExists
	}

	if err := s.validatePassword(password, email); err != nil {
		return nil, err
	}

	hashedPassword, err := s.passwordSvc.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Email:        email,
		FirstName:    firstName,
		LastName:     lastName,
		PasswordHash: hashedPassword,
		TokenVersion: 1,
		IsActive:     true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Login implements domain.AuthService. A fresh login replaces any code
// issued by a previous attempt, so two codes are never valid at once.
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (*domain.LoginResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Same outcome as a wrong password, so callers can't probe
			// which addresses are registered.
			return nil, domain.ErrInvalidCredentials
		}
		// A storage fault must not look like bad credentials.
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if !user.IsActive {
		return nil, domain.ErrUserInactive
	}

	if !s.passwordSvc.Verify(user.PasswordHash, password) {
		return nil, domain.ErrInvalidCredentials
	}

	if s.throttle != nil {
		if err := s.throttle.Reserve(ctx, user.ID); err != nil {
			return nil, err
		}
	}

	code, err := s.codeGen.Generate()
	if err != nil {
		s.releaseThrottle(ctx, user.ID)
		return nil, fmt.Errorf("failed to generate code: %w", err)
	}

	twoFactorCode := &domain.TwoFactorCode{
		UserID:    user.ID,
		Code:      code,
		CreatedAt: s.clock.Now(),
	}
	if err := s.codeRepo.Replace(ctx, twoFactorCode); err != nil {
		s.releaseThrottle(ctx, user.ID)
		return nil, fmt.Errorf("failed to store code: %w", err)
	}

	tempToken, err := s.tokenSvc.GeneratePendingToken(user.ID)
	if err != nil {
		// Without a pending token the stored code is unreachable; undo it
		// just like a dispatch failure.
		if delErr := s.codeRepo.DeleteByUser(ctx, user.ID); delErr != nil {
			return nil, fmt.Errorf("failed to roll back code after token failure: %w", delErr)
		}
		s.releaseThrottle(ctx, user.ID)
		return nil, fmt.Errorf("failed to generate pending token: %w", err)
	}

	message, err := s.dispatchCode(user, code)
	if err != nil {
		// The caller must never be left holding a live code it cannot
		// retrieve: undo the stored code and fail the whole attempt.
		if delErr := s.codeRepo.DeleteByUser(ctx, user.ID); delErr != nil {
			return nil, fmt.Errorf("failed to roll back code after dispatch failure: %w", delErr)
		}
		s.releaseThrottle(ctx, user.ID)
		return nil, domain.ErrNotificationFailed
	}

	return &domain.LoginResult{
		Message:   message,
		TempToken: tempToken,
	}, nil
}

// VerifyCode implements domain.AuthService
func (s *AuthServiceImpl) VerifyCode(ctx context.Context, tempToken, code string) (*domain.VerifyResult, error) {
	if !isNumericCode(code, s.config.CodeLength) {
		return nil, domain.ErrValidation
	}

	claims, err := s.tokenSvc.ValidatePendingToken(tempToken)
	if err != nil {
		return nil, domain.ErrPendingTokenInvalid
	}

	twoFactorCode, err := s.codeRepo.FindUnused(ctx, claims.UserID, code)
	if err != nil {
		return nil, err
	}

	// Expiry is checked against CreatedAt, independently of the lookup.
	// An expired code stays unused; a later attempt with it still fails
	// here, not through the is_used flag.
	if s.clock.Now().After(twoFactorCode.CreatedAt.Add(s.config.CodeTTL)) {
		return nil, domain.ErrCodeExpired
	}

	// Of two concurrent verifies with the same code, only one passes
	// this conditional write.
	if err := s.codeRepo.MarkUsed(ctx, twoFactorCode.ID); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrPendingTokenInvalid
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	accessToken, err := s.tokenSvc.GenerateSessionToken(user.ID, user.TokenVersion)
	if err != nil {
		return nil, fmt.Errorf("failed to generate session token: %w", err)
	}

	return &domain.VerifyResult{
		AccessToken: accessToken,
		TokenType:   "bearer",
	}, nil
}

// Authenticate implements domain.AuthService. The token-version check
// runs on every call and is never cached across requests.
func (s *AuthServiceImpl) Authenticate(ctx context.Context, sessionToken string) (*domain.User, error) {
	claims, err := s.tokenSvc.ValidateSessionToken(sessionToken)
	if err != nil {
		return nil, domain.ErrUnauthenticated
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if !user.IsActive {
		return nil, domain.ErrUnauthenticated
	}

	if user.TokenVersion != claims.TokenVersion {
		return nil, domain.ErrUnauthenticated
	}

	return user, nil
}

// ChangePassword implements domain.AuthService
func (s *AuthServiceImpl) ChangePassword(ctx context.Context, userID uint, oldPassword, newPassword string) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if !s.passwordSvc.Verify(user.PasswordHash, oldPassword) {
		return domain.ErrInvalidCredentials
	}

	if err := s.validatePassword(newPassword, user.Email); err != nil {
		return err
	}

	newHash, err := s.passwordSvc.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	// Hash swap and version bump are one conditional write; a racing
	// change surfaces as ErrConcurrentUpdate, never a lost update.
	return s.userRepo.UpdatePassword(ctx, userID, newHash, user.TokenVersion)
}

// ResetPassword implements domain.AuthService. The new password and the
// version bump are committed before the email goes out; a failed send
// surfaces as ErrNotificationFailed and the client retries the reset.
func (s *AuthServiceImpl) ResetPassword(ctx context.Context, email string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	newPassword, err := s.passwordSvc.GenerateRandom()
	if err != nil {
		return fmt.Errorf("failed to generate password: %w", err)
	}

	newHash, err := s.passwordSvc.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, user.ID, newHash, user.TokenVersion); err != nil {
		return err
	}

	subject := "Password reset"
	body := fmt.Sprintf(
		"Hello, %s!\n\nYour password has been reset. Use the new password to sign in:\n\n%s\n\nAll of your active sessions have been terminated. We recommend changing this password after signing in.",
		user.FullName(), newPassword,
	)
	if err := s.notificationSvc.SendEmail(user.Email, subject, body); err != nil {
		return domain.ErrNotificationFailed
	}

	return nil
}

// Logout implements domain.AuthService
func (s *AuthServiceImpl) Logout(ctx context.Context, userID uint) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	err = s.userRepo.BumpTokenVersion(ctx, userID, user.TokenVersion)
	if err == domain.ErrConcurrentUpdate {
		// Someone else already moved the version; the outstanding
		// tokens are revoked either way.
		return nil
	}
	return err
}

// CleanupExpiredCodes implements domain.AuthService
func (s *AuthServiceImpl) CleanupExpiredCodes(ctx context.Context) (int64, error) {
	cutoff := s.clock.Now().Add(-s.config.CodeTTL)
	return s.codeRepo.DeleteExpired(ctx, cutoff)
}

// dispatchCode sends the one-time code over the configured channel and
// returns the user-facing message for the login response
func (s *AuthServiceImpl) dispatchCode(user *domain.User, code string) (string, error) {
	ttlMinutes := int(s.config.CodeTTL.Minutes())

	if s.config.Channel == ChannelSMS && user.Phone != "" {
		message := fmt.Sprintf("Your verification code is: %s. Valid for %d minutes.", code, ttlMinutes)
		if err := s.notificationSvc.SendSMS(user.Phone, message); err != nil {
			return "", err
		}
		return msgCodeSentSMS, nil
	}

	subject := "Login verification code"
	body := fmt.Sprintf(
		"Hello, %s!\n\nYour verification code is:\n\n%s\n\nThe code is valid for %d minutes. If you did not try to sign in, ignore this message.",
		user.FullName(), code, ttlMinutes,
	)
	if err := s.notificationSvc.SendEmail(user.Email, subject, body); err != nil {
		return "", err
	}
	return msgCodeSentEmail, nil
}

func (s *AuthServiceImpl) releaseThrottle(ctx context.Context, userID uint) {
	if s.throttle != nil {
		_ = s.throttle.Release(ctx, userID)
	}
}

// validatePassword applies the registration password policy
func (s *AuthServiceImpl) validatePassword(password, email string) error {
	if len(password) < s.config.PasswordMinLen {
		return domain.ErrPasswordPolicy
	}
	if email != "" && strings.Contains(password, email) {
		return domain.ErrPasswordPolicy
	}
	return nil
}

// isNumericCode reports whether the code has exactly the expected
// number of ASCII digits. Rejection happens before any storage lookup.
func isNumericCode(code string, length int) bool {
	if len(code) != length {
		return false
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

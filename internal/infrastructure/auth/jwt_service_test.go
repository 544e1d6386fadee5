package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/Filichkin/SA-RAG/domain"
)

func newTestJWTService() domain.TokenService {
	return NewJWTService("test-secret-key", "test-issuer", time.Hour, 10*time.Minute)
}

func TestJWTServiceImpl_SessionTokenRoundTrip(t *testing.T) {
	svc := newTestJWTService()

	token, err := svc.GenerateSessionToken(42, 5)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	claims, err := svc.ValidateSessionToken(token)
	if err != nil {
		t.Fatalf("failed to validate token: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("expected user 42, got %d", claims.UserID)
	}
	if claims.TokenVersion != 5 {
		t.Errorf("expected token version 5, got %d", claims.TokenVersion)
	}
	if claims.ExpiresAt <= claims.IssuedAt {
		t.Errorf("expiry %d not after issuance %d", claims.ExpiresAt, claims.IssuedAt)
	}
}

func TestJWTServiceImpl_PendingTokenRoundTrip(t *testing.T) {
	svc := newTestJWTService()

	token, err := svc.GeneratePendingToken(42)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	claims, err := svc.ValidatePendingToken(token)
	if err != nil {
		t.Fatalf("failed to validate token: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("expected user 42, got %d", claims.UserID)
	}
}

func TestJWTServiceImpl_TokenTypesAreNotInterchangeable(t *testing.T) {
	svc := newTestJWTService()

	sessionToken, err := svc.GenerateSessionToken(42, 1)
	if err != nil {
		t.Fatalf("failed to generate session token: %v", err)
	}
	pendingToken, err := svc.GeneratePendingToken(42)
	if err != nil {
		t.Fatalf("failed to generate pending token: %v", err)
	}

	if _, err := svc.ValidateSessionToken(pendingToken); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Errorf("pending token passed session validation: %v", err)
	}
	if _, err := svc.ValidatePendingToken(sessionToken); !errors.Is(err, domain.ErrPendingTokenInvalid) {
		t.Errorf("session token passed pending validation: %v", err)
	}
}

func TestJWTServiceImpl_RejectsInvalidTokens(t *testing.T) {
	svc := newTestJWTService()

	other := NewJWTService("another-secret", "test-issuer", time.Hour, 10*time.Minute)
	foreignToken, err := other.GenerateSessionToken(42, 1)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{"empty token", ""},
		{"garbage", "not.a.jwt"},
		{"wrong signing key", foreignToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.ValidateSessionToken(tt.token); !errors.Is(err, domain.ErrUnauthenticated) {
				t.Errorf("expected ErrUnauthenticated, got %v", err)
			}
			if _, err := svc.ValidatePendingToken(tt.token); !errors.Is(err, domain.ErrPendingTokenInvalid) {
				t.Errorf("expected ErrPendingTokenInvalid, got %v", err)
			}
		})
	}
}

func TestJWTServiceImpl_ExpiredTokensRejected(t *testing.T) {
	svc := NewJWTService("test-secret-key", "test-issuer", -time.Minute, -time.Minute)

	sessionToken, err := svc.GenerateSessionToken(42, 1)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	if _, err := svc.ValidateSessionToken(sessionToken); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Errorf("expected expired session token to be rejected, got %v", err)
	}

	pendingToken, err := svc.GeneratePendingToken(42)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	if _, err := svc.ValidatePendingToken(pendingToken); !errors.Is(err, domain.ErrPendingTokenInvalid) {
		t.Errorf("expected expired pending token to be rejected, got %v", err)
	}
}

func TestJWTServiceImpl_TokensAreUnique(t *testing.T) {
	svc := newTestJWTService()

	first, err := svc.GenerateSessionToken(42, 1)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	second, err := svc.GenerateSessionToken(42, 1)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	if first == second {
		t.Error("two tokens for the same user must differ through jti")
	}
}

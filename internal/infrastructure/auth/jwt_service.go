package auth

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Filichkin/SA-RAG/domain"
)

// Token type markers. A pending token must never pass for a session
// token, and vice versa.
const (
	tokenTypeSession = "session"
	tokenTypePending = "2fa_pending"
)

// JWTServiceImpl implements domain.TokenService
type JWTServiceImpl struct {
	secretKey  []byte
	issuer     string
	sessionTTL time.Duration
	pendingTTL time.Duration
}

// NewJWTService creates a new JWT service
func NewJWTService(secretKey string, issuer string, sessionTTL, pendingTTL time.Duration) domain.TokenService {
	return &JWTServiceImpl{
		secretKey:  []byte(secretKey),
		issuer:     issuer,
		sessionTTL: sessionTTL,
		pendingTTL: pendingTTL,
	}
}

// generateJTI creates a unique JWT ID
func (j *JWTServiceImpl) generateJTI() string {
	bytes := make([]byte, 16)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

// GenerateSessionToken implements domain.TokenService. The token
// version at issuance is embedded in the claims; verification compares
// it to the user record, which is how revocation works without any
// server-side token storage.
func (j *JWTServiceImpl) GenerateSessionToken(userID uint, tokenVersion int) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":       userID,
		"token_version": tokenVersion,
		"token_type":    tokenTypeSession,
		"iss":           j.issuer,
		"iat":           now.Unix(),
		"exp":           now.Add(j.sessionTTL).Unix(),
		"jti":           j.generateJTI(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.secretKey)
}

// GeneratePendingToken implements domain.TokenService
func (j *JWTServiceImpl) GeneratePendingToken(userID uint) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":    userID,
		"token_type": tokenTypePending,
		"iss":        j.issuer,
		"iat":        now.Unix(),
		"exp":        now.Add(j.pendingTTL).Unix(),
		"jti":        j.generateJTI(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.secretKey)
}

// ValidateSessionToken implements domain.TokenService
func (j *JWTServiceImpl) ValidateSessionToken(tokenString string) (*domain.SessionClaims, error) {
	claims, err := j.parseToken(tokenString, tokenTypeSession)
	if err != nil {
		return nil, domain.ErrUnauthenticated
	}

	userID, ok := claims["user_id"].(float64)
	if !ok {
		return nil, domain.ErrUnauthenticated
	}

	tokenVersion, ok := claims["token_version"].(float64)
	if !ok {
		return nil, domain.ErrUnauthenticated
	}

	iat, _ := claims["iat"].(float64)
	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil, domain.ErrUnauthenticated
	}

	if time.Unix(int64(exp), 0).Before(time.Now()) {
		return nil, domain.ErrUnauthenticated
	}

	return &domain.SessionClaims{
		UserID:       uint(userID),
		TokenVersion: int(tokenVersion),
		IssuedAt:     int64(iat),
		ExpiresAt:    int64(exp),
	}, nil
}

// ValidatePendingToken implements domain.TokenService
func (j *JWTServiceImpl) ValidatePendingToken(tokenString string) (*domain.PendingClaims, error) {
	claims, err := j.parseToken(tokenString, tokenTypePending)
	if err != nil {
		return nil, domain.ErrPendingTokenInvalid
	}

	userID, ok := claims["user_id"].(float64)
	if !ok {
		return nil, domain.ErrPendingTokenInvalid
	}

	iat, _ := claims["iat"].(float64)
	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil, domain.ErrPendingTokenInvalid
	}

	// Expiry is enforced both by the library during parsing and here
	// against the embedded claim.
	if time.Unix(int64(exp), 0).Before(time.Now()) {
		return nil, domain.ErrPendingTokenInvalid
	}

	return &domain.PendingClaims{
		UserID:    uint(userID),
		IssuedAt:  int64(iat),
		ExpiresAt: int64(exp),
	}, nil
}

// parseToken validates the signature and the token type marker
func (j *JWTServiceImpl) parseToken(tokenString, wantType string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrTokenMalformed
		}
		return j.secretKey, nil
	})

	if err != nil || !token.Valid {
		return nil, domain.ErrTokenMalformed
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}

	tokenType, ok := claims["token_type"].(string)
	if !ok || tokenType != wantType {
		return nil, domain.ErrTokenMalformed
	}

	return claims, nil
}

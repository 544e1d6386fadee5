package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Filichkin/SA-RAG/domain"
	"github.com/Filichkin/SA-RAG/internal/http/middleware"
	"github.com/Filichkin/SA-RAG/internal/mocks"
)

func setupAuthRouter(authSvc domain.AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAuthHandlers(authSvc)

	r := gin.New()
	r.POST("/auth/register", h.Register)
	r.POST("/auth/2fa/login", h.TwoFactorLogin)
	r.POST("/auth/2fa/verify-code", h.VerifyCode)
	r.POST("/auth/reset-password", h.ResetPassword)
	r.GET("/auth/me", middleware.AuthMiddleware(authSvc), h.Me)
	r.POST("/auth/logout", middleware.AuthMiddleware(authSvc), h.Logout)
	return r
}

func doJSON(r *gin.Engine, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body %q: %v", w.Body.String(), err)
	}
	return body
}

func TestAuthHandlers_Register(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    interface{}
		setupMocks     func(authSvc *mocks.MockAuthService)
		expectedStatus int
		validateBody   func(t *testing.T, body map[string]interface{})
	}{
		{
			name: "successful registration",
			requestBody: RegisterRequest{
				Email: "new@example.com", FirstName: "New", LastName: "User", Password: "securepass123",
			},
			expectedStatus: http.StatusCreated,
			validateBody: func(t *testing.T, body map[string]interface{}) {
				if body["email"] != "new@example.com" {
					t.Errorf("unexpected email %v", body["email"])
				}
				// The hash must never leave the server.
				if _, ok := body["password_hash"]; ok {
					t.Error("response leaks the password hash")
				}
				if _, ok := body["hashed_password"]; ok {
					t.Error("response leaks the password hash")
				}
			},
		},
		{
			name: "duplicate email",
			requestBody: RegisterRequest{
				Email: "dup@example.com", FirstName: "New", LastName: "User", Password: "securepass123",
			},
			setupMocks: func(authSvc *mocks.MockAuthService) {
				authSvc.RegisterFunc = func(ctx context.Context, email, firstName, lastName, password string) (*domain.User, error) {
					return nil, domain.ErrUserAlreadyExists
				}
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "weak password",
			requestBody: RegisterRequest{
				Email: "new@example.com", FirstName: "New", LastName: "User", Password: "short",
			},
			setupMocks: func(authSvc *mocks.MockAuthService) {
				authSvc.RegisterFunc = func(ctx context.Context, email, firstName, lastName, password string) (*domain.User, error) {
					return nil, domain.ErrPasswordPolicy
				}
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "malformed email",
			requestBody:    map[string]string{"email": "not-an-email", "first_name": "a", "last_name": "b", "password": "securepass123"},
			expectedStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authSvc := mocks.NewMockAuthService()
			if tt.setupMocks != nil {
				tt.setupMocks(authSvc)
			}
			r := setupAuthRouter(authSvc)

			w := doJSON(r, http.MethodPost, "/auth/register", tt.requestBody, nil)

			if w.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
			if tt.validateBody != nil {
				tt.validateBody(t, decodeBody(t, w))
			}
		})
	}
}

func TestAuthHandlers_TwoFactorLogin(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    interface{}
		loginError     error
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "successful login returns the pending token",
			requestBody:    LoginRequest{Email: "user@example.com", Password: "secret-pass-1"},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "unknown email",
			requestBody:    LoginRequest{Email: "nobody@example.com", Password: "secret-pass-1"},
			loginError:     domain.ErrInvalidCredentials,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Invalid credentials",
		},
		{
			name:           "wrong password",
			requestBody:    LoginRequest{Email: "user@example.com", Password: "wrong"},
			loginError:     domain.ErrInvalidCredentials,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Invalid credentials",
		},
		{
			name:           "inactive account",
			requestBody:    LoginRequest{Email: "user@example.com", Password: "secret-pass-1"},
			loginError:     domain.ErrUserInactive,
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "throttled",
			requestBody:    LoginRequest{Email: "user@example.com", Password: "secret-pass-1"},
			loginError:     domain.ErrLoginThrottled,
			expectedStatus: http.StatusTooManyRequests,
		},
		{
			name:           "code dispatch failure",
			requestBody:    LoginRequest{Email: "user@example.com", Password: "secret-pass-1"},
			loginError:     domain.ErrNotificationFailed,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing password",
			requestBody:    map[string]string{"email": "user@example.com"},
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name:           "storage fault is a server error",
			requestBody:    LoginRequest{Email: "user@example.com", Password: "secret-pass-1"},
			loginError:     errors.New("storage unavailable"),
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authSvc := mocks.NewMockAuthService()
			if tt.loginError != nil {
				authSvc.LoginFunc = func(ctx context.Context, email, password string) (*domain.LoginResult, error) {
					return nil, tt.loginError
				}
			}
			r := setupAuthRouter(authSvc)

			w := doJSON(r, http.MethodPost, "/auth/2fa/login", tt.requestBody, nil)

			if w.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d: %s", tt.expectedStatus, w.Code, w.Body.String())
			}

			body := decodeBody(t, w)
			if tt.expectedStatus == http.StatusOK {
				if body["temp_token"] == "" {
					t.Error("expected a temp token in the response")
				}
				if body["message"] == "" {
					t.Error("expected a message in the response")
				}
			}
			if tt.expectedError != "" && body["error"] != tt.expectedError {
				t.Errorf("expected error %q, got %v", tt.expectedError, body["error"])
			}
		})
	}
}

func TestAuthHandlers_VerifyCode(t *testing.T) {
	tests := []struct {
		name           string
		tempToken      string
		requestBody    interface{}
		verifyError    error
		expectedStatus int
	}{
		{
			name:           "successful verification issues the session token",
			tempToken:      "pending_token_1",
			requestBody:    VerifyCodeRequest{Code: "042137"},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing temp token header",
			requestBody:    VerifyCodeRequest{Code: "042137"},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "code too short fails binding",
			tempToken:      "pending_token_1",
			requestBody:    map[string]string{"code": "0421"},
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name:           "non-numeric code fails binding",
			tempToken:      "pending_token_1",
			requestBody:    map[string]string{"code": "04213a"},
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name:           "expired temp token",
			tempToken:      "expired",
			requestBody:    VerifyCodeRequest{Code: "042137"},
			verifyError:    domain.ErrPendingTokenInvalid,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "wrong code",
			tempToken:      "pending_token_1",
			requestBody:    VerifyCodeRequest{Code: "999999"},
			verifyError:    domain.ErrCodeInvalid,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "expired code",
			tempToken:      "pending_token_1",
			requestBody:    VerifyCodeRequest{Code: "042137"},
			verifyError:    domain.ErrCodeExpired,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authSvc := mocks.NewMockAuthService()
			if tt.verifyError != nil {
				authSvc.VerifyCodeFunc = func(ctx context.Context, tempToken, code string) (*domain.VerifyResult, error) {
					return nil, tt.verifyError
				}
			}
			r := setupAuthRouter(authSvc)

			headers := map[string]string{}
			if tt.tempToken != "" {
				headers["X-Temp-Token"] = tt.tempToken
			}
			w := doJSON(r, http.MethodPost, "/auth/2fa/verify-code", tt.requestBody, headers)

			if w.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
			if tt.expectedStatus == http.StatusOK {
				body := decodeBody(t, w)
				if body["access_token"] == "" {
					t.Error("expected an access token")
				}
				if body["token_type"] != "bearer" {
					t.Errorf("expected bearer token type, got %v", body["token_type"])
				}
			}
		})
	}
}

func TestAuthHandlers_WrongAndExpiredCodeLookDifferent(t *testing.T) {
	// Same status, distinct messages: the client can tell a typo from a
	// stale code.
	responses := map[string]string{}
	for name, verifyErr := range map[string]error{
		"wrong":   domain.ErrCodeInvalid,
		"expired": domain.ErrCodeExpired,
	} {
		authSvc := mocks.NewMockAuthService()
		authSvc.VerifyCodeFunc = func(ctx context.Context, tempToken, code string) (*domain.VerifyResult, error) {
			return nil, verifyErr
		}
		r := setupAuthRouter(authSvc)
		w := doJSON(r, http.MethodPost, "/auth/2fa/verify-code", VerifyCodeRequest{Code: "042137"},
			map[string]string{"X-Temp-Token": "pending_token_1"})
		if w.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", name, w.Code)
		}
		responses[name] = decodeBody(t, w)["error"].(string)
	}
	if responses["wrong"] == responses["expired"] {
		t.Errorf("wrong and expired codes produce the same message %q", responses["wrong"])
	}
}

func TestAuthHandlers_Me(t *testing.T) {
	user := &domain.User{ID: 7, Email: "user@example.com", TokenVersion: 3, IsActive: true}

	t.Run("authenticated", func(t *testing.T) {
		authSvc := mocks.NewMockAuthService()
		authSvc.AuthenticateFunc = func(ctx context.Context, token string) (*domain.User, error) {
			if token == "session_token_7_v3" {
				return user, nil
			}
			return nil, domain.ErrUnauthenticated
		}
		r := setupAuthRouter(authSvc)

		w := doJSON(r, http.MethodGet, "/auth/me", nil, map[string]string{"Authorization": "Bearer session_token_7_v3"})
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		body := decodeBody(t, w)
		if body["email"] != "user@example.com" {
			t.Errorf("unexpected email %v", body["email"])
		}
	})

	t.Run("revoked token", func(t *testing.T) {
		authSvc := mocks.NewMockAuthService()
		r := setupAuthRouter(authSvc)

		w := doJSON(r, http.MethodGet, "/auth/me", nil, map[string]string{"Authorization": "Bearer session_token_7_v2"})
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})
}

func TestAuthHandlers_Logout(t *testing.T) {
	user := &domain.User{ID: 7, Email: "user@example.com", TokenVersion: 3, IsActive: true}

	authSvc := mocks.NewMockAuthService()
	authSvc.AuthenticateFunc = func(ctx context.Context, token string) (*domain.User, error) {
		return user, nil
	}
	var loggedOut uint
	authSvc.LogoutFunc = func(ctx context.Context, userID uint) error {
		loggedOut = userID
		return nil
	}
	r := setupAuthRouter(authSvc)

	w := doJSON(r, http.MethodPost, "/auth/logout", nil, map[string]string{"Authorization": "Bearer session_token_7_v3"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if loggedOut != 7 {
		t.Errorf("expected logout for user 7, got %d", loggedOut)
	}
}

func TestAuthHandlers_ResetPassword(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    interface{}
		resetError     error
		expectedStatus int
	}{
		{
			name:           "successful reset",
			requestBody:    ResetPasswordRequest{Email: "user@example.com"},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "unknown email",
			requestBody:    ResetPasswordRequest{Email: "nobody@example.com"},
			resetError:     domain.ErrUserNotFound,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "email send failure",
			requestBody:    ResetPasswordRequest{Email: "user@example.com"},
			resetError:     domain.ErrNotificationFailed,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "malformed email",
			requestBody:    map[string]string{"email": "not-an-email"},
			expectedStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authSvc := mocks.NewMockAuthService()
			if tt.resetError != nil {
				authSvc.ResetPasswordFunc = func(ctx context.Context, email string) error {
					return tt.resetError
				}
			}
			r := setupAuthRouter(authSvc)

			w := doJSON(r, http.MethodPost, "/auth/reset-password", tt.requestBody, nil)
			if w.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

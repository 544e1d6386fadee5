package domain

import (
	"testing"
	"time"
)

func TestUser_IsElevated(t *testing.T) {
	tests := []struct {
		name     string
		user     *User
		expected bool
	}{
		{
			name: "superuser only",
			user: &User{
				ID:          1,
				Email:       "root@example.com",
				IsSuperuser: true,
			},
			expected: true,
		},
		{
			name: "administrator only",
			user: &User{
				ID:              2,
				Email:           "admin@example.com",
				IsAdministrator: true,
			},
			expected: true,
		},
		{
			name: "both roles at once",
			user: &User{
				ID:              3,
				Email:           "boss@example.com",
				IsSuperuser:     true,
				IsAdministrator: true,
			},
			expected: true,
		},
		{
			name: "domain roles do not elevate",
			user: &User{
				ID:          4,
				Email:       "driver@example.com",
				IsDriver:    true,
				IsAssistant: true,
			},
			expected: false,
		},
		{
			name:     "plain user",
			user:     &User{ID: 5, Email: "user@example.com"},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.user.IsElevated(); got != tt.expected {
				t.Errorf("IsElevated() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestUser_FullName(t *testing.T) {
	tests := []struct {
		name      string
		firstName string
		lastName  string
		expected  string
	}{
		{"both names", "Alex", "Filichkin", "Alex Filichkin"},
		{"first name only", "Alex", "", "Alex"},
		{"last name only", "", "Filichkin", "Filichkin"},
		{"no names", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := &User{FirstName: tt.firstName, LastName: tt.lastName}
			if got := u.FullName(); got != tt.expected {
				t.Errorf("FullName() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestTwoFactorCode_Lifecycle(t *testing.T) {
	code := &TwoFactorCode{
		UserID:    1,
		Code:      "042137",
		CreatedAt: time.Now(),
	}

	if code.IsUsed {
		t.Error("fresh code should not be marked used")
	}
	if len(code.Code) != 6 {
		t.Errorf("expected 6-digit code, got %d characters", len(code.Code))
	}

	code.IsUsed = true
	if !code.IsUsed {
		t.Error("code should stay marked used once consumed")
	}
}

package notifications

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Unconfigured senders fall back to logging so local development works
// without SMTP or Twilio credentials.
func TestServiceImpl_MockModeWithoutCredentials(t *testing.T) {
	svc := NewService(
		NewSMTPSender("", 0, "", "", ""),
		NewTwilioSender("", "", ""),
	)

	require.NoError(t, svc.SendEmail("user@example.com", "subject", "body"))
	require.NoError(t, svc.SendSMS("+15550100007", "your code is 042137"))
}

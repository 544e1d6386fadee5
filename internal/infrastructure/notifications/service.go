package notifications

import (
	"github.com/Filichkin/SA-RAG/domain"
)

// ServiceImpl implements domain.NotificationService by routing email to
// SMTP and SMS to Twilio
type ServiceImpl struct {
	email *SMTPSender
	sms   *TwilioSender
}

// NewService creates a new notification service
func NewService(email *SMTPSender, sms *TwilioSender) domain.NotificationService {
	return &ServiceImpl{
		email: email,
		sms:   sms,
	}
}

// SendEmail implements domain.NotificationService
func (s *ServiceImpl) SendEmail(to, subject, body string) error {
	return s.email.Send(to, subject, body)
}

// SendSMS implements domain.NotificationService
func (s *ServiceImpl) SendSMS(to, message string) error {
	return s.sms.Send(to, message)
}

// Compile-time interface compliance verification
var _ domain.NotificationService = (*ServiceImpl)(nil)

package notifications

import (
	"fmt"
	"log"

	"gopkg.in/gomail.v2"
)

// SMTPSender delivers email messages over SMTP
type SMTPSender struct {
	host     string
	port     int
	username string
	password string
	from     string
}

// NewSMTPSender creates a new SMTP email sender
func NewSMTPSender(host string, port int, username, password, from string) *SMTPSender {
	return &SMTPSender{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

// Send delivers a single plain-text email
func (s *SMTPSender) Send(to, subject, body string) error {
	// If the SMTP host is not configured, log instead of sending
	if s.host == "" {
		log.Printf("[MOCK EMAIL] To: %s, Subject: %s", to, subject)
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.host, s.port, s.username, s.password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// services/email_service.go
package services

import (
	"strings"

	"gopkg.in/gomail.v2"

	"github.com/soundcrate/soundcrate_backend/config"
)

// EmailSender delivers a single transactional email. The sender identity is
// fixed by configuration, so callers only supply recipient, subject and body.
type EmailSender interface {
	Send(to, subject, htmlBody string) error
}

// SendError is returned when the mail collaborator rejects a message. It
// keeps the collaborator's individual error entries so callers can join them
// into one human-readable string.
type SendError struct {
	Errors []string
}

func (e *SendError) Error() string {
	return strings.Join(e.Errors, "; ")
}

// SMTPEmailSender sends mail over SMTP using gomail
type SMTPEmailSender struct {
	cfg *config.EmailConfig
}

func NewSMTPEmailSender(cfg *config.EmailConfig) *SMTPEmailSender {
	return &SMTPEmailSender{cfg: cfg}
}

func (s *SMTPEmailSender) Send(to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.Sender)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)

	if err := d.DialAndSend(m); err != nil {
		return &SendError{Errors: []string{err.Error()}}
	}
	return nil
}

// sendErrorMessage flattens a send failure into a single message string
func sendErrorMessage(err error) string {
	if se, ok := err.(*SendError); ok {
		return strings.Join(se.Errors, "; ")
	}
	return err.Error()
}

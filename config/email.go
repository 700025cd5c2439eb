package config

import (
	"log"
	"os"
	"strconv"
)

// EmailConfig holds the SMTP settings and the verified sender identity for
// outbound transactional email. It is loaded once at startup and passed into
// the services that send mail, so tests can substitute a fake sender.
type EmailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Sender   string
}

// LoadEmailConfig reads the SMTP configuration from environment variables.
// A missing value is a fatal startup condition, not a per-request error.
func LoadEmailConfig() *EmailConfig {
	host := os.Getenv("SMTP_HOST")
	portStr := os.Getenv("SMTP_PORT")
	username := os.Getenv("SMTP_USER")
	password := os.Getenv("SMTP_PASS")
	sender := os.Getenv("SMTP_SENDER")
	if sender == "" {
		sender = os.Getenv("FROM_EMAIL")
	}

	if host == "" || portStr == "" || username == "" || password == "" || sender == "" {
		log.Fatal("SMTP configuration is incomplete. Set SMTP_HOST, SMTP_PORT, SMTP_USER, SMTP_PASS and SMTP_SENDER")
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		log.Fatalf("Invalid SMTP port %q: %v", portStr, err)
	}

	return &EmailConfig{
		Host:     host,
		Port:     port,
		Username: username,
		Password: password,
		Sender:   sender,
	}
}

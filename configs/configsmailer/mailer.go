package configsmailer

import (
	"fmt"
	"net/smtp"
	"os"
)

// Settings holds the SMTP transport configuration.
type Settings struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

// FromEnv builds mailer settings from the environment.
func FromEnv() Settings {
	s := Settings{
		Host:     getenv("MAIL_HOST", "smtp.zoho.com"),
		Port:     getenv("MAIL_PORT", "587"),
		Username: os.Getenv("MAIL_USERNAME"),
		Password: os.Getenv("MAIL_PASSWORD"),
	}
	s.From = getenv("MAIL_FROM", s.Username)
	return s
}

// Send delivers a single HTML mail over SMTP with PLAIN auth.
func Send(s Settings, to, subject, html string) error {
	msg := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
		s.From, to, subject, html,
	)
	auth := smtp.PlainAuth("", s.Username, s.Password, s.Host)
	return smtp.SendMail(s.Host+":"+s.Port, auth, s.From, []string{to}, []byte(msg))
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

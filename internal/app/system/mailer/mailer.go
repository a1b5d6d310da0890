// internal/app/system/mailer/mailer.go

// Package mailer sends transactional email over SMTP. When no SMTP host is
// configured the mailer logs and drops messages so local development works
// without a mail server.
package mailer

import (
	"fmt"
	"net/smtp"
	"strings"

	"go.uber.org/zap"
)

// Email is a single outbound message.
type Email struct {
	To      string
	Subject string
	Body    string
}

// Mailer delivers Email values. Implementations must be safe for concurrent use.
type Mailer interface {
	Send(email Email) error
}

// Config holds SMTP connection settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// New returns an SMTP mailer, or a logging no-op when Host is empty.
func New(cfg Config, logger *zap.Logger) Mailer {
	if strings.TrimSpace(cfg.Host) == "" {
		logger.Info("smtp not configured; outbound mail will be dropped")
		return &nopMailer{log: logger}
	}
	return &smtpMailer{cfg: cfg, log: logger}
}

type smtpMailer struct {
	cfg Config
	log *zap.Logger
}

func (m *smtpMailer) Send(email Email) error {
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	msg := strings.Join([]string{
		"From: " + m.cfg.From,
		"To: " + email.To,
		"Subject: " + email.Subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		email.Body,
	}, "\r\n")

	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{email.To}, []byte(msg)); err != nil {
		return fmt.Errorf("send mail to %s: %w", email.To, err)
	}
	m.log.Debug("mail sent", zap.String("to", email.To), zap.String("subject", email.Subject))
	return nil
}

type nopMailer struct {
	log *zap.Logger
}

func (m *nopMailer) Send(email Email) error {
	m.log.Debug("mail dropped (smtp not configured)",
		zap.String("to", email.To), zap.String("subject", email.Subject))
	return nil
}

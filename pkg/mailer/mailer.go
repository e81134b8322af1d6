package mailer

import (
	"fmt"
	"net/smtp"
	"strings"

	"go.uber.org/zap"

	"github.com/prevue-ai/interview-server/pkg/config"
)

// Mailer sends transactional email over SMTP. When no SMTP host is
// configured, sends are logged and dropped so local development does not
// need a mail relay.
type Mailer struct {
	cfg    *config.SMTPConfig
	logger *zap.Logger
}

// New creates a mailer from config
func New(cfg *config.SMTPConfig, logger *zap.Logger) *Mailer {
	return &Mailer{cfg: cfg, logger: logger}
}

// Configured reports whether an SMTP relay is set up
func (m *Mailer) Configured() bool {
	return m.cfg.Host != ""
}

// Send delivers a plain-text email to one recipient
func (m *Mailer) Send(to, subject, body string) error {
	if !m.Configured() {
		m.logger.Info("smtp not configured, dropping email",
			zap.String("to", to),
			zap.String("subject", subject))
		return nil
	}

	msg := strings.Join([]string{
		"From: " + m.cfg.From,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		body,
	}, "\r\n")

	addr := fmt.Sprintf("%s:%s", m.cfg.Host, m.cfg.Port)
	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

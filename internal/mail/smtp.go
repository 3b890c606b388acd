package mail

import (
	"context"
	"fmt"
	"net/smtp"

	"go.uber.org/zap"
)

// SMTPMailer sends mail through a plain SMTP relay with AUTH PLAIN.
type SMTPMailer struct {
	host     string
	port     int
	username string
	password string
	fromName string
	logger   *zap.Logger

	// sendMail is swappable for tests
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTPMailer creates a mailer for the given relay. The authenticated
// user is also the envelope sender.
func NewSMTPMailer(host string, port int, username, password, fromName string, logger *zap.Logger) *SMTPMailer {
	return &SMTPMailer{
		host:     host,
		port:     port,
		username: username,
		password: password,
		fromName: fromName,
		logger:   logger,
		sendMail: smtp.SendMail,
	}
}

// Send delivers the message. net/smtp offers no cancellation, so the
// context is only checked before dialing.
func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(msg.To) == 0 {
		return fmt.Errorf("message has no recipients")
	}

	raw := buildMIME(m.fromName, m.username, msg)
	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	auth := smtp.PlainAuth("", m.username, m.password, m.host)

	if err := m.sendMail(addr, auth, m.username, msg.To, raw); err != nil {
		return fmt.Errorf("smtp delivery via %s failed: %w", addr, err)
	}

	m.logger.Info("Email sent",
		zap.String("transport", "smtp"),
		zap.Strings("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.Int("attachments", len(msg.Attachments)))
	return nil
}

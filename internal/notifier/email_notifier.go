package notifier

import (
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"github.com/aleister1102/careerwatch/internal/config"
	"github.com/aleister1102/careerwatch/internal/errorwrapper"
	"github.com/aleister1102/careerwatch/internal/models"
	"github.com/rs/zerolog"
)

// Notifier delivers one digest message per run covering all eligible sources.
type Notifier interface {
	Notify(records []models.ChangeRecord) error
}

// sendMailFunc matches smtp.SendMail, injectable for tests.
type sendMailFunc func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error

// EmailNotifier sends the digest over SMTP with STARTTLS and plain auth.
type EmailNotifier struct {
	cfg      config.NotificationConfig
	logger   zerolog.Logger
	sendMail sendMailFunc
}

// NewEmailNotifier creates a new EmailNotifier.
func NewEmailNotifier(cfg config.NotificationConfig, logger zerolog.Logger) *EmailNotifier {
	return &EmailNotifier{
		cfg:      cfg,
		logger:   logger.With().Str("component", "EmailNotifier").Logger(),
		sendMail: smtp.SendMail,
	}
}

// Notify composes and sends the digest covering all given change records.
// Incomplete credentials or an empty recipient list make this a no-op
// failure: logged, returned as a NotificationError, never fatal to the run.
func (en *EmailNotifier) Notify(records []models.ChangeRecord) error {
	if len(records) == 0 {
		return nil
	}

	if !en.cfg.HasCredentials() {
		en.logger.Warn().Msg("Mail configuration incomplete, skipping digest")
		return errorwrapper.NewNotificationError("mail configuration incomplete", errorwrapper.ErrIncompleteCredentials)
	}

	recipients := en.cfg.Recipients()
	if len(recipients) == 0 {
		en.logger.Warn().Msg("No recipients configured, skipping digest")
		return errorwrapper.NewNotificationError("no recipients configured", errorwrapper.ErrNoRecipients)
	}

	subject := BuildDigestSubject(records)
	body := BuildDigestBody(records, time.Now())
	message := buildMessage(en.cfg.SenderEmail, recipients, subject, body)

	addr := fmt.Sprintf("%s:%d", en.cfg.SMTPHost, en.cfg.SMTPPort)
	auth := smtp.PlainAuth("", en.cfg.SenderEmail, en.cfg.SenderPassword, en.cfg.SMTPHost)

	if err := en.sendMail(addr, auth, en.cfg.SenderEmail, recipients, message); err != nil {
		en.logger.Error().Err(err).Str("smtp_addr", addr).Msg("Failed to send digest")
		return errorwrapper.NewNotificationError("smtp delivery failed", err)
	}

	en.logger.Info().
		Int("sources", len(records)).
		Int("recipients", len(recipients)).
		Msg("Digest sent")
	return nil
}

// buildMessage assembles the RFC 5322 message bytes.
func buildMessage(from string, to []string, subject, body string) []byte {
	var msg strings.Builder
	msg.WriteString("From: " + from + "\r\n")
	msg.WriteString("To: " + strings.Join(to, ", ") + "\r\n")
	msg.WriteString("Subject: " + subject + "\r\n")
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)
	return []byte(msg.String())
}

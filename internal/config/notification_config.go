package config

import "strings"

// NotificationConfig defines configuration for the email digest. The sender
// password is never read from the config file; it comes from the environment
// (SENDER_PASSWORD) and is applied by the loader.
type NotificationConfig struct {
	SMTPHost        string `json:"smtp_host,omitempty" yaml:"smtp_host,omitempty"`
	SMTPPort        int    `json:"smtp_port,omitempty" yaml:"smtp_port,omitempty" validate:"omitempty,min=1,max=65535"`
	SenderEmail     string `json:"sender_email,omitempty" yaml:"sender_email,omitempty" validate:"omitempty,email"`
	SenderPassword  string `json:"-" yaml:"-"`
	RecipientEmails string `json:"recipient_emails,omitempty" yaml:"recipient_emails,omitempty"`
	NotifyPolicy    string `json:"notify_policy,omitempty" yaml:"notify_policy,omitempty" validate:"omitempty,notifypolicy"`
}

// NewDefaultNotificationConfig creates default notification configuration
func NewDefaultNotificationConfig() NotificationConfig {
	return NotificationConfig{
		SMTPHost:        DefaultSMTPHost,
		SMTPPort:        DefaultSMTPPort,
		SenderEmail:     "",
		SenderPassword:  "",
		RecipientEmails: "",
		NotifyPolicy:    DefaultNotifyPolicy,
	}
}

// Recipients parses the comma-separated recipient list, dropping empty entries.
func (nc NotificationConfig) Recipients() []string {
	var recipients []string
	for _, raw := range strings.Split(nc.RecipientEmails, ",") {
		if addr := strings.TrimSpace(raw); addr != "" {
			recipients = append(recipients, addr)
		}
	}
	return recipients
}

// HasCredentials reports whether the transport has everything it needs to send.
func (nc NotificationConfig) HasCredentials() bool {
	return nc.SMTPHost != "" && nc.SMTPPort > 0 && nc.SenderEmail != "" && nc.SenderPassword != ""
}

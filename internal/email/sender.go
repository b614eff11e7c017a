// Package email renders and delivers transactional emails over SMTP.
package email

import (
	"context"

	"lead_management_backend/platform/config"
)

// Sender delivers transactional emails.
type Sender interface {
	// SendLeadAssignedEmail tells a seller they have a new lead.
	SendLeadAssignedEmail(ctx context.Context, toEmail, sellerName, leadName, businessLine, leadURL string) error
}

// NoopSender is used when email delivery is not configured.
type NoopSender struct{}

func (NoopSender) SendLeadAssignedEmail(ctx context.Context, toEmail, sellerName, leadName, businessLine, leadURL string) error {
	return nil
}

// NewSender builds a Sender from configuration. Without SMTP settings it
// returns a NoopSender so callers never need a nil check.
func NewSender(cfg config.EmailConfig) (Sender, error) {
	if !cfg.GetEmailEnabled() {
		return NoopSender{}, nil
	}

	return NewSMTPSender(
		cfg.GetSMTPHost(),
		cfg.GetSMTPPort(),
		cfg.GetSMTPUsername(),
		cfg.GetSMTPPassword(),
		cfg.GetEmailFromAddress(),
		cfg.GetEmailFromName(),
	), nil
}

package email

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/rs/zerolog"
)

// Provider names accepted by NewMailer
const (
	ProviderSMTP     = "smtp"
	ProviderSendGrid = "sendgrid"
	ProviderLog      = "log"
)

// Message is a single outbound HTML email
type Message struct {
	From     mail.Address
	To       []string
	ReplyTo  string
	Subject  string
	HTMLBody string
}

// Validate checks that the message can be handed to a transport
func (m *Message) Validate() error {
	if m.From.Address == "" {
		return fmt.Errorf("sender address is required")
	}
	if len(m.To) == 0 {
		return fmt.Errorf("at least one recipient is required")
	}
	for _, to := range m.To {
		if _, err := mail.ParseAddress(to); err != nil {
			return fmt.Errorf("invalid recipient %q: %w", to, err)
		}
	}
	if m.ReplyTo != "" {
		if _, err := mail.ParseAddress(m.ReplyTo); err != nil {
			return fmt.Errorf("invalid reply-to %q: %w", m.ReplyTo, err)
		}
	}
	if strings.ContainsAny(m.Subject, "\r\n") {
		return fmt.Errorf("subject must be a single line")
	}
	return nil
}

// Mailer delivers messages through some transport
type Mailer interface {
	Send(ctx context.Context, msg *Message) error
}

// Config selects and configures a transport
type Config struct {
	Provider       string
	SMTP           SMTPConfig
	SendGridAPIKey string
}

// NewMailer builds the transport named by config.Provider.
// SMTP without credentials falls back to logging the message.
func NewMailer(config Config, logger zerolog.Logger) (Mailer, error) {
	switch strings.ToLower(config.Provider) {
	case ProviderSMTP, "":
		if config.SMTP.Username == "" || config.SMTP.Password == "" {
			logger.Warn().Msg("SMTP credentials not configured - outbound mail will only be logged")
			return NewLogMailer(logger), nil
		}
		return NewSMTPMailer(config.SMTP, logger), nil
	case ProviderSendGrid:
		if config.SendGridAPIKey == "" {
			return nil, fmt.Errorf("sendgrid api key is required")
		}
		return NewSendGridMailer(config.SendGridAPIKey), nil
	case ProviderLog:
		return NewLogMailer(logger), nil
	default:
		return nil, fmt.Errorf("unknown mail provider %q", config.Provider)
	}
}

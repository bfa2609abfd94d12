package email

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
)

// LogMailer writes messages to the log instead of sending them
type LogMailer struct {
	logger zerolog.Logger
}

// NewLogMailer creates a new LogMailer
func NewLogMailer(logger zerolog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

// Send logs the envelope of msg
func (l *LogMailer) Send(_ context.Context, msg *Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	l.logger.Info().
		Str("from", msg.From.String()).
		Str("to", strings.Join(msg.To, ", ")).
		Str("replyTo", msg.ReplyTo).
		Str("subject", msg.Subject).
		Int("bodyBytes", len(msg.HTMLBody)).
		Msg("Mail transport disabled - message logged instead of sent")
	return nil
}

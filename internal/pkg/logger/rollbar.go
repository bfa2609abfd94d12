package logger

import (
	"github.com/rollbar/rollbar-go"
	"github.com/rs/zerolog"
)

// RollbarConfig holds the settings for error reporting
type RollbarConfig struct {
	Token       string
	Environment string
	ServerHost  string
	CodeVersion string
}

// RollbarHook forwards error, fatal and panic events to Rollbar
type RollbarHook struct {
	report func(level zerolog.Level, msg string)
}

// NewRollbarHook configures the rollbar client and returns a hook that reports to it
func NewRollbarHook(config RollbarConfig) *RollbarHook {
	rollbar.SetToken(config.Token)
	rollbar.SetEnvironment(config.Environment)
	if config.ServerHost != "" {
		rollbar.SetServerHost(config.ServerHost)
	}
	if config.CodeVersion != "" {
		rollbar.SetCodeVersion(config.CodeVersion)
	}
	rollbar.SetEnabled(true)

	return &RollbarHook{report: sendToRollbar}
}

// Run implements zerolog.Hook
func (h *RollbarHook) Run(_ *zerolog.Event, level zerolog.Level, msg string) {
	if level < zerolog.ErrorLevel || level == zerolog.NoLevel || level == zerolog.Disabled {
		return
	}
	h.report(level, msg)
}

func sendToRollbar(level zerolog.Level, msg string) {
	if level == zerolog.ErrorLevel {
		rollbar.Error(msg)
		return
	}
	rollbar.Critical(msg)
}

// Flush waits for queued Rollbar items to be delivered
func Flush() {
	rollbar.Wait()
}

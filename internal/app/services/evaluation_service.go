package services

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/mail"
	"strings"

	"github.com/rs/zerolog"
	"github.com/web79/smiportal/internal/app/models"
	"github.com/web79/smiportal/internal/pkg/apperrors"
	"github.com/web79/smiportal/internal/pkg/email"
)

//go:embed templates/evaluation_report.html
var templateFS embed.FS

var evaluationTemplate = template.Must(template.ParseFS(templateFS, "templates/evaluation_report.html"))

// EvaluationService defines the interface for weekly evaluation reports
type EvaluationService interface {
	SendEvaluation(ctx context.Context, report *models.EvaluationReport) error
}

// EvaluationConfig holds the mail envelope for evaluation reports
type EvaluationConfig struct {
	From         mail.Address
	CompanyEmail string
}

// evaluationServiceImpl implements the EvaluationService interface
type evaluationServiceImpl struct {
	mailer email.Mailer
	config EvaluationConfig
	logger zerolog.Logger
}

// NewEvaluationService creates a new evaluation service instance
func NewEvaluationService(mailer email.Mailer, config EvaluationConfig, logger zerolog.Logger) EvaluationService {
	return &evaluationServiceImpl{
		mailer: mailer,
		config: config,
		logger: logger,
	}
}

// validateEvaluation checks the fields every report must carry
func validateEvaluation(report *models.EvaluationReport) error {
	report.StaffEmail = strings.TrimSpace(report.StaffEmail)
	report.SupervisorName = strings.TrimSpace(report.SupervisorName)

	switch {
	case report.StaffEmail == "":
		return apperrors.NewValidationError("staffEmail", "Missing required fields: Supervisor Name, Comment, or Staff Email.")
	case report.SupervisorName == "":
		return apperrors.NewValidationError("supervisorName", "Missing required fields: Supervisor Name, Comment, or Staff Email.")
	case strings.TrimSpace(report.SupervisorComment) == "":
		return apperrors.NewValidationError("supervisorComment", "Missing required fields: Supervisor Name, Comment, or Staff Email.")
	}

	if _, err := mail.ParseAddress(report.StaffEmail); err != nil {
		return apperrors.NewValidationError("staffEmail", "staffEmail must be a valid email address")
	}

	// Both end up in the subject header
	if strings.ContainsAny(report.SupervisorName, "\r\n") {
		return apperrors.NewValidationError("supervisorName", "supervisorName must be a single line")
	}
	if strings.ContainsAny(report.WeekNumber, "\r\n") {
		return apperrors.NewValidationError("weekNumber", "weekNumber must be a single line")
	}
	return nil
}

// EvaluationSubject builds the subject line for a report
func EvaluationSubject(report *models.EvaluationReport) string {
	week := strings.TrimSpace(report.WeekNumber)
	if week == "" {
		week = "N/A"
	}
	return fmt.Sprintf("Weekly Evaluation Report from %s (Week %s)", report.SupervisorName, week)
}

// RenderEvaluation renders the HTML body of a report
func RenderEvaluation(report *models.EvaluationReport) (string, error) {
	var buf bytes.Buffer
	if err := evaluationTemplate.Execute(&buf, report); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// SendEvaluation emails a report to the company mailbox with the staff
// member as reply-to.
func (s *evaluationServiceImpl) SendEvaluation(ctx context.Context, report *models.EvaluationReport) error {
	if err := validateEvaluation(report); err != nil {
		return err
	}

	if s.config.CompanyEmail == "" {
		s.logger.Error().Msg("Company mailbox is not configured")
		return fmt.Errorf("%w: company mailbox is not configured", apperrors.ErrMailDelivery)
	}

	body, err := RenderEvaluation(report)
	if err != nil {
		return fmt.Errorf("failed to render evaluation report: %w", err)
	}

	msg := &email.Message{
		From:     s.config.From,
		To:       []string{s.config.CompanyEmail},
		ReplyTo:  report.StaffEmail,
		Subject:  EvaluationSubject(report),
		HTMLBody: body,
	}

	if err := s.mailer.Send(ctx, msg); err != nil {
		s.logger.Error().Err(err).Str("staffEmail", report.StaffEmail).Msg("Email sending error")
		return fmt.Errorf("%w: %v", apperrors.ErrMailDelivery, err)
	}

	s.logger.Info().
		Str("staffEmail", report.StaffEmail).
		Str("week", report.WeekNumber).
		Msg("Evaluation report sent")
	return nil
}

package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/web79/smiportal/internal/app/models"
	"github.com/web79/smiportal/internal/app/models/dto"
	"github.com/web79/smiportal/internal/app/repositories"
	"github.com/web79/smiportal/internal/pkg/apperrors"
	"github.com/web79/smiportal/internal/pkg/helpers"
)

// StudentService defines the interface for student operations
type StudentService interface {
	CreateStudent(ctx context.Context, req *dto.CreateStudentRequest) (*models.Student, error)
	GetStudentByID(ctx context.Context, id string) (*models.Student, error)
	ListStudents(ctx context.Context, search string) ([]*models.Student, error)
	UpdateStudent(ctx context.Context, id string, req *dto.UpdateStudentRequest) (*models.Student, error)
	DeleteStudent(ctx context.Context, id string) error
	ExportStudents(ctx context.Context, search string) ([]byte, error)
}

// studentServiceImpl implements the StudentService interface
type studentServiceImpl struct {
	studentRepo repositories.IStudentRepository
	logger      zerolog.Logger
}

// NewStudentService creates a new student service instance
func NewStudentService(studentRepo repositories.IStudentRepository, logger zerolog.Logger) StudentService {
	return &studentServiceImpl{
		studentRepo: studentRepo,
		logger:      logger,
	}
}

// parseID converts a path id into a UUID. Malformed ids cannot match a
// stored record so they are reported as notFound.
func parseID(id string, notFound error) (uuid.UUID, error) {
	parsed, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return uuid.Nil, notFound
	}
	return parsed, nil
}

// validateStudent checks a normalized student before it is written
func validateStudent(s *models.Student) error {
	switch {
	case s.FullName == "":
		return apperrors.NewValidationError("fullName", "fullName is required")
	case s.Email == "":
		return apperrors.NewValidationError("email", "email is required")
	case s.Course == "":
		return apperrors.NewValidationError("course", "course is required")
	case !s.PaymentType.Valid():
		return apperrors.NewValidationError("paymentType", "paymentType must be one of: full installment")
	case s.AmountAgreed < 0:
		return apperrors.NewValidationError("amountAgreed", "amountAgreed cannot be negative")
	case s.FirstPayment < 0:
		return apperrors.NewValidationError("firstPayment", "firstPayment cannot be negative")
	case s.AmountAgreed >= models.MaxAmount:
		return apperrors.NewValidationError("amountAgreed", "amountAgreed is too large")
	case s.FirstPayment >= models.MaxAmount:
		return apperrors.NewValidationError("firstPayment", "firstPayment is too large")
	}
	return nil
}

// CreateStudent registers a student and derives the outstanding balance
func (s *studentServiceImpl) CreateStudent(ctx context.Context, req *dto.CreateStudentRequest) (*models.Student, error) {
	student := &models.Student{
		ID:             uuid.New(),
		FullName:       strings.TrimSpace(req.FullName),
		Email:          helpers.NormalizeEmail(req.Email),
		PhoneNumber:    strings.TrimSpace(req.PhoneNumber),
		Address:        strings.TrimSpace(req.Address),
		NokPhoneNumber: strings.TrimSpace(req.NokPhoneNumber),
		Gender:         strings.TrimSpace(req.Gender),
		Course:         strings.TrimSpace(req.Course),
		PaymentType:    models.PaymentType(strings.ToLower(strings.TrimSpace(req.PaymentType))),
		AmountAgreed:   models.RoundMoney(req.AmountAgreed.Float64()),
		FirstPayment:   models.RoundMoney(req.FirstPayment.Float64()),
	}

	if err := validateStudent(student); err != nil {
		return nil, err
	}
	student.RecomputeBalance()

	if err := s.studentRepo.Create(ctx, student); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("studentID", student.ID.String()).
		Float64("balance", student.Balance).
		Msg("Student registered")

	return student, nil
}

// GetStudentByID retrieves a student by ID
func (s *studentServiceImpl) GetStudentByID(ctx context.Context, id string) (*models.Student, error) {
	studentID, err := parseID(id, apperrors.ErrStudentNotFound)
	if err != nil {
		return nil, err
	}
	return s.studentRepo.GetByID(ctx, studentID)
}

// ListStudents returns students newest first, optionally filtered
func (s *studentServiceImpl) ListStudents(ctx context.Context, search string) ([]*models.Student, error) {
	return s.studentRepo.List(ctx, search)
}

// UpdateStudent merges the supplied fields into the stored record and
// recomputes the balance from the merged amounts.
func (s *studentServiceImpl) UpdateStudent(ctx context.Context, id string, req *dto.UpdateStudentRequest) (*models.Student, error) {
	studentID, err := parseID(id, apperrors.ErrStudentNotFound)
	if err != nil {
		return nil, err
	}

	updated, err := s.studentRepo.Update(ctx, studentID, func(student *models.Student) error {
		applyStudentUpdate(student, req)
		if err := validateStudent(student); err != nil {
			return err
		}
		student.RecomputeBalance()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("studentID", updated.ID.String()).
		Float64("balance", updated.Balance).
		Bool("fullyPaid", updated.FullyPaid).
		Msg("Student updated")

	return updated, nil
}

func applyStudentUpdate(student *models.Student, req *dto.UpdateStudentRequest) {
	if req.FullName != nil {
		student.FullName = strings.TrimSpace(*req.FullName)
	}
	if req.Email != nil {
		student.Email = helpers.NormalizeEmail(*req.Email)
	}
	if req.PhoneNumber != nil {
		student.PhoneNumber = strings.TrimSpace(*req.PhoneNumber)
	}
	if req.Address != nil {
		student.Address = strings.TrimSpace(*req.Address)
	}
	if req.NokPhoneNumber != nil {
		student.NokPhoneNumber = strings.TrimSpace(*req.NokPhoneNumber)
	}
	if req.Gender != nil {
		student.Gender = strings.TrimSpace(*req.Gender)
	}
	if req.Course != nil {
		student.Course = strings.TrimSpace(*req.Course)
	}
	if req.PaymentType != nil {
		student.PaymentType = models.PaymentType(strings.ToLower(strings.TrimSpace(*req.PaymentType)))
	}
	if req.AmountAgreed != nil {
		student.AmountAgreed = models.RoundMoney(req.AmountAgreed.Float64())
	}
	if req.FirstPayment != nil {
		student.FirstPayment = models.RoundMoney(req.FirstPayment.Float64())
	}
}

// DeleteStudent removes a student
func (s *studentServiceImpl) DeleteStudent(ctx context.Context, id string) error {
	studentID, err := parseID(id, apperrors.ErrStudentNotFound)
	if err != nil {
		return err
	}

	if err := s.studentRepo.Delete(ctx, studentID); err != nil {
		return err
	}

	s.logger.Info().Str("studentID", studentID.String()).Msg("Student deleted")
	return nil
}

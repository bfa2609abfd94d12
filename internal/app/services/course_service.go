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
)

// CourseService defines the interface for course operations
type CourseService interface {
	CreateCourse(ctx context.Context, req *dto.CreateCourseRequest) (*models.Course, error)
	GetCourseByID(ctx context.Context, id string) (*models.Course, error)
	ListCourses(ctx context.Context, search string) ([]*models.Course, error)
	UpdateCourse(ctx context.Context, id string, req *dto.UpdateCourseRequest) (*models.Course, error)
	DeleteCourse(ctx context.Context, id string) error
}

// courseServiceImpl implements the CourseService interface
type courseServiceImpl struct {
	courseRepo repositories.ICourseRepository
	logger     zerolog.Logger
}

// NewCourseService creates a new course service instance
func NewCourseService(courseRepo repositories.ICourseRepository, logger zerolog.Logger) CourseService {
	return &courseServiceImpl{
		courseRepo: courseRepo,
		logger:     logger,
	}
}

// validateCourse validates course data before database operations
func validateCourse(c *models.Course) error {
	switch {
	case c.Name == "":
		return apperrors.NewValidationError("name", "name is required")
	case c.Instructor == "":
		return apperrors.NewValidationError("instructor", "instructor is required")
	case c.Duration == "":
		return apperrors.NewValidationError("duration", "duration is required")
	case !c.Status.Valid():
		return apperrors.NewValidationError("status", "status must be one of: Active Inactive Upcoming")
	}
	return nil
}

// CreateCourse adds a course. Status defaults to Active.
func (s *courseServiceImpl) CreateCourse(ctx context.Context, req *dto.CreateCourseRequest) (*models.Course, error) {
	course := &models.Course{
		ID:         uuid.New(),
		Name:       strings.TrimSpace(req.Name),
		Instructor: strings.TrimSpace(req.Instructor),
		Duration:   strings.TrimSpace(req.Duration),
		Status:     models.CourseStatus(strings.TrimSpace(req.Status)),
	}
	if course.Status == "" {
		course.Status = models.CourseActive
	}

	if err := validateCourse(course); err != nil {
		return nil, err
	}

	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, err
	}

	s.logger.Info().Str("courseID", course.ID.String()).Str("name", course.Name).Msg("Course created")
	return course, nil
}

// GetCourseByID retrieves a course by ID
func (s *courseServiceImpl) GetCourseByID(ctx context.Context, id string) (*models.Course, error) {
	courseID, err := parseID(id, apperrors.ErrCourseNotFound)
	if err != nil {
		return nil, err
	}
	return s.courseRepo.GetByID(ctx, courseID)
}

// ListCourses returns courses sorted by name, optionally filtered
func (s *courseServiceImpl) ListCourses(ctx context.Context, search string) ([]*models.Course, error) {
	return s.courseRepo.List(ctx, search)
}

// UpdateCourse merges the supplied fields into the stored course
func (s *courseServiceImpl) UpdateCourse(ctx context.Context, id string, req *dto.UpdateCourseRequest) (*models.Course, error) {
	courseID, err := parseID(id, apperrors.ErrCourseNotFound)
	if err != nil {
		return nil, err
	}

	return s.courseRepo.Update(ctx, courseID, func(course *models.Course) error {
		if req.Name != nil {
			course.Name = strings.TrimSpace(*req.Name)
		}
		if req.Instructor != nil {
			course.Instructor = strings.TrimSpace(*req.Instructor)
		}
		if req.Duration != nil {
			course.Duration = strings.TrimSpace(*req.Duration)
		}
		if req.Status != nil {
			course.Status = models.CourseStatus(strings.TrimSpace(*req.Status))
		}
		return validateCourse(course)
	})
}

// DeleteCourse removes a course
func (s *courseServiceImpl) DeleteCourse(ctx context.Context, id string) error {
	courseID, err := parseID(id, apperrors.ErrCourseNotFound)
	if err != nil {
		return err
	}

	if err := s.courseRepo.Delete(ctx, courseID); err != nil {
		return err
	}

	s.logger.Info().Str("courseID", courseID.String()).Msg("Course deleted")
	return nil
}

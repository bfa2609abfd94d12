package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/web79/smiportal/internal/app/models"
	"github.com/web79/smiportal/internal/app/models/dto"
	"github.com/web79/smiportal/internal/app/repositories"
	"github.com/web79/smiportal/internal/pkg/apperrors"
	"github.com/web79/smiportal/internal/pkg/auth"
	"github.com/web79/smiportal/internal/pkg/helpers"
)

// UserService defines the interface for staff account operations
type UserService interface {
	CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*models.User, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
	// EnsureSuperAdmin creates the account unless the email is already taken
	EnsureSuperAdmin(ctx context.Context, req *dto.CreateUserRequest) (bool, error)
	ResetPassword(ctx context.Context, email, newPassword string) error
}

// userServiceImpl implements the UserService interface
type userServiceImpl struct {
	userRepo repositories.IUserRepository
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewUserService creates a new user service instance
func NewUserService(userRepo repositories.IUserRepository, logger zerolog.Logger) UserService {
	return &userServiceImpl{
		userRepo: userRepo,
		validate: validator.New(),
		logger:   logger,
	}
}

// normalizeUser trims the request and checks it. Gin binding covers the
// HTTP path; this also guards the admin CLI and the startup seed.
func (s *userServiceImpl) normalizeUser(req *dto.CreateUserRequest) (*models.User, error) {
	user := &models.User{
		ID:       uuid.New(),
		Email:    helpers.NormalizeEmail(req.Email),
		FullName: strings.TrimSpace(req.FullName),
		Role:     models.Role(strings.TrimSpace(req.Role)),
		Branch:   strings.TrimSpace(req.Branch),
	}
	if user.Role == "" {
		user.Role = models.RoleAdmin
	}

	switch {
	case user.Email == "":
		return nil, apperrors.NewValidationError("email", "email is required")
	case s.validate.Var(user.Email, "email") != nil:
		return nil, apperrors.NewValidationError("email", "email must be a valid email address")
	case req.Password == "":
		return nil, apperrors.NewValidationError("password", "password is required")
	case len(req.Password) < auth.MinPasswordLength:
		return nil, apperrors.NewValidationError("password", fmt.Sprintf("password must be at least %d characters", auth.MinPasswordLength))
	case user.FullName == "":
		return nil, apperrors.NewValidationError("fullName", "fullName is required")
	case user.Branch == "":
		return nil, apperrors.NewValidationError("branch", "branch is required")
	case !user.Role.Valid():
		return nil, apperrors.NewValidationError("role", "role must be one of: super-admin admin instructor")
	}

	return user, nil
}

// CreateUser creates a staff account with a hashed password
func (s *userServiceImpl) CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*models.User, error) {
	user, err := s.normalizeUser(req)
	if err != nil {
		return nil, err
	}

	exists, err := s.userRepo.EmailExists(ctx, user.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrUserEmailExists
	}

	user.PasswordHash, err = auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	user.PasswordHash = ""

	s.logger.Info().
		Str("userID", user.ID.String()).
		Str("role", string(user.Role)).
		Str("branch", user.Branch).
		Msg("User created")

	return user, nil
}

// ListUsers returns all staff accounts
func (s *userServiceImpl) ListUsers(ctx context.Context) ([]*models.User, error) {
	return s.userRepo.List(ctx)
}

// EnsureSuperAdmin creates a super-admin account when the email is unused.
// It reports whether an account was created.
func (s *userServiceImpl) EnsureSuperAdmin(ctx context.Context, req *dto.CreateUserRequest) (bool, error) {
	seed := *req
	seed.Role = string(models.RoleSuperAdmin)

	exists, err := s.userRepo.EmailExists(ctx, helpers.NormalizeEmail(seed.Email))
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	if _, err := s.CreateUser(ctx, &seed); err != nil {
		return false, err
	}
	return true, nil
}

// ResetPassword sets a new password for the account with the given email
func (s *userServiceImpl) ResetPassword(ctx context.Context, email, newPassword string) error {
	if len(newPassword) < auth.MinPasswordLength {
		return apperrors.NewValidationError("password", fmt.Sprintf("password must be at least %d characters", auth.MinPasswordLength))
	}

	user, err := s.userRepo.GetByEmail(ctx, helpers.NormalizeEmail(email))
	if err != nil {
		return err
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, user.ID, hash); err != nil {
		return err
	}

	s.logger.Info().Str("userID", user.ID.String()).Msg("Password reset")
	return nil
}

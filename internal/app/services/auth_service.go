package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/web79/smiportal/internal/app/models/dto"
	"github.com/web79/smiportal/internal/app/repositories"
	"github.com/web79/smiportal/internal/pkg/apperrors"
	"github.com/web79/smiportal/internal/pkg/auth"
	"github.com/web79/smiportal/internal/pkg/helpers"
)

// Login failures shown to the client
var (
	ErrLoginInvalidCredentials = apperrors.NewCustomError(apperrors.ErrInvalidCredentials, "Login failed: Invalid email or password.")
	ErrLoginBranchMismatch     = apperrors.NewCustomError(apperrors.ErrBranchMismatch, "Login failed: Incorrect branch selected.")
)

// AuthService handles authentication operations
type AuthService struct {
	userRepo   repositories.IUserRepository
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repositories.IUserRepository, jwtService *auth.JWTService, logger zerolog.Logger) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Login verifies email, password and branch and issues an access token.
// The branch is only compared once the password matched.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	email := helpers.NormalizeEmail(req.Email)

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			s.logger.Warn().Str("email", email).Msg("Login attempt for unknown email")
			return nil, ErrLoginInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		s.logger.Warn().Str("userID", user.ID.String()).Msg("Login attempt with wrong password")
		return nil, ErrLoginInvalidCredentials
	}

	if !strings.EqualFold(strings.TrimSpace(user.Branch), strings.TrimSpace(req.Branch)) {
		s.logger.Warn().
			Str("userID", user.ID.String()).
			Str("branch", req.Branch).
			Msg("Login attempt with wrong branch")
		return nil, ErrLoginBranchMismatch
	}

	token, expiresAt, err := s.jwtService.GenerateAccessToken(user.ID, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	s.logger.Info().Str("userID", user.ID.String()).Str("role", string(user.Role)).Msg("User logged in")

	return &dto.LoginResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresAt: expiresAt,
		User:      dto.NewUserResponse(user),
	}, nil
}

package seed

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/web79/smiportal/internal/app/models"
	"github.com/web79/smiportal/internal/app/models/dto"
	"github.com/web79/smiportal/internal/app/services"
)

// SuperAdmin describes the account created on first start
type SuperAdmin struct {
	Email    string
	Password string
	FullName string
	Branch   string
}

// CreateDefaultData creates the super-admin account if it doesn't exist.
// Nothing is created when no email is configured.
func CreateDefaultData(ctx context.Context, userService services.UserService, admin SuperAdmin, lgr zerolog.Logger) error {
	if admin.Email == "" {
		lgr.Info().Msg("No super-admin configured, skipping default data")
		return nil
	}

	lgr.Info().Str("email", admin.Email).Msg("Checking/Creating default super-admin...")

	fullName := admin.FullName
	if fullName == "" {
		fullName = "Super Admin"
	}
	branch := admin.Branch
	if branch == "" {
		branch = "Main"
	}

	created, err := userService.EnsureSuperAdmin(ctx, &dto.CreateUserRequest{
		Email:    admin.Email,
		Password: admin.Password,
		FullName: fullName,
		Role:     string(models.RoleSuperAdmin),
		Branch:   branch,
	})
	if err != nil {
		return fmt.Errorf("create default super-admin: %w", err)
	}

	if created {
		lgr.Info().Str("email", admin.Email).Msg("Default super-admin created successfully")
	} else {
		lgr.Info().Str("email", admin.Email).Msg("Super-admin already exists, skipping creation")
	}
	return nil
}

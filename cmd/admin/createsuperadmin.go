package main

import (
	"context"

	"github.com/web79/smiportal/internal/app/models"
	"github.com/web79/smiportal/internal/app/models/dto"
)

func (cli *commandLine) createSuperAdmin(ctx context.Context, email, name, branch, pwd string) error {
	usr, err := cli.usrSvc.CreateUser(ctx, &dto.CreateUserRequest{
		Email:    email,
		Password: pwd,
		FullName: name,
		Role:     string(models.RoleSuperAdmin),
		Branch:   branch,
	})
	if err != nil {
		return err
	}
	cli.logger.Info().Str("userID", usr.ID.String()).Str("email", usr.Email).Msg("Super-admin created")
	return nil
}

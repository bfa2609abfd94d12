package main

import "context"

func (cli *commandLine) resetPassword(ctx context.Context, email, pwd string) error {
	if err := cli.usrSvc.ResetPassword(ctx, email, pwd); err != nil {
		return err
	}
	cli.logger.Info().Str("email", email).Msg("Password reset")
	return nil
}

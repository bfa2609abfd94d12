package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"syscall"

	"github.com/rs/zerolog"
	"golang.org/x/term"

	"github.com/web79/smiportal/internal/app/migrations"
	"github.com/web79/smiportal/internal/app/services"
)

var (
	readPasswordFunc  = term.ReadPassword // mockable
	runMigrationsFunc = migrations.Run    // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	sqlDB  *sql.DB
	usrSvc services.UserService
	logger zerolog.Logger
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  createsuperadmin -email EMAIL -name FULL_NAME -branch BRANCH - create a super-admin account")
	fmt.Println("  resetpassword -email EMAIL - reset a staff account's password")
	fmt.Println("  migrate - apply pending database migrations")
}

func (cli *commandLine) run(ctx context.Context, args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	createCmd := flag.NewFlagSet("createsuperadmin", flag.ExitOnError)
	createEmail := createCmd.String("email", "", "The account email. The password will be prompted next.")
	createName := createCmd.String("name", "", "The account holder's full name.")
	createBranch := createCmd.String("branch", "", "The branch the account logs in to.")

	resetCmd := flag.NewFlagSet("resetpassword", flag.ExitOnError)
	resetEmail := resetCmd.String("email", "", "The account email. The password will be prompted next.")

	switch args[1] {
	case "createsuperadmin":
		if err := createCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *createEmail == "" || *createName == "" || *createBranch == "" {
			createCmd.Usage()
			return errHelp
		}
		pwd, err := promptPassword()
		if err != nil {
			return err
		}
		if pwd == "" {
			createCmd.Usage()
			return errHelp
		}
		return cli.createSuperAdmin(ctx, *createEmail, *createName, *createBranch, pwd)
	case "resetpassword":
		if err := resetCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *resetEmail == "" {
			resetCmd.Usage()
			return errHelp
		}
		pwd, err := promptPassword()
		if err != nil {
			return err
		}
		if pwd == "" {
			resetCmd.Usage()
			return errHelp
		}
		return cli.resetPassword(ctx, *resetEmail, pwd)
	case "migrate":
		if err := runMigrationsFunc(ctx, cli.sqlDB); err != nil {
			return err
		}
		cli.logger.Info().Msg("Database migrations applied")
		return nil
	default:
		cli.printUsage()
		return errHelp
	}
}

func promptPassword() (string, error) {
	fmt.Print("Enter password:")
	pwd, err := readPasswordFunc(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(pwd), nil
}

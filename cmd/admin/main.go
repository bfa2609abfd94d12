package main

import (
	"context"
	"errors"
	"os"

	"github.com/jackc/pgx/v5/stdlib"

	"github.com/web79/smiportal/internal/app/repositories"
	"github.com/web79/smiportal/internal/app/services"
	"github.com/web79/smiportal/internal/bootstrap"
	"github.com/web79/smiportal/internal/db"
	"github.com/web79/smiportal/internal/pkg/logger"
)

func main() {
	ctx := context.Background()

	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger()
	errAndDie(err)

	database, err := db.NewPostgresDB(ctx, cfg)
	errAndDie(err)
	defer database.Close()

	sqlDB := stdlib.OpenDBFromPool(database.Pool)
	defer sqlDB.Close()

	cli := commandLine{
		sqlDB:  sqlDB,
		usrSvc: services.NewUserService(repositories.NewUserRepository(database.Pool), lgr),
		logger: logger.WithField("component", "admin"),
	}
	if err := cli.run(ctx, os.Args); err != nil {
		if !errors.Is(err, errHelp) {
			lgr.Error().Err(err).Msg("admin command failed")
		}
		database.Close()
		logger.Flush()
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Error().Err(err).Msg("admin setup failed")
		logger.Flush()
		os.Exit(1)
	}
}

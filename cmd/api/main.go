package main

import (
	"context"
	"os"

	"github.com/web79/smiportal/internal/pkg/logger"
	"github.com/web79/smiportal/internal/server"
)

// SMI Admin Portal API
//
// Staff-facing backend for student registration, course catalogue,
// staff accounts and intern evaluation reports. Routes live under /api.

func main() {
	srv, err := server.NewServer(context.Background())
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		logger.Flush()
		os.Exit(1)
	}

	// Run blocks until shutdown signal
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
	os.Exit(0)
}

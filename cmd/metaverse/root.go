package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/chiraggahujaa/metaverse-workspace/internal/infrastructure/config"
	"github.com/chiraggahujaa/metaverse-workspace/pkg/logger"
)

const serviceName = "metaverse"

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// NewRootCmd creates the root command for the metaverse CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "metaverse",
		Short:         "Metaverse workspace API server",
		Long:          `Serves the metaverse workspace HTTP API and runs its database and account maintenance tasks.`,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewMigrateCmd())
	cmd.AddCommand(NewAdminCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// NewVersionCmd creates the version subcommand.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Println(serviceName, version)
		},
	}
}

// setup loads configuration and initialises the logger.
func setup(ctx context.Context) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, zerolog.Logger{}, fmt.Errorf("load config: %w", err)
	}
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: serviceName,
	})
	return cfg, log, nil
}

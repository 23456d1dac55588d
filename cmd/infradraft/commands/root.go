// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument parsing,
// flag binding, and validation. Command execution is delegated to handler
// functions in the handlers package.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/infradraft/infradraft/internal/logging"
)

var (
	verbose bool
	logger  *zap.Logger
)

// Root returns the root command for the infradraft CLI.
//
// The root command serves as the entry point and parent for all subcommands.
// It builds the process logger before any subcommand runs and flushes it
// afterwards.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "infradraft",
		Short: "Draft and provision Terraform from natural-language requests",
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			var err error
			logger, err = logging.New(verbose)
			if err != nil {
				return fmt.Errorf("failed to build logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	// Core commands
	cmd.AddCommand(Init())
	cmd.AddCommand(Name())
	cmd.AddCommand(Apply())
	cmd.AddCommand(Plan())
	cmd.AddCommand(Doctor())

	// Utility commands
	cmd.AddCommand(Version())
	cmd.AddCommand(Completion())

	return cmd
}

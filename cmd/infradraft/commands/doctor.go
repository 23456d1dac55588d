package commands

import (
	"github.com/spf13/cobra"

	"github.com/infradraft/infradraft/cmd/infradraft/handlers"
)

// Doctor returns the command for checking the local environment.
//
// Doctor verifies that the required tools are installed, that the
// generation credential is set, and that the configuration file loads.
// It exits non-zero when a required check fails.
//
// Optional flags:
//
//	--config, -c: Path to the configuration file (default: infradraft.json)
func Doctor() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check required tools, credentials and configuration",
		Long: `Check that the local environment is ready for provisioning runs.

Doctor looks for the terraform binary (and git and the aws CLI, which
are optional), checks the OPENAI_API_KEY credential, and tries to load
the configuration file.

Examples:
  # Check the environment and infradraft.json
  infradraft doctor

  # Check against a custom configuration path
  infradraft doctor --config deploy/infradraft.json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Doctor(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: infradraft.json)")

	return cmd
}

package commands

import (
	"github.com/spf13/cobra"

	"github.com/infradraft/infradraft/cmd/infradraft/handlers"
)

// Init returns the command for creating a configuration interactively.
//
// The wizard asks for a bucket name prefix, the generation model, the
// output file and the natural-language requests, then writes the
// configuration file. An existing file is only overwritten after
// confirmation.
//
// Optional flags:
//
//	--config, -c: Path for the configuration file (default: infradraft.json)
func Init() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a configuration file interactively",
		Long: `Create an infradraft configuration file through an interactive wizard.

The wizard walks through bucket naming, generation settings and the
natural-language requests, then writes the configuration file.

Examples:
  # Create infradraft.json in the current directory
  infradraft init

  # Create the configuration at a custom path
  infradraft init --config deploy/infradraft.json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Init(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path for the configuration file (default: infradraft.json)")

	return cmd
}

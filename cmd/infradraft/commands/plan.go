package commands

import (
	"github.com/spf13/cobra"

	"github.com/infradraft/infradraft/cmd/infradraft/handlers"
)

// Plan returns the command for a dry run of the provisioning pipeline.
//
// Plan runs the same stages as apply up to and including terraform plan,
// then stops. Nothing is applied.
//
// Optional flags:
//
//	--config, -c: Path to the configuration file (default: infradraft.json)
//	--out, -o: Output file for generated source (default: from config)
//	--refresh-name: Generate a fresh bucket name before generating source
//	--from-git: Derive changes from the latest commit instead of the config
//	--plain: Disable the terminal UI and log stages instead
func Plan() *cobra.Command {
	var opts handlers.RunOptions

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Generate Terraform source and show the plan without applying",
		Long: `Generate Terraform source from your configured requests and plan it.

The pipeline stops after terraform plan, so you can inspect what an
apply would change without changing anything.

Examples:
  # Preview the changes for infradraft.json
  infradraft plan

  # Preview with generated source written to a different file
  infradraft plan --out preview.tf`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Plan(cmd.Context(), logger, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to configuration file (default: infradraft.json)")
	cmd.Flags().StringVarP(&opts.OutputPath, "out", "o", "", "Output file for generated source (default: from config)")
	cmd.Flags().BoolVar(&opts.RefreshName, "refresh-name", false, "Generate a fresh bucket name before generating source")
	cmd.Flags().BoolVar(&opts.FromGit, "from-git", false, "Derive changes from the latest commit")
	cmd.Flags().BoolVar(&opts.Plain, "plain", false, "Disable the terminal UI")

	return cmd
}

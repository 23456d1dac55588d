package commands

import (
	"github.com/spf13/cobra"

	"github.com/infradraft/infradraft/cmd/infradraft/handlers"
)

// Apply returns the command for running the full provisioning pipeline.
//
// The pipeline checks preconditions, optionally refreshes the bucket name,
// generates Terraform source for each configured request, writes it to the
// output file, and runs terraform init, plan and apply. The first failing
// stage aborts the run; nothing that already ran is rolled back.
//
// Optional flags:
//
//	--config, -c: Path to the configuration file (default: infradraft.json)
//	--out, -o: Output file for generated source (default: from config)
//	--refresh-name: Generate a fresh bucket name before generating source
//	--from-git: Derive changes from the latest commit instead of the config
//	--plain: Disable the terminal UI and log stages instead
//
// Environment variables:
//
//	OPENAI_API_KEY: Generation service credential (required)
//	OPENAI_BASE_URL: Alternative OpenAI-compatible endpoint (optional)
func Apply() *cobra.Command {
	var opts handlers.RunOptions

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Generate Terraform source and apply it",
		Long: `Generate Terraform source from your configured requests and apply it.

Each request in the configuration is sent to the generation service in
order. The combined source is written to the output file, then terraform
init, plan and apply run in that file's directory.

Examples:
  # Run using infradraft.json in the current directory
  infradraft apply

  # Run with a fresh bucket name patched into the config first
  infradraft apply --refresh-name

  # Derive the change set from the latest git commit
  infradraft apply --from-git`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Apply(cmd.Context(), logger, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to configuration file (default: infradraft.json)")
	cmd.Flags().StringVarP(&opts.OutputPath, "out", "o", "", "Output file for generated source (default: from config)")
	cmd.Flags().BoolVar(&opts.RefreshName, "refresh-name", false, "Generate a fresh bucket name before generating source")
	cmd.Flags().BoolVar(&opts.FromGit, "from-git", false, "Derive changes from the latest commit")
	cmd.Flags().BoolVar(&opts.Plain, "plain", false, "Disable the terminal UI")

	return cmd
}

package commands

import (
	"github.com/spf13/cobra"

	"github.com/infradraft/infradraft/cmd/infradraft/handlers"
	"github.com/infradraft/infradraft/internal/naming"
)

// Name returns the command for generating a bucket name and saving it
// into the configuration file.
//
// The generated name is the prefix, a hyphen, and a random lowercase
// alphanumeric suffix. The configuration file's bucket_name field is
// replaced and the file is written back; the name is also printed to
// stdout.
//
// Optional flags:
//
//	--config, -c: Path to the configuration file (default: infradraft.json)
//	--prefix: Name prefix (default: my-bucket)
//	--length: Random suffix length (default: 10)
//	--check: Verify the name is not already taken on S3 before saving
//	--region: AWS region for the availability check (default: us-east-1)
//	--endpoint: Custom S3 endpoint for the availability check
func Name() *cobra.Command {
	var opts handlers.NameOptions

	cmd := &cobra.Command{
		Use:   "name",
		Short: "Generate a bucket name and store it in the configuration",
		Long: `Generate a random bucket name and store it in the configuration file.

The name is the prefix joined to a random lowercase alphanumeric suffix
with a hyphen, for example my-bucket-k3x9q2m7ab. With --check the name is
probed against S3 and regenerated until a free one is found.

Examples:
  # Generate a name with the defaults and save it
  infradraft name

  # Generate a short name with a custom prefix
  infradraft name --prefix logs --length 6

  # Keep generating until the name is free on S3
  infradraft name --check --region eu-central-1`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Name(cmd.Context(), logger, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to configuration file (default: infradraft.json)")
	cmd.Flags().StringVar(&opts.Prefix, "prefix", naming.DefaultPrefix, "Bucket name prefix")
	cmd.Flags().IntVar(&opts.Length, "length", naming.DefaultSuffixLength, "Random suffix length")
	cmd.Flags().BoolVar(&opts.Check, "check", false, "Verify the name is free on S3 before saving")
	cmd.Flags().StringVar(&opts.Region, "region", "us-east-1", "AWS region for the availability check")
	cmd.Flags().StringVar(&opts.Endpoint, "endpoint", "", "Custom S3 endpoint for the availability check")

	return cmd
}

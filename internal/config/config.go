package config

import "strings"

// Placeholder is the literal token in command strings that is replaced by
// the configured bucket name.
const Placeholder = "{bucket_name}"

// Defaults applied after decoding.
const (
	// DefaultPath is the configuration file used when none is given.
	DefaultPath = "infradraft.json"

	// DefaultModel is the generation model used when none is configured.
	DefaultModel = "gpt-4"

	// DefaultOutputFile is where generated Terraform source is written.
	DefaultOutputFile = "infra.tf"
)

// Config holds the application configuration.
type Config struct {
	// BucketName is the generated storage bucket name, if one has been
	// generated. Commands reference it through the {bucket_name} placeholder.
	BucketName string `json:"bucket_name,omitempty" mapstructure:"bucket_name" yaml:"bucket_name,omitempty"`

	// Commands is the ordered list of natural-language infrastructure
	// requests sent to the generation service, one request per entry.
	Commands []string `json:"commands" mapstructure:"commands" yaml:"commands"`

	// Model selects the generation model.
	Model string `json:"model,omitempty" mapstructure:"model" yaml:"model,omitempty"`

	// OutputFile is the path the generated Terraform source is written to.
	OutputFile string `json:"output_file,omitempty" mapstructure:"output_file" yaml:"output_file,omitempty"`
}

// Default returns a configuration with all defaults applied and no
// bucket name or commands set.
func Default() *Config {
	return &Config{
		Model:      DefaultModel,
		OutputFile: DefaultOutputFile,
	}
}

// applyDefaults fills zero-valued fields that have defaults.
func (c *Config) applyDefaults() {
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.OutputFile == "" {
		c.OutputFile = DefaultOutputFile
	}
}

// ResolvedCommands returns the command list with the bucket name
// placeholder substituted. Substitution is literal text replacement; when
// no bucket name is set the placeholder passes through verbatim.
func (c *Config) ResolvedCommands() []string {
	resolved := make([]string, len(c.Commands))
	for i, cmd := range c.Commands {
		if c.BucketName != "" {
			cmd = strings.ReplaceAll(cmd, Placeholder, c.BucketName)
		}
		resolved[i] = cmd
	}
	return resolved
}

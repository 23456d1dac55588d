package wizard

import (
	"context"
	"regexp"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/infradraft/infradraft/internal/config"
	"github.com/infradraft/infradraft/internal/naming"
)

// prefixRegex validates bucket name prefix format: lowercase alphanumeric
// with hyphens, starting with an alphanumeric character.
var prefixRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

// runNamingGroup prompts for the bucket name prefix and suffix length.
func runNamingGroup(ctx context.Context, result *WizardResult) error {
	result.Prefix = naming.DefaultPrefix
	result.SuffixLength = naming.DefaultSuffixLength

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Bucket Name Prefix").
				Description("Lowercase alphanumeric characters or hyphens").
				Placeholder(naming.DefaultPrefix).
				Value(&result.Prefix).
				Validate(validatePrefix),
			huh.NewSelect[int]().
				Title("Random Suffix Length").
				Description("Number of random characters appended to the prefix").
				Options(SuffixLengthOptions...).
				Value(&result.SuffixLength),
			huh.NewConfirm().
				Title("Generate Bucket Name Now?").
				Description("Generate a name immediately and store it in the configuration").
				Value(&result.GenerateName),
		).Title("Bucket Naming"),
	).RunWithContext(ctx)
}

// runGenerationGroup prompts for the generation model and output file.
func runGenerationGroup(ctx context.Context, result *WizardResult) error {
	result.Model = Models[0].Value
	result.OutputFile = config.DefaultOutputFile

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Generation Model").
				Description("Model used to turn requests into Terraform source").
				Options(ModelsToOptions()...).
				Value(&result.Model),
			huh.NewInput().
				Title("Output File").
				Description("Path the generated Terraform source is written to").
				Placeholder(config.DefaultOutputFile).
				Value(&result.OutputFile).
				Validate(validateOutputFile),
		).Title("Generation"),
	).RunWithContext(ctx)
}

// runCommandsGroup prompts for the infrastructure requests.
func runCommandsGroup(ctx context.Context, result *WizardResult) error {
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("Infrastructure Requests").
				Description("One request per line. Use " + config.Placeholder + " to reference the generated bucket name.").
				Placeholder("Create an S3 bucket named " + config.Placeholder).
				Value(&result.CommandsInput).
				Validate(validateCommands),
		).Title("Requests"),
	).RunWithContext(ctx)

	if err != nil {
		return err
	}

	result.Commands = parseCommands(result.CommandsInput)
	return nil
}

// runConfirmGroup asks for final confirmation before writing the configuration.
func runConfirmGroup(ctx context.Context, result *WizardResult) error {
	result.Confirmed = true

	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Write Configuration?").
				Description("Save these answers to the configuration file").
				Value(&result.Confirmed),
		).Title("Confirm"),
	).RunWithContext(ctx)
}

// validatePrefix validates the bucket name prefix format.
func validatePrefix(s string) error {
	if s == "" {
		return errPrefixRequired
	}
	if !prefixRegex.MatchString(s) {
		return errPrefixInvalid
	}
	return nil
}

// validateOutputFile validates the output file path.
func validateOutputFile(s string) error {
	if strings.TrimSpace(s) == "" {
		return errOutputFileRequired
	}
	return nil
}

// validateCommands requires at least one non-empty request line.
func validateCommands(s string) error {
	if len(parseCommands(s)) == 0 {
		return errNoCommands
	}
	return nil
}

// parseCommands parses a newline-separated list of requests.
func parseCommands(input string) []string {
	lines := strings.Split(input, "\n")
	commands := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" {
			commands = append(commands, trimmed)
		}
	}
	return commands
}

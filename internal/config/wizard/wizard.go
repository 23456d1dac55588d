package wizard

import (
	"context"
	"fmt"
)

// WizardResult holds all the answers from the interactive wizard.
type WizardResult struct {
	// Bucket naming
	Prefix       string
	SuffixLength int
	GenerateName bool

	// Generation
	Model      string
	OutputFile string

	// Requests, one per line as entered and parsed into commands
	CommandsInput string
	Commands      []string

	// Confirmed is false when the user declined the final confirmation.
	Confirmed bool
}

// RunWizard runs the interactive configuration wizard.
// The context is used for cancellation support (e.g., Ctrl+C).
func RunWizard(ctx context.Context) (*WizardResult, error) {
	result := &WizardResult{}

	if err := runNamingGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("bucket naming: %w", err)
	}

	if err := runGenerationGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("generation: %w", err)
	}

	if err := runCommandsGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("requests: %w", err)
	}

	if err := runConfirmGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("confirm: %w", err)
	}

	return result, nil
}

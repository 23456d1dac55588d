package handlers

import (
	"context"
	"fmt"

	"github.com/infradraft/infradraft/internal/config"
	"github.com/infradraft/infradraft/internal/config/wizard"
	"github.com/infradraft/infradraft/internal/naming"
)

// Factory function variables for init - can be replaced in tests.
var (
	// fileExists checks if a file exists.
	fileExists = wizard.FileExists

	// confirmOverwrite asks before replacing an existing file.
	confirmOverwrite = wizard.ConfirmOverwrite

	// runWizard runs the interactive configuration wizard.
	runWizard = wizard.RunWizard

	// buildWizardConfig converts wizard answers into a config record.
	buildWizardConfig = wizard.BuildConfig
)

// Init runs the configuration wizard and writes the result to a file.
func Init(ctx context.Context, configPath string) error {
	if configPath == "" {
		configPath = config.DefaultPath
	}

	if fileExists(configPath) {
		ok, err := confirmOverwrite(configPath)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Aborted.")
			return nil
		}
	}

	printWelcome()

	result, err := runWizard(ctx)
	if err != nil {
		return fmt.Errorf("wizard canceled: %w", err)
	}

	if !result.Confirmed {
		fmt.Println("Aborted.")
		return nil
	}

	cfg := buildWizardConfig(result)

	if result.GenerateName {
		name, err := naming.GenerateBucketName(result.Prefix, result.SuffixLength)
		if err != nil {
			return err
		}
		cfg.BucketName = name
	}

	if err := saveConfigFile(cfg, configPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	printInitSuccess(configPath, cfg)

	return nil
}

// printWelcome prints the welcome message.
func printWelcome() {
	fmt.Println()
	fmt.Println("infradraft - Terraform from natural language")
	fmt.Println("============================================")
	fmt.Println()
	fmt.Println("This wizard creates a configuration with sensible defaults.")
	fmt.Println("Describe the infrastructure you want; a run turns each request")
	fmt.Println("into Terraform source and applies it.")
	fmt.Println()
}

// printInitSuccess prints the success message with summary and next steps.
func printInitSuccess(configPath string, cfg *config.Config) {
	fmt.Println()
	fmt.Println("Configuration saved!")
	fmt.Println()
	fmt.Printf("  File: %s\n", configPath)
	fmt.Println()

	fmt.Println("Summary")
	fmt.Println("-------")
	if cfg.BucketName != "" {
		fmt.Printf("  Bucket name: %s\n", cfg.BucketName)
	}
	fmt.Printf("  Model:       %s\n", cfg.Model)
	fmt.Printf("  Output file: %s\n", cfg.OutputFile)
	fmt.Printf("  Requests:    %d\n", len(cfg.Commands))
	fmt.Println()

	fmt.Println("Next Steps")
	fmt.Println("----------")
	fmt.Println("  1. Set your OpenAI API key:")
	fmt.Println("     export OPENAI_API_KEY=<your-key>")
	fmt.Println()
	fmt.Printf("  2. Review %s if needed\n", configPath)
	fmt.Println()
	fmt.Println("  3. Preview and provision:")
	fmt.Println("     infradraft plan")
	fmt.Println("     infradraft apply")
	fmt.Println()
}

// Package handlers implements the business logic for CLI commands.
//
// This package contains handler functions that are called by command definitions
// in the commands package. Handlers are framework-agnostic and can be tested
// independently of the CLI framework.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"

	"github.com/infradraft/infradraft/internal/config"
	"github.com/infradraft/infradraft/internal/pipeline"
	"github.com/infradraft/infradraft/internal/platform/openai"
	"github.com/infradraft/infradraft/internal/platform/terraform"
	"github.com/infradraft/infradraft/internal/ui/tui"
)

// generationClient is what a run needs from the generation service.
// Implemented by openai.Client.
type generationClient interface {
	pipeline.Generator
	pipeline.ChangeAnalyzer
}

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// newGenerationClient creates the generation-service client. The
	// credential is validated by the precondition stage, not here, so a
	// missing key never reaches the service.
	newGenerationClient = func(cfg openai.Config) generationClient {
		return openai.NewClientWithConfig(cfg)
	}

	// newTerraform creates the terraform runner rooted at dir.
	newTerraform = func(dir string) terraform.Runner {
		return terraform.NewCLI(dir)
	}

	// requireAPIKey validates the generation credential (for testing injection).
	requireAPIKey = openai.RequireAPIKey

	// loadConfigFile loads config from file (for testing injection).
	loadConfigFile = config.Load

	// saveConfigFile writes config to file (for testing injection).
	saveConfigFile = config.Save

	// runPhases executes the pipeline stages (for testing injection).
	runPhases = pipeline.RunPhases

	// runWithTUI drives a run through the terminal UI (for testing injection).
	runWithTUI = tui.RunTUI
)

// RunOptions control a provisioning run.
type RunOptions struct {
	// ConfigPath is the configuration file. Empty means the default file
	// in the current directory.
	ConfigPath string

	// OutputPath overrides the config's output file when set.
	OutputPath string

	// RefreshName generates a fresh bucket name and writes it back to
	// the config before source is generated.
	RefreshName bool

	// FromGit derives the change set from the latest commit instead of
	// the configured requests.
	FromGit bool

	// Plain disables the terminal UI even on an interactive terminal.
	Plain bool

	// PlanOnly stops the run after terraform plan.
	PlanOnly bool
}

// Apply runs the full provisioning pipeline.
//
// The run proceeds through linear stages:
//  1. Preconditions: terraform (and git, if requested) on PATH, credential set
//  2. Name sync (optional): fresh bucket name written back to the config
//  3. Generate: one service call per configured request
//  4. Persist: combined source written to the output file
//  5. terraform init, plan, apply
//
// The first failing stage aborts the run. Completed stages are not rolled
// back; a rerun starts from the beginning.
func Apply(ctx context.Context, log *zap.Logger, opts RunOptions) error {
	opts.PlanOnly = false
	return run(ctx, log, opts)
}

// Plan runs the pipeline up to and including terraform plan. Nothing is
// applied, but generated source is still written to the output file.
func Plan(ctx context.Context, log *zap.Logger, opts RunOptions) error {
	opts.PlanOnly = true
	return run(ctx, log, opts)
}

func run(ctx context.Context, log *zap.Logger, opts RunOptions) error {
	configPath, cfg, err := loadRunConfig(opts.ConfigPath)
	if err != nil {
		return err
	}

	outputPath := resolveOutputPath(cfg, opts.OutputPath)

	gen := newGenerationClient(openai.Config{
		APIKey:  os.Getenv(openai.EnvAPIKey),
		BaseURL: openai.BaseURLFromEnv(),
		Model:   cfg.Model,
	})
	tf := newTerraform(filepath.Dir(outputPath))

	pctx := pipeline.NewContext(ctx, cfg, configPath, gen, tf)
	phases := buildPhases(gen, opts, outputPath)

	title := "apply"
	if opts.PlanOnly {
		title = "plan"
	}

	if !opts.Plain && isInteractiveTTY() {
		return runWithTUI(title, stagesOf(phases), func(ch chan<- tea.Msg) error {
			pctx.Observer = tui.NewChannelObserver(ch)
			return runPhases(pctx, phases)
		})
	}

	pctx.Observer = pipeline.NewLogObserver(log)
	return runPhases(pctx, phases)
}

// buildPhases assembles the stage list for a run.
func buildPhases(gen generationClient, opts RunOptions, outputPath string) []pipeline.Phase {
	phases := []pipeline.Phase{
		&pipeline.PreconditionPhase{
			RequireGit: opts.FromGit,
			CheckCredential: func() error {
				_, err := requireAPIKey()
				return err
			},
		},
	}

	if opts.RefreshName {
		phases = append(phases, &pipeline.NameSyncPhase{})
	}

	phases = append(phases,
		&pipeline.GeneratePhase{FromGit: opts.FromGit, Analyzer: gen},
		&pipeline.PersistPhase{Path: outputPath},
		&pipeline.InitPhase{},
		&pipeline.PlanPhase{},
	)

	if !opts.PlanOnly {
		phases = append(phases, &pipeline.ApplyPhase{})
	}

	return phases
}

// stagesOf lists the stage names of the assembled phases, in run order.
func stagesOf(phases []pipeline.Phase) []pipeline.Stage {
	stages := make([]pipeline.Stage, len(phases))
	for i, p := range phases {
		stages[i] = p.Name()
	}
	return stages
}

// loadRunConfig resolves the config path and loads the file. An empty
// path means the default config file in the current directory.
func loadRunConfig(path string) (string, *config.Config, error) {
	if path == "" {
		path = config.DefaultPath
	}

	cfg, err := loadConfigFile(path)
	if err != nil {
		if errors.Is(err, config.ErrNotFound) {
			return "", nil, fmt.Errorf("%w\nRun 'infradraft init' to create one", err)
		}
		return "", nil, fmt.Errorf("failed to load config: %w", err)
	}

	return path, cfg, nil
}

// resolveOutputPath picks the output file: flag override first, then the
// config's output file, then the default.
func resolveOutputPath(cfg *config.Config, override string) string {
	if override != "" {
		return override
	}
	if cfg.OutputFile != "" {
		return cfg.OutputFile
	}
	return config.DefaultOutputFile
}

func isInteractiveTTY() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

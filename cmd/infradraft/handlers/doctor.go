package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/infradraft/infradraft/internal/config"
	"github.com/infradraft/infradraft/internal/naming"
	"github.com/infradraft/infradraft/internal/platform/terraform"
	"github.com/infradraft/infradraft/internal/ui/tui"
	"github.com/infradraft/infradraft/internal/util/prerequisites"
)

// Factory function variables for doctor - can be replaced in tests.
var (
	// checkAllPrereqs checks required and optional tools.
	checkAllPrereqs = prerequisites.CheckAll

	// checkGitPrereqs checks the tools needed for git-derived runs.
	checkGitPrereqs = func() *prerequisites.CheckResults {
		return prerequisites.Check(prerequisites.GitTools())
	}

	// terraformVersion reports the installed terraform version through the
	// same runner the pipeline uses.
	terraformVersion = func(ctx context.Context) (terraform.CommandResult, error) {
		return terraform.NewCLI(".").Version(ctx)
	}
)

// Doctor checks tools, credentials and configuration and renders a
// checklist. It returns an error when a required check fails, so the
// command exits non-zero.
//
// Missing optional tools, a missing configuration file and an
// ungrammatical bucket name are warnings; a missing terraform binary, a
// missing credential or an unparseable configuration file are failures.
func Doctor(ctx context.Context, configPath string) error {
	if configPath == "" {
		configPath = config.DefaultPath
	}

	var rows []tui.CheckRow
	failed := false

	for _, r := range checkAllPrereqs().Results {
		row := toolRow(r)
		if r.Found && r.Tool.Name == terraform.BinaryName {
			if result, err := terraformVersion(ctx); err == nil {
				row.Detail = firstLine(result.Stdout)
			}
		}
		if !row.Ok && !row.Warn {
			failed = true
		}
		rows = append(rows, row)
	}

	for _, r := range checkGitPrereqs().Results {
		row := toolRow(r)
		if !row.Ok {
			// git only matters for --from-git runs
			row.Warn = true
			row.Detail = "not found, needed for --from-git"
		}
		rows = append(rows, row)
	}

	credRow := tui.CheckRow{Name: "OPENAI_API_KEY", Ok: true, Detail: "set"}
	if _, err := requireAPIKey(); err != nil {
		credRow.Ok = false
		credRow.Detail = err.Error()
		failed = true
	}
	rows = append(rows, credRow)

	cfgRow := tui.CheckRow{Name: "config", Ok: true}
	cfg, err := loadConfigFile(configPath)
	switch {
	case err == nil:
		cfgRow.Detail = fmt.Sprintf("%s, %d request(s), model %s", configPath, len(cfg.Commands), cfg.Model)
	case errors.Is(err, config.ErrNotFound):
		cfgRow.Ok = false
		cfgRow.Warn = true
		cfgRow.Detail = "not found, run 'infradraft init'"
	default:
		cfgRow.Ok = false
		cfgRow.Detail = err.Error()
		failed = true
	}
	rows = append(rows, cfgRow)

	if err == nil && cfg.BucketName != "" {
		rows = append(rows, bucketNameRow(cfg.BucketName))
	}

	fmt.Println(tui.RenderChecks("doctor", rows))

	if failed {
		return errors.New("required checks failed")
	}
	return nil
}

// toolRow converts a tool check result into a checklist row. A missing
// optional tool renders as a warning, a missing required one as a failure.
func toolRow(r prerequisites.CheckResult) tui.CheckRow {
	row := tui.CheckRow{Name: r.Tool.Name, Ok: r.Found, Detail: r.Version}
	if !r.Found {
		if r.Tool.Required {
			row.Detail = "not found, install: " + r.Tool.InstallURL
		} else {
			row.Warn = true
			row.Detail = "not found (optional)"
		}
	}
	return row
}

// bucketNameRow checks the configured bucket name against the S3 grammar.
func bucketNameRow(name string) tui.CheckRow {
	row := tui.CheckRow{Name: "bucket name", Ok: true, Detail: name}
	if err := naming.Validate(name); err != nil {
		row.Ok = false
		row.Warn = true
		row.Detail = err.Error()
	}
	return row
}

// firstLine trims output to its first non-empty line.
func firstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

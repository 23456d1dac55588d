// Package wizard provides an interactive configuration wizard for
// infradraft.
//
// This package implements a TUI-based wizard that guides users through
// creating the config file. It uses charmbracelet/huh for form-based
// input collection.
//
// The main entry point is RunWizard, which orchestrates question groups
// and returns a WizardResult. Use BuildConfig to convert results to a
// config.Config; writing the file is the caller's job via config.Save.
package wizard

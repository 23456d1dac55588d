// Package tui provides a Bubble Tea-based terminal UI for provisioning runs.
package tui

import (
	"time"

	"github.com/infradraft/infradraft/internal/pipeline"
)

// StageMsg reports progress of a provisioning run stage.
type StageMsg struct {
	Stage pipeline.Stage
	Done  bool
	Took  time.Duration
	Err   error
}

// NoteMsg carries a short status line from the run.
type NoteMsg struct{ Text string }

// TickMsg is sent periodically to refresh the display.
type TickMsg struct{}

// ErrMsg carries an error.
type ErrMsg struct{ Err error }

// DoneMsg signals that the run is complete.
type DoneMsg struct{}

package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/infradraft/infradraft/internal/pipeline"
)

// ChannelObserver forwards pipeline events to a message channel.
// It satisfies pipeline.Observer so a TUI run sees the same events a
// plain run logs.
type ChannelObserver struct {
	ch chan<- tea.Msg
}

// NewChannelObserver returns an observer sending events on ch.
func NewChannelObserver(ch chan<- tea.Msg) *ChannelObserver {
	return &ChannelObserver{ch: ch}
}

// StageStarted implements pipeline.Observer.
func (o *ChannelObserver) StageStarted(stage pipeline.Stage) {
	o.ch <- StageMsg{Stage: stage}
}

// StageCompleted implements pipeline.Observer.
func (o *ChannelObserver) StageCompleted(stage pipeline.Stage, took time.Duration) {
	o.ch <- StageMsg{Stage: stage, Done: true, Took: took}
}

// StageFailed implements pipeline.Observer.
func (o *ChannelObserver) StageFailed(stage pipeline.Stage, err error) {
	o.ch <- StageMsg{Stage: stage, Err: err}
}

// Infof implements pipeline.Observer.
func (o *ChannelObserver) Infof(format string, args ...any) {
	o.ch <- NoteMsg{Text: fmt.Sprintf(format, args...)}
}

// RunTUI wraps a provisioning run with a Bubble Tea TUI.
// runFn executes the run, sending progress updates on the channel, usually
// through a ChannelObserver wired into the run context.
func RunTUI(title string, stages []pipeline.Stage, runFn func(ch chan<- tea.Msg) error) error {
	m := NewRunModel(title, stages)

	p := tea.NewProgram(m, tea.WithAltScreen())

	// Run the provisioning flow in a background goroutine
	go func() {
		ch := make(chan tea.Msg, 16)
		go func() {
			defer close(ch)
			if err := runFn(ch); err != nil {
				p.Send(ErrMsg{Err: err})
			}
		}()

		for msg := range ch {
			p.Send(msg)
		}

		p.Send(DoneMsg{})
	}()

	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	fm := finalModel.(Model)
	if fm.Err != nil {
		return fm.Err
	}
	return nil
}

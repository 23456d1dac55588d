package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/infradraft/infradraft/internal/pipeline"
)

// StageRow represents a run stage for display.
type StageRow struct {
	Name   string
	Key    pipeline.Stage
	Done   bool
	Active bool
	Took   time.Duration
	Err    error
}

// stageLabels maps stages to their display names.
var stageLabels = map[pipeline.Stage]string{
	pipeline.StagePrecondition: "Preconditions",
	pipeline.StageNameSync:     "Bucket Name",
	pipeline.StageGenerate:     "Generate Source",
	pipeline.StagePersist:      "Write File",
	pipeline.StageInit:         "Terraform Init",
	pipeline.StagePlan:         "Terraform Plan",
	pipeline.StageApply:        "Terraform Apply",
}

// Model is the Bubble Tea model for the run dashboard.
type Model struct {
	Title  string
	Stages []StageRow
	Note   string

	StartTime    time.Time
	SpinnerFrame int

	Width  int
	Height int
	Err    error
	Done   bool
}

// NewRunModel creates a model displaying the given stages in order.
func NewRunModel(title string, stages []pipeline.Stage) Model {
	rows := make([]StageRow, len(stages))
	for i, s := range stages {
		label := stageLabels[s]
		if label == "" {
			label = string(s)
		}
		rows[i] = StageRow{Name: label, Key: s}
	}
	return Model{
		Title:     title,
		Stages:    rows,
		StartTime: time.Now(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

	case StageMsg:
		m.updateStage(msg)
		if msg.Err != nil {
			m.Err = msg.Err
			return m, tea.Quit
		}

	case NoteMsg:
		m.Note = msg.Text

	case TickMsg:
		m.SpinnerFrame++
		return m, tickCmd()

	case ErrMsg:
		m.Err = msg.Err
		return m, tea.Quit

	case DoneMsg:
		m.Done = true
		return m, tea.Quit
	}

	return m, nil
}

func (m *Model) updateStage(msg StageMsg) {
	idx := -1
	for i, row := range m.Stages {
		if row.Key == msg.Stage {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}

	// Mark previous stages as done
	for i := 0; i < idx; i++ {
		if m.Stages[i].Err == nil {
			m.Stages[i].Done = true
		}
		m.Stages[i].Active = false
	}

	if msg.Done {
		m.Stages[idx].Done = true
		m.Stages[idx].Active = false
		m.Stages[idx].Took = msg.Took
	} else {
		m.Stages[idx].Active = true
	}

	if msg.Err != nil {
		m.Stages[idx].Err = msg.Err
		m.Stages[idx].Active = false
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// View implements tea.Model.
func (m Model) View() string {
	return renderView(m)
}

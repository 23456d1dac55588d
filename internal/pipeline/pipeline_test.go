package pipeline

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/infradraft/infradraft/internal/config"
	"github.com/infradraft/infradraft/internal/platform/openai"
	"github.com/infradraft/infradraft/internal/platform/terraform"
)

// fakeGenerator records every request and optionally fails on the n-th
// call (1-based).
type fakeGenerator struct {
	calls  []string
	failOn int
	err    error
}

func (g *fakeGenerator) Generate(_ context.Context, command string) (string, error) {
	g.calls = append(g.calls, command)
	if g.failOn != 0 && len(g.calls) == g.failOn {
		if g.err != nil {
			return "", g.err
		}
		return "", errors.New("generation failed")
	}
	return "resource for " + command, nil
}

// fakeRunner records terraform invocations and fails the named
// subcommand with a non-zero exit.
type fakeRunner struct {
	invocations []string
	failOn      string
	stderr      string
}

func (r *fakeRunner) run(name string) (terraform.CommandResult, error) {
	r.invocations = append(r.invocations, name)
	if r.failOn == name {
		result := terraform.CommandResult{ExitCode: 1, Stderr: r.stderr}
		return result, &terraform.ExitError{Subcommand: name, Result: result}
	}
	return terraform.CommandResult{ExitCode: 0, Stdout: name + " ok"}, nil
}

func (r *fakeRunner) Version(_ context.Context) (terraform.CommandResult, error) {
	return r.run("version")
}

func (r *fakeRunner) Init(_ context.Context) (terraform.CommandResult, error) {
	return r.run("init")
}

func (r *fakeRunner) Plan(_ context.Context) (terraform.CommandResult, error) {
	return r.run("plan")
}

func (r *fakeRunner) Apply(_ context.Context) (terraform.CommandResult, error) {
	return r.run("apply")
}

// fakeAnalyzer scripts the change analysis path.
type fakeAnalyzer struct {
	changes []string
	recipes []openai.ChangeRecipe
	snippet string
	err     error
}

func (a *fakeAnalyzer) AnalyzeChanges(_ context.Context, changes []string) ([]openai.ChangeRecipe, error) {
	a.changes = changes
	if a.err != nil {
		return nil, a.err
	}
	return a.recipes, nil
}

func (a *fakeAnalyzer) GenerateFromRecipes(_ context.Context, _ []openai.ChangeRecipe) (string, error) {
	return a.snippet, nil
}

// recordingObserver captures the event sequence.
type recordingObserver struct {
	events []string
}

func (o *recordingObserver) StageStarted(stage Stage) {
	o.events = append(o.events, "start:"+string(stage))
}

func (o *recordingObserver) StageCompleted(stage Stage, _ time.Duration) {
	o.events = append(o.events, "done:"+string(stage))
}

func (o *recordingObserver) StageFailed(stage Stage, _ error) {
	o.events = append(o.events, "fail:"+string(stage))
}

func (o *recordingObserver) Infof(string, ...any) {}

// stubPhase runs a canned result and records that it ran.
type stubPhase struct {
	stage Stage
	err   error
	runs  *[]Stage
}

func (p *stubPhase) Name() Stage { return p.stage }

func (p *stubPhase) Run(_ *Context) error {
	*p.runs = append(*p.runs, p.stage)
	return p.err
}

func newTestContext(t *testing.T, cfg *config.Config, gen Generator, tf terraform.Runner) *Context {
	t.Helper()
	path := filepath.Join(t.TempDir(), "infradraft.json")
	return NewContext(context.Background(), cfg, path, gen, tf)
}

func TestRunPhasesExecutesInOrder(t *testing.T) {
	t.Parallel()

	var runs []Stage
	ctx := newTestContext(t, config.Default(), &fakeGenerator{}, &fakeRunner{})

	err := RunPhases(ctx, []Phase{
		&stubPhase{stage: StagePrecondition, runs: &runs},
		&stubPhase{stage: StageGenerate, runs: &runs},
		&stubPhase{stage: StagePersist, runs: &runs},
	})

	require.NoError(t, err)
	assert.Equal(t, []Stage{StagePrecondition, StageGenerate, StagePersist}, runs)
}

func TestRunPhasesStopsOnFirstFailure(t *testing.T) {
	t.Parallel()

	var runs []Stage
	boom := errors.New("boom")
	ctx := newTestContext(t, config.Default(), &fakeGenerator{}, &fakeRunner{})

	err := RunPhases(ctx, []Phase{
		&stubPhase{stage: StageInit, runs: &runs},
		&stubPhase{stage: StagePlan, err: boom, runs: &runs},
		&stubPhase{stage: StageApply, runs: &runs},
	})

	require.Error(t, err)
	assert.Equal(t, []Stage{StageInit, StagePlan}, runs)

	var stageErr *StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, StagePlan, stageErr.Stage)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "plan stage failed")
}

func TestRunPhasesEmitsObserverEvents(t *testing.T) {
	t.Parallel()

	var runs []Stage
	obs := &recordingObserver{}
	ctx := newTestContext(t, config.Default(), &fakeGenerator{}, &fakeRunner{})
	ctx.Observer = obs

	err := RunPhases(ctx, []Phase{
		&stubPhase{stage: StageInit, runs: &runs},
		&stubPhase{stage: StagePlan, err: errors.New("boom"), runs: &runs},
	})

	require.Error(t, err)
	assert.Equal(t, []string{
		"start:init",
		"done:init",
		"start:plan",
		"fail:plan",
	}, obs.events)
}

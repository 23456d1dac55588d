package pipeline

import (
	"fmt"
	"time"
)

// Stage identifies one step of a run.
type Stage string

// Stages in execution order. Plan-only runs stop after StagePlan.
const (
	StagePrecondition Stage = "precondition"
	StageNameSync     Stage = "namesync"
	StageGenerate     Stage = "generate"
	StagePersist      Stage = "persist"
	StageInit         Stage = "init"
	StagePlan         Stage = "plan"
	StageApply        Stage = "apply"
)

// Phase defines the interface for a pipeline stage.
type Phase interface {
	// Name returns the stage this phase implements.
	Name() Stage

	// Run executes the stage against the shared context.
	Run(ctx *Context) error
}

// StageError wraps a stage failure so callers can tell which stage
// aborted the run. For the terraform stages the wrapped error is a
// *terraform.ExitError carrying the exit code and captured output.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// RunPhases executes all phases sequentially. The first failure aborts
// the run; remaining phases are skipped.
func RunPhases(ctx *Context, phases []Phase) error {
	start := time.Now()
	ctx.Observer.Infof("starting run %s with %d stages", ctx.RunID, len(phases))

	for _, phase := range phases {
		stage := phase.Name()
		stageStart := time.Now()

		ctx.Observer.StageStarted(stage)

		if err := phase.Run(ctx); err != nil {
			ctx.Observer.StageFailed(stage, err)
			return &StageError{Stage: stage, Err: err}
		}

		ctx.Observer.StageCompleted(stage, time.Since(stageStart).Round(time.Millisecond))
	}

	ctx.Observer.Infof("run %s completed in %v", ctx.RunID, time.Since(start).Round(time.Millisecond))
	return nil
}

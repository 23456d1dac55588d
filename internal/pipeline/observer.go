package pipeline

import (
	"time"

	"go.uber.org/zap"
)

// Observer receives stage lifecycle events during a run.
type Observer interface {
	// StageStarted is called before a stage runs.
	StageStarted(stage Stage)

	// StageCompleted is called after a stage finished.
	StageCompleted(stage Stage, took time.Duration)

	// StageFailed is called when a stage returned an error.
	StageFailed(stage Stage, err error)

	// Infof reports run-level progress outside stage boundaries.
	Infof(format string, args ...any)
}

// LogObserver writes stage events to a zap logger.
type LogObserver struct {
	log *zap.SugaredLogger
}

// NewLogObserver creates an observer backed by the given logger.
func NewLogObserver(log *zap.Logger) *LogObserver {
	return &LogObserver{log: log.Sugar()}
}

// StageStarted implements Observer.
func (o *LogObserver) StageStarted(stage Stage) {
	o.log.Infow("stage started", "stage", string(stage))
}

// StageCompleted implements Observer.
func (o *LogObserver) StageCompleted(stage Stage, took time.Duration) {
	o.log.Infow("stage completed", "stage", string(stage), "took", took.String())
}

// StageFailed implements Observer.
func (o *LogObserver) StageFailed(stage Stage, err error) {
	o.log.Errorw("stage failed", "stage", string(stage), "error", err)
}

// Infof implements Observer.
func (o *LogObserver) Infof(format string, args ...any) {
	o.log.Infof(format, args...)
}

package pipeline

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/infradraft/infradraft/internal/config"
	"github.com/infradraft/infradraft/internal/platform/openai"
	"github.com/infradraft/infradraft/internal/platform/terraform"
)

// Generator produces infrastructure source text for one natural-language
// request. Implemented by openai.Client.
type Generator interface {
	Generate(ctx context.Context, command string) (string, error)
}

// ChangeAnalyzer derives infrastructure source from repository file
// changes. Implemented by openai.Client.
type ChangeAnalyzer interface {
	AnalyzeChanges(ctx context.Context, changes []string) ([]openai.ChangeRecipe, error)
	GenerateFromRecipes(ctx context.Context, recipes []openai.ChangeRecipe) (string, error)
}

// State holds the shared results of pipeline stages. It is progressively
// populated as each stage completes and read by the stages that follow.
type State struct {
	// BucketName is set by the namesync stage when a fresh name was
	// generated and written back to the config.
	BucketName string

	// Snippets holds the generated source, one entry per request.
	Snippets []string

	// OutputPath is the file the persist stage wrote.
	OutputPath string
}

// NewState creates an empty run state.
func NewState() *State {
	return &State{}
}

// Context wraps all dependencies and state needed for a pipeline stage.
type Context struct {
	context.Context

	// Config is the record the run operates on. The namesync stage
	// mutates it in place so later stages see the refreshed name.
	Config *config.Config

	// ConfigPath is where namesync writes the updated record.
	ConfigPath string

	Generator Generator
	Terraform terraform.Runner
	Observer  Observer

	State *State
	RunID string
}

// NewContext creates a pipeline context with a fresh run ID and a silent
// observer. Callers replace Observer to get output.
func NewContext(ctx context.Context, cfg *config.Config, configPath string, gen Generator, tf terraform.Runner) *Context {
	return &Context{
		Context:    ctx,
		Config:     cfg,
		ConfigPath: configPath,
		Generator:  gen,
		Terraform:  tf,
		Observer:   NewLogObserver(zap.NewNop()),
		State:      NewState(),
		RunID:      uuid.NewString(),
	}
}

package pipeline

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/infradraft/infradraft/internal/config"
	"github.com/infradraft/infradraft/internal/naming"
	"github.com/infradraft/infradraft/internal/util/prerequisites"
)

// PreconditionPhase verifies the run can work at all: the provisioning
// CLI must be on PATH and the generation credential must be usable.
// A failure here is terminal before any remote call is made.
type PreconditionPhase struct {
	// CheckTools verifies required binaries are reachable. Defaults to
	// the standard prerequisite check.
	CheckTools func() error

	// CheckCredential reports whether the generation service can be
	// called. Wired to the client package's credential check.
	CheckCredential func() error

	// RequireGit also demands git, for runs that derive changes from
	// the repository history.
	RequireGit bool
}

// Name implements Phase.
func (p *PreconditionPhase) Name() Stage { return StagePrecondition }

// Run implements Phase.
func (p *PreconditionPhase) Run(ctx *Context) error {
	checkTools := p.CheckTools
	if checkTools == nil {
		checkTools = func() error {
			if p.RequireGit {
				return prerequisites.CheckForGitMode().Error()
			}
			return prerequisites.CheckDefault().Error()
		}
	}
	if err := checkTools(); err != nil {
		return err
	}

	if p.CheckCredential != nil {
		if err := p.CheckCredential(); err != nil {
			return err
		}
	}

	return nil
}

// NameSyncPhase regenerates the bucket name and writes it back to the
// config file, so the generate stage substitutes the fresh value.
type NameSyncPhase struct {
	// Prefix for the generated name. Empty means the default prefix.
	Prefix string

	// Length of the random suffix. Zero means the default length;
	// negative values are rejected by the generator.
	Length int
}

// Name implements Phase.
func (p *NameSyncPhase) Name() Stage { return StageNameSync }

// Run implements Phase.
func (p *NameSyncPhase) Run(ctx *Context) error {
	prefix := p.Prefix
	if prefix == "" {
		prefix = naming.DefaultPrefix
	}
	length := p.Length
	if length == 0 {
		length = naming.DefaultSuffixLength
	}

	name, err := naming.GenerateBucketName(prefix, length)
	if err != nil {
		return err
	}

	ctx.Config.BucketName = name
	if err := config.Save(ctx.Config, ctx.ConfigPath); err != nil {
		return err
	}

	ctx.State.BucketName = name
	ctx.Observer.Infof("bucket name refreshed: %s", name)
	return nil
}

// GeneratePhase turns each configured request into source text. Output
// accumulates in memory; nothing touches the output file until the
// persist stage.
type GeneratePhase struct {
	// FromGit derives one combined snippet from the files changed in
	// the latest commit instead of using the configured requests.
	FromGit bool

	// Analyzer is required when FromGit is set.
	Analyzer ChangeAnalyzer

	// RepoDir is where git runs. Empty means the current directory.
	RepoDir string
}

// Name implements Phase.
func (p *GeneratePhase) Name() Stage { return StageGenerate }

// Run implements Phase.
func (p *GeneratePhase) Run(ctx *Context) error {
	if p.FromGit {
		return p.runFromGit(ctx)
	}

	for _, command := range ctx.Config.ResolvedCommands() {
		snippet, err := ctx.Generator.Generate(ctx, command)
		if err != nil {
			return err
		}
		ctx.State.Snippets = append(ctx.State.Snippets, snippet)
	}

	ctx.Observer.Infof("generated %d snippet(s)", len(ctx.State.Snippets))
	return nil
}

func (p *GeneratePhase) runFromGit(ctx *Context) error {
	if p.Analyzer == nil {
		return errors.New("change analysis requested but no analyzer configured")
	}

	changes, err := listChangedFiles(ctx, p.RepoDir)
	if err != nil {
		return err
	}
	if len(changes) == 0 {
		return errors.New("no changes found in the latest commit")
	}

	recipes, err := p.Analyzer.AnalyzeChanges(ctx, changes)
	if err != nil {
		return err
	}
	if len(recipes) == 0 {
		return errors.New("change analysis produced no recipes")
	}

	snippet, err := p.Analyzer.GenerateFromRecipes(ctx, recipes)
	if err != nil {
		return err
	}

	ctx.State.Snippets = append(ctx.State.Snippets, snippet)
	ctx.Observer.Infof("generated source for %d changed file(s)", len(changes))
	return nil
}

// PersistPhase writes the accumulated source to the output file,
// replacing whatever was there before.
type PersistPhase struct {
	// Path overrides the config's output file when set.
	Path string
}

// Name implements Phase.
func (p *PersistPhase) Name() Stage { return StagePersist }

// Run implements Phase.
func (p *PersistPhase) Run(ctx *Context) error {
	path := p.Path
	if path == "" {
		path = ctx.Config.OutputFile
	}
	if path == "" {
		path = config.DefaultOutputFile
	}

	content := strings.Join(ctx.State.Snippets, "\n\n")
	if content != "" && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}

	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	ctx.State.OutputPath = path
	ctx.Observer.Infof("wrote %s (%d bytes)", path, len(content))
	return nil
}

// InitPhase runs terraform init.
type InitPhase struct{}

// Name implements Phase.
func (p *InitPhase) Name() Stage { return StageInit }

// Run implements Phase.
func (p *InitPhase) Run(ctx *Context) error {
	_, err := ctx.Terraform.Init(ctx)
	return err
}

// PlanPhase runs terraform plan.
type PlanPhase struct{}

// Name implements Phase.
func (p *PlanPhase) Name() Stage { return StagePlan }

// Run implements Phase.
func (p *PlanPhase) Run(ctx *Context) error {
	_, err := ctx.Terraform.Plan(ctx)
	return err
}

// ApplyPhase runs terraform apply.
type ApplyPhase struct{}

// Name implements Phase.
func (p *ApplyPhase) Name() Stage { return StageApply }

// Run implements Phase.
func (p *ApplyPhase) Run(ctx *Context) error {
	_, err := ctx.Terraform.Apply(ctx)
	return err
}

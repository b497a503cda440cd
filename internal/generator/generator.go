package generator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/bun-cli/bun-cli/internal/prompt"
	"github.com/bun-cli/bun-cli/internal/toolchain"
)

// InstallQuestion is asked before installing a missing tool.
const InstallQuestion = "Bun is not installed. Would you like to install it now?"

// Installer installs the external tool and makes it resolvable for later
// spawns. *toolchain.Installer satisfies it.
type Installer interface {
	Install(ctx context.Context) (string, error)
}

// Outcome is the in-memory result of a successful run.
type Outcome struct {
	ProjectDir   string
	ToolVersion  string
	Dependencies []DependencyResult
	Templates    *MergeReport
	Manifest     *ManifestReport
	// Warnings holds every non-fatal failure in the order it occurred.
	Warnings []error
	// Installed is true when the recovery branch installed the tool.
	Installed bool
}

// FailedDependencies returns the results whose install failed.
func (o *Outcome) FailedDependencies() []DependencyResult {
	var out []DependencyResult
	for _, d := range o.Dependencies {
		if !d.OK() {
			out = append(out, d)
		}
	}
	return out
}

// Generator drives one project generation.
type Generator struct {
	cfg       ProjectConfig
	tc        *toolchain.Toolchain
	installer Installer
	confirm   prompt.Confirmer
	reporter  Reporter

	state   State
	failure error
}

// Option configures a Generator.
type Option func(*Generator)

// WithInstaller enables the install-and-retry recovery branch.
func WithInstaller(i Installer) Option {
	return func(g *Generator) {
		g.installer = i
	}
}

// WithConfirmer sets the source of the install consent answer.
func WithConfirmer(c prompt.Confirmer) Option {
	return func(g *Generator) {
		g.confirm = c
	}
}

// WithReporter sets the progress observer.
func WithReporter(r Reporter) Option {
	return func(g *Generator) {
		if r != nil {
			g.reporter = r
		}
	}
}

// New returns a Generator for cfg that spawns the tool through tc.
func New(cfg ProjectConfig, tc *toolchain.Toolchain, opts ...Option) *Generator {
	g := &Generator{
		cfg:      cfg,
		tc:       tc,
		reporter: NopReporter{},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Config returns the run configuration.
func (g *Generator) Config() ProjectConfig {
	return g.cfg
}

// State returns the current state.
func (g *Generator) State() State {
	return g.state
}

// Failure returns the error that moved the generator to StateFailed.
func (g *Generator) Failure() error {
	return g.failure
}

// Run generates the project and, when the tool is missing, asks for consent
// to install it. After a successful install and re-probe the scaffold is
// retried exactly once.
func (g *Generator) Run(ctx context.Context) (*Outcome, error) {
	out, err := g.Generate(ctx)
	if err == nil || !errors.Is(err, ErrBunNotInstalled) {
		return out, err
	}
	if g.installer == nil || g.confirm == nil {
		return nil, err
	}

	ok, cerr := g.confirm.Confirm(InstallQuestion)
	if cerr != nil {
		return nil, g.fail(IoError(cerr))
	}
	if !ok {
		return nil, err
	}

	g.enter(StateToolInstalling)
	if _, ierr := g.installer.Install(ctx); ierr != nil {
		return nil, g.fail(BunNotInstalled(ierr))
	}
	version, perr := g.tc.Probe(ctx)
	if perr != nil {
		return nil, g.fail(BunNotInstalled(perr))
	}
	g.enter(StateToolChecked)

	out = &Outcome{ProjectDir: g.cfg.ProjectDir(), ToolVersion: version, Installed: true}
	if err := g.build(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Generate runs the pipeline once without the recovery branch. A missing
// tool is returned as a BunNotInstalled error.
func (g *Generator) Generate(ctx context.Context) (*Outcome, error) {
	g.state = StateIdle
	g.failure = nil

	if err := ValidateName(g.cfg.Name); err != nil {
		return nil, g.fail(err)
	}
	g.enter(StateNameValidated)

	version, err := g.tc.Probe(ctx)
	if err != nil {
		return nil, g.fail(BunNotInstalled(err))
	}
	g.enter(StateToolChecked)

	out := &Outcome{ProjectDir: g.cfg.ProjectDir(), ToolVersion: version}
	if err := g.build(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

// build runs every step after the tool check. Only the scaffold is fatal.
func (g *Generator) build(ctx context.Context, out *Outcome) error {
	if err := g.createBaseProject(ctx); err != nil {
		return g.fail(err)
	}
	g.enter(StateScaffolded)

	out.Dependencies = g.InstallDependencies(ctx)
	for _, res := range out.Dependencies {
		if res.Err != nil {
			g.warn(out, res.Err)
		}
	}
	g.enter(StateDependenciesInstalled)

	report, err := MergeTemplates(g.cfg.TemplatesDir, g.cfg.SourceDir())
	out.Templates = report
	if err != nil {
		g.warn(out, err)
	}
	for _, f := range report.Failed() {
		g.warn(out, TemplateCopyFailed(fmt.Sprintf("copying %s", f.Path), f.Err))
	}
	g.reporter.TemplatesMerged(report, err)
	g.enter(StateTemplatesCopied)

	g.checkManifest(out)

	g.enter(StateDone)
	return nil
}

// createBaseProject runs "create <template> <name>" in the base directory.
func (g *Generator) createBaseProject(ctx context.Context) error {
	cmd := g.tc.Command("create", g.cfg.template(), g.cfg.Name).In(g.cfg.baseDir())
	out, err := g.tc.Run(ctx, cmd)
	if err != nil {
		return IoError(err)
	}
	if !out.Success() {
		return CommandFailed(cmd.String(), out.Stderr)
	}
	return nil
}

func (g *Generator) checkManifest(out *Outcome) {
	var added []string
	for _, res := range out.Dependencies {
		if res.OK() {
			added = append(added, res.Dependency)
		}
	}

	report, err := CheckManifest(out.ProjectDir, added)
	if errors.Is(err, fs.ErrNotExist) {
		return
	}
	if err != nil {
		g.warn(out, fmt.Errorf("checking %s: %w", ManifestFile, err))
		return
	}
	out.Manifest = report
	for _, issue := range report.Issues {
		g.warn(out, fmt.Errorf("%s: %s", ManifestFile, issue))
	}
	if len(report.Missing) > 0 {
		g.warn(out, fmt.Errorf("%s does not record %s", ManifestFile, printer.Sprintf("%d added dependencies: %v", len(report.Missing), report.Missing)))
	}
}

func (g *Generator) enter(s State) {
	g.state = s
	g.reporter.StateChanged(s)
}

func (g *Generator) fail(err error) error {
	g.failure = err
	g.enter(StateFailed)
	return err
}

func (g *Generator) warn(out *Outcome, err error) {
	out.Warnings = append(out.Warnings, err)
	g.reporter.Warning(err)
}

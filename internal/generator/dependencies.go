package generator

import (
	"context"
)

// DependencyResult is the outcome of adding one dependency. Err is nil on
// success and a DependencyFailed *Error otherwise.
type DependencyResult struct {
	Dependency string
	Err        error
}

// OK reports whether the dependency was added.
func (r DependencyResult) OK() bool {
	return r.Err == nil
}

// InstallDependencies runs "add <dep>" in the project directory for every
// configured dependency, in order. A failure never stops the remaining
// installs; the caller decides what to do with the per-item results.
func (g *Generator) InstallDependencies(ctx context.Context) []DependencyResult {
	results := make([]DependencyResult, 0, len(g.cfg.Dependencies))
	for _, dep := range g.cfg.Dependencies {
		res := DependencyResult{Dependency: dep, Err: g.installDependency(ctx, dep)}
		g.reporter.DependencyAdded(res)
		results = append(results, res)
	}
	return results
}

func (g *Generator) installDependency(ctx context.Context, dep string) error {
	cmd := g.tc.Command("add", dep).In(g.cfg.ProjectDir())
	out, err := g.tc.Run(ctx, cmd)
	if err != nil {
		return DependencyFailed(dep, err.Error(), err)
	}
	if !out.Success() {
		return DependencyFailed(dep, out.Stderr, nil)
	}
	return nil
}

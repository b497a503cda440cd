package generator

import (
	"path/filepath"
	"slices"
)

// DefaultTemplate is the project template passed to "bun create".
const DefaultTemplate = "elysia"

// DefaultDependencies is the fixed package set added to every generated project.
var DefaultDependencies = []string{
	"@bogeychan/elysia-logger",
	"@elysiajs/cors",
	"@elysiajs/swagger",
	"@sentry/bun",
	"@sentry/cli",
	"@types/luxon",
	"jsonwebtoken",
	"luxon",
	"mongoose",
	"winston",
	"winston-daily-rotate-file",
}

// ProjectConfig describes one generation run. It must not be modified after
// it is handed to New.
type ProjectConfig struct {
	// Name is the project identifier and the directory created for it.
	Name string
	// Template is the "bun create" template; empty selects DefaultTemplate.
	Template string
	// Dependencies are added in order after the scaffold exists.
	Dependencies []string
	// TemplatesDir overrides the built-in templates merged into
	// <project>/src. Empty selects the built-in tree; a missing directory
	// skips the merge.
	TemplatesDir string
	// BaseDir is the directory the project is created in; empty means ".".
	BaseDir string
}

// DefaultConfig returns a ProjectConfig for name with the default template
// and dependency list.
func DefaultConfig(name string) ProjectConfig {
	return ProjectConfig{
		Name:         name,
		Template:     DefaultTemplate,
		Dependencies: slices.Clone(DefaultDependencies),
	}
}

func (c ProjectConfig) template() string {
	if c.Template == "" {
		return DefaultTemplate
	}
	return c.Template
}

func (c ProjectConfig) baseDir() string {
	if c.BaseDir == "" {
		return "."
	}
	return c.BaseDir
}

// ProjectDir returns the path of the generated project.
func (c ProjectConfig) ProjectDir() string {
	return filepath.Join(c.baseDir(), c.Name)
}

// SourceDir returns the path templates are merged into.
func (c ProjectConfig) SourceDir() string {
	return filepath.Join(c.ProjectDir(), "src")
}

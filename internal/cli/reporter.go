package cli

import (
	"fmt"
	"io"

	"github.com/bun-cli/bun-cli/internal/generator"
	"github.com/fatih/color"
)

// consoleReporter prints generation progress. Status lines go to out,
// warnings to errOut.
type consoleReporter struct {
	out       io.Writer
	errOut    io.Writer
	name      string
	installed bool

	green  *color.Color
	yellow *color.Color
}

func newConsoleReporter(out, errOut io.Writer, name string) *consoleReporter {
	return &consoleReporter{
		out:    out,
		errOut: errOut,
		name:   name,
		green:  color.New(color.FgGreen),
		yellow: color.New(color.FgYellow),
	}
}

func (r *consoleReporter) StateChanged(s generator.State) {
	switch s {
	case generator.StateToolInstalling:
		r.installed = true
		fmt.Fprintln(r.out, "Installing Bun...")
	case generator.StateToolChecked:
		if r.installed {
			r.green.Fprintln(r.out, "✓ Bun installed")
			fmt.Fprintln(r.out, "Retrying project creation...")
		}
		fmt.Fprintf(r.out, "Creating project '%s'...\n", r.name)
	case generator.StateScaffolded:
		r.green.Fprintf(r.out, "✓ Project '%s' created successfully\n", r.name)
		fmt.Fprintln(r.out, "Installing dependencies...")
	case generator.StateDependenciesInstalled:
		fmt.Fprintln(r.out, "Copying template files...")
	}
}

// TemplatesMerged confirms a clean merge. Failures were already printed as
// warnings.
func (r *consoleReporter) TemplatesMerged(report *generator.MergeReport, err error) {
	if err != nil || len(report.Failed()) > 0 {
		return
	}
	if report.SourceMissing {
		fmt.Fprintf(r.out, "Template directory %s not found, skipping\n", report.Source)
		return
	}
	r.green.Fprintln(r.out, "✓ Template files copied successfully")
}

func (r *consoleReporter) DependencyAdded(res generator.DependencyResult) {
	if res.OK() {
		r.green.Fprintf(r.out, "✓ Added dependency: %s\n", res.Dependency)
	}
}

func (r *consoleReporter) Warning(err error) {
	r.yellow.Fprintf(r.errOut, "⚠ Warning: %v\n", err)
}

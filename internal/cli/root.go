package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/bun-cli/bun-cli/internal/branding"
	"github.com/bun-cli/bun-cli/internal/config"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName() + " [project-name]",
	Short: branding.Description(),
	Long: branding.DisplayName() + ` creates a new Elysia service with "bun create", adds the standard
dependency set (logging, CORS, Swagger, Sentry, JWT, Mongoose, Winston) and
merges the shared source templates into the project's src directory.

When the project name is omitted it is read from standard input. If Bun is
not installed you are offered to install it before generation is retried.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Load()
	},
	RunE: runGenerate,
}

// Execute runs the root command with build info injected via ldflags. A
// failure is printed with its full cause chain before it is returned.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	if err := rootCmd.Execute(); err != nil {
		PrintError(os.Stderr, err)
		return err
	}
	return nil
}

// PrintError writes the top-level message followed by every wrapped cause,
// innermost last.
func PrintError(w io.Writer, err error) {
	red := color.New(color.FgRed, color.Bold)
	red.Fprintf(w, "\n❌ Error: %v\n", err)
	for _, cause := range causes(err) {
		fmt.Fprintf(w, "  Caused by: %v\n", cause)
	}
}

// causes flattens the wrap chain of err depth-first, excluding err itself.
func causes(err error) []error {
	var out []error
	var walk func(error)
	walk = func(e error) {
		switch u := e.(type) {
		case interface{ Unwrap() []error }:
			for _, inner := range u.Unwrap() {
				if inner != nil {
					out = append(out, inner)
					walk(inner)
				}
			}
		default:
			if inner := errors.Unwrap(e); inner != nil {
				out = append(out, inner)
				walk(inner)
			}
		}
	}
	walk(err)
	return out
}

package cli

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bun-cli/bun-cli/internal/config"
	"github.com/bun-cli/bun-cli/internal/generator"
	"github.com/bun-cli/bun-cli/internal/toolchain"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that Bun and the template directory are usable",
	Long: `Run diagnostic checks on the environment used for project generation:
the Bun binary and its version, the Bun install directory, the template
directory, and the user config file.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		search := toolchain.NewSearchPath()
		tc := toolchain.New(config.Tool(), toolchain.NewExecRunner(search))

		runToolCheck(cmd.Context(), w, tc, search, config.MinBunVersion())
		runTemplatesCheck(w, config.TemplatesDir())
		runConfigCheck(w, config.FilePath())
		return nil
	},
}

var (
	okTag   = color.New(color.FgGreen).Sprint("[ OK ]")
	warnTag = color.New(color.FgYellow).Sprint("[WARN]")
	missTag = color.New(color.FgRed).Sprint("[MISS]")
	infoTag = "[INFO]"
)

func runToolCheck(ctx context.Context, w io.Writer, tc *toolchain.Toolchain, search *toolchain.SearchPath, min string) {
	fmt.Fprintln(w, "Tool check:")

	version, err := tc.Probe(ctx)
	if err != nil {
		fmt.Fprintf(w, "  %s %s not found: %v\n", missTag, tc.Tool(), err)
		binDir := toolchain.BinDir(toolchain.DefaultInstallRoot())
		exe := tc.Tool()
		if toolchain.IsWindows() && filepath.Ext(exe) == "" {
			exe += ".exe"
		}
		if _, statErr := os.Stat(filepath.Join(binDir, exe)); statErr == nil {
			fmt.Fprintf(w, "  %s %s exists in %s but that directory is not on PATH\n", warnTag, tc.Tool(), binDir)
		}
		return
	}

	path, _ := search.LookPath(tc.Tool())
	fmt.Fprintf(w, "  %s %s %s found at %s\n", okTag, tc.Tool(), version, path)
	fmt.Fprintf(w, "  %s\n", checkToolVersion(version, min))
}

// checkToolVersion returns the status line for version compared to min.
func checkToolVersion(version, min string) string {
	if min == "" {
		return fmt.Sprintf("%s no minimum version configured", infoTag)
	}
	ok, err := toolchain.SatisfiesMinimum(version, min)
	switch {
	case err != nil:
		return fmt.Sprintf("%s cannot compare versions: %v", warnTag, err)
	case !ok:
		return fmt.Sprintf("%s version %s is older than the required %s", warnTag, version, min)
	default:
		return fmt.Sprintf("%s version %s satisfies >= %s", okTag, version, min)
	}
}

func runTemplatesCheck(w io.Writer, dir string) {
	fmt.Fprintln(w, "Templates check:")
	if dir == "" {
		n := 0
		_ = fs.WalkDir(generator.BuiltinTemplates().FS, ".", func(_ string, d fs.DirEntry, err error) error {
			if err == nil && !d.IsDir() {
				n++
			}
			return err
		})
		fmt.Fprintf(w, "  %s using %s (%d files)\n", okTag, generator.BuiltinTemplatesName, n)
		return
	}
	info, err := os.Stat(dir)
	switch {
	case os.IsNotExist(err):
		fmt.Fprintf(w, "  %s %s does not exist; template merge will be skipped\n", warnTag, dir)
	case err != nil:
		fmt.Fprintf(w, "  %s cannot read %s: %v\n", warnTag, dir, err)
	case !info.IsDir():
		fmt.Fprintf(w, "  %s %s is not a directory\n", warnTag, dir)
	default:
		fmt.Fprintf(w, "  %s %s\n", okTag, dir)
	}
}

func runConfigCheck(w io.Writer, path string) {
	fmt.Fprintln(w, "Config check:")
	if _, err := os.Stat(path); err != nil {
		fmt.Fprintf(w, "  %s %s not present; using defaults\n", infoTag, path)
		return
	}
	fmt.Fprintf(w, "  %s %s\n", okTag, path)
}

package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/bun-cli/bun-cli/internal/branding"
	"github.com/bun-cli/bun-cli/internal/config"
	"github.com/bun-cli/bun-cli/internal/generator"
	"github.com/bun-cli/bun-cli/internal/prompt"
	"github.com/bun-cli/bun-cli/internal/toolchain"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	genTemplatesDir string
	genTemplate     string
	genYes          bool
	genNoInstall    bool
	genVerbose      bool
)

var printer = message.NewPrinter(language.English)

func init() {
	rootCmd.Flags().StringVar(&genTemplatesDir, "templates", "", "Template directory merged into <name>/src instead of the built-in templates")
	rootCmd.Flags().StringVar(&genTemplate, "template", "", "Template passed to 'bun create' (default from config)")
	rootCmd.Flags().BoolVarP(&genYes, "yes", "y", false, "Install Bun without asking if it is missing")
	rootCmd.Flags().BoolVar(&genNoInstall, "no-install", false, "Never install Bun; fail if it is missing")
	rootCmd.Flags().BoolVarP(&genVerbose, "verbose", "v", false, "Stream output of bun subcommands")
	rootCmd.MarkFlagsMutuallyExclusive("yes", "no-install")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()
	in := bufio.NewReader(cmd.InOrStdin())

	bold := color.New(color.Bold)
	bold.Fprintf(out, "%s\n", branding.DisplayName())

	var name string
	if len(args) == 1 {
		name = strings.TrimSpace(args[0])
	} else {
		fmt.Fprintln(out, "A cool name for your Bun project 😎:")
		line, err := prompt.ReadLine(in)
		if err != nil {
			return generator.IoError(err)
		}
		name = line
	}

	cfg := generator.ProjectConfig{
		Name:         name,
		Template:     firstNonEmpty(genTemplate, config.Template()),
		Dependencies: config.Dependencies(),
		TemplatesDir: firstNonEmpty(genTemplatesDir, config.TemplatesDir()),
	}

	search := toolchain.NewSearchPath()
	runner := toolchain.NewExecRunner(search)
	if genVerbose {
		runner.Stdout = errOut
		runner.Stderr = errOut
	}
	tc := toolchain.New(config.Tool(), runner)
	installer := toolchain.NewInstaller(runner, search,
		toolchain.WithScriptURL(config.InstallScriptURL()),
		toolchain.WithUserAgent(branding.UserAgent()),
	)

	var confirm prompt.Confirmer = prompt.NewReaderConfirmer(in, out)
	switch {
	case genYes:
		confirm = prompt.Fixed(true)
	case genNoInstall:
		confirm = prompt.Fixed(false)
	}

	g := generator.New(cfg, tc,
		generator.WithInstaller(installer),
		generator.WithConfirmer(confirm),
		generator.WithReporter(newConsoleReporter(out, errOut, cfg.Name)),
	)

	outcome, err := g.Run(cmd.Context())
	if err != nil {
		return err
	}

	printSummary(out, cfg, outcome)
	return nil
}

func printSummary(w io.Writer, cfg generator.ProjectConfig, o *generator.Outcome) {
	green := color.New(color.FgGreen)

	total := len(o.Dependencies)
	added := total - len(o.FailedDependencies())
	printer.Fprintf(w, "\nAdded %d of %d dependencies\n", added, total)

	if o.Templates != nil && len(o.Templates.Files) > 0 {
		printer.Fprintf(w, "Templates: %d copied, %d up to date, %d failed\n",
			len(o.Templates.Copied()), len(o.Templates.Skipped()), len(o.Templates.Failed()))
	}
	if len(o.Warnings) > 0 {
		printer.Fprintf(w, "Finished with %d warning(s)\n", len(o.Warnings))
	}

	green.Fprintln(w, "\n🥳 All done! Your project is ready to use.")
	fmt.Fprintf(w, "Run 'cd %s' to get started!\n", cfg.Name)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/bun-cli/bun-cli/internal/branding"
	"github.com/bun-cli/bun-cli/internal/generator"
	"github.com/spf13/cobra"
)

var versionFormat string

func init() {
	versionCmd.Flags().StringVarP(&versionFormat, "output", "o", "text", "Output format: text, short or json")
	rootCmd.AddCommand(versionCmd)
}

// buildInfo is what "version" reports about this binary.
type buildInfo struct {
	Name     string `json:"name"`
	Version  string `json:"version"`
	Commit   string `json:"commit"`
	Date     string `json:"date"`
	Template string `json:"template"`
}

func currentBuild() buildInfo {
	return buildInfo{
		Name:     branding.CLIName(),
		Version:  buildVersion,
		Commit:   buildCommit,
		Date:     buildDate,
		Template: generator.DefaultTemplate,
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeBuildInfo(cmd.OutOrStdout(), currentBuild(), versionFormat)
	},
}

func writeBuildInfo(w io.Writer, info buildInfo, format string) error {
	switch format {
	case "short":
		fmt.Fprintln(w, info.Version)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(info); err != nil {
			return fmt.Errorf("encoding version info: %w", err)
		}
	case "text", "":
		fmt.Fprintf(w, "%s %s\n", branding.DisplayName(), info.Version)
		fmt.Fprintf(w, "  commit:   %s\n  built:    %s\n  template: %s\n", info.Commit, info.Date, info.Template)
	default:
		return fmt.Errorf("unknown output format %q (want text, short or json)", format)
	}
	return nil
}

// Package branding provides compile-time identity values for the CLI.
//
// Edit branding.yaml in this package and rebuild; //go:embed bakes it into
// the binary.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName     string `yaml:"cli_name"`
	DisplayName string `yaml:"display_name"`
	Description string `yaml:"description"`
	HomeDir     string `yaml:"home_dir"`
	EnvPrefix   string `yaml:"env_prefix"`
}

func load() {
	once.Do(func() {
		// Hard defaults in case the embedded file is missing or empty.
		defaults = brand{
			CLIName:     "bun-cli",
			DisplayName: "Bun CLI Generator",
			Description: "Scaffold Elysia backend services on Bun",
			HomeDir:     ".bun-cli",
			EnvPrefix:   "BUNCLI",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "bun-cli").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".bun-cli").
func HomeDir() string { load(); return defaults.HomeDir }

// UserAgent returns the User-Agent used for outbound downloads.
func UserAgent() string { load(); return defaults.CLIName + "-installer" }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("templates_dir") → "BUNCLI_TEMPLATES_DIR".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}

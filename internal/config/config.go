package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/bun-cli/bun-cli/internal/branding"
	"github.com/bun-cli/bun-cli/internal/generator"
	"github.com/bun-cli/bun-cli/internal/toolchain"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Recognised configuration keys.
const (
	KeyTemplatesDir     = "templates_dir"
	KeyTemplate         = "template"
	KeyDependencies     = "dependencies"
	KeyTool             = "tool"
	KeyInstallScriptURL = "install_script_url"
	KeyMinBunVersion    = "min_bun_version"
)

// DefaultMinBunVersion is the lowest Bun release the generated project is
// known to work with.
const DefaultMinBunVersion = "1.0.0"

// Dir returns the path to the config directory (~/.bun-cli/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.bun-cli/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	for _, key := range Keys() {
		_ = viper.BindEnv(key, branding.EnvVar(key))
	}

	viper.SetDefault(KeyTemplatesDir, "")
	viper.SetDefault(KeyTemplate, generator.DefaultTemplate)
	viper.SetDefault(KeyDependencies, slices.Clone(generator.DefaultDependencies))
	viper.SetDefault(KeyTool, toolchain.DefaultTool)
	viper.SetDefault(KeyInstallScriptURL, toolchain.DefaultScriptURL)
	viper.SetDefault(KeyMinBunVersion, DefaultMinBunVersion)

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	if key == KeyDependencies {
		return strings.Join(Dependencies(), ",")
	}
	return viper.GetString(key)
}

// Keys returns every known key in sorted order.
func Keys() []string {
	keys := []string{
		KeyTemplatesDir,
		KeyTemplate,
		KeyDependencies,
		KeyTool,
		KeyInstallScriptURL,
		KeyMinBunVersion,
	}
	sort.Strings(keys)
	return keys
}

// IsKnown reports whether key is a recognised configuration key.
func IsKnown(key string) bool {
	return slices.Contains(Keys(), key)
}

// TemplatesDir returns the template directory override. Empty means the
// templates built into the binary.
func TemplatesDir() string { return expandHome(viper.GetString(KeyTemplatesDir)) }

// Template returns the "bun create" template name.
func Template() string { return viper.GetString(KeyTemplate) }

// Tool returns the external tool executable name.
func Tool() string { return viper.GetString(KeyTool) }

// InstallScriptURL returns the Unix installer script location.
func InstallScriptURL() string { return viper.GetString(KeyInstallScriptURL) }

// MinBunVersion returns the minimum recommended tool version.
func MinBunVersion() string { return viper.GetString(KeyMinBunVersion) }

// Dependencies returns the configured dependency list in order. A
// comma-separated string (as written by "config set") is split.
func Dependencies() []string {
	raw := viper.GetStringSlice(KeyDependencies)
	var deps []string
	for _, item := range raw {
		for _, d := range strings.Split(item, ",") {
			if d = strings.TrimSpace(d); d != "" {
				deps = append(deps, d)
			}
		}
	}
	return deps
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if err := EnsureDir(); err != nil {
		return err
	}

	if key == KeyDependencies {
		viper.Set(key, splitList(value))
	} else {
		viper.Set(key, value)
	}

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}

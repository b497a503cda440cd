// Package cli defines the Cobra command tree for bun-cli. The root command
// generates a project; version, doctor, and config are subcommands. Command
// implementations delegate to internal packages for the work and only handle
// flag parsing, I/O formatting, and user interaction.
package cli

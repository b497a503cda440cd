// Package config manages user-level settings stored at ~/.bun-cli/config.yaml.
// Values can be overridden with BUNCLI_* environment variables; they select
// the template directory, the create template, the dependency list and the
// installer endpoint used by the generator.
package config

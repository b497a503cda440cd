// Package generator implements the project generation pipeline: name
// validation, tool detection with an install-and-retry recovery branch,
// scaffold creation through "bun create", best-effort dependency installation,
// and an idempotent merge of template files into the project's src directory.
//
// Only name validation and scaffold creation are fatal. Dependency, template
// and manifest problems are collected as warnings on the Outcome and the run
// still succeeds.
package generator

// Package toolchain wraps the external Bun executable. It provides the search
// path overlay used to resolve executables for child processes, a Runner that
// spawns commands and captures their output, the version probe, and the
// platform installer that fetches Bun when it is missing.
package toolchain

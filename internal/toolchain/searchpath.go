package toolchain

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// SearchPath is an executable search path overlay. Directories added with
// Prepend take precedence over the inherited PATH. The overlay is passed
// explicitly to every spawn instead of mutating the process environment.
type SearchPath struct {
	prefix []string
	base   string
}

// NewSearchPath returns an overlay on top of the current process PATH.
func NewSearchPath() *SearchPath {
	return &SearchPath{base: os.Getenv("PATH")}
}

// NewSearchPathFrom returns an overlay on top of an explicit base PATH value.
func NewSearchPathFrom(base string) *SearchPath {
	return &SearchPath{base: base}
}

// Prepend puts dir in front of every directory already in the overlay.
func (p *SearchPath) Prepend(dir string) {
	p.prefix = append([]string{dir}, p.prefix...)
}

// Dirs returns the effective directory list in resolution order.
func (p *SearchPath) Dirs() []string {
	dirs := make([]string, 0, len(p.prefix))
	dirs = append(dirs, p.prefix...)
	return append(dirs, filepath.SplitList(p.base)...)
}

// Value returns the overlay rendered as a PATH string.
func (p *SearchPath) Value() string {
	return strings.Join(p.Dirs(), string(os.PathListSeparator))
}

// Environ returns env with PATH replaced by the overlay value.
func (p *SearchPath) Environ(env []string) []string {
	return setEnv(env, "PATH", p.Value())
}

// LookPath resolves name against the overlay. Names containing a path
// separator are checked as-is.
func (p *SearchPath) LookPath(name string) (string, error) {
	if strings.ContainsAny(name, `/\`) {
		if isExecutable(name) {
			return name, nil
		}
		return "", &exec.Error{Name: name, Err: exec.ErrNotFound}
	}

	for _, dir := range p.Dirs() {
		if dir == "" {
			continue
		}
		for _, candidate := range candidates(name) {
			full := filepath.Join(dir, candidate)
			if isExecutable(full) {
				return full, nil
			}
		}
	}
	return "", &exec.Error{Name: name, Err: fmt.Errorf("%w in %s", exec.ErrNotFound, p.Value())}
}

// candidates lists the file names to try for name on the current platform.
func candidates(name string) []string {
	if !IsWindows() || filepath.Ext(name) != "" {
		return []string{name}
	}
	exts := strings.Split(strings.ToLower(os.Getenv("PATHEXT")), ";")
	if len(exts) == 0 || exts[0] == "" {
		exts = []string{".com", ".exe", ".bat", ".cmd"}
	}
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		if ext != "" {
			out = append(out, name+ext)
		}
	}
	return out
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	if IsWindows() {
		return true
	}
	return info.Mode().Perm()&0111 != 0
}

// setEnv sets or replaces an environment variable in the env slice.
func setEnv(env []string, key, value string) []string {
	prefix := key + "="
	out := make([]string, 0, len(env)+1)
	replaced := false
	for _, e := range env {
		if strings.HasPrefix(e, prefix) {
			if !replaced {
				out = append(out, prefix+value)
				replaced = true
			}
			continue
		}
		out = append(out, e)
	}
	if !replaced {
		out = append(out, prefix+value)
	}
	return out
}

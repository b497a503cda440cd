//go:build integration

package integration_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// fakeBun mimics the three bun subcommands the generator spawns. "add"
// records each dependency in deps.txt inside the project directory and
// fails for any package named "bogus".
const fakeBun = `#!/bin/sh
case "$1" in
  --version) echo "1.1.38" ;;
  create)
    if [ -e "$3" ]; then
      echo "error: $3 already exists" >&2
      exit 1
    fi
    mkdir -p "$3/src"
    printf '{"name":"%s","dependencies":{}}' "$3" > "$3/package.json"
    printf 'console.log("hello")\n' > "$3/src/index.ts"
    ;;
  add)
    if [ "$2" = "bogus" ]; then
      echo "error: package bogus not found" >&2
      exit 1
    fi
    echo "$2" >> deps.txt
    ;;
  *) exit 2 ;;
esac
`

// testEnv holds paths to isolated test directories.
type testEnv struct {
	HomeDir      string // HOME, so nothing reads the real ~/.bun-cli
	BinDir       string // holds the fake bun when one is installed up front
	WorkDir      string // base directory projects are created in
	TemplatesDir string // template source merged into <name>/src
	SystemPath   string // directories with sh, mkdir and friends, never bun
}

// setupTestEnv creates isolated temp directories. Tests that need bun on the
// search path call installFakeBun.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("integration tests drive POSIX shell scripts")
	}

	env := &testEnv{
		HomeDir:      t.TempDir(),
		BinDir:       t.TempDir(),
		WorkDir:      t.TempDir(),
		TemplatesDir: t.TempDir(),
		SystemPath:   strings.Join([]string{"/usr/local/bin", "/usr/bin", "/bin"}, string(os.PathListSeparator)),
	}
	t.Setenv("HOME", env.HomeDir)

	for _, dir := range filepath.SplitList(env.SystemPath) {
		if _, err := os.Stat(filepath.Join(dir, "bun")); err == nil {
			t.Skipf("a real bun is installed in %s", dir)
		}
	}
	return env
}

// installFakeBun writes the fake bun into env.BinDir.
func installFakeBun(t *testing.T, env *testEnv) {
	t.Helper()
	writeExecutable(t, filepath.Join(env.BinDir, "bun"), fakeBun)
}

// requireBinary skips the test when name is not available on the system path.
func requireBinary(t *testing.T, name string) {
	t.Helper()
	if _, err := exec.LookPath(name); err != nil {
		t.Skipf("%s not available: %v", name, err)
	}
}

// writeFile creates a file at the given path with the given content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating dir %s: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func writeExecutable(t *testing.T, path, content string) {
	t.Helper()
	writeFile(t, path, content)
	if err := os.Chmod(path, 0755); err != nil {
		t.Fatalf("chmod %s: %v", path, err)
	}
}

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (error: %v)", path, err)
	}
}

// assertFileNotExists fails the test if the file exists.
func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected file NOT to exist: %s", path)
	}
}

// assertFileContains fails if the file doesn't exist or doesn't contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q.\nContents:\n%s", path, substr, string(data))
	}
}

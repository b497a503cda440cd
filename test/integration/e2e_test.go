//go:build integration

package integration_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bun-cli/bun-cli/internal/generator"
	"github.com/bun-cli/bun-cli/internal/prompt"
	"github.com/bun-cli/bun-cli/internal/toolchain"
)

func newGenerator(env *testEnv, search *toolchain.SearchPath, name string, deps []string, opts ...generator.Option) *generator.Generator {
	cfg := generator.ProjectConfig{
		Name:         name,
		Template:     generator.DefaultTemplate,
		Dependencies: deps,
		TemplatesDir: env.TemplatesDir,
		BaseDir:      env.WorkDir,
	}
	tc := toolchain.New(toolchain.DefaultTool, toolchain.NewExecRunner(search))
	return generator.New(cfg, tc, opts...)
}

// TestFullFlowGenerate runs every step against a scripted bun: scaffold,
// dependency adds in order, template merge over the scaffolded src.
func TestFullFlowGenerate(t *testing.T) {
	env := setupTestEnv(t)
	installFakeBun(t, env)

	writeFile(t, filepath.Join(env.TemplatesDir, "index.ts"), "// from templates\n")
	writeFile(t, filepath.Join(env.TemplatesDir, "plugins", "cors.ts"), "export const cors = true\n")

	search := toolchain.NewSearchPathFrom(env.BinDir + string(os.PathListSeparator) + env.SystemPath)
	g := newGenerator(env, search, "myapp", []string{"winston", "bogus", "@elysiajs/cors"})

	out, err := g.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if g.State() != generator.StateDone {
		t.Errorf("state = %v, want Done", g.State())
	}
	if out.ToolVersion != "1.1.38" {
		t.Errorf("ToolVersion = %q, want 1.1.38", out.ToolVersion)
	}

	projectDir := filepath.Join(env.WorkDir, "myapp")
	assertFileExists(t, filepath.Join(projectDir, "package.json"))
	assertFileContains(t, filepath.Join(projectDir, "src", "index.ts"), "from templates")
	assertFileExists(t, filepath.Join(projectDir, "src", "plugins", "cors.ts"))

	data, err := os.ReadFile(filepath.Join(projectDir, "deps.txt"))
	if err != nil {
		t.Fatalf("reading deps.txt: %v", err)
	}
	if got := strings.Fields(string(data)); strings.Join(got, " ") != "winston @elysiajs/cors" {
		t.Errorf("added deps = %v, want [winston @elysiajs/cors]", got)
	}

	failed := out.FailedDependencies()
	if len(failed) != 1 || failed[0].Dependency != "bogus" {
		t.Fatalf("failed deps = %+v, want only bogus", failed)
	}
	if !errors.Is(failed[0].Err, generator.ErrDependencyFailed) {
		t.Errorf("dependency error = %v, want DependencyFailed", failed[0].Err)
	}
	if !strings.Contains(failed[0].Err.Error(), "package bogus not found") {
		t.Errorf("dependency error %q does not carry stderr", failed[0].Err)
	}
}

// TestRegenerateIsRejected checks that an existing directory makes the
// scaffold fail with the tool's own diagnostic and that nothing is merged.
func TestRegenerateIsRejected(t *testing.T) {
	env := setupTestEnv(t)
	installFakeBun(t, env)
	writeFile(t, filepath.Join(env.WorkDir, "myapp", "keep.txt"), "mine\n")
	writeFile(t, filepath.Join(env.TemplatesDir, "index.ts"), "// from templates\n")

	search := toolchain.NewSearchPathFrom(env.BinDir + string(os.PathListSeparator) + env.SystemPath)
	g := newGenerator(env, search, "myapp", nil)

	_, err := g.Run(context.Background())
	if !errors.Is(err, generator.ErrCommandFailed) {
		t.Fatalf("err = %v, want CommandFailed", err)
	}
	if !strings.Contains(err.Error(), "create elysia myapp") || !strings.Contains(err.Error(), "already exists") {
		t.Errorf("err = %q, want command and stderr", err)
	}
	assertFileNotExists(t, filepath.Join(env.WorkDir, "myapp", "src", "index.ts"))
}

// TestMissingToolDeclined leaves the filesystem untouched.
func TestMissingToolDeclined(t *testing.T) {
	env := setupTestEnv(t)

	installer := toolchain.NewInstaller(nil, nil)
	search := toolchain.NewSearchPathFrom(env.SystemPath)
	g := newGenerator(env, search, "myapp", nil,
		generator.WithInstaller(installer),
		generator.WithConfirmer(prompt.Fixed(false)),
	)

	_, err := g.Run(context.Background())
	if !errors.Is(err, generator.ErrBunNotInstalled) {
		t.Fatalf("err = %v, want BunNotInstalled", err)
	}
	assertFileNotExists(t, filepath.Join(env.WorkDir, "myapp"))
}

// TestRecoveryInstallsAndRetries serves an install script over HTTP that
// drops the fake bun into the install root, then expects the scaffold to
// succeed on the retry with the overlay pointing at the new bin directory.
func TestRecoveryInstallsAndRetries(t *testing.T) {
	env := setupTestEnv(t)
	requireBinary(t, "bash")

	script := fmt.Sprintf("#!/bin/sh\nmkdir -p \"$BUN_INSTALL/bin\"\ncat > \"$BUN_INSTALL/bin/bun\" <<'EOS'\n%sEOS\nchmod +x \"$BUN_INSTALL/bin/bun\"\n", fakeBun)
	agents := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case agents <- r.Header.Get("User-Agent"):
		default:
		}
		fmt.Fprint(w, script)
	}))
	defer srv.Close()

	installRoot := filepath.Join(env.HomeDir, ".bun")
	search := toolchain.NewSearchPathFrom(env.SystemPath)
	runner := toolchain.NewExecRunner(search)
	installer := toolchain.NewInstaller(runner, search,
		toolchain.WithHTTPClient(srv.Client()),
		toolchain.WithScriptURL(srv.URL+"/install"),
		toolchain.WithInstallRoot(installRoot),
		toolchain.WithUserAgent("bun-cli-test"),
	)
	g := newGenerator(env, search, "myapp", []string{"winston"},
		generator.WithInstaller(installer),
		generator.WithConfirmer(prompt.Fixed(true)),
	)

	out, err := g.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !out.Installed {
		t.Error("Installed = false, want true")
	}
	if ua := <-agents; ua != "bun-cli-test" {
		t.Errorf("User-Agent = %q", ua)
	}
	if dirs := search.Dirs(); len(dirs) == 0 || dirs[0] != filepath.Join(installRoot, "bin") {
		t.Errorf("search path = %v, want %s first", dirs, filepath.Join(installRoot, "bin"))
	}
	assertFileExists(t, filepath.Join(installRoot, "bin", "bun"))
	assertFileContains(t, filepath.Join(env.WorkDir, "myapp", "deps.txt"), "winston")
	if strings.Contains(os.Getenv("PATH"), installRoot) {
		t.Error("process PATH was modified")
	}
}

package toolchain

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestSearchPath_PrependOrder(t *testing.T) {
	sep := string(os.PathListSeparator)
	sp := NewSearchPathFrom("/usr/bin" + sep + "/bin")
	sp.Prepend("/opt/a")
	sp.Prepend("/opt/b")

	want := []string{"/opt/b", "/opt/a", "/usr/bin", "/bin"}
	got := sp.Dirs()
	if len(got) != len(want) {
		t.Fatalf("Dirs() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Dirs()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if v := sp.Value(); v != strings.Join(want, sep) {
		t.Errorf("Value() = %q", v)
	}
}

func TestSearchPath_DoesNotTouchProcessEnv(t *testing.T) {
	t.Setenv("PATH", "/usr/bin")
	sp := NewSearchPath()
	sp.Prepend("/opt/bun/bin")

	if got := os.Getenv("PATH"); got != "/usr/bin" {
		t.Errorf("process PATH changed to %q", got)
	}
}

func TestSearchPath_Environ(t *testing.T) {
	sp := NewSearchPathFrom("/usr/bin")
	sp.Prepend("/opt/bun/bin")

	env := sp.Environ([]string{"HOME=/home/x", "PATH=/old", "TERM=xterm"})
	want := "PATH=/opt/bun/bin" + string(os.PathListSeparator) + "/usr/bin"

	count := 0
	for _, e := range env {
		if strings.HasPrefix(e, "PATH=") {
			count++
			if e != want {
				t.Errorf("PATH entry = %q, want %q", e, want)
			}
		}
	}
	if count != 1 {
		t.Errorf("expected exactly one PATH entry, got %d in %v", count, env)
	}
	if len(env) != 3 {
		t.Errorf("expected 3 entries, got %v", env)
	}
}

func TestSearchPath_LookPathPrefersOverlay(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("executable bits not supported on Windows")
	}

	overlay := t.TempDir()
	fallback := t.TempDir()
	writeScript(t, overlay, "bun", "exit 0")
	writeScript(t, fallback, "bun", "exit 0")

	sp := NewSearchPathFrom(fallback)
	got, err := sp.LookPath("bun")
	if err != nil {
		t.Fatalf("LookPath() error: %v", err)
	}
	if got != filepath.Join(fallback, "bun") {
		t.Errorf("before prepend: got %q", got)
	}

	sp.Prepend(overlay)
	got, err = sp.LookPath("bun")
	if err != nil {
		t.Fatalf("LookPath() error: %v", err)
	}
	if got != filepath.Join(overlay, "bun") {
		t.Errorf("after prepend: got %q, want overlay binary", got)
	}
}

func TestSearchPath_LookPathSkipsNonExecutable(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("executable bits not supported on Windows")
	}

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bun"), []byte("data"), 0644); err != nil {
		t.Fatal(err)
	}

	sp := NewSearchPathFrom(dir)
	if _, err := sp.LookPath("bun"); err == nil {
		t.Error("expected error for non-executable file")
	}
}

func TestCandidates(t *testing.T) {
	if !IsWindows() {
		if got := candidates("bun"); len(got) != 1 || got[0] != "bun" {
			t.Errorf("candidates(bun) = %v, want [bun]", got)
		}
		return
	}

	t.Setenv("PATHEXT", ".EXE;.CMD")
	got := candidates("bun")
	if strings.Join(got, ",") != "bun.exe,bun.cmd" {
		t.Errorf("candidates(bun) = %v, want [bun.exe bun.cmd]", got)
	}
	if got := candidates("bun.exe"); len(got) != 1 {
		t.Errorf("candidates(bun.exe) = %v, want unchanged", got)
	}
}

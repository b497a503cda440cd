package toolchain

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// Installer fetches and installs the external tool, then makes its bin
// directory visible to later spawns through the search path overlay.
type Installer struct {
	runner           Runner
	path             *SearchPath
	httpClient       *http.Client
	scriptURL        string
	windowsScriptURL string
	installRoot      string
	goos             string
	userAgent        string
}

// InstallerOption configures an Installer.
type InstallerOption func(*Installer)

// WithHTTPClient sets a custom HTTP client (useful for testing).
func WithHTTPClient(c *http.Client) InstallerOption {
	return func(i *Installer) {
		i.httpClient = c
	}
}

// WithScriptURL overrides the Unix install script location.
func WithScriptURL(url string) InstallerOption {
	return func(i *Installer) {
		if url != "" {
			i.scriptURL = url
		}
	}
}

// WithInstallRoot overrides the install root (normally $BUN_INSTALL or ~/.bun).
func WithInstallRoot(root string) InstallerOption {
	return func(i *Installer) {
		if root != "" {
			i.installRoot = root
		}
	}
}

// WithUserAgent sets the User-Agent sent when downloading the script.
func WithUserAgent(ua string) InstallerOption {
	return func(i *Installer) {
		i.userAgent = ua
	}
}

// withGOOS forces the platform branch; tests only.
func withGOOS(goos string) InstallerOption {
	return func(i *Installer) {
		i.goos = goos
	}
}

// NewInstaller creates an Installer that spawns through runner and records
// the installed bin directory in path.
func NewInstaller(runner Runner, path *SearchPath, opts ...InstallerOption) *Installer {
	i := &Installer{
		runner:           runner,
		path:             path,
		httpClient:       http.DefaultClient,
		scriptURL:        DefaultScriptURL,
		windowsScriptURL: DefaultWindowsScriptURL,
		installRoot:      DefaultInstallRoot(),
		goos:             runtime.GOOS,
		userAgent:        "bun-cli-installer",
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// BinDir returns the directory the installed executable lives in.
func (i *Installer) BinDir() string {
	return BinDir(i.installRoot)
}

// Install runs the platform install procedure and prepends BinDir to the
// search path overlay. It is not idempotent: calling it with the tool
// already present reinstalls it.
func (i *Installer) Install(ctx context.Context) (string, error) {
	var err error
	if i.goos == "windows" {
		err = i.installWindows(ctx)
	} else {
		err = i.installUnix(ctx)
	}
	if err != nil {
		return "", err
	}

	binDir := i.BinDir()
	if i.path != nil {
		i.path.Prepend(binDir)
	}
	return binDir, nil
}

func (i *Installer) installUnix(ctx context.Context) error {
	tmpDir, err := os.MkdirTemp("", "bun-install-*")
	if err != nil {
		return fmt.Errorf("creating temp directory: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	script, err := i.downloadScript(ctx, tmpDir)
	if err != nil {
		return err
	}

	cmd := Command{
		Name: "bash",
		Args: []string{script},
		Env:  []string{installRootEnv + "=" + i.installRoot},
	}
	return i.run(ctx, cmd)
}

func (i *Installer) installWindows(ctx context.Context) error {
	cmd := Command{
		Name: "powershell",
		Args: []string{"-c", fmt.Sprintf("irm %s | iex", i.windowsScriptURL)},
		Env:  []string{installRootEnv + "=" + i.installRoot},
	}
	return i.run(ctx, cmd)
}

func (i *Installer) run(ctx context.Context, cmd Command) error {
	out, err := i.runner.Run(ctx, cmd)
	if err != nil {
		return fmt.Errorf("running installer: %w", err)
	}
	if !out.Success() {
		msg := strings.TrimSpace(out.Stderr)
		if msg == "" {
			msg = fmt.Sprintf("exit status %d", out.ExitCode)
		}
		return fmt.Errorf("installer exited with status %d: %s", out.ExitCode, msg)
	}
	return nil
}

// downloadScript fetches the install script into destDir and returns its path.
func (i *Installer) downloadScript(ctx context.Context, destDir string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, i.scriptURL, nil)
	if err != nil {
		return "", fmt.Errorf("creating download request: %w", err)
	}
	req.Header.Set("User-Agent", i.userAgent)

	resp, err := i.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("downloading install script: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("install script download returned status %d", resp.StatusCode)
	}

	destPath := filepath.Join(destDir, "install.sh")
	f, err := os.OpenFile(destPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0700)
	if err != nil {
		return "", fmt.Errorf("creating install script: %w", err)
	}

	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		return "", fmt.Errorf("writing install script: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing install script: %w", err)
	}
	return destPath, nil
}

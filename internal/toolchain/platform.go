package toolchain

import (
	"os"
	"path/filepath"
	"runtime"
)

// Install locations and script endpoints published by the Bun project.
const (
	DefaultScriptURL        = "https://bun.sh/install"
	DefaultWindowsScriptURL = "https://bun.sh/install.ps1"

	installRootEnv = "BUN_INSTALL"
)

// DefaultInstallRoot returns $BUN_INSTALL when set, otherwise ~/.bun.
func DefaultInstallRoot() string {
	if root := os.Getenv(installRootEnv); root != "" {
		return root
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".bun")
	}
	return filepath.Join(home, ".bun")
}

// BinDir returns the directory the installer places the executable in.
func BinDir(installRoot string) string {
	return filepath.Join(installRoot, "bin")
}

// IsWindows reports whether executables are resolved with PATHEXT and
// installed with the PowerShell script.
func IsWindows() bool {
	return runtime.GOOS == "windows"
}

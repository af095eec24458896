// Package shell generates and installs the zsh and bash hooks that feed
// events to trail.
package shell

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fakeyudi/trail/internal/config"
)

// Supported lists the shells trail can hook into.
var Supported = []string{"zsh", "bash"}

// Script returns the hook source for shell.
func Script(shell string) (string, error) {
	switch shell {
	case "zsh":
		return ZshPlugin, nil
	case "bash":
		return BashPlugin, nil
	}
	return "", fmt.Errorf("unsupported shell for plugin: %s (supported: zsh, bash)", shell)
}

// PluginPath returns the path where the plugin file should be written.
func PluginPath(shell string) (string, error) {
	dir, err := config.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "trail.plugin."+shell), nil
}

// Install writes the plugin file for the given shell and prints the source
// instruction the user needs to add to their rc file to w.
func Install(w io.Writer, shell string) (string, error) {
	content, err := Script(shell)
	if err != nil {
		return "", err
	}
	path, err := PluginPath(shell)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("writing plugin file: %w", err)
	}

	rcFile := RCFile(shell)
	fmt.Fprintf(w, "\n  ✓ Plugin written to %s\n", path)
	fmt.Fprintf(w, "\n  Add this line to your %s:\n", rcFile)
	fmt.Fprintf(w, "    source %s\n", path)
	fmt.Fprintf(w, "\n  Then reload: source %s\n\n", rcFile)
	return path, nil
}

// IsInstalled reports whether the plugin file exists on disk.
func IsInstalled(shell string) bool {
	path, err := PluginPath(shell)
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// Detect guesses the user's shell from $SHELL. It returns "" for shells
// trail has no hook for.
func Detect() string {
	switch filepath.Base(os.Getenv("SHELL")) {
	case "zsh":
		return "zsh"
	case "bash":
		return "bash"
	}
	return ""
}

// RCFile names the startup file a shell's hook is sourced from.
func RCFile(shell string) string {
	switch shell {
	case "zsh":
		return "~/.zshrc"
	case "bash":
		return "~/.bashrc"
	default:
		return "~/." + shell + "rc"
	}
}

// Package setup runs the interactive settings wizard behind 'trail setup'.
package setup

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fakeyudi/trail/internal/config"
	"github.com/fakeyudi/trail/internal/shell"
	"github.com/fakeyudi/trail/internal/ui"
)

// Result is what the wizard collected.
type Result struct {
	Config config.Config
	// Shell is the shell to install the hook for, or "" to skip.
	Shell string
}

// Run prompts on w and reads answers from r. Every prompt defaults to the
// value in existing, so re-running the wizard edits the current settings.
func Run(r io.Reader, w io.Writer, existing config.Config) (*Result, error) {
	br := bufio.NewReader(r)

	ask := func(prompt, defaultVal string) (string, error) {
		if defaultVal != "" {
			fmt.Fprintf(w, "%s [%s]: ", prompt, defaultVal)
		} else {
			fmt.Fprintf(w, "%s: ", prompt)
		}
		line, err := br.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return "", err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			return defaultVal, nil
		}
		return line, nil
	}

	askBool := func(prompt string, defaultVal bool) (bool, error) {
		def := "n"
		if defaultVal {
			def = "y"
		}
		ans, err := ask(prompt+" (y/n)", def)
		if err != nil {
			return false, err
		}
		return strings.ToLower(ans) == "y" || strings.ToLower(ans) == "yes", nil
	}

	res := &Result{Config: existing}
	cfg := &res.Config

	fmt.Fprintln(w)
	fmt.Fprintln(w, "  ┌─────────────────────────────────┐")
	fmt.Fprintln(w, "  │          trail — setup          │")
	fmt.Fprintln(w, "  └─────────────────────────────────┘")
	fmt.Fprintln(w)

	for {
		ans, err := ask("  Idle timeout in minutes", strconv.Itoa(cfg.IdleTimeoutMinutes))
		if err != nil {
			return nil, err
		}
		n, convErr := strconv.Atoi(ans)
		if convErr == nil && n > 0 {
			cfg.IdleTimeoutMinutes = n
			break
		}
		fmt.Fprintln(w, "  Please enter a positive whole number.")
	}

	var err error
	cfg.EnableProjectIntegration, err = askBool("  Tag events with projects from ~/.projwarp.json", cfg.EnableProjectIntegration)
	if err != nil {
		return nil, err
	}

	cfg.AutoCdOnResume, err = askBool("  Print only the path on 'trail resume' (for cd $(trail resume))", cfg.AutoCdOnResume)
	if err != nil {
		return nil, err
	}

	theme, err := ask("  Color theme ("+strings.Join(ui.Themes, "/")+")", cfg.Theme)
	if err != nil {
		return nil, err
	}
	if ui.ValidTheme(theme) {
		cfg.Theme = theme
	} else {
		fmt.Fprintf(w, "  Unknown theme %q, keeping %s.\n", theme, ui.ThemeFor(cfg.Theme).Name)
		cfg.Theme = ui.ThemeFor(cfg.Theme).Name
	}

	ignore, err := ask("  Commands to ignore (comma-separated globs)", strings.Join(cfg.IgnoreCommands, ","))
	if err != nil {
		return nil, err
	}
	cfg.IgnoreCommands = splitList(ignore)
	if _, err := config.NewIgnoreMatcher(cfg.IgnoreCommands); err != nil {
		return nil, err
	}

	install, err := askBool("  Install the shell hook", true)
	if err != nil {
		return nil, err
	}
	if install {
		def := shell.Detect()
		if def == "" {
			def = "zsh"
		}
		sh, err := ask("  Shell (zsh/bash)", def)
		if err != nil {
			return nil, err
		}
		res.Shell = sh
	}

	fmt.Fprintln(w)
	return res, nil
}

func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

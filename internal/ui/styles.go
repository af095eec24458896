package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
)

// Styles are the lipgloss styles for plain command output.
type Styles struct {
	Title   lipgloss.Style
	Label   lipgloss.Style
	Time    lipgloss.Style
	Project lipgloss.Style
	Path    lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style

	kinds map[string]lipgloss.Style
}

// NewStyles builds styles from theme. With color off every style renders
// its input unchanged.
func NewStyles(theme Theme, color bool) Styles {
	if !color {
		plain := lipgloss.NewStyle()
		return Styles{
			Title: plain, Label: plain, Time: plain, Project: plain, Path: plain,
			Muted: plain, Success: plain, Warning: plain, Error: plain,
		}
	}

	fg := func(c lipgloss.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }
	return Styles{
		Title:   fg(theme.Accent).Bold(true),
		Label:   fg(theme.Info).Bold(true),
		Time:    fg(theme.Muted),
		Project: fg(theme.Accent),
		Path:    fg(theme.Info),
		Muted:   fg(theme.Muted),
		Success: fg(theme.Success).Bold(true),
		Warning: fg(theme.Warning),
		Error:   fg(theme.Danger).Bold(true),
		kinds: map[string]lipgloss.Style{
			"command":       fg(theme.Info),
			"cd":            fg(theme.Muted),
			"note":          fg(theme.Success).Bold(true),
			"project":       fg(theme.Accent).Bold(true),
			"session_start": fg(theme.Warning),
			"session_end":   fg(theme.Warning),
			"idle_start":    fg(theme.Muted).Italic(true),
			"idle_end":      fg(theme.Muted).Italic(true),
		},
	}
}

// Kind returns the style for an event kind name.
func (s Styles) Kind(name string) lipgloss.Style {
	if st, ok := s.kinds[name]; ok {
		return st
	}
	return lipgloss.NewStyle()
}

// ColorEnabled reports whether output to f should be colored: f must be a
// terminal and NO_COLOR must be unset.
func ColorEnabled(f *os.File) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return f != nil && term.IsTerminal(f.Fd())
}

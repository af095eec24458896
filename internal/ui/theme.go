// Package ui holds the terminal styles shared by trail's commands and the
// interactive browser.
package ui

import (
	catppuccin "github.com/catppuccin/go"
	"github.com/charmbracelet/lipgloss"
)

// Theme is the set of colors trail draws with.
type Theme struct {
	Name    string
	Accent  lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
	Danger  lipgloss.Color
	Info    lipgloss.Color
	Muted   lipgloss.Color
	Text    lipgloss.Color
	Surface lipgloss.Color
	Base    lipgloss.Color
}

// Themes lists the accepted theme names.
var Themes = []string{"latte", "frappe", "macchiato", "mocha"}

// ThemeFor returns the catppuccin flavor called name, falling back to mocha
// for unknown names.
func ThemeFor(name string) Theme {
	var f catppuccin.Flavor
	switch name {
	case "latte":
		f = catppuccin.Latte
	case "frappe":
		f = catppuccin.Frappe
	case "macchiato":
		f = catppuccin.Macchiato
	default:
		name = "mocha"
		f = catppuccin.Mocha
	}
	return Theme{
		Name:    name,
		Accent:  lipgloss.Color(f.Mauve().Hex),
		Success: lipgloss.Color(f.Green().Hex),
		Warning: lipgloss.Color(f.Peach().Hex),
		Danger:  lipgloss.Color(f.Red().Hex),
		Info:    lipgloss.Color(f.Sapphire().Hex),
		Muted:   lipgloss.Color(f.Overlay1().Hex),
		Text:    lipgloss.Color(f.Text().Hex),
		Surface: lipgloss.Color(f.Surface0().Hex),
		Base:    lipgloss.Color(f.Base().Hex),
	}
}

// ValidTheme reports whether name is one of Themes.
func ValidTheme(name string) bool {
	for _, t := range Themes {
		if t == name {
			return true
		}
	}
	return false
}

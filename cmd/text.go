package cmd

import (
	"github.com/fakeyudi/trail/internal/query"
)

var kindIcons = map[string]string{
	"command":       "⚡",
	"cd":            "📁",
	"session_start": "🟢",
	"session_end":   "🔴",
	"idle_start":    "💤",
	"idle_end":      "⚡",
	"note":          "📝",
	"project":       "📂",
}

// hitLine renders a search hit as "<time> [project] <description>".
func hitLine(h query.Hit) string {
	line := styles.Time.Render(h.Time)
	if h.Project != "" {
		line += " [" + styles.Project.Render(h.Project) + "]"
	}
	return line + " " + styles.Kind(h.Kind).Render(h.Description)
}

// timelineLine is hitLine with an icon for the event kind.
func timelineLine(h query.Hit) string {
	line := styles.Time.Render(h.Time)
	if h.Project != "" {
		line += " [" + styles.Project.Render(h.Project) + "]"
	}
	return line + " " + kindIcons[h.Kind] + " " + styles.Kind(h.Kind).Render(h.Description)
}

package report

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/fakeyudi/trail/internal/query"
	"github.com/fakeyudi/trail/internal/stats"
)

// Renderer serializes a report to bytes.
type Renderer interface {
	Render(v any) ([]byte, error)
}

// For returns the renderer for f. Text output is styled by the caller, so
// Text has no renderer and For returns nil.
func For(f Format) Renderer {
	switch f {
	case JSON:
		return &JSONRenderer{}
	case YAML:
		return &YAMLRenderer{}
	case Markdown:
		return &MarkdownRenderer{}
	}
	return nil
}

// JSONRenderer renders a report as indented JSON.
type JSONRenderer struct{}

func (r *JSONRenderer) Render(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// YAMLRenderer renders a report as a YAML document.
type YAMLRenderer struct{}

func (r *YAMLRenderer) Render(v any) ([]byte, error) {
	return yaml.Marshal(v)
}

// MarkdownRenderer renders a report as a Markdown document suitable for
// pasting into notes.
type MarkdownRenderer struct{}

func (r *MarkdownRenderer) Render(v any) ([]byte, error) {
	var sb strings.Builder

	switch v := v.(type) {
	case query.SearchResult:
		fmt.Fprintf(&sb, "# Search: %s\n\n", v.Query)
		fmt.Fprintf(&sb, "%d result(s)", v.Total)
		if v.Total > len(v.Hits) {
			fmt.Fprintf(&sb, ", showing first %d", len(v.Hits))
		}
		sb.WriteString("\n\n")
		writeHits(&sb, v.Hits)

	case Timeline:
		fmt.Fprintf(&sb, "# Timeline: %s\n\n", v.Window)
		writeHits(&sb, v.Entries)

	case Sessions:
		sb.WriteString("# Sessions\n\n")
		if len(v.Sessions) == 0 {
			sb.WriteString("_No sessions recorded._\n")
			break
		}
		sb.WriteString("| Session | Start | Duration | Events |\n")
		sb.WriteString("|---------|-------|----------|--------|\n")
		for _, s := range v.Sessions {
			fmt.Fprintf(&sb, "| %s | %s | %s | %d |\n",
				s.ID,
				s.Start.Format(query.TimeLayout),
				s.Duration,
				s.Events,
			)
		}

	case stats.Summary:
		sb.WriteString("# Activity\n\n")
		fmt.Fprintf(&sb, "- Events: %d\n", v.Events)
		fmt.Fprintf(&sb, "- Sessions: %d\n\n", v.Sessions)
		sb.WriteString("## Top projects\n\n")
		writeCounts(&sb, v.Projects, "_No project activity._")
		sb.WriteString("\n## Top commands\n\n")
		writeCounts(&sb, v.Commands, "_No commands recorded._")

	case stats.Day:
		fmt.Fprintf(&sb, "# Today (%s)\n\n", v.Date)
		fmt.Fprintf(&sb, "- Events: %d\n", v.Events)
		fmt.Fprintf(&sb, "- Commands: %d\n", v.Commands)
		fmt.Fprintf(&sb, "- Projects: %d\n\n", len(v.Projects))
		writeCounts(&sb, v.Projects, "_No project activity._")

	case []stats.ProjectActivity:
		sb.WriteString("# Projects\n\n")
		if len(v) == 0 {
			sb.WriteString("_No project activity._\n")
			break
		}
		sb.WriteString("| Project | Events | Last path |\n")
		sb.WriteString("|---------|--------|-----------|\n")
		for _, p := range v {
			fmt.Fprintf(&sb, "| %s | %d | %s |\n", p.Name, p.Events, p.LastPath)
		}

	default:
		return nil, fmt.Errorf("markdown output is not supported for %T", v)
	}

	return []byte(sb.String()), nil
}

func writeHits(sb *strings.Builder, hits []query.Hit) {
	if len(hits) == 0 {
		sb.WriteString("_No activity._\n")
		return
	}
	for _, h := range hits {
		fmt.Fprintf(sb, "- [%s]", h.Time)
		if h.Project != "" {
			fmt.Fprintf(sb, " (%s)", h.Project)
		}
		fmt.Fprintf(sb, " %s\n", h.Description)
	}
}

func writeCounts(sb *strings.Builder, counts []stats.Count, empty string) {
	if len(counts) == 0 {
		sb.WriteString(empty + "\n")
		return
	}
	for i, c := range counts {
		fmt.Fprintf(sb, "%d. %s: %d\n", i+1, c.Name, c.Count)
	}
}

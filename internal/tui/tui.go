// Package tui provides a Bubble Tea TUI for browsing the activity log.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fakeyudi/trail/internal/event"
	"github.com/fakeyudi/trail/internal/query"
	"github.com/fakeyudi/trail/internal/session"
	"github.com/fakeyudi/trail/internal/stats"
	"github.com/fakeyudi/trail/internal/timeexpr"
	"github.com/fakeyudi/trail/internal/ui"
)

// ── Styles ────────────

type styles struct {
	title       lipgloss.Style
	activeTab   lipgloss.Style
	inactiveTab lipgloss.Style
	tabSep      lipgloss.Style
	tabRow      lipgloss.Style
	section     lipgloss.Style
	label       lipgloss.Style
	dim         lipgloss.Style
	time        lipgloss.Style
	bullet      lipgloss.Style
	selectedRow lipgloss.Style
	statusBar   lipgloss.Style
	kinds       ui.Styles
}

func newStyles(th ui.Theme) styles {
	return styles{
		title: lipgloss.NewStyle().
			Bold(true).
			Foreground(th.Base).
			Background(th.Accent).
			Padding(0, 2),
		activeTab: lipgloss.NewStyle().
			Bold(true).
			Foreground(th.Base).
			Background(th.Accent).
			Padding(0, 1),
		inactiveTab: lipgloss.NewStyle().
			Foreground(th.Muted).
			Background(th.Surface).
			Padding(0, 1),
		tabSep: lipgloss.NewStyle().
			Foreground(th.Muted).
			Background(th.Surface),
		tabRow:      lipgloss.NewStyle().Background(th.Surface),
		section:     lipgloss.NewStyle().Bold(true).Foreground(th.Success),
		label:       lipgloss.NewStyle().Foreground(th.Info).Bold(true),
		dim:         lipgloss.NewStyle().Foreground(th.Muted),
		time:        lipgloss.NewStyle().Foreground(th.Warning),
		bullet:      lipgloss.NewStyle().Foreground(th.Accent),
		selectedRow: lipgloss.NewStyle().Bold(true).Foreground(th.Text).Background(th.Surface),
		statusBar:   lipgloss.NewStyle().Background(th.Surface).Foreground(th.Muted).Padding(0, 1),
		kinds:       ui.NewStyles(th, true),
	}
}

// ── Tab definitions ─────────────────

type tabID int

const (
	tabToday tabID = iota
	tabTimeline
	tabSessions
	tabProjects
	tabCommands
	tabCount
)

var tabNames = [tabCount]string{
	"Today", "Timeline", "Sessions", "Projects", "Commands",
}

// ── Model ────────────────────

// Options configure the browser.
type Options struct {
	Now   func() time.Time
	Loc   *time.Location
	Theme ui.Theme
	// Follow, when set, streams events appended to this log into the
	// browser while it runs.
	Follow *event.Log
}

// Model is the root Bubble Tea model for the TUI.
type Model struct {
	events    []event.Event
	spans     []session.Span
	now       func() time.Time
	loc       *time.Location
	st        styles
	live      bool
	activeTab tabID
	viewports [tabCount]viewport.Model
	width     int
	height    int
	ready     bool
	sortAsc   bool
	// Sessions tab: cursor position and expanded set
	sessionCursor int
	expanded      map[string]bool
}

// New creates a browser over events.
func New(events []event.Event, opts Options) Model {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	if opts.Theme.Name == "" {
		opts.Theme = ui.ThemeFor("")
	}
	return Model{
		events:   events,
		spans:    session.Group(events),
		now:      now,
		loc:      opts.Loc,
		st:       newStyles(opts.Theme),
		live:     opts.Follow != nil,
		expanded: make(map[string]bool),
	}
}

// eventMsg carries an event appended to the log while browsing.
type eventMsg event.Event

// ── Bubble Tea interface ───────────────

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "tab", "l", "right":
			m.activeTab = (m.activeTab + 1) % tabCount
		case "shift+tab", "h", "left":
			m.activeTab = (m.activeTab - 1 + tabCount) % tabCount
		case "1", "2", "3", "4", "5":
			m.activeTab = tabID(msg.String()[0] - '1')
		case "s":
			if m.activeTab == tabTimeline {
				m.sortAsc = !m.sortAsc
				m.rebuild(tabTimeline)
				m.viewports[tabTimeline].GotoTop()
			}
		case "up", "k":
			if m.activeTab == tabSessions && m.sessionCursor > 0 {
				m.sessionCursor--
				m.rebuild(tabSessions)
				return m, nil
			}
		case "down", "j":
			if m.activeTab == tabSessions && m.sessionCursor < len(m.spans)-1 {
				m.sessionCursor++
				m.rebuild(tabSessions)
				return m, nil
			}
		case "enter", " ":
			if m.activeTab == tabSessions && len(m.spans) > 0 {
				id := m.spans[m.sessionCursor].ID
				if m.expanded[id] {
					delete(m.expanded, id)
				} else {
					m.expanded[id] = true
				}
				m.rebuild(tabSessions)
				return m, nil
			}
		}
		var cmd tea.Cmd
		m.viewports[m.activeTab], cmd = m.viewports[m.activeTab].Update(msg)
		return m, cmd

	case eventMsg:
		m.events = append(m.events, event.Event(msg))
		m.spans = session.Group(m.events)
		if m.ready {
			for i := tabID(0); i < tabCount; i++ {
				m.rebuild(i)
			}
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.initViewports()
		return m, nil
	}
	return m, nil
}

func (m Model) View() string {
	if !m.ready {
		return "Loading…"
	}

	// ── Row 1: title bar ──────────────────────────────────────────────────────
	titleText := fmt.Sprintf("  trail  %d events", len(m.events))
	if m.live {
		titleText += "  ● live"
	}
	title := m.st.title.Width(m.width).Render(titleText)

	// ── Row 2: tab bar ────────────────────────────────────────────────────────
	var tabParts []string
	for i := tabID(0); i < tabCount; i++ {
		label := fmt.Sprintf(" %d %s ", i+1, tabNames[i])
		if i == m.activeTab {
			tabParts = append(tabParts, m.st.activeTab.Render(label))
		} else {
			tabParts = append(tabParts, m.st.inactiveTab.Render(label))
		}
		if i < tabCount-1 {
			tabParts = append(tabParts, m.st.tabSep.Render("│"))
		}
	}
	tabRow := m.st.tabRow.
		Width(m.width).
		Render(lipgloss.JoinHorizontal(lipgloss.Top, tabParts...))

	// ── Row 3…N-1: scrollable content ────────────────────────────────────────
	content := m.viewports[m.activeTab].View()

	// ── Row N: status / hint bar ──────────────────────────────────────────────
	hint := "  ←/→ tab  ↑/↓ scroll  1-5 jump  q quit"
	if m.activeTab == tabTimeline {
		dir := "newest first"
		if m.sortAsc {
			dir = "oldest first"
		}
		hint += "  s sort (" + dir + ")"
	}
	if m.activeTab == tabSessions {
		hint += "  ↑/↓ select  enter expand/collapse"
	}
	pct := fmt.Sprintf("%3.0f%%", m.viewports[m.activeTab].ScrollPercent()*100)
	pad := m.width - lipgloss.Width(hint) - len(pct) - 2
	if pad < 1 {
		pad = 1
	}
	statusBar := m.st.statusBar.Width(m.width).Render(
		hint + strings.Repeat(" ", pad) + pct,
	)

	return lipgloss.JoinVertical(lipgloss.Left, title, tabRow, content, statusBar)
}

// ── Viewport management ───────────────────────────────────────────────────────

func (m *Model) initViewports() {
	// title(1) + tabRow(1) + statusBar(1) = 3 fixed rows
	vpHeight := m.height - 3
	if vpHeight < 1 {
		vpHeight = 1
	}
	for i := tabID(0); i < tabCount; i++ {
		vp := viewport.New(m.width, vpHeight)
		vp.SetContent(m.renderTab(i))
		m.viewports[i] = vp
	}
}

func (m *Model) rebuild(t tabID) {
	m.viewports[t].SetContent(m.renderTab(t))
}

// ── Tab renderers ─────────────────────────────────────────────────────────────

func (m *Model) renderTab(t tabID) string {
	switch t {
	case tabToday:
		return m.renderToday()
	case tabTimeline:
		return m.renderTimeline()
	case tabSessions:
		return m.renderSessions()
	case tabProjects:
		return m.renderProjects()
	case tabCommands:
		return m.renderCommands()
	}
	return ""
}

func (m *Model) heading(s string) string {
	return "\n" + m.st.section.Render("  "+s) + "\n\n"
}

func (m *Model) row(sb *strings.Builder, label, value string) {
	sb.WriteString(m.st.label.Render(fmt.Sprintf("  %-14s", label)) + "  " + value + "\n")
}

func (m *Model) none(sb *strings.Builder, what string) string {
	sb.WriteString(m.st.dim.Render("  ("+what+")") + "\n")
	return sb.String()
}

func (m *Model) renderToday() string {
	d := stats.Today(m.events, m.now(), m.loc)
	var sb strings.Builder
	sb.WriteString(m.heading("Today " + d.Date))
	m.row(&sb, "Events:", fmt.Sprintf("%d", d.Events))
	m.row(&sb, "Commands:", fmt.Sprintf("%d", d.Commands))
	m.row(&sb, "Projects:", fmt.Sprintf("%d", len(d.Projects)))

	if rp, ok := query.Resume(m.events); ok {
		sb.WriteString(m.heading("Last Worked On"))
		m.row(&sb, "Project:", rp.Project)
		m.row(&sb, "Path:", rp.Path)
		m.row(&sb, "When:", query.LocalTime(rp.Time, m.loc))
		if rp.LastCommand != "" {
			m.row(&sb, "Last Command:", rp.LastCommand)
		}
	}

	sb.WriteString(m.heading("Projects Today"))
	if len(d.Projects) == 0 {
		return m.none(&sb, "none")
	}
	for _, p := range d.Projects {
		sb.WriteString(m.st.bullet.Render("  •") + "  " + fmt.Sprintf("%s  %s\n", p.Name, m.st.dim.Render(fmt.Sprintf("%d events", p.Count))))
	}
	return sb.String()
}

func (m *Model) renderTimeline() string {
	var sb strings.Builder

	dir := "newest first"
	if m.sortAsc {
		dir = "oldest first"
	}
	sb.WriteString(m.heading(fmt.Sprintf("Timeline (%s)", dir)))

	if len(m.events) == 0 {
		return m.none(&sb, "no events recorded yet")
	}

	hits := query.Timeline(m.events, query.Window{}, len(m.events), m.loc)
	if m.sortAsc {
		for i, j := 0, len(hits)-1; i < j; i, j = i+1, j-1 {
			hits[i], hits[j] = hits[j], hits[i]
		}
	}
	for _, h := range hits {
		sb.WriteString(m.hitLine(h) + "\n")
	}
	return sb.String()
}

func (m *Model) hitLine(h query.Hit) string {
	ts := m.st.time.Render(h.Time)
	badge := m.st.kinds.Kind(h.Kind).Render(fmt.Sprintf("  %-13s", h.Kind))
	line := ts + badge + "  " + h.Description
	if h.Project != "" {
		line += "  " + m.st.dim.Render("["+h.Project+"]")
	}
	return line
}

func (m *Model) renderSessions() string {
	var sb strings.Builder
	sb.WriteString(m.heading(fmt.Sprintf("Sessions (%d)", len(m.spans))))
	if len(m.spans) == 0 {
		return m.none(&sb, "none")
	}
	for i, s := range m.spans {
		toggle := m.st.dim.Render("  ▶ ")
		if m.expanded[s.ID] {
			toggle = m.st.dim.Render("  ▼ ")
		}
		row := fmt.Sprintf("%s%s  %s  %s",
			toggle,
			m.st.time.Render(query.LocalTime(s.Start, m.loc)),
			s.ID,
			m.st.dim.Render(fmt.Sprintf("%s, %d events", timeexpr.FormatDuration(s.Duration()), s.Events)),
		)
		if i == m.sessionCursor {
			row = m.st.selectedRow.Width(max(m.width-2, 1)).Render(row)
		}
		sb.WriteString(row + "\n")

		if m.expanded[s.ID] {
			for _, ev := range m.events {
				if ev.SessionID == s.ID {
					sb.WriteString("      " + m.hitLine(query.NewHit(ev, m.loc)) + "\n")
				}
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func (m *Model) renderProjects() string {
	projects := stats.Projects(m.events)
	var sb strings.Builder
	sb.WriteString(m.heading(fmt.Sprintf("Projects (%d)", len(projects))))
	if len(projects) == 0 {
		return m.none(&sb, "none")
	}
	for i, p := range projects {
		num := m.st.dim.Render(fmt.Sprintf("  %3d.", i+1))
		sb.WriteString(fmt.Sprintf("%s  %s  %s\n", num, m.st.label.Render(p.Name), m.st.dim.Render(fmt.Sprintf("%d events", p.Events))))
		sb.WriteString(fmt.Sprintf("        %s  %s\n\n", p.LastPath, m.st.time.Render(query.LocalTime(p.LastSeen, m.loc))))
	}
	return sb.String()
}

func (m *Model) renderCommands() string {
	ranked := stats.Rank(stats.CommandCounts(m.events))
	var sb strings.Builder
	sb.WriteString(m.heading(fmt.Sprintf("Commands (%d distinct)", len(ranked))))
	if len(ranked) == 0 {
		return m.none(&sb, "none")
	}
	for i, c := range ranked {
		num := m.st.dim.Render(fmt.Sprintf("  %3d.", i+1))
		sb.WriteString(fmt.Sprintf("%s  %-20s %s\n", num, c.Name, m.st.dim.Render(fmt.Sprintf("%d", c.Count))))
	}
	return sb.String()
}

// Run starts the TUI over events. When opts.Follow is set, newly appended
// events stream in until the program exits.
func Run(ctx context.Context, events []event.Event, opts Options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(New(events, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	if opts.Follow != nil {
		go func() {
			_ = opts.Follow.Follow(ctx, func(ev event.Event) { p.Send(eventMsg(ev)) })
		}()
	}
	_, err := p.Run()
	if ctx.Err() != nil && err != nil {
		return nil
	}
	return err
}

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/heartmarshall/mental-clarity/internal/domain"
	"github.com/heartmarshall/mental-clarity/internal/service/capture"
)

const dateLayout = "Mon, 02 Jan 2006 15:04"

func (m Model) View() string {
	snap := m.svc.Snapshot()

	var body string
	if d, ok := m.svc.Detail(); ok {
		body = m.overlayView(d)
	} else {
		switch m.tab {
		case tabCapture:
			body = m.captureView(snap)
		case tabEntries:
			body = m.entriesView(snap)
		case tabInsights:
			body = mutedStyle.Render("Insights across your entries are coming soon.")
		case tabSettings:
			body = m.settingsView()
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.tabsView(),
		bodyStyle.Render(body),
		m.statusView(snap),
		helpStyle.Render(m.helpText()),
	)
}

func (m Model) tabsView() string {
	tabs := make([]string, 0, tabCount)
	for i, name := range tabNames {
		if tab(i) == m.tab {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, tabStyle.Render(name))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) captureView(snap capture.Snapshot) string {
	button := buttonStyle.Render("ctrl+s  Analyze")
	if snap.Busy {
		button = disabledButtonStyle.Render(m.spinner.View() + " Analyzing...")
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.textarea.View(), "", button)
}

func (m Model) entriesView(snap capture.Snapshot) string {
	if len(snap.Entries) == 0 {
		return mutedStyle.Render("No entries yet.")
	}

	width := m.width - 6
	if width <= 0 {
		width = 80
	}

	var b strings.Builder
	for i := range snap.Entries {
		e := &snap.Entries[i]
		line := fmt.Sprintf("%s  %s", e.CreatedAt.Local().Format(dateLayout), e.Preview())
		line = clip(line, width-2)
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteByte('\n')
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func (m Model) settingsView() string {
	rows := [][2]string{
		{"Provider", m.settings.Provider},
		{"Model", m.settings.Model},
		{"Store", m.settings.Store},
		{"Language", m.settings.Language},
	}

	var b strings.Builder
	for _, r := range rows {
		v := r[1]
		if v == "" {
			v = mutedStyle.Render("default")
		}
		fmt.Fprintf(&b, "%s %s\n", labelStyle.Render(r[0]), v)
	}
	b.WriteString("\n" + mutedStyle.Render("Edit config.yaml or the environment to change these."))
	return b.String()
}

func (m Model) overlayView(d capture.Detail) string {
	if m.viewport.Height > 0 {
		return overlayStyle.Render(m.viewport.View())
	}
	return overlayStyle.Render(m.renderDetail(d))
}

func (m Model) renderDetail(d capture.Detail) string {
	var b strings.Builder
	b.WriteString(dateStyle.Render(d.Entry.CreatedAt.Local().Format(dateLayout)))
	b.WriteString("\n\n")
	b.WriteString(d.Content)
	if d.Truncatable {
		hint := "[f] show more"
		if d.ShowFullText {
			hint = "[f] show less"
		}
		b.WriteString("\n" + mutedStyle.Render(hint))
	}
	b.WriteString("\n\n" + headingStyle.Render("Analysis") + "\n")
	b.WriteString(m.renderAnalysis(d.Analysis))
	return b.String()
}

func (m Model) renderAnalysis(text string) string {
	if m.renderer == nil {
		return text
	}
	out, err := m.renderer.Render(text)
	if err != nil {
		return text
	}
	return strings.Trim(out, "\n")
}

func (m Model) statusView(snap capture.Snapshot) string {
	var parts []string
	switch snap.Status {
	case domain.StatusSucceeded:
		parts = append(parts, successStyle.Render(snap.StatusText()))
	case domain.StatusFailed:
		parts = append(parts, errorStyle.Render(snap.StatusText()))
	case domain.StatusAnalyzing:
		parts = append(parts, mutedStyle.Render(snap.StatusText()))
	}
	if m.notice != "" {
		parts = append(parts, errorStyle.Render(m.notice))
	}
	return statusStyle.Render(strings.Join(parts, "  "))
}

func (m Model) helpText() string {
	if _, open := m.svc.Detail(); open {
		return "f: full text • ↑/↓: scroll • esc: close"
	}
	switch m.tab {
	case tabCapture:
		return "ctrl+s: analyze • tab: next tab • ctrl+c: quit"
	case tabEntries:
		return "↑/↓: move • enter: open • r: reload • tab: next tab • q: quit"
	}
	return "tab: next tab • q: quit"
}

func clip(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}

package tui

import (
	"errors"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/heartmarshall/mental-clarity/internal/domain"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.textarea.SetWidth(max(msg.Width-4, 20))
		m.viewport.Width = max(msg.Width-6, 20)
		m.viewport.Height = max(msg.Height-8, 5)
		m.renderer = newRenderer(m.viewport.Width)
		m.overlayID = uuid.Nil
		m.sync()
		return m, nil

	case changedMsg:
		m.sync()
		return m, tea.Batch(waitForChange(m.changes), m.startSpinner())

	case refreshedMsg:
		m.notice = ""
		if msg.err != nil {
			m.notice = "Could not load entries"
		}
		m.sync()
		return m, nil

	case outcomeMsg:
		m.sync()
		return m, nil

	case spinner.TickMsg:
		if !m.svc.Snapshot().Busy {
			m.spinning = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.tab == tabCapture {
		var cmd tea.Cmd
		m.textarea, cmd = m.textarea.Update(msg)
		return m, cmd
	}
	return m, nil
}

// sync pulls the orchestrator state into the widgets.
func (m *Model) sync() {
	snap := m.svc.Snapshot()

	if snap.Draft != m.textarea.Value() {
		m.textarea.SetValue(snap.Draft)
	}
	if m.cursor >= len(snap.Entries) {
		m.cursor = max(len(snap.Entries)-1, 0)
	}

	d, ok := m.svc.Detail()
	if !ok {
		return
	}
	if d.Entry.ID != m.overlayID {
		m.overlayID = d.Entry.ID
		m.viewport.GotoTop()
	}
	m.viewport.SetContent(m.renderDetail(d))
}

func (m *Model) startSpinner() tea.Cmd {
	if m.spinning || !m.svc.Snapshot().Busy {
		return nil
	}
	m.spinning = true
	return m.spinner.Tick
}

func (m *Model) setTab(t tab) {
	m.tab = t
	if t == tabCapture {
		m.textarea.Focus()
	} else {
		m.textarea.Blur()
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if _, open := m.svc.Detail(); open {
		return m.handleOverlayKey(msg)
	}

	switch msg.String() {
	case "tab":
		m.setTab((m.tab + 1) % tabCount)
		return m, nil
	case "shift+tab":
		m.setTab((m.tab + tabCount - 1) % tabCount)
		return m, nil
	}

	switch m.tab {
	case tabCapture:
		return m.handleCaptureKey(msg)
	case tabEntries:
		return m.handleEntriesKey(msg)
	}
	if msg.String() == "q" {
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleCaptureKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		return m.submit()
	}

	before := m.textarea.Value()
	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	if v := m.textarea.Value(); v != before {
		m.svc.SetDraftText(v)
	}
	return m, cmd
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.svc.Snapshot().Busy {
		return m, nil
	}

	done, err := m.svc.Submit(m.ctx, m.textarea.Value())
	switch {
	case errors.Is(err, domain.ErrValidation):
		m.notice = "Write something first"
		return m, nil
	case errors.Is(err, domain.ErrBusy):
		return m, nil
	case err != nil:
		m.notice = err.Error()
		return m, nil
	}

	m.notice = ""
	return m, tea.Batch(awaitOutcome(done), m.startSpinner())
}

func (m Model) handleEntriesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	entries := m.svc.Snapshot().Entries

	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(entries)-1 {
			m.cursor++
		}
	case "enter":
		if m.cursor < len(entries) {
			id := entries[m.cursor].ID
			if err := m.svc.SelectEntry(&id); err == nil {
				m.sync()
			}
		}
	case "r":
		return m, m.refresh()
	case "q":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleOverlayKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "backspace":
		_ = m.svc.SelectEntry(nil)
		m.overlayID = uuid.Nil
		return m, nil
	case "f", " ":
		m.svc.ToggleFullText()
		m.sync()
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

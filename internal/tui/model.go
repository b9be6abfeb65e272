// Package tui is the terminal journal: a Bubble Tea program rendering the
// capture orchestrator state.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/google/uuid"

	"github.com/heartmarshall/mental-clarity/internal/service/capture"
)

type captureService interface {
	Snapshot() capture.Snapshot
	Detail() (capture.Detail, bool)
	SetDraftText(text string)
	Submit(ctx context.Context, text string) (<-chan capture.Outcome, error)
	Refresh(ctx context.Context) error
	SelectEntry(id *uuid.UUID) error
	ToggleFullText()
}

// Settings is what the Settings tab shows.
type Settings struct {
	Provider string
	Model    string
	Store    string
	Language string
}

type tab int

const (
	tabCapture tab = iota
	tabEntries
	tabInsights
	tabSettings
	tabCount
)

var tabNames = [tabCount]string{"Capture", "Entries", "Insights", "Settings"}

// Model is the root Bubble Tea model.
type Model struct {
	ctx      context.Context
	svc      captureService
	changes  <-chan struct{}
	settings Settings

	tab      tab
	cursor   int
	notice   string
	spinning bool

	textarea textarea.Model
	spinner  spinner.Model
	viewport viewport.Model
	renderer *glamour.TermRenderer
	// overlayID is the entry the viewport was last filled for.
	overlayID uuid.UUID

	width  int
	height int
}

// NewNotifier returns a notify hook for capture.WithNotify and the channel
// the model listens on. Bursts of changes coalesce into one signal.
func NewNotifier() (func(), <-chan struct{}) {
	ch := make(chan struct{}, 1)
	notify := func() {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
	return notify, ch
}

// New creates the model. changes is the channel returned by NewNotifier.
func New(ctx context.Context, svc captureService, changes <-chan struct{}, settings Settings) Model {
	ta := textarea.New()
	ta.Placeholder = "What's on your mind? Write it down..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetHeight(8)
	ta.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	return Model{
		ctx:      ctx,
		svc:      svc,
		changes:  changes,
		settings: settings,
		textarea: ta,
		spinner:  sp,
		viewport: viewport.New(0, 0),
	}
}

// Run starts the program on the alternate screen and blocks until it exits.
func Run(ctx context.Context, m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

type changedMsg struct{}

type refreshedMsg struct{ err error }

type outcomeMsg struct{ outcome capture.Outcome }

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		m.refresh(),
		waitForChange(m.changes),
	)
}

func waitForChange(ch <-chan struct{}) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return changedMsg{}
	}
}

func (m Model) refresh() tea.Cmd {
	ctx, svc := m.ctx, m.svc
	return func() tea.Msg {
		return refreshedMsg{err: svc.Refresh(ctx)}
	}
}

func awaitOutcome(ch <-chan capture.Outcome) tea.Cmd {
	return func() tea.Msg {
		return outcomeMsg{outcome: <-ch}
	}
}

func newRenderer(width int) *glamour.TermRenderer {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	return r
}

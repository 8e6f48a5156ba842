// Package ui provides a Bubble Tea view of the feed tail.
package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/feed/internal/history"
	"github.com/five82/feed/internal/render"
	"github.com/five82/feed/internal/state"
)

// View represents the current active view.
type View int

const (
	ViewTail View = iota
	ViewHistory
)

// Options configures the UI.
type Options struct {
	Context  context.Context
	Store    *state.Store
	History  *history.Ranked
	Renderer *render.Renderer
	PollTick time.Duration
	LogPath  string
	Lines    int
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx      context.Context
	store    *state.Store
	history  *history.Ranked
	renderer *render.Renderer
	pollTick time.Duration
	logPath  string
	lines    int

	// UI state
	keys        keyMap
	help        help.Model
	styles      Styles
	currentView View
	width       int
	height      int
	ready       bool

	// Data state
	snapshot       state.Snapshot
	shownVersion   uint64
	historyShown   uint64 // history revision behind the history view
	historyVersion uint64 // frame version when the history view was rendered
	viewport       viewport.Model
	now          func() time.Time
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	pollTick := opts.PollTick
	if pollTick <= 0 {
		pollTick = 100 * time.Millisecond
	}

	renderer := opts.Renderer
	if renderer == nil {
		renderer = render.New()
	}

	return Model{
		ctx:         ctx,
		store:       opts.Store,
		history:     opts.History,
		renderer:    renderer,
		pollTick:    pollTick,
		logPath:     opts.LogPath,
		lines:       opts.Lines,
		keys:        DefaultKeyMap(),
		help:        help.New(),
		styles:      defaultTheme().Styles(renderer.Lipgloss()),
		currentView: ViewTail,
		now:         time.Now,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(m.pollTick)}
	// Fetch snapshot immediately on start
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.viewport = viewport.New(msg.Width, m.bodyHeight())
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = m.bodyHeight()
		}
		m.refreshContent(true)
		return m, nil

	case tickMsg:
		var cmds []tea.Cmd
		if m.store != nil {
			cmds = append(cmds, fetchSnapshotCmd(m.store))
		}
		cmds = append(cmds, tickCmd(m.pollTick))
		return m, tea.Batch(cmds...)

	case snapshotMsg:
		m.snapshot = state.Snapshot(msg)
		m.refreshContent(false)
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		if m.ready {
			m.viewport.Height = m.bodyHeight()
		}
		return m, nil
	case key.Matches(msg, m.keys.ToggleHistory):
		if m.currentView == ViewTail {
			m.currentView = ViewHistory
		} else {
			m.currentView = ViewTail
		}
		m.refreshContent(true)
		return m, nil
	}

	if !m.ready {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Top):
		m.viewport.GotoTop()
	case key.Matches(msg, m.keys.Bottom):
		m.viewport.GotoBottom()
	case key.Matches(msg, m.keys.HalfPageUp):
		m.viewport.HalfPageUp()
	case key.Matches(msg, m.keys.HalfPageDown):
		m.viewport.HalfPageDown()
	case key.Matches(msg, m.keys.Up):
		m.viewport.ScrollUp(1)
	case key.Matches(msg, m.keys.Down):
		m.viewport.ScrollDown(1)
	}
	return m, nil
}

// refreshContent replaces the viewport content when the source changed.
// The tail view follows the frame version. The history view follows the
// history revision and also re-renders on a new frame, since that is when
// entries move between tiers.
func (m *Model) refreshContent(force bool) {
	if !m.ready {
		return
	}
	switch m.currentView {
	case ViewHistory:
		if !force && m.snapshot.HistoryRevision == m.historyShown && m.snapshot.Version == m.historyVersion {
			return
		}
		m.historyShown = m.snapshot.HistoryRevision
		m.historyVersion = m.snapshot.Version
		m.viewport.SetContent(m.historyContent())
		if force {
			m.viewport.GotoTop()
		}
	default:
		if !force && m.snapshot.Version == m.shownVersion {
			return
		}
		m.shownVersion = m.snapshot.Version
		m.viewport.SetContent(strings.Join(m.snapshot.Frame, "\n"))
		m.viewport.GotoBottom()
	}
}

func (m Model) historyContent() string {
	if m.history == nil {
		return ""
	}
	now := m.now()
	msgs := m.history.Newest(0)
	lines := make([]string, len(msgs))
	for i, msg := range msgs {
		lines[i] = m.renderer.Render(msg, now)
	}
	return strings.Join(lines, "\n")
}

func (m Model) bodyHeight() int {
	h := m.height - 2 - lineCount(m.help.View(m.keys))
	if h < 1 {
		return 1
	}
	return h
}

func lineCount(s string) int {
	if s == "" {
		return 0
	}
	return strings.Count(s, "\n") + 1
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	if helpView := m.help.View(m.keys); helpView != "" {
		b.WriteString("\n")
		b.WriteString(helpView)
	}
	return b.String()
}

func (m Model) renderHeader() string {
	title := m.styles.AccentText.Render("feed")
	mode := "tail"
	if m.currentView == ViewHistory {
		mode = "history"
	}
	text := fmt.Sprintf("%s  %s  %s", title, mode, m.styles.MutedText.Render(m.logPath))
	return m.styles.Header.Width(m.width).Render(text)
}

func (m Model) renderFooter() string {
	snap := m.snapshot
	parts := []string{
		fmt.Sprintf("visible %d/%d", len(snap.Frame), m.lines),
		fmt.Sprintf("seen %d", snap.Seen),
	}
	if snap.Skipped > 0 {
		parts = append(parts, m.styles.WarnText.Render(fmt.Sprintf("skipped %d", snap.Skipped)))
	}
	if snap.LastError != nil {
		label := "ERROR"
		if snap.IsFailing() {
			label = "FAILING"
		}
		parts = append(parts, m.styles.DangerText.Render(fmt.Sprintf("%s %v", label, snap.LastError)))
	}
	if !snap.LastUpdated.IsZero() {
		parts = append(parts, snap.LastUpdated.Format("15:04:05"))
	}
	return m.styles.Footer.Width(m.width).Render(strings.Join(parts, "  •  "))
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

// Run starts the Bubble Tea program and blocks until the user quits or the
// context is cancelled.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
		return nil
	}
	return err
}

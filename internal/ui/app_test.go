package ui

import (
	"bytes"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/feed/internal/history"
	"github.com/five82/feed/internal/logtail"
	"github.com/five82/feed/internal/message"
	"github.com/five82/feed/internal/render"
	"github.com/five82/feed/internal/state"
	"github.com/five82/feed/internal/tailer"
)

var base = time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

func newTestModel(t *testing.T, store *state.Store, hist *history.Ranked) Model {
	t.Helper()
	r := render.New(render.WithOutput(&bytes.Buffer{}), render.WithColorProfile(termenv.Ascii))
	m := New(Options{Store: store, History: hist, Renderer: r, LogPath: "/tmp/feed.log", Lines: 10})
	m.now = func() time.Time { return base.Add(time.Hour) }
	return apply(t, m, tea.WindowSizeMsg{Width: 200, Height: 20})
}

func apply(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_TailFollowsFrameVersion(t *testing.T) {
	store := &state.Store{}
	store.Update(tailer.Cycle{Frame: []string{"first", "second"}, Redraw: true}, 2, 2, nil)

	m := newTestModel(t, store, nil)
	m = apply(t, m, snapshotMsg(store.Snapshot()))
	assert.Equal(t, uint64(1), m.shownVersion)
	assert.Contains(t, m.View(), "second")

	store.Update(tailer.Cycle{Frame: []string{"ignored"}, Redraw: false}, 2, 2, nil)
	m = apply(t, m, snapshotMsg(store.Snapshot()))
	assert.Equal(t, uint64(1), m.shownVersion)
	assert.NotContains(t, m.View(), "ignored")

	store.Update(tailer.Cycle{Frame: []string{"second", "third"}, Redraw: true}, 3, 3, nil)
	m = apply(t, m, snapshotMsg(store.Snapshot()))
	assert.Equal(t, uint64(2), m.shownVersion)
	assert.Contains(t, m.View(), "third")
}

func TestModel_ToggleHistory(t *testing.T) {
	hist := history.New(10)
	hist.Push(message.Message{Timestamp: base, Status: message.Error, Text: "older"})
	hist.Push(message.Message{Timestamp: base.Add(time.Minute), Status: message.Success, Text: "newer"})

	m := newTestModel(t, &state.Store{}, hist)
	m = apply(t, m, runes("H"))
	require.Equal(t, ViewHistory, m.currentView)

	view := m.View()
	assert.Contains(t, view, "history")
	newer := strings.Index(view, "newer")
	older := strings.Index(view, "older")
	require.NotEqual(t, -1, newer)
	require.NotEqual(t, -1, older)
	assert.Less(t, newer, older, "history lists newest first")

	m = apply(t, m, runes("H"))
	assert.Equal(t, ViewTail, m.currentView)
}

func TestModel_HistoryViewFollowsFullHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feed.log")
	tl := tailer.New(path, tailer.Options{Lines: 2, HistorySize: 3}, nil, io.Discard, zerolog.Nop())
	store := &state.Store{}
	poll := func() {
		t.Helper()
		cycle, err := tl.Step()
		require.NoError(t, err)
		store.Update(cycle, tl.History().Len(), tl.History().Revision(), nil)
	}

	for i := range 3 {
		msg := message.Message{Timestamp: base.Add(time.Duration(i) * time.Second), Status: message.Success, Text: "filler"}
		require.NoError(t, logtail.Append(path, msg))
	}
	poll()

	m := newTestModel(t, store, tl.History())
	m = apply(t, m, snapshotMsg(store.Snapshot()))
	m = apply(t, m, runes("H"))
	require.NotContains(t, m.View(), "late arrival")

	late := message.Message{Timestamp: base.Add(time.Minute), Status: message.Error, Text: "late arrival"}
	require.NoError(t, logtail.Append(path, late))
	poll()

	snap := store.Snapshot()
	require.Equal(t, 3, snap.Seen, "history is full, its length stays put")
	m = apply(t, m, snapshotMsg(snap))
	assert.Contains(t, m.View(), "late arrival")
}

func TestModel_QuitKeys(t *testing.T) {
	m := newTestModel(t, nil, nil)
	for _, msg := range []tea.KeyMsg{runes("q"), {Type: tea.KeyCtrlC}} {
		_, cmd := m.Update(msg)
		require.NotNil(t, cmd, msg.String())
		assert.IsType(t, tea.QuitMsg{}, cmd(), msg.String())
	}
}

func TestModel_FooterReportsSkipsAndErrors(t *testing.T) {
	store := &state.Store{}
	store.Update(tailer.Cycle{Frame: []string{"kept line"}, Redraw: true, Skipped: 2}, 5, 5, nil)

	m := newTestModel(t, store, nil)
	m = apply(t, m, snapshotMsg(store.Snapshot()))
	footer := m.renderFooter()
	assert.Contains(t, footer, "visible 1/10")
	assert.Contains(t, footer, "seen 5")
	assert.Contains(t, footer, "skipped 2")
	assert.NotContains(t, footer, "ERROR")

	store.Update(tailer.Cycle{}, 0, 0, errors.New("boom"))
	m = apply(t, m, snapshotMsg(store.Snapshot()))
	assert.Contains(t, m.renderFooter(), "ERROR boom")

	store.Update(tailer.Cycle{}, 0, 0, errors.New("boom"))
	m = apply(t, m, snapshotMsg(store.Snapshot()))
	assert.Contains(t, m.renderFooter(), "FAILING boom")
	assert.Contains(t, m.View(), "kept line", "frame survives failed polls")
}

func TestModel_LoadingBeforeResize(t *testing.T) {
	m := New(Options{})
	assert.Equal(t, "Loading...", m.View())
}

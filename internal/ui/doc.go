// Package ui implements the full-screen terminal view of the feed using
// Bubble Tea.
//
// # Views
//
//   - Tail: the newest entries in display order, newest at the bottom,
//     exactly as the plain listener would draw them
//   - History: every distinct message seen during this run, newest first,
//     re-rendered against the current time
//
// Press H to switch views and ? for the full key list.
//
// # Refresh Model
//
// The UI never reads the log itself. A background poller in internal/app
// steps the tailer and writes each cycle into a state.Store; the model
// fetches a snapshot on every tick and only replaces the viewport content
// when something it shows moved: Version for the tail view, HistoryRevision
// or Version for the history view. Scroll position therefore survives polls
// that change nothing.
//
// # Footer
//
// The footer shows the visible count against the configured line cap, the
// number of distinct messages seen, malformed lines skipped, and the last
// poll error. Two consecutive failures switch the error label to FAILING.
package ui

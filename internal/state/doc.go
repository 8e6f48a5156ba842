// Package state shares the latest tail window between the background poller
// and the terminal UI.
//
// # Overview
//
// In TUI mode the tailer runs on its own goroutine and the Bubble Tea program
// reads on its tick. The Store sits between them:
//
//	Poller:                                 UI:
//	tailer.Step()                           store.Snapshot()
//	store.Update(cycle, seen, revision, err)   → viewport content
//
// # Update Semantics
//
// A successful poll records the skip count, the history size and revision
// and, only when the cycle asked for a redraw, the new frame. Version is
// bumped with every new frame so the UI can tell a fresh frame from a
// repeated one without comparing lines again. HistoryRevision does the same
// for the run history, whose size stops moving once it is full.
//
// A failed poll keeps the previous frame, records the error and counts
// consecutive failures. IsFailing reports two or more in a row; a good poll
// resets the counter.
//
// # Defensive Copying
//
// Update and Snapshot clone the frame and visible slices, and Snapshot wraps
// the stored error so callers never share mutable state with the poller.
//
// The zero Store is ready to use.
package state

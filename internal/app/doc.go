// Package app wires configuration, the tailer and the UI into the two feed
// commands.
//
// # Commands
//
//   - Write: resolve the status, take the text from the argument or one line
//     of stdin, and append a single record to the log
//   - Run: tail the log until the context is cancelled, either as a plain
//     redrawing listener or as the Bubble Tea UI
//
// # Plain Listener
//
// Run builds a render.Renderer from the config and the --color mode, then
// hands control to tailer.Listen. The first read or write failure ends the
// run and is returned to the caller.
//
// # TUI Mode
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       ├─────> config.Load()    Read feed config
//	       ├─────> tailer.New()     Frames go to io.Discard
//	       ├─────> state.Store{}    Shared state container
//	       ├─────> StartPoller()    Background steps with backoff
//	       └─────> ui.Run()         Start TUI (blocks)
//
// Poll failures in TUI mode are recoverable: the poller records them in the
// store, logs a warning and backs off exponentially up to 30 seconds. A good
// poll resets the interval.
//
// # Logging
//
// Diagnostics use zerolog. The listener logs JSON to the configured
// debug_log file, or nowhere when none is set, so the terminal only ever
// shows frames. Write logs to stderr through a console writer.
package app

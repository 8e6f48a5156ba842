// Package config loads the feed configuration file.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/feed/config.toml (default)
//  3. If the config file doesn't exist, fall back to built-in defaults
//  4. If the file exists but fields are missing, blank or non-positive, use defaults
//
// # Default Values
//
//   - Config file: ~/.config/feed/config.toml
//   - Log file: ~/.local/share/feed/feed.log
//   - Visible lines: 10
//   - Blink window: 1500 ms
//   - Color window: 5 minutes
//   - Poll interval: 100 ms
//   - Display timezone: CET
//   - History size: 1000 messages
//   - Debug log: none
//
// # TOML Format
//
//	log_path = "~/.local/share/feed/feed.log"
//	lines = 10
//	blink_millis = 1500
//	color_minutes = 5
//	refresh_millis = 100
//	timezone = "CET"
//	history_size = 1000
//	debug_log = "~/.local/state/feed/debug.log"
//
// Every field is optional. Tilde expansion is applied to log_path and
// debug_log. Timezones are IANA names resolved against the embedded zone
// database.
//
// # Error Handling
//
// Load returns errors for:
//   - Path expansion failures (e.g., cannot determine home directory)
//   - File read errors (except os.ErrNotExist, which triggers defaults)
//   - TOML syntax errors and unknown timezones ("parse config: ...")
//
// Command-line flags override these values; see internal/app.
package config

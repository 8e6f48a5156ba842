// Package logtail reads and appends the feed log.
//
// # Overview
//
// The feed log is a UTF-8 file holding one JSON message record per line. It
// is only ever appended to. Writers call Append; the tailer calls ReadLines
// on every poll and reparses the whole file.
//
// # Reading
//
// ReadLines returns every line, oldest first:
//
//	lines, err := logtail.ReadLines("/home/me/.local/share/feed/feed.log")
//	if err != nil {
//		return err
//	}
//
// Re-reading the whole file keeps the tailer stateless with respect to file
// offsets, so a truncated or replaced log is picked up on the next poll.
//
// Lines up to 1 MiB are supported. A line still being written when the file
// is read is returned as-is; callers treat it like any other malformed line.
//
// # Appending
//
// Append marshals the message, adds a newline and issues a single write on a
// file opened with O_APPEND|O_CREATE. The parent directory is created when
// missing. There is no locking between writers; each record relies on the
// kernel's atomic append for small writes.
//
// # Error Handling
//
// ReadLines returns nil, nil for a file that does not exist yet. Permission
// and I/O errors are wrapped and returned. Append returns every failure,
// including the error from Close.
package logtail

package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/five82/feed/internal/config"
	"github.com/five82/feed/internal/logtail"
	"github.com/five82/feed/internal/message"
)

var errNoStdin = errors.New("no stdin")

// WriteOptions configure the write command.
type WriteOptions struct {
	ConfigPath string
	Text       string
	HasText    bool
	Status     *message.Status
	Error      bool
	Success    bool
	Stdin      io.Reader // nil uses os.Stdin
	Stderr     io.Writer // nil uses os.Stderr
}

// resolveStatus lets --error win over --success over --status; Success is
// the default.
func (o WriteOptions) resolveStatus() message.Status {
	switch {
	case o.Error:
		return message.Error
	case o.Success:
		return message.Success
	case o.Status != nil:
		return *o.Status
	default:
		return message.Success
	}
}

// Write appends one message to the feed log.
func Write(ctx context.Context, opts WriteOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}
	logger := consoleLogger(stderr).With().Str("component", "writer").Logger()

	text := opts.Text
	if !opts.HasText {
		stdin := opts.Stdin
		if stdin == nil {
			stdin = os.Stdin
		}
		text, err = readLine(stdin)
		if err != nil {
			return err
		}
	}

	msg := message.New(opts.resolveStatus(), text)
	if err := logtail.Append(cfg.LogPath, msg); err != nil {
		return err
	}
	logger.Debug().Str("status", msg.Status.String()).Str("path", cfg.LogPath).Msg("message appended")
	return nil
}

// readLine returns one line including its newline.
func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	if line == "" {
		return "", errNoStdin
	}
	return line, nil
}

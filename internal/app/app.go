package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/muesli/termenv"

	"github.com/five82/feed/internal/config"
	"github.com/five82/feed/internal/render"
	"github.com/five82/feed/internal/state"
	"github.com/five82/feed/internal/tailer"
	"github.com/five82/feed/internal/ui"
)

// Options configure the listen command.
type Options struct {
	ConfigPath  string
	Lines       int // zero uses config
	BlinkMillis int // zero uses config
	TUI         bool
	Color       string    // auto, always or never
	Output      io.Writer // nil uses stdout
}

// Run tails the feed log until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.Lines > 0 {
		cfg.Lines = opts.Lines
	}
	if opts.BlinkMillis > 0 {
		cfg.Blink = time.Duration(opts.BlinkMillis) * time.Millisecond
	}

	logger, closeLog, err := newLogger(cfg.DebugLog, io.Discard)
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	renderer, err := newRenderer(cfg, opts.Color, out)
	if err != nil {
		return err
	}
	tailOpts := tailer.Options{Lines: cfg.Lines, Refresh: cfg.Refresh, HistorySize: cfg.HistorySize}

	if !opts.TUI {
		return tailer.New(cfg.LogPath, tailOpts, renderer, out, logger).Listen(ctx)
	}

	t := tailer.New(cfg.LogPath, tailOpts, renderer, io.Discard, logger)
	store := &state.Store{}

	// Do initial refresh to populate store before UI starts
	_ = refresh(store, t)
	StartPoller(ctx, store, t, cfg.Refresh, logger.With().Str("component", "poller").Logger())

	return ui.Run(ui.Options{
		Context:  ctx,
		Store:    store,
		History:  t.History(),
		Renderer: renderer,
		PollTick: cfg.Refresh,
		LogPath:  cfg.LogPath,
		Lines:    cfg.Lines,
	})
}

func newRenderer(cfg config.Config, color string, out io.Writer) (*render.Renderer, error) {
	opts := []render.Option{
		render.WithOutput(out),
		render.WithBlink(cfg.Blink),
		render.WithColor(cfg.Color),
		render.WithLocation(cfg.Location),
	}
	switch strings.ToLower(strings.TrimSpace(color)) {
	case "", "auto":
	case "always":
		opts = append(opts, render.WithColorProfile(termenv.ANSI))
	case "never":
		opts = append(opts, render.WithColorProfile(termenv.Ascii))
	default:
		return nil, fmt.Errorf("invalid color mode %q (want auto, always or never)", color)
	}
	return render.New(opts...), nil
}

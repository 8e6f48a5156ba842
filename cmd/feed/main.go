package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/five82/feed/internal/app"
	"github.com/five82/feed/internal/message"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "feed: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "feed",
		Short:         "Append status messages to a log and watch them arrive",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "override feed config path (optional)")

	root.AddCommand(newWriteCmd(&configPath), newListenCmd(&configPath))
	return root
}

func newWriteCmd(configPath *string) *cobra.Command {
	var (
		isError   bool
		isSuccess bool
		status    = message.Success
	)

	cmd := &cobra.Command{
		Use:   "write [MESSAGE]",
		Short: "Append one message to the feed log",
		Long: `Append one message to the feed log. Without MESSAGE, the first line of
stdin is used.

Examples:
  feed write "backup finished"
  feed write --error "disk almost full"
  make deploy 2>&1 | tail -n1 | feed write -s pending`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := app.WriteOptions{
				ConfigPath: *configPath,
				Error:      isError,
				Success:    isSuccess,
				Stdin:      cmd.InOrStdin(),
				Stderr:     cmd.ErrOrStderr(),
			}
			if len(args) == 1 {
				opts.Text = args[0]
				opts.HasText = true
			}
			if cmd.Flags().Changed("status") {
				opts.Status = &status
			}
			return app.Write(cmd.Context(), opts)
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&isError, "error", false, "mark the message as an error")
	flags.BoolVar(&isSuccess, "success", false, "mark the message as a success")
	flags.VarP(&status, "status", "s", "message status: error, success or pending")
	return cmd
}

func newListenCmd(configPath *string) *cobra.Command {
	var opts app.Options

	cmd := &cobra.Command{
		Use:   "listen",
		Short: "Redraw the newest feed messages as they arrive",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.ConfigPath = *configPath
			opts.Output = cmd.OutOrStdout()
			return app.Run(cmd.Context(), opts)
		},
	}

	flags := cmd.Flags()
	flags.IntVarP(&opts.Lines, "lines", "n", 0, "number of messages to show (default from config, 10)")
	flags.IntVar(&opts.BlinkMillis, "blink-millis", 0, "blink window in milliseconds (default from config, 1500)")
	flags.BoolVar(&opts.TUI, "tui", false, "run the full-screen terminal UI")
	flags.StringVar(&opts.Color, "color", "auto", "color mode: auto, always or never")
	return cmd
}
